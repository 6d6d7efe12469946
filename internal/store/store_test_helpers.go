package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
)

// stubDB scripts the sqlx query surface. Unset hooks succeed without
// touching dest, and unscripted execs report no affected rows.
type stubDB struct {
	getFn    func(ctx context.Context, dest any, query string, args ...any) error
	selectFn func(ctx context.Context, dest any, query string, args ...any) error
	execFn   func(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// The narrower roles the stores accept are all played by the same stub.
type (
	stubTx     = stubDB
	stubGetter = stubDB
	stubExecer = stubDB
)

var _ DB = stubDB{}

func (s stubDB) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	if s.getFn != nil {
		return s.getFn(ctx, dest, query, args...)
	}
	return nil
}

func (s stubDB) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	if s.selectFn != nil {
		return s.selectFn(ctx, dest, query, args...)
	}
	return nil
}

func (s stubDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if s.execFn != nil {
		return s.execFn(ctx, query, args...)
	}
	return affected(0), nil
}

func affected(n int64) sql.Result {
	return driver.RowsAffected(n)
}

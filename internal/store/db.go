package store

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Stores take the narrowest of these a query needs, so the same method runs
// against the pool or inside a transaction.

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Getter interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

type Selecter interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type DB interface {
	Execer
	Getter
	Selecter
}

// Tx is what a record hook sees of the surrounding transaction.
type Tx interface {
	Execer
	Getter
	Selecter
}

var (
	_ DB = (*sqlx.DB)(nil)
	_ Tx = (*sqlx.Tx)(nil)
)

package store

import (
	"context"
	"database/sql"
)

// LedgerStore keeps account balances in step with journal lines. Asset and
// expense accounts grow with debits; every other account type grows with
// credits.
type LedgerStore struct {
	db DB
}

func NewLedgerStore(db DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) Post(ctx context.Context, tx Execer, accountID, debit, credit string) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET current_balance = COALESCE(current_balance, 0) + CASE
		        WHEN type IN ('Asset', 'Expense') THEN $2::numeric - $3::numeric
		        ELSE $3::numeric - $2::numeric
		    END,
		    updated_at = NOW()
		WHERE id = $1 AND is_active
	`, accountID, debit, credit)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Reverse undoes a previously posted line.
func (s *LedgerStore) Reverse(ctx context.Context, tx Execer, accountID, debit, credit string) error {
	return s.Post(ctx, tx, accountID, credit, debit)
}

func (s *LedgerStore) Balance(ctx context.Context, accountID string) (string, error) {
	var balance string
	err := s.db.GetContext(ctx, &balance, `
		SELECT COALESCE(current_balance, 0)::text
		FROM accounts
		WHERE id = $1 AND is_active
	`, accountID)
	return balance, err
}

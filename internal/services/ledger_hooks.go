package services

import (
	"context"
	"database/sql"

	"dicel-erp/internal/errs"
	"dicel-erp/internal/store"

	"github.com/cockroachdb/errors"
)

type LedgerStore interface {
	Post(ctx context.Context, tx store.Execer, accountID, debit, credit string) error
	Reverse(ctx context.Context, tx store.Execer, accountID, debit, credit string) error
}

// LedgerHooks keeps account balances in step with journal lines: creating
// a line posts it, deactivating it reverses the posting.
func LedgerHooks(ledger LedgerStore) Hooks {
	return Hooks{
		AfterCreate: func(ctx context.Context, tx store.Tx, doc map[string]any) error {
			accountID, debit, credit := journalLine(doc)
			return ledgerError(ledger.Post(ctx, tx, accountID, debit, credit))
		},
		BeforeDelete: func(ctx context.Context, tx store.Tx, doc map[string]any) error {
			accountID, debit, credit := journalLine(doc)
			return ledgerError(ledger.Reverse(ctx, tx, accountID, debit, credit))
		},
		Touches: []string{"accounts"},
	}
}

func journalLine(doc map[string]any) (string, string, string) {
	accountID, _ := doc["accountId"].(string)
	return accountID, amountOrZero(doc["debit"]), amountOrZero(doc["credit"])
}

func amountOrZero(value any) string {
	if amount, ok := value.(string); ok && amount != "" {
		return amount
	}
	return "0"
}

func ledgerError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errs.BusinessRule("Account is not active")
	}
	return err
}

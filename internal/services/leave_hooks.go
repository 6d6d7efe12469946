package services

import (
	"context"
	"database/sql"
	"encoding/json"

	"dicel-erp/internal/errs"
	"dicel-erp/internal/resource"
	"dicel-erp/internal/store"

	"github.com/cockroachdb/errors"
)

type LeaveBalances interface {
	AdjustBalance(ctx context.Context, tx store.Execer, leaveTypeID string, days int) error
}

// LeaveHooks gives an approved request's days back to its leave type when
// the request is deactivated. Other statuses never touched the counters.
func LeaveHooks(balances LeaveBalances) Hooks {
	return Hooks{
		BeforeDelete: func(ctx context.Context, tx store.Tx, doc map[string]any) error {
			if status, _ := doc["status"].(string); status != LeaveApproved {
				return nil
			}
			leaveTypeID, _ := doc["leaveTypeId"].(string)
			days, err := wholeDays(doc["days"])
			if err != nil {
				return err
			}
			err = balances.AdjustBalance(ctx, tx, leaveTypeID, -days)
			if errors.Is(err, sql.ErrNoRows) {
				return errs.BusinessRule("Leave type is not active")
			}
			return err
		},
		Touches: []string{resource.LeaveTypes.Path},
	}
}

func wholeDays(value any) (int, error) {
	switch v := value.(type) {
	case json.Number:
		n, err := v.Int64()
		return int(n), err
	case int64:
		return int(v), nil
	case int:
		return v, nil
	case float64:
		return int(v), nil
	}
	return 0, errors.Newf("leave request has no day count: %v", value)
}

package store

import (
	"context"
	"database/sql"

	"dicel-erp/internal/models"
)

type LeaveStore struct {
	db DB
}

func NewLeaveStore(db DB) *LeaveStore {
	return &LeaveStore{db: db}
}

func (s *LeaveStore) GetForUpdate(ctx context.Context, tx Getter, id string) (models.LeaveRequest, error) {
	var row models.LeaveRequest
	err := tx.GetContext(ctx, &row, `
		SELECT id, employee_id, leave_type_id, days, status, created_by
		FROM leave_requests
		WHERE id = $1 AND is_active
		FOR UPDATE
	`, id)
	return row, err
}

// UpdateStatus records a decision. approvedBy is stamped together with the
// decision time; a nil approver clears both.
func (s *LeaveStore) UpdateStatus(ctx context.Context, tx Execer, id, status string, approvedBy, comments *string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE leave_requests
		SET status = $2,
		    approved_by = $3,
		    approved_at = CASE WHEN $3::text IS NULL THEN NULL ELSE NOW() END,
		    comments = COALESCE($4, comments),
		    updated_at = NOW()
		WHERE id = $1
	`, id, status, approvedBy, comments)
	return err
}

func (s *LeaveStore) GetBalanceForUpdate(ctx context.Context, tx Getter, leaveTypeID string) (models.LeaveBalance, error) {
	var row models.LeaveBalance
	err := tx.GetContext(ctx, &row, `
		SELECT id, days_used, days_remaining
		FROM leave_types
		WHERE id = $1 AND is_active
		FOR UPDATE
	`, leaveTypeID)
	return row, err
}

// AdjustBalance moves days from remaining to used; a negative value moves
// them back.
func (s *LeaveStore) AdjustBalance(ctx context.Context, tx Execer, leaveTypeID string, days int) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE leave_types
		SET days_used = days_used + $2,
		    days_remaining = days_remaining - $2,
		    updated_at = NOW()
		WHERE id = $1 AND is_active
	`, leaveTypeID, days)
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

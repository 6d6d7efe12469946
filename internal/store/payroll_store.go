package store

import (
	"context"

	"dicel-erp/internal/models"
)

type PayrollStore struct {
	db DB
}

func NewPayrollStore(db DB) *PayrollStore {
	return &PayrollStore{db: db}
}

type PayrollInput struct {
	ID          string
	EmployeeID  string
	Month       int
	Year        int
	BasicSalary string
	Allowances  string
	Deductions  string
	NetSalary   string
	CreatedBy   string
}

const pendingEmployees = `
	FROM employees e
	WHERE e.is_active
	  AND e.status <> 'Terminated'
	  AND NOT EXISTS (
		SELECT 1 FROM payroll_records p
		WHERE p.employee_id = e.id AND p.month = $1 AND p.year = $2 AND p.is_active
	  )
`

// PendingEmployees returns up to limit active employees without a payroll
// record for the period, oldest hire first.
func (s *PayrollStore) PendingEmployees(ctx context.Context, tx Selecter, month, year, limit int) ([]models.PayrollCandidate, error) {
	var rows []models.PayrollCandidate
	err := tx.SelectContext(ctx, &rows, `
		SELECT e.id, COALESCE(e.basic_salary, 0)::text AS basic_salary`+pendingEmployees+`
		ORDER BY e.hire_date NULLS LAST, e.id
		LIMIT $3
		FOR UPDATE OF e SKIP LOCKED
	`, month, year, limit)
	return rows, err
}

func (s *PayrollStore) CountPending(ctx context.Context, tx Getter, month, year int) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count, `SELECT COUNT(*)`+pendingEmployees, month, year)
	return count, err
}

// Insert is a no-op when the employee already has a record for the period,
// reporting whether a row was written.
func (s *PayrollStore) Insert(ctx context.Context, tx Execer, input PayrollInput) (bool, error) {
	result, err := tx.ExecContext(ctx, `
		INSERT INTO payroll_records (id, employee_id, month, year, basic_salary, allowances, deductions, net_salary, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'Processed', $9)
		ON CONFLICT DO NOTHING
	`, input.ID, input.EmployeeID, input.Month, input.Year, input.BasicSalary, input.Allowances, input.Deductions, input.NetSalary, input.CreatedBy)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

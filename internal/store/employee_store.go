package store

import "context"

type EmployeeStore struct {
	db DB
}

func NewEmployeeStore(db DB) *EmployeeStore {
	return &EmployeeStore{db: db}
}

// IDByUser resolves the active employee linked to a login.
func (s *EmployeeStore) IDByUser(ctx context.Context, userID string) (string, error) {
	var id string
	err := s.db.GetContext(ctx, &id, `
		SELECT id
		FROM employees
		WHERE user_id = $1 AND is_active
		ORDER BY created_at
		LIMIT 1
	`, userID)
	return id, err
}

func (s *EmployeeStore) Exists(ctx context.Context, tx Getter, employeeID string) (bool, error) {
	var count int
	err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM employees WHERE id = $1 AND is_active`, employeeID)
	return count > 0, err
}

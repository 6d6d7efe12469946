package store

import (
	"context"
	"database/sql"

	"dicel-erp/internal/models"
)

type AdminStore struct {
	db DB
}

func NewAdminStore(db DB) *AdminStore {
	return &AdminStore{db: db}
}

// HasAnyAdmin is checked during registration; the first account becomes
// the administrator.
func (s *AdminStore) HasAnyAdmin(ctx context.Context, tx Getter) (bool, error) {
	var count int
	err := tx.GetContext(ctx, &count, `SELECT COUNT(1) FROM users WHERE role = $1`, models.RoleAdmin)
	return count > 0, err
}

func (s *AdminStore) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := s.db.SelectContext(ctx, &users, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	return users, err
}

func (s *AdminStore) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	return count, err
}

func (s *AdminStore) SetRole(ctx context.Context, tx Execer, userID, role string) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE id = $1 AND is_active
	`, userID, role)
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

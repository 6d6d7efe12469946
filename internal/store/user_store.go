package store

import (
	"context"

	"dicel-erp/internal/models"
)

type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

type UserInput struct {
	ID           string
	Name         string
	Email        string
	Role         string
	DepartmentID *string
	PasswordHash string
}

const userColumns = `id, name, email, role, department_id, password_hash, is_active, created_at`

func (s *UserStore) Create(ctx context.Context, tx Execer, input UserInput) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO users (id, name, email, role, department_id, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, input.ID, input.Name, input.Email, input.Role, input.DepartmentID, input.PasswordHash)
	return err
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1) AND is_active`, email)
	return user, err
}

func (s *UserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1 AND is_active`, userID)
	return user, err
}

package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"dicel-erp/internal/models"
)

func TestUserStoreCreate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO users") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 6 || args[0] != "user-1" || args[1] != "Ada" || args[3] != models.RoleAdmin {
				t.Fatalf("unexpected args: %#v", args)
			}
			return affected(1), nil
		},
	}
	store := NewUserStore(stubDB{})
	err := store.Create(ctx, execer, UserInput{ID: "user-1", Name: "Ada", Email: "ada@dicel.example", Role: models.RoleAdmin, PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserStoreGetByEmail(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "lower(email) = lower($1)") || !strings.Contains(query, "is_active") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != "Ada@Dicel.example" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*models.User) = models.User{ID: "user-1", PasswordHash: "hash"}
			return nil
		},
	})
	user, err := store.GetByEmail(ctx, "Ada@Dicel.example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" || user.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %#v", user)
	}
}

func TestUserStoreGetByID(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "WHERE id = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*models.User) = models.User{ID: "user-1", Role: models.RoleEmployee}
			return nil
		},
	})
	user, err := store.GetByID(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != models.RoleEmployee {
		t.Fatalf("unexpected user: %#v", user)
	}
}

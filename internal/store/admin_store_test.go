package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"dicel-erp/internal/models"
)

func TestAdminStoreHasAnyAdmin(t *testing.T) {
	getter := stubGetter{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM users WHERE role = $1") || args[0] != models.RoleAdmin {
				t.Fatalf("unexpected query: %s %#v", query, args)
			}
			*dest.(*int) = 0
			return nil
		},
	}
	store := NewAdminStore(stubDB{})
	hasAdmin, err := store.HasAnyAdmin(context.Background(), getter)
	if err != nil || hasAdmin {
		t.Fatalf("expected no admin, got %v %v", hasAdmin, err)
	}
}

func TestAdminStoreListUsers(t *testing.T) {
	store := NewAdminStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM users") || len(args) != 2 || args[0] != 20 || args[1] != 40 {
				t.Fatalf("unexpected query: %s %#v", query, args)
			}
			*dest.(*[]models.User) = []models.User{{ID: "user-1"}, {ID: "user-2"}}
			return nil
		},
	})
	users, err := store.ListUsers(context.Background(), 20, 40)
	if err != nil || len(users) != 2 {
		t.Fatalf("unexpected users: %#v %v", users, err)
	}
}

func TestAdminStoreSetRole(t *testing.T) {
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "SET role = $2") || args[1] != models.RoleAdmin {
				t.Fatalf("unexpected query: %s %#v", query, args)
			}
			return affected(1), nil
		},
	}
	store := NewAdminStore(stubDB{})
	if err := store.SetRole(context.Background(), execer, "user-2", models.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := stubExecer{
		execFn: func(context.Context, string, ...any) (sql.Result, error) { return affected(0), nil },
	}
	if err := store.SetRole(context.Background(), missing, "user-x", models.RoleAdmin); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

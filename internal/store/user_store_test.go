package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"fintrack/internal/models"
)

func TestUserStoreUpsertTelegram(t *testing.T) {
	ctx := context.Background()
	getter := stubGetter{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "ON CONFLICT (telegram_id) DO UPDATE") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 7 || args[0] != "user-1" || args[1] != "tg-42" {
				t.Fatalf("unexpected args: %#v", args)
			}
			user := dest.(*models.User)
			*user = models.User{ID: "user-1", Username: "alice"}
			return nil
		},
	}
	store := NewUserStore(stubDB{})
	user, err := store.UpsertTelegram(ctx, getter, "user-1", TelegramProfile{
		TelegramID: "tg-42", Username: "alice", FirstName: "Alice",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("unexpected user: %#v", user)
	}
}

func TestUserStoreCreate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO users") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 6 || args[0] != "user-1" || args[1] != "alice" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewUserStore(stubDB{})
	if err := store.Create(ctx, execer, "user-1", "alice", "hash", "Alice", "Smith", "555-0100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserStoreGetByUsername(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "WHERE username = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			user := dest.(*models.User)
			*user = models.User{ID: "user-1", Username: "alice"}
			return nil
		},
	})
	user, err := store.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("unexpected user: %#v", user)
	}
}

func TestUserStoreListHonorsLimit(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(stubDB{
		selectFn: func(_ context.Context, _ any, query string, args ...any) error {
			if !strings.Contains(query, "LIMIT $1") {
				t.Fatalf("expected limit clause: %s", query)
			}
			if len(args) != 1 || args[0] != 5 {
				t.Fatalf("unexpected args: %#v", args)
			}
			return nil
		},
	})
	if _, err := store.List(ctx, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserStoreListNoLimit(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(stubDB{
		selectFn: func(_ context.Context, _ any, query string, args ...any) error {
			if strings.Contains(query, "LIMIT") {
				t.Fatalf("unexpected limit clause: %s", query)
			}
			if len(args) != 0 {
				t.Fatalf("unexpected args: %#v", args)
			}
			return nil
		},
	})
	if _, err := store.List(ctx, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserStoreDeleteReportsRows(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, _ ...any) (sql.Result, error) {
			if !strings.Contains(query, "DELETE FROM users") {
				t.Fatalf("unexpected query: %s", query)
			}
			return stubResult{rows: 0}, nil
		},
	}
	store := NewUserStore(stubDB{})
	rows, err := store.Delete(ctx, execer, "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows, got %d", rows)
	}
}

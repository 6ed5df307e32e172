package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

func TestRecordStoreCreate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO records") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 10 || args[0] != "rec-1" || args[2] != models.KindLend {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewRecordStore(stubDB{})
	err := store.Create(ctx, execer, models.Record{
		ID:     "rec-1",
		UserID: "user-1",
		Kind:   models.KindLend,
		Name:   "car loan",
		Amount: decimal.NewFromInt(12000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecordStoreGetForUpdateLocks(t *testing.T) {
	ctx := context.Background()
	getter := stubGetter{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FOR UPDATE") {
				t.Fatalf("expected row lock: %s", query)
			}
			record := dest.(*models.Record)
			*record = models.Record{ID: "rec-1"}
			return nil
		},
	}
	store := NewRecordStore(stubDB{})
	record, err := store.GetForUpdate(ctx, getter, "rec-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ID != "rec-1" {
		t.Fatalf("unexpected record: %#v", record)
	}
}

func TestRecordStoreListByUserFiltersKind(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(stubDB{
		selectFn: func(_ context.Context, _ any, query string, args ...any) error {
			if !strings.Contains(query, "AND kind = $2") {
				t.Fatalf("expected kind filter: %s", query)
			}
			if len(args) != 3 || args[1] != models.KindBorrow || args[2] != 10 {
				t.Fatalf("unexpected args: %#v", args)
			}
			return nil
		},
	})
	if _, err := store.ListByUser(ctx, "user-1", models.KindBorrow, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecordStoreListByUserNoKind(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(stubDB{
		selectFn: func(_ context.Context, _ any, query string, args ...any) error {
			if strings.Contains(query, "AND kind") {
				t.Fatalf("unexpected kind filter: %s", query)
			}
			if len(args) != 1 {
				t.Fatalf("unexpected args: %#v", args)
			}
			return nil
		},
	})
	if _, err := store.ListByUser(ctx, "user-1", "", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecordStoreUpdateRemains(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "SET remains = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 2 || args[1] != "rec-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewRecordStore(stubDB{})
	if err := store.UpdateRemains(ctx, execer, "rec-1", decimal.NewFromInt(11000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecordStoreDeleteMissing(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(context.Context, string, ...any) (sql.Result, error) {
			return stubResult{rows: 0}, nil
		},
	}
	store := NewRecordStore(stubDB{})
	rows, err := store.Delete(ctx, execer, "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows, got %d", rows)
	}
}

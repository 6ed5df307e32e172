package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/store"

	"github.com/lib/pq"
)

func TestListUsersInvalidSize(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubRecordStore{}, stubPaymentStore{}, stubRateStore{}, stubLedgerService{})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users?size=abc", nil)
	handler.ListUsers(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if decodeError(t, rr) != "Invalid size value" {
		t.Fatalf("unexpected error message: %q", decodeError(t, rr))
	}
}

func TestListUsersPassesLimit(t *testing.T) {
	users := stubUserStore{
		listFn: func(ctx context.Context, limit int) ([]models.User, error) {
			if limit != 5 {
				t.Fatalf("expected limit 5, got %d", limit)
			}
			return []models.User{{ID: "user-1"}}, nil
		},
	}
	handler := newTestHandler(fakeTxRunner{}, users, stubRecordStore{}, stubPaymentStore{}, stubRateStore{}, stubLedgerService{})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users?size=5", nil)
	handler.ListUsers(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body []models.User
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body) != 1 || body[0].ID != "user-1" {
		t.Fatalf("unexpected users: %#v", body)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	users := stubUserStore{
		createFn: func(ctx context.Context, tx store.Execer, id, username, passwordHash, firstName, lastName, phone string) error {
			return &pq.Error{Code: "23505"}
		},
	}
	handler := newTestHandler(fakeTxRunner{}, users, stubRecordStore{}, stubPaymentStore{}, stubRateStore{}, stubLedgerService{})

	rr := postJSON(t, handler.CreateUser, "/users", map[string]string{
		"username":   "alice_smith",
		"first_name": "Alice",
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
	if decodeError(t, rr) != "Username, first name or last name is not unique" {
		t.Fatalf("unexpected error message: %q", decodeError(t, rr))
	}
}

func TestCreateUserWithoutPassword(t *testing.T) {
	users := stubUserStore{
		createFn: func(ctx context.Context, tx store.Execer, id, username, passwordHash, firstName, lastName, phone string) error {
			if passwordHash != "" {
				t.Fatalf("admin-created users must have no password, got %q", passwordHash)
			}
			return nil
		},
		getByIDFn: func(ctx context.Context, userID string) (models.User, error) {
			return models.User{ID: userID, Username: "alice_smith"}, nil
		},
	}
	handler := newTestHandler(fakeTxRunner{}, users, stubRecordStore{}, stubPaymentStore{}, stubRateStore{}, stubLedgerService{})

	rr := postJSON(t, handler.CreateUser, "/users", map[string]string{"username": "alice_smith"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestGetUserNotFound(t *testing.T) {
	users := stubUserStore{
		getByIDFn: func(ctx context.Context, userID string) (models.User, error) {
			return models.User{}, sql.ErrNoRows
		},
	}
	handler := newTestHandler(fakeTxRunner{}, users, stubRecordStore{}, stubPaymentStore{}, stubRateStore{}, stubLedgerService{})

	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/users/missing", nil), "id", "missing")
	handler.GetUser(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestDeleteUserSuccess(t *testing.T) {
	users := stubUserStore{
		deleteFn: func(ctx context.Context, tx store.Execer, userID string) (int64, error) {
			if userID != "user-1" {
				t.Fatalf("unexpected user id: %q", userID)
			}
			return 1, nil
		},
	}
	handler := newTestHandler(fakeTxRunner{}, users, stubRecordStore{}, stubPaymentStore{}, stubRateStore{}, stubLedgerService{})

	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/users/user-1", nil), "id", "user-1")
	handler.DeleteUser(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestDeleteUserMissing(t *testing.T) {
	users := stubUserStore{
		deleteFn: func(ctx context.Context, tx store.Execer, userID string) (int64, error) {
			return 0, nil
		},
	}
	handler := newTestHandler(fakeTxRunner{}, users, stubRecordStore{}, stubPaymentStore{}, stubRateStore{}, stubLedgerService{})

	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/users/missing", nil), "id", "missing")
	handler.DeleteUser(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/config"
	"fintrack/internal/ledger"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	withTxFn func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.withTxFn != nil {
		return f.withTxFn(ctx, fn)
	}
	return fn(nil)
}

type stubUserStore struct {
	createFn        func(ctx context.Context, tx store.Execer, id, username, passwordHash, firstName, lastName, phone string) error
	getByIDFn       func(ctx context.Context, userID string) (models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (models.User, error)
	listFn          func(ctx context.Context, limit int) ([]models.User, error)
	deleteFn        func(ctx context.Context, tx store.Execer, userID string) (int64, error)
}

func (s stubUserStore) Create(ctx context.Context, tx store.Execer, id, username, passwordHash, firstName, lastName, phone string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, username, passwordHash, firstName, lastName, phone)
}

func (s stubUserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	if s.getByIDFn == nil {
		return models.User{}, nil
	}
	return s.getByIDFn(ctx, userID)
}

func (s stubUserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	if s.getByUsernameFn == nil {
		return models.User{}, nil
	}
	return s.getByUsernameFn(ctx, username)
}

func (s stubUserStore) List(ctx context.Context, limit int) ([]models.User, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, limit)
}

func (s stubUserStore) Delete(ctx context.Context, tx store.Execer, userID string) (int64, error) {
	if s.deleteFn == nil {
		return 1, nil
	}
	return s.deleteFn(ctx, tx, userID)
}

type stubRecordStore struct {
	getByIDFn func(ctx context.Context, recordID string) (models.Record, error)
	listFn    func(ctx context.Context, limit int) ([]models.Record, error)
}

func (s stubRecordStore) GetByID(ctx context.Context, recordID string) (models.Record, error) {
	if s.getByIDFn == nil {
		return models.Record{}, nil
	}
	return s.getByIDFn(ctx, recordID)
}

func (s stubRecordStore) List(ctx context.Context, limit int) ([]models.Record, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, limit)
}

type stubPaymentStore struct {
	getByIDFn      func(ctx context.Context, paymentID string) (models.Payment, error)
	listDetailedFn func(ctx context.Context, limit int) ([]store.PaymentDetail, error)
}

func (s stubPaymentStore) GetByID(ctx context.Context, paymentID string) (models.Payment, error) {
	if s.getByIDFn == nil {
		return models.Payment{}, nil
	}
	return s.getByIDFn(ctx, paymentID)
}

func (s stubPaymentStore) ListDetailed(ctx context.Context, limit int) ([]store.PaymentDetail, error) {
	if s.listDetailedFn == nil {
		return nil, nil
	}
	return s.listDetailedFn(ctx, limit)
}

type stubRateStore struct {
	listFn func(ctx context.Context) ([]models.RateSnapshot, error)
}

func (s stubRateStore) List(ctx context.Context) ([]models.RateSnapshot, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

type stubLedgerService struct {
	createRecordFn  func(ctx context.Context, req ledger.CreateRecordRequest) (models.Record, error)
	createPaymentFn func(ctx context.Context, req ledger.CreatePaymentRequest) (models.Payment, error)
	deleteRecordFn  func(ctx context.Context, recordID string) (bool, error)
	deletePaymentFn func(ctx context.Context, paymentID string) (bool, error)
}

func (s stubLedgerService) CreateRecord(ctx context.Context, req ledger.CreateRecordRequest) (models.Record, error) {
	if s.createRecordFn == nil {
		return models.Record{}, nil
	}
	return s.createRecordFn(ctx, req)
}

func (s stubLedgerService) CreatePayment(ctx context.Context, req ledger.CreatePaymentRequest) (models.Payment, error) {
	if s.createPaymentFn == nil {
		return models.Payment{}, nil
	}
	return s.createPaymentFn(ctx, req)
}

func (s stubLedgerService) DeleteRecord(ctx context.Context, recordID string) (bool, error) {
	if s.deleteRecordFn == nil {
		return true, nil
	}
	return s.deleteRecordFn(ctx, recordID)
}

func (s stubLedgerService) DeletePayment(ctx context.Context, paymentID string) (bool, error) {
	if s.deletePaymentFn == nil {
		return true, nil
	}
	return s.deletePaymentFn(ctx, paymentID)
}

func newTestHandler(txRunner fakeTxRunner, users UserStore, records RecordStore, payments PaymentStore, rates RateStore, svc LedgerService) *Handler {
	cfg := config.Config{
		AppEnv:         "test",
		Port:           "0",
		JWTSecret:      "secret",
		TokenTTL:       time.Minute,
		AllowedOrigins: "*",
	}
	return New(txRunner, cfg, users, records, payments, rates, svc, websocket.NewHub())
}

func serveWithAuth(t *testing.T, handler http.HandlerFunc, req *http.Request, userID string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.GenerateToken("secret", userID, time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	middleware.Auth("secret")(handler).ServeHTTP(rr, req)
	return rr
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

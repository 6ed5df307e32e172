package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/internal/ledger"
	"fintrack/internal/models"
	"fintrack/internal/store"

	"github.com/shopspring/decimal"
)

func TestListPaymentsDetailed(t *testing.T) {
	payments := stubPaymentStore{
		listDetailedFn: func(ctx context.Context, limit int) ([]store.PaymentDetail, error) {
			return []store.PaymentDetail{
				{
					Payment:    models.Payment{ID: "pay-1", RecordID: "rec-1", Amount: decimal.NewFromInt(1000)},
					RecordName: "Credit Card",
					Username:   "alice_smith",
				},
			}, nil
		},
	}
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubRecordStore{}, payments, stubRateStore{}, stubLedgerService{})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments", nil)
	handler.ListPayments(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body) != 1 {
		t.Fatalf("expected one payment, got %d", len(body))
	}
	if body[0]["record_name"] != "Credit Card" || body[0]["username"] != "alice_smith" {
		t.Fatalf("expected joined names in listing: %#v", body[0])
	}
}

func TestCreatePaymentSuccess(t *testing.T) {
	svc := stubLedgerService{
		createPaymentFn: func(ctx context.Context, req ledger.CreatePaymentRequest) (models.Payment, error) {
			return models.Payment{
				ID:       "pay-1",
				RecordID: req.RecordID,
				Amount:   req.Amount,
				Remains:  decimal.NewFromInt(11000),
			}, nil
		},
	}
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubRecordStore{}, stubPaymentStore{}, stubRateStore{}, svc)

	rr := postJSON(t, handler.CreatePayment, "/payments", ledger.CreatePaymentRequest{
		UserID:      "user-1",
		RecordID:    "rec-1",
		Amount:      decimal.NewFromInt(1000),
		PaymentDate: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var body models.Payment
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Remains.Equal(decimal.NewFromInt(11000)) {
		t.Fatalf("unexpected remains snapshot: %s", body.Remains)
	}
}

func TestCreatePaymentRecordMissing(t *testing.T) {
	svc := stubLedgerService{
		createPaymentFn: func(ctx context.Context, req ledger.CreatePaymentRequest) (models.Payment, error) {
			return models.Payment{}, ledger.NotFoundError{Entity: "record", ID: req.RecordID}
		},
	}
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubRecordStore{}, stubPaymentStore{}, stubRateStore{}, svc)

	rr := postJSON(t, handler.CreatePayment, "/payments", map[string]string{
		"user_id":   "user-1",
		"record_id": "missing",
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if decodeError(t, rr) != "record missing not found" {
		t.Fatalf("unexpected error message: %q", decodeError(t, rr))
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	svc := stubLedgerService{
		createPaymentFn: func(ctx context.Context, req ledger.CreatePaymentRequest) (models.Payment, error) {
			return models.Payment{}, ledger.ValidationError{Fields: []string{"amount"}}
		},
	}
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubRecordStore{}, stubPaymentStore{}, stubRateStore{}, svc)

	rr := postJSON(t, handler.CreatePayment, "/payments", map[string]string{"user_id": "user-1"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestDeletePaymentMissing(t *testing.T) {
	svc := stubLedgerService{
		deletePaymentFn: func(ctx context.Context, paymentID string) (bool, error) {
			return false, nil
		},
	}
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubRecordStore{}, stubPaymentStore{}, stubRateStore{}, svc)

	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/payments/missing", nil), "id", "missing")
	handler.DeletePayment(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/models"
)

func TestListRates(t *testing.T) {
	rates := stubRateStore{
		listFn: func(ctx context.Context) ([]models.RateSnapshot, error) {
			return []models.RateSnapshot{{Pair: "BTCUSDT", Price: "65000.10"}}, nil
		},
	}
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubRecordStore{}, stubPaymentStore{}, rates, stubLedgerService{})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rates", nil)
	handler.ListRates(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body []models.RateSnapshot
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body) != 1 || body[0].Pair != "BTCUSDT" {
		t.Fatalf("unexpected snapshots: %#v", body)
	}
}

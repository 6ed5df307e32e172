package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") != "BTCUSDT" {
			t.Fatalf("unexpected symbol: %s", r.URL.Query().Get("symbol"))
		}
		w.Write([]byte(`{"symbol":"BTCUSDT","price":"64123.10000000"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	price, err := client.Price(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != "64123.10000000" {
		t.Fatalf("unexpected price: %s", price)
	}
}

func TestClientPriceBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Price(context.Background(), "NOPE"); err != ErrRateUnavailable {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

func TestClientPriceBadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Price(context.Background(), "BTCUSDT"); err != ErrRateUnavailable {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

func TestClientPriceEmptyPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"BTCUSDT"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Price(context.Background(), "BTCUSDT"); err != ErrRateUnavailable {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/ledger"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	size, ok := parseSize(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid size value")
		return
	}
	payments, err := h.payments.ListDetailed(r.Context(), size)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load payments")
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")
	payment, err := h.payments.GetByID(r.Context(), paymentID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "payment not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load payment")
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req ledger.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	payment, err := h.ledger.CreatePayment(r.Context(), req)
	if err != nil {
		var invalid ledger.ValidationError
		if errors.As(err, &invalid) {
			respondError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		var notFound ledger.NotFoundError
		if errors.As(err, &notFound) {
			respondError(w, http.StatusNotFound, notFound.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to create payment")
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")
	deleted, err := h.ledger.DeletePayment(r.Context(), paymentID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete payment")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "payment not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

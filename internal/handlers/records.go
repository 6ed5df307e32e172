package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/ledger"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
)

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	size, ok := parseSize(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid size value")
		return
	}
	records, err := h.records.List(r.Context(), size)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load records")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	record, err := h.records.GetByID(r.Context(), recordID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "record not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load record")
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req ledger.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	record, err := h.ledger.CreateRecord(r.Context(), req)
	if err != nil {
		var invalid ledger.ValidationError
		if errors.As(err, &invalid) {
			respondError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			respondError(w, http.StatusConflict, "The record was added earlier")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to create record")
		return
	}
	respondJSON(w, http.StatusCreated, record)
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	deleted, err := h.ledger.DeleteRecord(r.Context(), recordID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete record")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "record not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package handlers

import "net/http"

func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.rates.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load rates")
		return
	}
	respondJSON(w, http.StatusOK, snapshots)
}

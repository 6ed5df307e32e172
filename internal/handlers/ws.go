package handlers

import (
	"net/http"
	"strings"

	"fintrack/internal/auth"
	"fintrack/internal/websocket"
)

// WSRemains upgrades to a websocket that streams record remains updates for
// the authenticated user. Browsers cannot set an Authorization header on a
// websocket handshake, so the token may arrive as a query parameter.
func (h *Handler) WSRemains(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing token")
		return
	}
	claims, err := auth.ParseToken(h.cfg.JWTSecret, token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	websocket.ServeWS(w, r, h.hub, claims.UserID)
}

package handlers

import (
	"context"
	"net/http"
)

// Pinger is the part of the *sql.DB surface the health check needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		failureResponse(w, http.StatusServiceUnavailable, "data store is unavailable")
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true}); err != nil {
		serverErrorResponse(w, err)
	}
}

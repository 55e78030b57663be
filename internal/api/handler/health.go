package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/mcoot/playerbase/internal/api/response"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	storageName string
	pinger      Pinger
}

// NewHealthHandler creates a health handler. pinger may be nil.
func NewHealthHandler(storageName string, pinger Pinger) *HealthHandler {
	return &HealthHandler{storageName: storageName, pinger: pinger}
}

// Get handles GET /health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			response.JSON(w, http.StatusServiceUnavailable, response.Health{Status: "unavailable", Storage: h.storageName})
			return
		}
	}
	response.JSON(w, http.StatusOK, response.Health{Status: "ok", Storage: h.storageName})
}

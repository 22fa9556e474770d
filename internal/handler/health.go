package handler

import (
	"context"
	"net/http"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the health check endpoint.
type HealthHandler struct {
	db               Pinger
	stripeConfigured bool
}

// NewHealthHandler creates a new HealthHandler. db may be nil when users are
// kept in memory.
func NewHealthHandler(db Pinger, stripeConfigured bool) *HealthHandler {
	return &HealthHandler{db: db, stripeConfigured: stripeConfigured}
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]interface{}{
		"status": "ok",
	}

	// Check DB
	switch {
	case h.db == nil:
		status["database"] = "memory"
	case h.db.Ping(ctx) != nil:
		status["database"] = "error"
		status["status"] = "degraded"
	default:
		status["database"] = "ok"
	}

	// A missing key only fails checkout requests; the process stays healthy.
	if h.stripeConfigured {
		status["stripe"] = "configured"
	} else {
		status["stripe"] = "missing"
	}

	code := http.StatusOK
	if status["status"] == "degraded" {
		code = http.StatusServiceUnavailable
	}

	JSON(w, code, status)
}

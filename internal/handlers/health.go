package handlers

import (
	"context"
	"net/http"
	"time"
)

const healthTimeout = 2 * time.Second

type healthStatus struct {
	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
	Database    string `json:"database"`
}

// Health reports service metadata and answers 503 while the database is
// unreachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()
	status := healthStatus{
		Service:     h.cfg.ServiceName,
		Version:     h.cfg.ServiceVersion,
		Environment: h.cfg.AppEnv,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Database:    "up",
	}
	code := http.StatusOK
	if err := h.health.Ping(ctx); err != nil {
		h.log.Warnw("health check: database unreachable", "error", err)
		status.Database = "down"
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, envelope{Success: code == http.StatusOK, Data: status})
}

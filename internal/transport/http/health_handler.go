package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler handles liveness and readiness checks.
type HealthHandler struct {
	service SummaryServiceInterface
	logger  *slog.Logger
	started time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service SummaryServiceInterface, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "health")),
		started: time.Now().UTC(),
	}
}

// HealthCheck handles GET /healthz. The dataset is loaded at startup,
// so a serving process with canonical rows is both live and ready.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	stats := h.service.Stats()

	status := "ok"
	code := http.StatusOK
	if stats.CanonicalRows == 0 {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	render.Status(r, code)
	render.JSON(w, r, map[string]interface{}{
		"status":         status,
		"run_id":         stats.RunID,
		"canonical_rows": stats.CanonicalRows,
		"uptime":         time.Since(h.started).Round(time.Second).String(),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

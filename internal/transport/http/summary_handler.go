package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "salescope/internal/errors"
	"salescope/internal/middleware"
)

// maxTopN bounds the top_n query parameter.
const maxTopN = 100

var validate = validator.New()

// SummaryHandler serves the computed summaries and validation findings.
type SummaryHandler struct {
	service      SummaryServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(service SummaryServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *SummaryHandler {
	return &SummaryHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "summary_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the summary routes
func (h *SummaryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summaries", h.ListSummaries)
	r.Get("/summaries/{name}", h.GetSummary)
	r.Get("/validation", h.GetValidation)
	r.Get("/dataset/stats", h.GetStats)

	return r
}

// ListSummaries handles GET /api/summaries
func (h *SummaryHandler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	names := h.service.SummaryNames()
	render.JSON(w, r, map[string]interface{}{
		"status":    "success",
		"summaries": names,
		"count":     len(names),
	})
}

// GetSummary handles GET /api/summaries/{name}
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	name := chi.URLParam(r, "name")

	topN, err := parseTopN(r.URL.Query().Get("top_n"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "computing summary",
		slog.String("request_id", reqID),
		slog.String("summary", name),
		slog.Int("top_n", topN))

	table, err := h.service.Summary(name, topN)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to compute summary",
			slog.String("request_id", reqID),
			slog.String("summary", name),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   table,
	})
}

// GetValidation handles GET /api/validation
func (h *SummaryHandler) GetValidation(w http.ResponseWriter, r *http.Request) {
	issues := h.service.Validation()

	total := 0
	for _, issue := range issues {
		total += issue.Count
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   issues,
		"total":  total,
	})
}

// GetStats handles GET /api/dataset/stats
func (h *SummaryHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.service.Stats(),
	})
}

// parseTopN validates the optional top_n query parameter. Empty input
// means no override.
func parseTopN(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierrors.ErrValidation("top_n", "top_n must be an integer")
	}
	if err := validate.Var(n, fmt.Sprintf("gte=1,lte=%d", maxTopN)); err != nil {
		return 0, apierrors.ErrValidation("top_n",
			fmt.Sprintf("top_n must be between 1 and %d", maxTopN))
	}
	return n, nil
}

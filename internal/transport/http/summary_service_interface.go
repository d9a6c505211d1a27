package http

import (
	"salescope/internal/analytics"
	"salescope/internal/services"
)

// SummaryServiceInterface defines the interface for summary operations
type SummaryServiceInterface interface {
	SummaryNames() []string
	Summary(name string, topN int) (analytics.RenderedTable, error)
	Validation() []services.IssueSummary
	Stats() services.DatasetStats
}

// Package services wires the analysis pipeline to its consumers. The
// AnalysisService loads and cleans the dataset once at startup, holds
// the canonical table, and computes summaries fresh on every request.
package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"salescope/internal/analytics"
	"salescope/internal/config"
	"salescope/internal/dataset"
	"salescope/internal/errors"
	"salescope/internal/quality"
)

// maxIssueExamples caps the example rows returned per issue kind.
const maxIssueExamples = 5

// AnalysisService owns the canonical table and serves summaries from it.
// The table is immutable after construction, so methods are safe for
// concurrent use without locking.
type AnalysisService struct {
	logger *slog.Logger

	runID    string
	source   string
	loadedAt time.Time
	rawRows  int

	table  *dataset.Table
	issues quality.Issues
}

// DatasetStats describes the loaded dataset.
type DatasetStats struct {
	RunID         string    `json:"run_id"`
	Source        string    `json:"source"`
	LoadedAt      time.Time `json:"loaded_at"`
	RawRows       int       `json:"raw_rows"`
	CanonicalRows int       `json:"canonical_rows"`
}

// IssueSummary is one validation issue kind with counts and examples.
type IssueSummary struct {
	Kind     string           `json:"kind"`
	Count    int              `json:"count"`
	Examples []dataset.Record `json:"examples"`
}

// NewAnalysisService loads, cleans, and validates the configured
// dataset. Load and clean failures are configuration errors and abort
// construction; validation findings are logged and retained, never
// fatal.
func NewAnalysisService(cfg config.DatasetConfig, logger *slog.Logger) (*AnalysisService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "analysis_service"))

	enc, err := dataset.ParseEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	raw, err := dataset.Load(cfg.Path, enc)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	table, err := dataset.Clean(raw)
	if err != nil {
		return nil, fmt.Errorf("clean dataset: %w", err)
	}

	svc := &AnalysisService{
		logger:   logger,
		runID:    uuid.New().String(),
		source:   cfg.Path,
		loadedAt: time.Now().UTC(),
		rawRows:  len(raw.Rows),
		table:    table,
		issues:   quality.Validate(table),
	}
	quality.Report(logger, table, svc.issues)

	logger.Info("dataset ready",
		slog.String("run_id", svc.runID),
		slog.String("source", cfg.Path),
		slog.Int("raw_rows", svc.rawRows),
		slog.Int("canonical_rows", table.Len()),
		slog.Int("validation_findings", svc.issues.Total()))

	return svc, nil
}

// Table exposes the canonical table to trusted consumers (exporters).
// Callers must treat it as read-only.
func (s *AnalysisService) Table() *dataset.Table {
	return s.table
}

// Report computes the full summary set from the canonical table.
func (s *AnalysisService) Report() *analytics.Report {
	return analytics.BuildReport(s.table)
}

// SummaryNames lists the summaries this service can compute.
func (s *AnalysisService) SummaryNames() []string {
	return analytics.SummaryNames
}

// Summary computes one named summary. topN overrides the default
// cutoff for the product rankings and is ignored by every other
// summary; zero keeps the default.
func (s *AnalysisService) Summary(name string, topN int) (analytics.RenderedTable, error) {
	if topN > 0 {
		switch name {
		case analytics.SummaryTopSalesProducts:
			return analytics.RenderTopSalesProducts(analytics.TopSalesProductsN(s.table, topN)), nil
		case analytics.SummaryTopProfitProducts:
			return analytics.RenderTopProfitProducts(analytics.TopProfitProductsN(s.table, topN)), nil
		}
	}

	table, ok := s.Report().Table(name)
	if !ok {
		return analytics.RenderedTable{}, errors.SummaryNotFoundError(name)
	}
	return table, nil
}

// Validation returns the issue sets in reporting order, with up to
// five example rows each.
func (s *AnalysisService) Validation() []IssueSummary {
	out := make([]IssueSummary, 0, len(quality.Kinds))
	for _, kind := range quality.Kinds {
		rows := s.issues[kind]
		examples := make([]dataset.Record, 0, maxIssueExamples)
		for i, idx := range rows {
			if i >= maxIssueExamples {
				break
			}
			examples = append(examples, s.table.Records[idx])
		}
		out = append(out, IssueSummary{
			Kind:     string(kind),
			Count:    len(rows),
			Examples: examples,
		})
	}
	return out
}

// Stats describes the loaded dataset.
func (s *AnalysisService) Stats() DatasetStats {
	return DatasetStats{
		RunID:         s.runID,
		Source:        s.source,
		LoadedAt:      s.loadedAt,
		RawRows:       s.rawRows,
		CanonicalRows: s.table.Len(),
	}
}

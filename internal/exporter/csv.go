package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"salescope/internal/analytics"
)

// CSVWriter writes summary tables as CSV files under a reports directory.
type CSVWriter struct {
	dir    string
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer rooted at dir.
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{dir: dir, logger: logger}
}

// WriteSummary writes one rendered summary to <dir>/<name>.csv and
// returns the file path. A UTF-8 BOM is prepended so Excel opens the
// file correctly.
func (w *CSVWriter) WriteSummary(table analytics.RenderedTable) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join(w.dir, table.Name+".csv")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return "", fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(table.Headers); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}
	for i, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	w.logger.Debug("summary written",
		slog.String("summary", table.Name),
		slog.String("path", path),
		slog.Int("rows", len(table.Rows)))

	return path, nil
}

// WriteAll writes every rendered summary, stopping at the first failure.
func (w *CSVWriter) WriteAll(tables []analytics.RenderedTable) error {
	for _, table := range tables {
		if _, err := w.WriteSummary(table); err != nil {
			return fmt.Errorf("summary %s: %w", table.Name, err)
		}
	}
	w.logger.Info("CSV reports written",
		slog.String("dir", w.dir),
		slog.Int("summaries", len(tables)))
	return nil
}

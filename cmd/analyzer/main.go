// Command analyzer runs the full analysis pipeline once: load the
// sales dataset, clean and validate it, compute every summary, and
// write the results as CSV files and an Excel workbook.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"salescope/internal/config"
	"salescope/internal/exporter"
	"salescope/internal/infrastructure"
	"salescope/internal/services"
)

func main() {
	input := flag.String("input", "", "path to the sales CSV (overrides config)")
	encoding := flag.String("encoding", "", "input encoding: latin1 | windows1252 | utf8 (overrides config)")
	out := flag.String("out", "", "output directory for reports (overrides config)")
	format := flag.String("format", "both", "output format: csv | xlsx | both")
	summary := flag.String("summary", "", "print a single summary to stdout instead of exporting")
	topN := flag.Int("top-n", 0, "override the cutoff for product rankings")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if *input != "" {
		cfg.Dataset.Path = *input
	}
	if *encoding != "" {
		cfg.Dataset.Encoding = *encoding
	}
	if *out != "" {
		cfg.Reports.Dir = *out
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if err := run(cfg, logger, *format, *summary, *topN); err != nil {
		logger.Error("Analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, format, summary string, topN int) error {
	svc, err := services.NewAnalysisService(cfg.Dataset, logger)
	if err != nil {
		return err
	}

	if summary != "" {
		return printSummary(svc, summary, topN)
	}

	switch format {
	case "csv", "xlsx", "both":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if err := os.MkdirAll(cfg.Reports.Dir, 0755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	report := svc.Report()

	if format == "csv" || format == "both" {
		writer := exporter.NewCSVWriter(cfg.Reports.Dir, logger)
		if err := writer.WriteAll(report.Tables()); err != nil {
			return fmt.Errorf("write csv reports: %w", err)
		}
	}

	if format == "xlsx" || format == "both" {
		path := filepath.Join(cfg.Reports.Dir, cfg.Reports.Workbook)
		writer := exporter.NewExcelWriter(logger)
		if err := writer.Write(path, svc.Table(), report); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
	}

	logger.Info("Analysis complete",
		slog.String("reports_dir", cfg.Reports.Dir),
		slog.String("format", format))
	return nil
}

// printSummary renders one summary as aligned text on stdout.
func printSummary(svc *services.AnalysisService, name string, topN int) error {
	table, err := svc.Summary(name, topN)
	if err != nil {
		return err
	}

	widths := make([]int, len(table.Headers))
	for i, h := range table.Headers {
		widths[i] = len(h)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	fmt.Println(table.Title)
	printRow(table.Headers, widths)
	for _, row := range table.Rows {
		printRow(row, widths)
	}
	return nil
}

func printRow(cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Print("  ")
		}
		fmt.Printf("%-*s", widths[i], cell)
	}
	fmt.Println()
}

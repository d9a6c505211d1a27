package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"salescope/internal/analytics"
	"salescope/internal/dataset"
)

// Chart sheet and data sheet names inside the workbook.
const (
	sheetScatterData = "discount_profit_data"
	sheetScatter     = "chart_discount_vs_profit"
	sheetTrendData   = "monthly_trend_data"
	sheetTrend       = "chart_monthly_trend"
	sheetTopData     = "top_products_data"
	sheetTop         = "chart_top_products"
)

// scatterSampleLimit caps the scatter series so workbooks stay small on
// large datasets.
const scatterSampleLimit = 2000

// ExcelWriter builds the analysis workbook: one sheet per summary plus
// chart sheets fed by numeric data sheets. Charts reference unformatted
// numbers; the summary sheets carry the formatted display values.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates an Excel workbook writer.
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// Write builds the workbook at path from the canonical table and its
// computed report.
func (w *ExcelWriter) Write(path string, t *dataset.Table, report *analytics.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create workbook directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for _, table := range report.Tables() {
		if err := w.addSummarySheet(f, table); err != nil {
			return fmt.Errorf("summary sheet %s: %w", table.Name, err)
		}
	}

	if err := w.addScatterChart(f, t); err != nil {
		return fmt.Errorf("scatter chart: %w", err)
	}
	if err := w.addTrendChart(f, report.Trend); err != nil {
		return fmt.Errorf("trend chart: %w", err)
	}
	if err := w.addTopProductsChart(f, report.TopSales); err != nil {
		return fmt.Errorf("top products chart: %w", err)
	}

	// Drop the default sheet and land on the first summary.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(analytics.SummarySalesPerformance); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("workbook written",
		slog.String("path", path),
		slog.Int("summaries", len(analytics.SummaryNames)))
	return nil
}

// addSummarySheet writes one rendered summary as a sheet.
func (w *ExcelWriter) addSummarySheet(f *excelize.File, table analytics.RenderedTable) error {
	if _, err := f.NewSheet(table.Name); err != nil {
		return err
	}

	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(table.Name, "A1", &header); err != nil {
		return err
	}

	for i, row := range table.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(table.Name, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}

// addScatterChart plots Discount against Profit from the canonical table.
func (w *ExcelWriter) addScatterChart(f *excelize.File, t *dataset.Table) error {
	if _, err := f.NewSheet(sheetScatterData); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheetScatterData, "A1", &[]interface{}{"Discount", "Profit"}); err != nil {
		return err
	}
	n := 0
	for _, rec := range t.Records {
		if n >= scatterSampleLimit {
			break
		}
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetScatterData, cell, &[]interface{}{rec.Discount, rec.Profit}); err != nil {
			return err
		}
		n++
	}

	if _, err := f.NewSheet(sheetScatter); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	return f.AddChart(sheetScatter, "A1", &excelize.Chart{
		Type: excelize.Scatter,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", sheetScatterData),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetScatterData, n+1),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheetScatterData, n+1),
		}},
		Title:     []excelize.RichTextRun{{Text: "Discount vs. Profit"}},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: 640, Height: 480},
	})
}

// addTrendChart plots the monthly sales trend as a line chart.
func (w *ExcelWriter) addTrendChart(f *excelize.File, trend []analytics.PeriodSales) error {
	if _, err := f.NewSheet(sheetTrendData); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheetTrendData, "A1", &[]interface{}{"Month", "Total Sales"}); err != nil {
		return err
	}
	for i, p := range trend {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetTrendData, cell, &[]interface{}{p.Period, p.TotalSales}); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetTrend); err != nil {
		return err
	}
	if len(trend) == 0 {
		return nil
	}
	return f.AddChart(sheetTrend, "A1", &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", sheetTrendData),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetTrendData, len(trend)+1),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheetTrendData, len(trend)+1),
			Marker:     excelize.ChartMarker{Symbol: "circle"},
		}},
		Title:     []excelize.RichTextRun{{Text: "Monthly Sales Trend"}},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: 960, Height: 480},
	})
}

// addTopProductsChart plots the top products by sales as a bar chart.
func (w *ExcelWriter) addTopProductsChart(f *excelize.File, top []analytics.Group) error {
	if _, err := f.NewSheet(sheetTopData); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheetTopData, "A1", &[]interface{}{"Product Name", "Total Sales"}); err != nil {
		return err
	}
	for i, g := range top {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetTopData, cell, &[]interface{}{g.Key, g.Sales}); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetTop); err != nil {
		return err
	}
	if len(top) == 0 {
		return nil
	}
	return f.AddChart(sheetTop, "A1", &excelize.Chart{
		Type: excelize.Bar,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", sheetTopData),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetTopData, len(top)+1),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheetTopData, len(top)+1),
		}},
		Title:     []excelize.RichTextRun{{Text: fmt.Sprintf("Top %d Products by Sales", len(top))}},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: 800, Height: 480},
	})
}

package exporter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salescope/internal/analytics"
	"salescope/internal/dataset"
)

func testDataset() *dataset.Table {
	base := dataset.Record{
		OrderID:     "CA-1",
		OrderDate:   time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC),
		ShipDate:    time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC),
		Segment:     "Consumer",
		State:       "Texas",
		Region:      "Central",
		Category:    "Furniture",
		SubCategory: "Chairs",
		ProductName: "Desk Chair",
		Sales:       100,
		Quantity:    2,
		Discount:    0.1,
		Profit:      20,
	}
	other := base
	other.OrderID = "CA-2"
	other.OrderDate = time.Date(2023, 2, 5, 0, 0, 0, 0, time.UTC)
	other.ShipDate = time.Date(2023, 2, 7, 0, 0, 0, 0, time.UTC)
	other.ProductName = "Smartphone"
	other.Category = "Technology"
	other.Sales = 900
	other.Discount = 0.3
	other.Profit = -50

	return &dataset.Table{Records: []dataset.Record{base, other}}
}

func TestExcelWriter_Write(t *testing.T) {
	table := testDataset()
	report := analytics.BuildReport(table)
	path := filepath.Join(t.TempDir(), "sales_analysis.xlsx")

	writer := NewExcelWriter(nil)
	require.NoError(t, writer.Write(path, table, report))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	for _, name := range analytics.SummaryNames {
		assert.Contains(t, sheets, name)
	}
	for _, name := range []string{sheetScatter, sheetTrend, sheetTop} {
		assert.Contains(t, sheets, name)
	}
	assert.NotContains(t, sheets, "Sheet1")

	// Summary sheet carries formatted display values.
	total, err := f.GetCellValue(analytics.SummarySalesPerformance, "B2")
	require.NoError(t, err)
	assert.Equal(t, "$1,000.00", total)

	// Chart data sheets carry unformatted numbers.
	sales, err := f.GetCellValue(sheetTopData, "B2")
	require.NoError(t, err)
	assert.Equal(t, "900", sales)
}

func TestExcelWriter_EmptyDataset(t *testing.T) {
	table := &dataset.Table{}
	report := analytics.BuildReport(table)
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, NewExcelWriter(nil).Write(path, table, report))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), analytics.SummarySalesPerformance)
}

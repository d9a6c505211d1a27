package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRow builds a valid raw row in schema order, with overrides by column name.
func testRow(overrides map[string]string) []string {
	base := map[string]string{
		ColOrderID:      "CA-1001",
		ColOrderDate:    "1/5/2023",
		ColShipDate:     "1/9/2023",
		ColCustomerName: "Alice",
		ColSegment:      "Consumer",
		ColCountry:      "United States",
		ColCity:         "Austin",
		ColState:        "Texas",
		ColPostalCode:   "78701",
		ColRegion:       "Central",
		ColCategory:     "Furniture",
		ColSubCategory:  "Chairs",
		ColProductName:  "Desk Chair",
		ColSales:        "261.96",
		ColQuantity:     "2",
		ColDiscount:     "0",
		ColProfit:       "41.91",
	}
	for k, v := range overrides {
		base[k] = v
	}
	row := make([]string, len(requiredColumns))
	for i, col := range requiredColumns {
		row[i] = base[col]
	}
	return row
}

func rawTableOf(t *testing.T, rows ...[]string) *RawTable {
	t.Helper()
	headers := make([]string, len(requiredColumns))
	copy(headers, requiredColumns)
	raw, err := NewRawTable(headers, rows)
	require.NoError(t, err)
	return raw
}

func TestClean_TypesAndTrimming(t *testing.T) {
	raw := rawTableOf(t, testRow(map[string]string{
		ColCustomerName: "  Alice  ",
		ColState:        "Texas ",
		ColProductName:  " Desk Chair",
	}))

	table, err := Clean(raw)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	rec := table.Records[0]
	assert.Equal(t, "Alice", rec.CustomerName)
	assert.Equal(t, "Texas", rec.State)
	assert.Equal(t, "Desk Chair", rec.ProductName)
	assert.Equal(t, time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), rec.OrderDate)
	assert.Equal(t, time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC), rec.ShipDate)
	assert.Equal(t, 261.96, rec.Sales)
	assert.Equal(t, 2, rec.Quantity)
	assert.Equal(t, "78701", rec.PostalCode)
	assert.Equal(t, 4, rec.ShippingDays())
}

func TestClean_RemovesExactDuplicates(t *testing.T) {
	row := testRow(nil)
	dup := make([]string, len(row))
	copy(dup, row)
	nearDup := testRow(map[string]string{ColQuantity: "3"})

	table, err := Clean(rawTableOf(t, row, dup, nearDup))
	require.NoError(t, err)

	// Exact duplicate removed, near-duplicate retained.
	assert.Equal(t, 2, table.Len())
}

func TestClean_DropsUnparseableOrderDate(t *testing.T) {
	table, err := Clean(rawTableOf(t,
		testRow(nil),
		testRow(map[string]string{ColOrderID: "CA-1002", ColOrderDate: "not-a-date"}),
	))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "CA-1001", table.Records[0].OrderID)
}

func TestClean_DropsMissingShipDateAndSales(t *testing.T) {
	table, err := Clean(rawTableOf(t,
		testRow(map[string]string{ColOrderID: "CA-1002", ColShipDate: ""}),
		testRow(map[string]string{ColOrderID: "CA-1003", ColSales: ""}),
		testRow(map[string]string{ColOrderID: "CA-1004", ColSales: "abc"}),
		testRow(nil),
	))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "CA-1001", table.Records[0].OrderID)
}

func TestClean_RetainsInvalidButParseableRows(t *testing.T) {
	// Negative sales is a data-quality finding, not a drop criterion.
	table, err := Clean(rawTableOf(t, testRow(map[string]string{
		ColSales:    "-5",
		ColQuantity: "3",
		ColDiscount: "0.1",
		ColProfit:   "100",
	})))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, -5.0, table.Records[0].Sales)
}

func TestClean_AcceptsISODates(t *testing.T) {
	table, err := Clean(rawTableOf(t, testRow(map[string]string{
		ColOrderDate: "2023-01-05",
		ColShipDate:  "2023-01-09",
	})))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, 2023, table.Records[0].OrderDate.Year())
}

func TestClean_Idempotent(t *testing.T) {
	table, err := Clean(rawTableOf(t,
		testRow(nil),
		testRow(map[string]string{ColOrderID: "CA-1002", ColOrderDate: "garbage"}),
		testRow(nil), // duplicate of the first
	))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	// Convert the canonical table back to the raw shape and re-clean:
	// row count must not change.
	rows := make([][]string, 0, table.Len())
	for _, rec := range table.Records {
		rows = append(rows, testRow(map[string]string{
			ColOrderID:      rec.OrderID,
			ColOrderDate:    rec.OrderDate.Format("1/2/2006"),
			ColShipDate:     rec.ShipDate.Format("1/2/2006"),
			ColCustomerName: rec.CustomerName,
		}))
	}
	again, err := Clean(rawTableOf(t, rows...))
	require.NoError(t, err)
	assert.Equal(t, table.Len(), again.Len())
}

func TestClean_PreservesInsertionOrder(t *testing.T) {
	table, err := Clean(rawTableOf(t,
		testRow(map[string]string{ColOrderID: "CA-3"}),
		testRow(map[string]string{ColOrderID: "CA-1"}),
		testRow(map[string]string{ColOrderID: "CA-2"}),
	))
	require.NoError(t, err)

	ids := []string{}
	for _, rec := range table.Records {
		ids = append(ids, rec.OrderID)
	}
	assert.Equal(t, []string{"CA-3", "CA-1", "CA-2"}, ids)
}

func TestClean_LenientNumericFields(t *testing.T) {
	table, err := Clean(rawTableOf(t, testRow(map[string]string{
		ColQuantity: "3.0",
		ColDiscount: "",
		ColProfit:   "junk",
	})))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	rec := table.Records[0]
	assert.Equal(t, 3, rec.Quantity)
	assert.Equal(t, 0.0, rec.Discount)
	assert.Equal(t, 0.0, rec.Profit)
}

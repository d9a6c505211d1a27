package dataset

import "time"

// Column names as they appear in the source header row.
const (
	ColOrderID      = "Order ID"
	ColOrderDate    = "Order Date"
	ColShipDate     = "Ship Date"
	ColCustomerName = "Customer Name"
	ColSegment      = "Segment"
	ColCountry      = "Country"
	ColCity         = "City"
	ColState        = "State"
	ColPostalCode   = "Postal Code"
	ColRegion       = "Region"
	ColCategory     = "Category"
	ColSubCategory  = "Sub-Category"
	ColProductName  = "Product Name"
	ColSales        = "Sales"
	ColQuantity     = "Quantity"
	ColDiscount     = "Discount"
	ColProfit       = "Profit"
)

// requiredColumns is the fixed schema every source file must carry.
var requiredColumns = []string{
	ColOrderID, ColOrderDate, ColShipDate, ColCustomerName, ColSegment,
	ColCountry, ColCity, ColState, ColPostalCode, ColRegion,
	ColCategory, ColSubCategory, ColProductName, ColSales, ColQuantity,
	ColDiscount, ColProfit,
}

// textColumns are the fields whose values get whitespace-trimmed by Clean.
var textColumns = []string{
	ColCustomerName, ColSegment, ColCountry, ColCity, ColState,
	ColRegion, ColCategory, ColSubCategory, ColProductName,
}

// RawTable holds rows exactly as read from the source, all fields as text.
// No invariants are guaranteed beyond the header matching requiredColumns.
type RawTable struct {
	Headers []string
	Rows    [][]string

	index map[string]int
}

// Record is one canonical sales record. Order and ship dates are valid
// calendar dates, Sales is always present, and text fields are trimmed.
// PostalCode stays text to preserve leading zeros.
type Record struct {
	OrderID      string    `json:"order_id"`
	OrderDate    time.Time `json:"order_date"`
	ShipDate     time.Time `json:"ship_date"`
	CustomerName string    `json:"customer_name"`
	Segment      string    `json:"segment"`
	Country      string    `json:"country"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	Region       string    `json:"region"`
	Category     string    `json:"category"`
	SubCategory  string    `json:"sub_category"`
	ProductName  string    `json:"product_name"`
	Sales        float64   `json:"sales"`
	Quantity     int       `json:"quantity"`
	Discount     float64   `json:"discount"`
	Profit       float64   `json:"profit"`
}

// ShippingDays returns the whole days between order and ship dates.
func (r Record) ShippingDays() int {
	return int(r.ShipDate.Sub(r.OrderDate).Hours() / 24)
}

// Table is the canonical sales dataset. Row order is source insertion
// order minus dropped and duplicate rows.
type Table struct {
	Records []Record
}

// Len returns the number of canonical records.
func (t *Table) Len() int {
	return len(t.Records)
}

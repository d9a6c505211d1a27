package dataset

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the calendar date formats accepted for order and ship
// dates. The source dataset uses month/day/year.
var dateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	"2-Jan-2006",
}

// NewRawTable builds a raw table from headers and rows, verifying the
// fixed column schema. Intended for tests and in-memory construction;
// Load performs the same verification for files.
func NewRawTable(headers []string, rows [][]string) (*RawTable, error) {
	table := &RawTable{Headers: headers, Rows: rows, index: make(map[string]int, len(headers))}
	for i, h := range headers {
		table.index[h] = i
	}
	for _, col := range requiredColumns {
		if _, ok := table.index[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}
	return table, nil
}

// Clean normalizes a raw table into the canonical table. Steps run in
// this fixed order:
//
//  1. Remove exact-duplicate rows.
//  2. Parse Order Date and Ship Date; unparseable values become nulls.
//  3. Keep Postal Code as text.
//  4. Trim whitespace on the designated text fields.
//  5. Drop rows where Order Date, Ship Date, or Sales is null.
//
// The input is not modified. Rows that survive keep their source order.
func Clean(raw *RawTable) (*Table, error) {
	if raw.index == nil {
		rebuilt, err := NewRawTable(raw.Headers, raw.Rows)
		if err != nil {
			return nil, err
		}
		raw = rebuilt
	}

	table := &Table{}
	seen := make(map[string]struct{}, len(raw.Rows))
	var duplicates, dropped int

	for _, row := range raw.Rows {
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}

		orderDate, orderOK := parseDate(raw.column(row, ColOrderDate))
		shipDate, shipOK := parseDate(raw.column(row, ColShipDate))
		sales, salesOK := parseFloat(raw.column(row, ColSales))
		if !orderOK || !shipOK || !salesOK {
			dropped++
			continue
		}

		rec := Record{
			OrderID:      strings.TrimSpace(raw.column(row, ColOrderID)),
			OrderDate:    orderDate,
			ShipDate:     shipDate,
			CustomerName: strings.TrimSpace(raw.column(row, ColCustomerName)),
			Segment:      strings.TrimSpace(raw.column(row, ColSegment)),
			Country:      strings.TrimSpace(raw.column(row, ColCountry)),
			City:         strings.TrimSpace(raw.column(row, ColCity)),
			State:        strings.TrimSpace(raw.column(row, ColState)),
			PostalCode:   strings.TrimSpace(raw.column(row, ColPostalCode)),
			Region:       strings.TrimSpace(raw.column(row, ColRegion)),
			Category:     strings.TrimSpace(raw.column(row, ColCategory)),
			SubCategory:  strings.TrimSpace(raw.column(row, ColSubCategory)),
			ProductName:  strings.TrimSpace(raw.column(row, ColProductName)),
			Sales:        sales,
			Quantity:     parseIntLenient(raw.column(row, ColQuantity)),
			Discount:     parseFloatLenient(raw.column(row, ColDiscount)),
			Profit:       parseFloatLenient(raw.column(row, ColProfit)),
		}
		table.Records = append(table.Records, rec)
	}

	slog.Debug("dataset cleaned",
		slog.Int("input_rows", len(raw.Rows)),
		slog.Int("duplicates_removed", duplicates),
		slog.Int("rows_dropped", dropped),
		slog.Int("canonical_rows", table.Len()))

	return table, nil
}

// parseDate tries each accepted layout, reporting failure instead of
// erroring so the caller can drop the row.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// parseFloat parses a required numeric field; missing or malformed
// values are nulls.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseFloatLenient parses an optional numeric field, zero on failure.
// Quantity, Discount, and Profit are never a drop criterion; bad values
// surface later as validation findings, not cleaning errors.
func parseFloatLenient(s string) float64 {
	v, _ := parseFloat(s)
	return v
}

// parseIntLenient parses an optional integer field, zero on failure.
func parseIntLenient(s string) int {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	// Some exports carry quantities as decimals ("3.0").
	if f, ok := parseFloat(s); ok {
		return int(f)
	}
	return 0
}

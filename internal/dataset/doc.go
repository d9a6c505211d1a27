// Package dataset loads the raw sales CSV and normalizes it into the
// canonical table used by all downstream analysis.
//
// The package has two stages:
//
//  1. Load: reads the delimited file under an explicit character
//     encoding and maps columns by the header row. Missing columns are
//     configuration errors and fail the load.
//  2. Clean: deduplicates exact rows, parses dates, converts postal
//     codes to text, trims text fields, and drops rows missing a key
//     date or the Sales amount.
//
// Data flow:
//
//	CSV file → Load → RawTable → Clean → Table (canonical)
//
// The canonical Table is read-only for every consumer; no analysis
// function mutates it.
package dataset

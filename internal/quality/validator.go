// Package quality scans the canonical table for semantically suspect
// rows. Findings are reported, never auto-corrected: a flagged row
// stays in the dataset.
package quality

import (
	"salescope/internal/dataset"
)

// Kind names one class of data-quality issue.
type Kind string

const (
	// NegativeSales flags rows with Sales < 0.
	NegativeSales Kind = "negative_sales"
	// InvalidQuantity flags rows with Quantity <= 0.
	InvalidQuantity Kind = "invalid_quantity"
	// InvalidDiscount flags rows with Discount outside [0, 1].
	InvalidDiscount Kind = "invalid_discount"
	// ExtremeProfit flags rows with Profit outside [-10000, 10000].
	ExtremeProfit Kind = "extreme_profit"
)

// Kinds lists every issue kind in reporting order.
var Kinds = []Kind{NegativeSales, InvalidQuantity, InvalidDiscount, ExtremeProfit}

// Issues maps each issue kind to the indices of the canonical rows
// exhibiting it. The subsets are independent and may overlap; a row can
// appear under several kinds.
type Issues map[Kind][]int

// Count returns the number of rows flagged under a kind.
func (i Issues) Count(kind Kind) int {
	return len(i[kind])
}

// Total returns the number of flags across all kinds (rows flagged
// under multiple kinds count once per kind).
func (i Issues) Total() int {
	n := 0
	for _, rows := range i {
		n += len(rows)
	}
	return n
}

// checks holds the row predicate for each issue kind.
var checks = map[Kind]func(dataset.Record) bool{
	NegativeSales:   func(r dataset.Record) bool { return r.Sales < 0 },
	InvalidQuantity: func(r dataset.Record) bool { return r.Quantity <= 0 },
	InvalidDiscount: func(r dataset.Record) bool { return r.Discount < 0 || r.Discount > 1 },
	ExtremeProfit:   func(r dataset.Record) bool { return r.Profit < -10000 || r.Profit > 10000 },
}

// Validate scans the canonical table and returns the issue sets.
// The table is not modified. Every kind is present in the result, with
// an empty slice when nothing was flagged.
func Validate(t *dataset.Table) Issues {
	issues := make(Issues, len(Kinds))
	for _, kind := range Kinds {
		issues[kind] = []int{}
	}
	for idx, rec := range t.Records {
		for _, kind := range Kinds {
			if checks[kind](rec) {
				issues[kind] = append(issues[kind], idx)
			}
		}
	}
	return issues
}

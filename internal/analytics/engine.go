package analytics

import (
	"math"
	"sort"

	"salescope/internal/dataset"
)

// Group is one aggregated bucket of canonical rows.
type Group struct {
	Key      string  `json:"key"`
	SubKey   string  `json:"sub_key,omitempty"`
	Rank     int     `json:"rank"`
	Sales    float64 `json:"sales"`
	Profit   float64 `json:"profit"`
	Quantity int     `json:"quantity"`
	Discount float64 `json:"discount_sum"`
	Count    int     `json:"count"`
}

// MeanDiscount returns the average discount across the group's rows,
// NaN for an empty group.
func (g Group) MeanDiscount() float64 {
	if g.Count == 0 {
		return math.NaN()
	}
	return g.Discount / float64(g.Count)
}

// Spec parameterizes the generic group-aggregate-sort-rank routine.
type Spec struct {
	// Key extracts the grouping key from a record. Required.
	Key func(dataset.Record) string
	// SubKey extracts an optional secondary grouping key.
	SubKey func(dataset.Record) string
	// Filter limits which rows participate. Nil admits every row.
	Filter func(dataset.Record) bool
	// Less orders the resulting groups. Sorting is stable, so ties
	// retain first-seen grouping order. Nil keeps first-seen order.
	Less func(a, b Group) bool
	// TopN truncates the sorted result. Zero means unlimited.
	TopN int
}

// Aggregate runs the spec against the table and returns ranked groups.
// The table is read-only; every call computes a fresh result.
func Aggregate(t *dataset.Table, spec Spec) []Group {
	byKey := make(map[string]*Group)
	var order []string

	for _, rec := range t.Records {
		if spec.Filter != nil && !spec.Filter(rec) {
			continue
		}

		key := spec.Key(rec)
		subKey := ""
		if spec.SubKey != nil {
			subKey = spec.SubKey(rec)
		}
		mapKey := key + "\x1f" + subKey

		g, ok := byKey[mapKey]
		if !ok {
			g = &Group{Key: key, SubKey: subKey}
			byKey[mapKey] = g
			order = append(order, mapKey)
		}
		g.Sales += rec.Sales
		g.Profit += rec.Profit
		g.Quantity += rec.Quantity
		g.Discount += rec.Discount
		g.Count++
	}

	groups := make([]Group, 0, len(order))
	for _, mapKey := range order {
		groups = append(groups, *byKey[mapKey])
	}

	if spec.Less != nil {
		sort.SliceStable(groups, func(i, j int) bool {
			return spec.Less(groups[i], groups[j])
		})
	}
	if spec.TopN > 0 && len(groups) > spec.TopN {
		groups = groups[:spec.TopN]
	}
	for i := range groups {
		groups[i].Rank = i + 1
	}
	return groups
}

// Comparators for the named summaries.

func bySalesDesc(a, b Group) bool  { return a.Sales > b.Sales }
func byProfitDesc(a, b Group) bool { return a.Profit > b.Profit }
func byKeyAsc(a, b Group) bool     { return a.Key < b.Key }

// modeOf returns the most frequent value produced by key across the
// table. Ties resolve to the lexicographically smallest value, so the
// result is deterministic. Empty table yields "".
func modeOf(t *dataset.Table, key func(dataset.Record) string) string {
	counts := make(map[string]int)
	for _, rec := range t.Records {
		counts[key(rec)]++
	}

	best := ""
	bestCount := 0
	for v, n := range counts {
		if n > bestCount || (n == bestCount && v < best) {
			best = v
			bestCount = n
		}
	}
	return best
}

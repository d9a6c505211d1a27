// Package analytics derives descriptive summaries from the canonical
// sales table.
//
// # Architecture
//
// All grouped summaries run through one generic routine:
//
//	group by key → accumulate metrics → stable sort → top-N cut → rank
//
// Each named summary (top products, profit per category, segment
// analysis, ...) is a thin configuration of that routine rather than a
// hand-written aggregation loop.
//
// Aggregation is numeric end to end. Display formatting (currency,
// percentages) lives behind the rendering boundary in render.go and
// format.go; nothing in the numeric core produces or parses formatted
// strings.
//
// # Degenerate inputs
//
// Sums over an empty table are 0. Means over an empty table are NaN and
// render as "N/A". The mode of an empty table is the empty string.
//
// Every summary reads the table it is given and never mutates it;
// derived keys such as the order year or month are computed on the fly.
package analytics

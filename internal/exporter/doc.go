// Package exporter renders summary tables to files: one CSV per
// summary, and a single Excel workbook carrying every summary sheet
// plus the charts (discount-vs-profit scatter, monthly sales trend,
// top products bar).
//
// The exporter is a pure consumer: it receives computed summaries and
// the canonical table read-only, and never feeds anything back into
// the analysis pipeline.
package exporter

package quality

import (
	"log/slog"

	"salescope/internal/dataset"
)

// maxExamples caps the example rows logged per issue kind.
const maxExamples = 5

// Report logs the count and up to five example rows for each issue
// kind. Presentation only; the issue sets are returned unchanged by
// Validate regardless of whether anything gets reported.
func Report(logger *slog.Logger, t *dataset.Table, issues Issues) {
	for _, kind := range Kinds {
		rows := issues[kind]
		logger.Info("validation issue",
			slog.String("kind", string(kind)),
			slog.Int("rows", len(rows)))

		for i, idx := range rows {
			if i >= maxExamples {
				break
			}
			rec := t.Records[idx]
			logger.Info("validation example",
				slog.String("kind", string(kind)),
				slog.Int("row", idx),
				slog.String("order_id", rec.OrderID),
				slog.Float64("sales", rec.Sales),
				slog.Int("quantity", rec.Quantity),
				slog.Float64("discount", rec.Discount),
				slog.Float64("profit", rec.Profit))
		}
	}
}

package analytics

import (
	"strconv"
)

// Summary names used by the CLI, the exporter, and the HTTP API.
const (
	SummarySalesPerformance    = "sales_performance"
	SummaryTopSalesProducts    = "top_sales_products"
	SummaryTopProfitProducts   = "top_profit_products"
	SummaryProfitPerCategory   = "profit_per_category"
	SummaryProfitPerSubCat     = "profit_per_subcategory"
	SummarySalesOverYears      = "sales_over_years"
	SummarySalesOverMonths     = "sales_over_months"
	SummaryGeographicInsights  = "geographic_insights"
	SummarySegmentAnalysis     = "segment_analysis"
	SummaryOrderToShip         = "order_to_ship_summary"
	SummaryDiscountImpact      = "discount_impact"
	SummaryCategoryDiscounts   = "category_discount_summary"
	SummaryDiscountProfitCorr  = "discount_profit_correlation"
	SummaryMonthlySalesTrend   = "monthly_sales_trend"
)

// SummaryNames lists every summary in presentation order.
var SummaryNames = []string{
	SummarySalesPerformance,
	SummaryTopSalesProducts,
	SummaryTopProfitProducts,
	SummaryProfitPerCategory,
	SummaryProfitPerSubCat,
	SummarySalesOverYears,
	SummarySalesOverMonths,
	SummaryGeographicInsights,
	SummarySegmentAnalysis,
	SummaryOrderToShip,
	SummaryDiscountImpact,
	SummaryCategoryDiscounts,
	SummaryDiscountProfitCorr,
	SummaryMonthlySalesTrend,
}

// RenderedTable is the display form of one summary: ordered rows of
// formatted strings, ready for CSV, spreadsheet, or JSON output.
type RenderedTable struct {
	Name    string     `json:"name"`
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Table renders the named summary, reporting false for unknown names.
func (r *Report) Table(name string) (RenderedTable, bool) {
	switch name {
	case SummarySalesPerformance:
		return RenderPerformance(r.Performance), true
	case SummaryTopSalesProducts:
		return RenderTopSalesProducts(r.TopSales), true
	case SummaryTopProfitProducts:
		return RenderTopProfitProducts(r.TopProfit), true
	case SummaryProfitPerCategory:
		return renderProfitRanking(SummaryProfitPerCategory, "Profit per Category", "Category", r.CategoryProfit), true
	case SummaryProfitPerSubCat:
		return renderProfitRanking(SummaryProfitPerSubCat, "Profit per Sub-Category", "Sub-Category", r.SubCategoryProfit), true
	case SummarySalesOverYears:
		return RenderYearlySales(r.YearlySales), true
	case SummarySalesOverMonths:
		return RenderMonthlySales(r.MonthlySales), true
	case SummaryGeographicInsights:
		return renderSalesProfitByKey(SummaryGeographicInsights, "Geographic Insights", "State", r.Geographic), true
	case SummarySegmentAnalysis:
		return renderSalesProfitByKey(SummarySegmentAnalysis, "Segment Analysis", "Segment", r.Segments), true
	case SummaryOrderToShip:
		return RenderShipping(r.Shipping), true
	case SummaryDiscountImpact:
		return RenderDiscountImpact(r.DiscountImpact), true
	case SummaryCategoryDiscounts:
		return RenderCategoryDiscounts(r.CategoryDiscounts), true
	case SummaryDiscountProfitCorr:
		return RenderCorrelation(r.DiscountProfitCorr), true
	case SummaryMonthlySalesTrend:
		return RenderTrend(r.Trend), true
	default:
		return RenderedTable{}, false
	}
}

// Tables renders every summary in presentation order.
func (r *Report) Tables() []RenderedTable {
	out := make([]RenderedTable, 0, len(SummaryNames))
	for _, name := range SummaryNames {
		table, _ := r.Table(name)
		out = append(out, table)
	}
	return out
}

// RenderPerformance renders the headline metrics in fixed key order.
func RenderPerformance(p PerformanceSummary) RenderedTable {
	return RenderedTable{
		Name:    SummarySalesPerformance,
		Title:   "Sales Performance",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"total_sales", Currency(p.TotalSales)},
			{"total_profit", Currency(p.TotalProfit)},
			{"total_orders", strconv.Itoa(p.TotalOrders)},
			{"average_discount", Percent(p.AverageDiscount)},
			{"most_common_category", p.MostCommonCategory},
			{"most_common_region", p.MostCommonRegion},
		},
	}
}

// RenderTopSalesProducts renders a product ranking, sales column first.
func RenderTopSalesProducts(groups []Group) RenderedTable {
	table := RenderedTable{
		Name:    SummaryTopSalesProducts,
		Title:   "Top Products by Sales",
		Headers: []string{"Rank", "Product Name", "Sales", "Profit"},
	}
	for _, g := range groups {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(g.Rank), g.Key, Currency(g.Sales), Currency(g.Profit),
		})
	}
	return table
}

// RenderTopProfitProducts renders a product ranking, profit column first.
func RenderTopProfitProducts(groups []Group) RenderedTable {
	table := RenderedTable{
		Name:    SummaryTopProfitProducts,
		Title:   "Top Products by Profit",
		Headers: []string{"Rank", "Product Name", "Profit", "Sales"},
	}
	for _, g := range groups {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(g.Rank), g.Key, Currency(g.Profit), Currency(g.Sales),
		})
	}
	return table
}

func renderProfitRanking(name, title, keyHeader string, groups []Group) RenderedTable {
	table := RenderedTable{
		Name:    name,
		Title:   title,
		Headers: []string{"Rank", keyHeader, "Profit"},
	}
	for _, g := range groups {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(g.Rank), g.Key, Currency(g.Profit),
		})
	}
	return table
}

func renderSalesProfitByKey(name, title, keyHeader string, groups []Group) RenderedTable {
	table := RenderedTable{
		Name:    name,
		Title:   title,
		Headers: []string{keyHeader, "Sales", "Profit"},
	}
	for _, g := range groups {
		table.Rows = append(table.Rows, []string{
			g.Key, Currency(g.Sales), Currency(g.Profit),
		})
	}
	return table
}

// RenderYearlySales renders the per-year totals.
func RenderYearlySales(years []YearlySales) RenderedTable {
	table := RenderedTable{
		Name:    SummarySalesOverYears,
		Title:   "Sales Over Years",
		Headers: []string{"Year", "Total Sales"},
	}
	for _, y := range years {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(y.Year), Currency(y.TotalSales),
		})
	}
	return table
}

// RenderMonthlySales renders the calendar-month totals with full month names.
func RenderMonthlySales(months []MonthlySales) RenderedTable {
	table := RenderedTable{
		Name:    SummarySalesOverMonths,
		Title:   "Sales Over Months",
		Headers: []string{"Month", "Total Sales"},
	}
	for _, m := range months {
		table.Rows = append(table.Rows, []string{
			m.Month.String(), Currency(m.TotalSales),
		})
	}
	return table
}

// RenderShipping renders the order-to-ship statistics in fixed key order.
func RenderShipping(s ShippingSummary) RenderedTable {
	minDays, maxDays := strconv.Itoa(s.MinDays), strconv.Itoa(s.MaxDays)
	if s.Count == 0 {
		minDays, maxDays = noData, noData
	}
	return RenderedTable{
		Name:    SummaryOrderToShip,
		Title:   "Order to Ship Summary",
		Headers: []string{"Metric", "Days"},
		Rows: [][]string{
			{"order_to_ship_average", Days(s.MeanDays)},
			{"order_to_ship_min", minDays},
			{"order_to_ship_max", maxDays},
		},
	}
}

// RenderDiscountImpact renders the per-bucket totals in bucket order.
func RenderDiscountImpact(buckets []DiscountBucket) RenderedTable {
	table := RenderedTable{
		Name:    SummaryDiscountImpact,
		Title:   "Discount Impact",
		Headers: []string{"Discount Bin", "Sales", "Profit", "Quantity"},
	}
	for _, b := range buckets {
		table.Rows = append(table.Rows, []string{
			b.Label, Currency(b.Sales), Currency(b.Profit), strconv.Itoa(b.Quantity),
		})
	}
	return table
}

// RenderCategoryDiscounts renders the discounted-order profile.
func RenderCategoryDiscounts(rows []CategoryDiscount) RenderedTable {
	table := RenderedTable{
		Name:    SummaryCategoryDiscounts,
		Title:   "Category Discount Summary",
		Headers: []string{"Category", "Sub-Category", "Avg Discount", "Discounted Orders"},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.Category, r.SubCategory, Percent(r.AvgDiscount), strconv.Itoa(r.DiscountedOrders),
		})
	}
	return table
}

// RenderCorrelation renders the discount/profit correlation coefficient.
func RenderCorrelation(corr float64) RenderedTable {
	return RenderedTable{
		Name:    SummaryDiscountProfitCorr,
		Title:   "Discount vs Profit Correlation",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"discount_profit_correlation", Correlation(corr)},
		},
	}
}

// RenderTrend renders the chronological year-month totals.
func RenderTrend(trend []PeriodSales) RenderedTable {
	table := RenderedTable{
		Name:    SummaryMonthlySalesTrend,
		Title:   "Monthly Sales Trend",
		Headers: []string{"Month", "Total Sales"},
	}
	for _, p := range trend {
		table.Rows = append(table.Rows, []string{
			p.Period, Currency(p.TotalSales),
		})
	}
	return table
}

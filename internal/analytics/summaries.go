package analytics

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"salescope/internal/dataset"
)

// topProducts caps the product rankings at ten rows.
const topProducts = 10

// PerformanceSummary holds the headline metrics for the whole dataset.
type PerformanceSummary struct {
	TotalSales         float64 `json:"total_sales"`
	TotalProfit        float64 `json:"total_profit"`
	TotalOrders        int     `json:"total_orders"`
	AverageDiscount    float64 `json:"average_discount"`
	MostCommonCategory string  `json:"most_common_category"`
	MostCommonRegion   string  `json:"most_common_region"`
}

// SalesPerformance summarizes overall sales performance. TotalOrders
// counts distinct order IDs; AverageDiscount is the row mean and NaN
// for an empty table.
func SalesPerformance(t *dataset.Table) PerformanceSummary {
	var sales, profit, discount float64
	orders := make(map[string]struct{})
	for _, rec := range t.Records {
		sales += rec.Sales
		profit += rec.Profit
		discount += rec.Discount
		orders[rec.OrderID] = struct{}{}
	}

	avgDiscount := math.NaN()
	if t.Len() > 0 {
		avgDiscount = discount / float64(t.Len())
	}

	return PerformanceSummary{
		TotalSales:         sales,
		TotalProfit:        profit,
		TotalOrders:        len(orders),
		AverageDiscount:    avgDiscount,
		MostCommonCategory: modeOf(t, func(r dataset.Record) string { return r.Category }),
		MostCommonRegion:   modeOf(t, func(r dataset.Record) string { return r.Region }),
	}
}

// TopSalesProducts ranks products by total sales, descending, top 10.
func TopSalesProducts(t *dataset.Table) []Group {
	return TopSalesProductsN(t, topProducts)
}

// TopSalesProductsN is TopSalesProducts with a caller-chosen cutoff.
func TopSalesProductsN(t *dataset.Table, n int) []Group {
	return Aggregate(t, Spec{
		Key:  func(r dataset.Record) string { return r.ProductName },
		Less: bySalesDesc,
		TopN: n,
	})
}

// TopProfitProducts ranks products by total profit, descending, top 10.
func TopProfitProducts(t *dataset.Table) []Group {
	return TopProfitProductsN(t, topProducts)
}

// TopProfitProductsN is TopProfitProducts with a caller-chosen cutoff.
func TopProfitProductsN(t *dataset.Table, n int) []Group {
	return Aggregate(t, Spec{
		Key:  func(r dataset.Record) string { return r.ProductName },
		Less: byProfitDesc,
		TopN: n,
	})
}

// ProfitPerCategory ranks categories by total profit, descending.
func ProfitPerCategory(t *dataset.Table) []Group {
	return Aggregate(t, Spec{
		Key:  func(r dataset.Record) string { return r.Category },
		Less: byProfitDesc,
	})
}

// ProfitPerSubCategory ranks sub-categories by total profit, descending.
func ProfitPerSubCategory(t *dataset.Table) []Group {
	return Aggregate(t, Spec{
		Key:  func(r dataset.Record) string { return r.SubCategory },
		Less: byProfitDesc,
	})
}

// YearlySales is total sales for one order year.
type YearlySales struct {
	Year       int     `json:"year"`
	TotalSales float64 `json:"total_sales"`
}

// SalesOverYears sums sales per order year, ascending by year. The year
// is derived from each record on the fly; the table is untouched.
func SalesOverYears(t *dataset.Table) []YearlySales {
	groups := Aggregate(t, Spec{
		Key:  func(r dataset.Record) string { return strconv.Itoa(r.OrderDate.Year()) },
		Less: byKeyAsc,
	})

	out := make([]YearlySales, 0, len(groups))
	for _, g := range groups {
		year, _ := strconv.Atoi(g.Key)
		out = append(out, YearlySales{Year: year, TotalSales: g.Sales})
	}
	return out
}

// MonthlySales is total sales for one calendar month across all years.
type MonthlySales struct {
	Month      time.Month `json:"month"`
	TotalSales float64    `json:"total_sales"`
}

// SalesOverMonths sums sales per calendar month name, in calendar order
// January through December. Only months present in the data appear.
func SalesOverMonths(t *dataset.Table) []MonthlySales {
	totals := make(map[time.Month]float64)
	for _, rec := range t.Records {
		totals[rec.OrderDate.Month()] += rec.Sales
	}

	out := make([]MonthlySales, 0, len(totals))
	for m := time.January; m <= time.December; m++ {
		if total, ok := totals[m]; ok {
			out = append(out, MonthlySales{Month: m, TotalSales: total})
		}
	}
	return out
}

// GeographicInsights sums sales and profit per state, descending by sales.
func GeographicInsights(t *dataset.Table) []Group {
	return Aggregate(t, Spec{
		Key:  func(r dataset.Record) string { return r.State },
		Less: bySalesDesc,
	})
}

// SegmentAnalysis sums sales and profit per customer segment,
// descending by sales.
func SegmentAnalysis(t *dataset.Table) []Group {
	return Aggregate(t, Spec{
		Key:  func(r dataset.Record) string { return r.Segment },
		Less: bySalesDesc,
	})
}

// ShippingSummary describes order-to-ship times in whole days.
// Count is 0 for an empty table, in which case MeanDays is NaN and the
// min/max are meaningless.
type ShippingSummary struct {
	MeanDays float64 `json:"mean_days"`
	MinDays  int     `json:"min_days"`
	MaxDays  int     `json:"max_days"`
	Count    int     `json:"count"`
}

// OrderToShipSummary computes mean, min, and max shipping time.
func OrderToShipSummary(t *dataset.Table) ShippingSummary {
	if t.Len() == 0 {
		return ShippingSummary{MeanDays: math.NaN()}
	}

	first := t.Records[0].ShippingDays()
	sum, min, max := 0, first, first
	for _, rec := range t.Records {
		days := rec.ShippingDays()
		sum += days
		if days < min {
			min = days
		}
		if days > max {
			max = days
		}
	}

	return ShippingSummary{
		MeanDays: float64(sum) / float64(t.Len()),
		MinDays:  min,
		MaxDays:  max,
		Count:    t.Len(),
	}
}

// discountBucketEdges are the half-open (lo, hi] discount intervals.
var discountBucketEdges = []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 1.0}

// DiscountBucket aggregates rows whose discount falls in (Lo, Hi].
type DiscountBucket struct {
	Label    string  `json:"label"`
	Lo       float64 `json:"lo"`
	Hi       float64 `json:"hi"`
	Sales    float64 `json:"sales"`
	Profit   float64 `json:"profit"`
	Quantity int     `json:"quantity"`
	Orders   int     `json:"orders"`
}

// DiscountImpact sums sales, profit, and quantity per discount bucket.
// Buckets are left-open: a discount of exactly 0 falls into no bucket,
// so undiscounted rows are deliberately excluded here (they dominate
// the dataset and would swamp the discounted buckets). All six buckets
// appear in the result even when empty. Out-of-range discounts are
// validation findings and are likewise excluded.
func DiscountImpact(t *dataset.Table) []DiscountBucket {
	buckets := make([]DiscountBucket, 0, len(discountBucketEdges)-1)
	for i := 1; i < len(discountBucketEdges); i++ {
		lo, hi := discountBucketEdges[i-1], discountBucketEdges[i]
		buckets = append(buckets, DiscountBucket{
			Label: fmt.Sprintf("(%.1f, %.1f]", lo, hi),
			Lo:    lo,
			Hi:    hi,
		})
	}

	for _, rec := range t.Records {
		for i := range buckets {
			if rec.Discount > buckets[i].Lo && rec.Discount <= buckets[i].Hi {
				buckets[i].Sales += rec.Sales
				buckets[i].Profit += rec.Profit
				buckets[i].Quantity += rec.Quantity
				buckets[i].Orders++
				break
			}
		}
	}
	return buckets
}

// CategoryDiscount is the discount profile of one (category,
// sub-category) pair among discounted orders.
type CategoryDiscount struct {
	Category         string  `json:"category"`
	SubCategory      string  `json:"sub_category"`
	AvgDiscount      float64 `json:"avg_discount"`
	DiscountedOrders int     `json:"discounted_orders"`
}

// CategoryDiscountSummary averages the discount per (category,
// sub-category) over rows with Discount > 0, descending by average
// discount.
func CategoryDiscountSummary(t *dataset.Table) []CategoryDiscount {
	groups := Aggregate(t, Spec{
		Key:    func(r dataset.Record) string { return r.Category },
		SubKey: func(r dataset.Record) string { return r.SubCategory },
		Filter: func(r dataset.Record) bool { return r.Discount > 0 },
	})

	out := make([]CategoryDiscount, 0, len(groups))
	for _, g := range groups {
		out = append(out, CategoryDiscount{
			Category:         g.Key,
			SubCategory:      g.SubKey,
			AvgDiscount:      g.MeanDiscount(),
			DiscountedOrders: g.Count,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgDiscount > out[j].AvgDiscount
	})
	return out
}

// DiscountProfitCorrelation returns the Pearson correlation between
// discount and profit. NaN when the table has fewer than two rows or
// either series is constant.
func DiscountProfitCorrelation(t *dataset.Table) float64 {
	n := float64(t.Len())
	if t.Len() < 2 {
		return math.NaN()
	}

	var sumD, sumP float64
	for _, rec := range t.Records {
		sumD += rec.Discount
		sumP += rec.Profit
	}
	meanD, meanP := sumD/n, sumP/n

	var cov, varD, varP float64
	for _, rec := range t.Records {
		dd, dp := rec.Discount-meanD, rec.Profit-meanP
		cov += dd * dp
		varD += dd * dd
		varP += dp * dp
	}
	if varD == 0 || varP == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varD*varP)
}

// PeriodSales is total sales for one year-month period.
type PeriodSales struct {
	Period     string  `json:"period"` // e.g. "2023-01"
	TotalSales float64 `json:"total_sales"`
}

// MonthlySalesTrend sums sales per year-month period in chronological
// order. Feeds the trend line chart.
func MonthlySalesTrend(t *dataset.Table) []PeriodSales {
	groups := Aggregate(t, Spec{
		Key:  func(r dataset.Record) string { return r.OrderDate.Format("2006-01") },
		Less: byKeyAsc,
	})

	out := make([]PeriodSales, 0, len(groups))
	for _, g := range groups {
		out = append(out, PeriodSales{Period: g.Key, TotalSales: g.Sales})
	}
	return out
}

// Report bundles every summary computed from one canonical table.
// Built fresh on each call, never cached.
type Report struct {
	Performance        PerformanceSummary `json:"performance"`
	TopSales           []Group            `json:"top_sales_products"`
	TopProfit          []Group            `json:"top_profit_products"`
	CategoryProfit     []Group            `json:"profit_per_category"`
	SubCategoryProfit  []Group            `json:"profit_per_subcategory"`
	YearlySales        []YearlySales      `json:"sales_over_years"`
	MonthlySales       []MonthlySales     `json:"sales_over_months"`
	Geographic         []Group            `json:"geographic_insights"`
	Segments           []Group            `json:"segment_analysis"`
	Shipping           ShippingSummary    `json:"order_to_ship_summary"`
	DiscountImpact     []DiscountBucket   `json:"discount_impact"`
	CategoryDiscounts  []CategoryDiscount `json:"category_discount_summary"`
	DiscountProfitCorr float64            `json:"discount_profit_correlation"`
	Trend              []PeriodSales      `json:"monthly_sales_trend"`
}

// BuildReport computes the full summary set for a canonical table.
func BuildReport(t *dataset.Table) *Report {
	return &Report{
		Performance:        SalesPerformance(t),
		TopSales:           TopSalesProducts(t),
		TopProfit:          TopProfitProducts(t),
		CategoryProfit:     ProfitPerCategory(t),
		SubCategoryProfit:  ProfitPerSubCategory(t),
		YearlySales:        SalesOverYears(t),
		MonthlySales:       SalesOverMonths(t),
		Geographic:         GeographicInsights(t),
		Segments:           SegmentAnalysis(t),
		Shipping:           OrderToShipSummary(t),
		DiscountImpact:     DiscountImpact(t),
		CategoryDiscounts:  CategoryDiscountSummary(t),
		DiscountProfitCorr: DiscountProfitCorrelation(t),
		Trend:              MonthlySalesTrend(t),
	}
}

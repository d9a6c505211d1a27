package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescope/internal/dataset"
)

// rec builds a canonical record with the fields the engine cares about.
func rec(mutate func(*dataset.Record)) dataset.Record {
	r := dataset.Record{
		OrderID:     "CA-1",
		OrderDate:   time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
		ShipDate:    time.Date(2023, 3, 19, 0, 0, 0, 0, time.UTC),
		Segment:     "Consumer",
		State:       "Texas",
		Region:      "Central",
		Category:    "Furniture",
		SubCategory: "Chairs",
		ProductName: "Desk Chair",
		Sales:       100,
		Quantity:    1,
		Discount:    0,
		Profit:      20,
	}
	if mutate != nil {
		mutate(&r)
	}
	return r
}

func tableOf(records ...dataset.Record) *dataset.Table {
	return &dataset.Table{Records: records}
}

func TestAggregate_GroupsAndSums(t *testing.T) {
	table := tableOf(
		rec(func(r *dataset.Record) { r.ProductName = "A"; r.Sales = 10; r.Profit = 1; r.Quantity = 2 }),
		rec(func(r *dataset.Record) { r.ProductName = "B"; r.Sales = 5; r.Profit = 9; r.Quantity = 1 }),
		rec(func(r *dataset.Record) { r.ProductName = "A"; r.Sales = 20; r.Profit = 3; r.Quantity = 4 }),
	)

	groups := Aggregate(table, Spec{
		Key: func(r dataset.Record) string { return r.ProductName },
	})

	require.Len(t, groups, 2)
	// First-seen order when no comparator is given.
	assert.Equal(t, "A", groups[0].Key)
	assert.Equal(t, 30.0, groups[0].Sales)
	assert.Equal(t, 4.0, groups[0].Profit)
	assert.Equal(t, 6, groups[0].Quantity)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, "B", groups[1].Key)
	assert.Equal(t, 1, groups[0].Rank)
	assert.Equal(t, 2, groups[1].Rank)
}

func TestAggregate_SortTopNAndRanks(t *testing.T) {
	table := tableOf(
		rec(func(r *dataset.Record) { r.ProductName = "low"; r.Sales = 1 }),
		rec(func(r *dataset.Record) { r.ProductName = "high"; r.Sales = 100 }),
		rec(func(r *dataset.Record) { r.ProductName = "mid"; r.Sales = 50 }),
	)

	groups := Aggregate(table, Spec{
		Key:  func(r dataset.Record) string { return r.ProductName },
		Less: bySalesDesc,
		TopN: 2,
	})

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"high", "mid"}, []string{groups[0].Key, groups[1].Key})
	assert.Equal(t, []int{1, 2}, []int{groups[0].Rank, groups[1].Rank})
}

func TestAggregate_StableTies(t *testing.T) {
	// Equal sales: ties must retain first-seen grouping order.
	table := tableOf(
		rec(func(r *dataset.Record) { r.ProductName = "zebra"; r.Sales = 10 }),
		rec(func(r *dataset.Record) { r.ProductName = "apple"; r.Sales = 10 }),
		rec(func(r *dataset.Record) { r.ProductName = "mango"; r.Sales = 10 }),
	)

	groups := Aggregate(table, Spec{
		Key:  func(r dataset.Record) string { return r.ProductName },
		Less: bySalesDesc,
	})

	keys := []string{}
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"zebra", "apple", "mango"}, keys)
}

func TestAggregate_Filter(t *testing.T) {
	table := tableOf(
		rec(func(r *dataset.Record) { r.Discount = 0.2 }),
		rec(func(r *dataset.Record) { r.Discount = 0 }),
	)

	groups := Aggregate(table, Spec{
		Key:    func(r dataset.Record) string { return r.Category },
		Filter: func(r dataset.Record) bool { return r.Discount > 0 },
	})

	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Count)
}

func TestAggregate_SubKey(t *testing.T) {
	table := tableOf(
		rec(func(r *dataset.Record) { r.Category = "Furniture"; r.SubCategory = "Chairs" }),
		rec(func(r *dataset.Record) { r.Category = "Furniture"; r.SubCategory = "Tables" }),
		rec(func(r *dataset.Record) { r.Category = "Furniture"; r.SubCategory = "Chairs" }),
	)

	groups := Aggregate(table, Spec{
		Key:    func(r dataset.Record) string { return r.Category },
		SubKey: func(r dataset.Record) string { return r.SubCategory },
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "Chairs", groups[0].SubKey)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, "Tables", groups[1].SubKey)
}

func TestAggregate_EmptyTable(t *testing.T) {
	groups := Aggregate(tableOf(), Spec{
		Key: func(r dataset.Record) string { return r.Category },
	})
	assert.Empty(t, groups)
}

func TestAggregate_DoesNotMutateTable(t *testing.T) {
	table := tableOf(rec(nil), rec(nil))
	before := make([]dataset.Record, len(table.Records))
	copy(before, table.Records)

	Aggregate(table, Spec{
		Key:  func(r dataset.Record) string { return r.State },
		Less: bySalesDesc,
	})

	assert.Equal(t, before, table.Records)
}

func TestGroup_MeanDiscount(t *testing.T) {
	g := Group{Discount: 0.6, Count: 3}
	assert.InDelta(t, 0.2, g.MeanDiscount(), 1e-9)

	empty := Group{}
	assert.True(t, empty.MeanDiscount() != empty.MeanDiscount(), "mean of empty group should be NaN")
}

func TestModeOf_TieBreak(t *testing.T) {
	table := tableOf(
		rec(func(r *dataset.Record) { r.Region = "West" }),
		rec(func(r *dataset.Record) { r.Region = "East" }),
	)

	// Tie between East and West: lexicographically smallest wins.
	mode := modeOf(table, func(r dataset.Record) string { return r.Region })
	assert.Equal(t, "East", mode)
}

func TestModeOf_Empty(t *testing.T) {
	assert.Equal(t, "", modeOf(tableOf(), func(r dataset.Record) string { return r.Region }))
}

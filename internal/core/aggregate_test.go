package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryTotalsExample(t *testing.T) {
	records := []Record{
		rec("1", 100, "Food", "", day(2024, time.March, 5), KindVariable),
		rec("2", 50, "Food", "", day(2024, time.March, 20), KindFixed),
		rec("3", 200, "Rent", "", day(2024, time.March, 1), KindFixed),
	}

	totals := CategoryTotals(records)
	require.Len(t, totals, 2)

	assert.Equal(t, "Rent", totals[0].Category)
	assert.True(t, totals[0].Total.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 1, totals[0].Count)
	assert.InDelta(t, 57.14, totals[0].PercentOfTotal, 0.01)

	assert.Equal(t, "Food", totals[1].Category)
	assert.True(t, totals[1].Total.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 2, totals[1].Count)
	assert.InDelta(t, 42.86, totals[1].PercentOfTotal, 0.01)

	split := KindSplit(records)
	assert.True(t, split.Fixed.Equal(decimal.NewFromInt(250)))
	assert.True(t, split.Variable.Equal(decimal.NewFromInt(100)))
}

func TestCategoryTotalsPercentsSumToHundred(t *testing.T) {
	records := []Record{
		rec("1", 33, "A", "", day(2024, time.January, 1), KindVariable),
		rec("2", 66, "B", "", day(2024, time.January, 2), KindVariable),
		rec("3", 99, "C", "", day(2024, time.January, 3), KindFixed),
	}
	totals := CategoryTotals(records)
	sum := 0.0
	for _, agg := range totals {
		sum += agg.PercentOfTotal
	}
	assert.InDelta(t, 100, sum, 1e-9)
}

func TestCategoryTotalsEmptyInput(t *testing.T) {
	totals := CategoryTotals(nil)
	require.NotNil(t, totals)
	assert.Empty(t, totals)
}

func TestCategoryTotalsExcludesZeroGroups(t *testing.T) {
	records := []Record{
		rec("1", 0, "Ghost", "", day(2024, time.March, 5), KindVariable),
		rec("2", 10, "Food", "", day(2024, time.March, 6), KindVariable),
	}
	totals := CategoryTotals(records)
	require.Len(t, totals, 1)
	assert.Equal(t, "Food", totals[0].Category)
	assert.InDelta(t, 100, totals[0].PercentOfTotal, 1e-9)
}

func TestCategoryTotalsAllZero(t *testing.T) {
	records := []Record{
		rec("1", 0, "Ghost", "", day(2024, time.March, 5), KindVariable),
	}
	assert.Empty(t, CategoryTotals(records))
}

func TestCategoryTotalsClampsNegativeAmounts(t *testing.T) {
	records := []Record{
		rec("1", 100, "Food", "", day(2024, time.March, 5), KindVariable),
		rec("2", -40, "Food", "", day(2024, time.March, 6), KindVariable),
	}
	totals := CategoryTotals(records)
	require.Len(t, totals, 1)
	assert.True(t, totals[0].Total.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 2, totals[0].Count)
}

func TestCategoryTotalsStableTieBreak(t *testing.T) {
	records := []Record{
		rec("1", 50, "Zoo", "", day(2024, time.March, 1), KindVariable),
		rec("2", 50, "Art", "", day(2024, time.March, 2), KindVariable),
	}
	totals := CategoryTotals(records)
	require.Len(t, totals, 2)
	// Equal totals keep first-appearance order.
	assert.Equal(t, "Zoo", totals[0].Category)
	assert.Equal(t, "Art", totals[1].Category)
}

func TestCategoryTotalsSumNeverExceedsGrandTotal(t *testing.T) {
	records := filterFixture()
	grouped := decimal.Zero
	for _, agg := range CategoryTotals(records) {
		grouped = grouped.Add(agg.Total)
	}
	assert.True(t, grouped.LessThanOrEqual(Total(records)))
}

func TestMonthlyTrendExactBuckets(t *testing.T) {
	anchor := day(2024, time.June, 15)
	records := []Record{
		rec("1", 100, "Food", "", day(2024, time.June, 1), KindVariable),
		rec("2", 40, "Food", "", day(2024, time.April, 10), KindFixed),
		rec("3", 999, "Food", "", day(2023, time.June, 1), KindVariable), // outside window
	}

	trend := MonthlyTrend(records, anchor, 6)
	require.Len(t, trend, 6)

	assert.Equal(t, "Jan 2024", trend[0].Label)
	assert.Equal(t, "Jun 2024", trend[5].Label)
	for i := 1; i < len(trend); i++ {
		prev := time.Date(trend[i-1].Year, trend[i-1].Month, 1, 0, 0, 0, 0, time.UTC)
		cur := time.Date(trend[i].Year, trend[i].Month, 1, 0, 0, 0, 0, time.UTC)
		assert.True(t, prev.Before(cur), "buckets must be chronological")
	}

	assert.True(t, trend[5].Total.Equal(decimal.NewFromInt(100)))
	assert.True(t, trend[5].VariableTotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, trend[5].FixedTotal.IsZero())

	assert.True(t, trend[3].Total.Equal(decimal.NewFromInt(40)))
	assert.True(t, trend[3].FixedTotal.Equal(decimal.NewFromInt(40)))

	// Months with no records are zero buckets, never omitted.
	assert.True(t, trend[0].Total.IsZero())
	assert.True(t, trend[1].Total.IsZero())
}

func TestMonthlyTrendEmptyRecordSet(t *testing.T) {
	trend := MonthlyTrend(nil, day(2024, time.June, 15), 4)
	require.Len(t, trend, 4)
	for _, bucket := range trend {
		assert.True(t, bucket.Total.IsZero())
		assert.True(t, bucket.FixedTotal.IsZero())
		assert.True(t, bucket.VariableTotal.IsZero())
	}
}

func TestMonthlyTrendMonthEndAnchor(t *testing.T) {
	// An anchor on the 31st must not skip short months while counting back.
	trend := MonthlyTrend(nil, day(2024, time.March, 31), 3)
	require.Len(t, trend, 3)
	assert.Equal(t, time.January, trend[0].Month)
	assert.Equal(t, time.February, trend[1].Month)
	assert.Equal(t, time.March, trend[2].Month)
}

func TestMonthlyTrendNonPositiveWindow(t *testing.T) {
	assert.Empty(t, MonthlyTrend(filterFixture(), day(2024, time.June, 1), 0))
	assert.Empty(t, MonthlyTrend(filterFixture(), day(2024, time.June, 1), -3))
}

func TestCompareMonthsAlignsByDayIndex(t *testing.T) {
	records := []Record{
		rec("1", 10, "Food", "", day(2023, time.February, 28), KindVariable),
		rec("2", 7, "Food", "", day(2023, time.March, 29), KindVariable),
		rec("3", 5, "Food", "", day(2023, time.March, 31), KindFixed),
		rec("4", 3, "Food", "", day(2023, time.March, 1), KindVariable),
	}

	cmp := CompareMonths(records, 2023, time.February, 2023, time.March)
	require.Len(t, cmp, 31)

	assert.Equal(t, 1, cmp[0].Day)
	assert.True(t, cmp[0].TotalB.Equal(decimal.NewFromInt(3)))
	assert.True(t, cmp[27].TotalA.Equal(decimal.NewFromInt(10)))

	// Indices past February's 28 days report zero for February only.
	for i := 28; i < 31; i++ {
		assert.True(t, cmp[i].TotalA.IsZero(), "day %d", i+1)
	}
	assert.True(t, cmp[28].TotalB.Equal(decimal.NewFromInt(7)))
	assert.True(t, cmp[30].TotalB.Equal(decimal.NewFromInt(5)))
}

func TestCompareMonthsEmptyInput(t *testing.T) {
	cmp := CompareMonths(nil, 2024, time.April, 2024, time.May)
	require.Len(t, cmp, 31)
	for _, dc := range cmp {
		assert.True(t, dc.TotalA.IsZero())
		assert.True(t, dc.TotalB.IsZero())
	}
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, daysIn(2024, time.February))
	assert.Equal(t, 28, daysIn(2023, time.February))
	assert.Equal(t, 31, daysIn(2024, time.December))
	assert.Equal(t, 30, daysIn(2024, time.April))
}

package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// CategoryAggregate is the per-category rollup of one record set.
	// Recomputed on every query, never persisted.
	CategoryAggregate struct {
		Category       string          `json:"category"`
		Total          decimal.Decimal `json:"total"`
		Count          int             `json:"count"`
		PercentOfTotal float64         `json:"percentOfTotal"`
	}

	// KindTotals is the fixed/variable split of one record set. The two
	// sums are computed independently of any category grouping.
	KindTotals struct {
		Fixed    decimal.Decimal `json:"fixed"`
		Variable decimal.Decimal `json:"variable"`
	}

	// PeriodBucket aggregates one calendar month of a trend window.
	PeriodBucket struct {
		Label         string          `json:"label"`
		Year          int             `json:"year"`
		Month         time.Month      `json:"month"`
		Total         decimal.Decimal `json:"total"`
		FixedTotal    decimal.Decimal `json:"fixedTotal"`
		VariableTotal decimal.Decimal `json:"variableTotal"`
	}

	// DayComparison reports the spend on one day-of-month index in two
	// months being compared.
	DayComparison struct {
		Day    int             `json:"day"`
		TotalA decimal.Decimal `json:"totalA"`
		TotalB decimal.Decimal `json:"totalB"`
	}
)

// CategoryTotals groups records by their verbatim category string, sums
// amounts per group and computes each group's share of the grouped grand
// total. Groups whose total is zero are excluded. The result is sorted
// descending by total; ties keep first-appearance order.
func CategoryTotals(records []Record) []CategoryAggregate {
	var order []string
	groups := make(map[string]*CategoryAggregate)
	for _, r := range records {
		agg, ok := groups[r.Category]
		if !ok {
			agg = &CategoryAggregate{Category: r.Category, Total: decimal.Zero}
			groups[r.Category] = agg
			order = append(order, r.Category)
		}
		agg.Total = agg.Total.Add(spend(r))
		agg.Count++
	}

	grand := decimal.Zero
	out := make([]CategoryAggregate, 0, len(order))
	for _, name := range order {
		agg := groups[name]
		if agg.Total.IsZero() {
			continue
		}
		grand = grand.Add(agg.Total)
		out = append(out, *agg)
	}

	if grand.IsPositive() {
		gf := grand.InexactFloat64()
		for i := range out {
			out[i].PercentOfTotal = out[i].Total.InexactFloat64() / gf * 100
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// KindSplit sums fixed and variable spend over the same base set. The
// fixed and variable totals need not add up to the grouped category
// totals, which exclude zero-total groups.
func KindSplit(records []Record) KindTotals {
	totals := KindTotals{Fixed: decimal.Zero, Variable: decimal.Zero}
	for _, r := range records {
		switch r.Kind {
		case KindFixed:
			totals.Fixed = totals.Fixed.Add(spend(r))
		case KindVariable:
			totals.Variable = totals.Variable.Add(spend(r))
		}
	}
	return totals
}

// MonthlyTrend produces exactly months buckets, oldest first, one per
// calendar month counting back from the anchor's month inclusive. The
// whole record set is bucketed regardless of category so the trend shows
// whole-wallet spend even while a drill-down filter is active elsewhere.
// Empty months yield all-zero buckets; buckets are never omitted.
func MonthlyTrend(records []Record, anchor time.Time, months int) []PeriodBucket {
	if months <= 0 {
		return []PeriodBucket{}
	}

	out := make([]PeriodBucket, months)
	index := make(map[int]int, months)
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < months; i++ {
		m := first.AddDate(0, i-(months-1), 0)
		out[i] = PeriodBucket{
			Label:         m.Format("Jan 2006"),
			Year:          m.Year(),
			Month:         m.Month(),
			Total:         decimal.Zero,
			FixedTotal:    decimal.Zero,
			VariableTotal: decimal.Zero,
		}
		index[monthKey(m.Year(), m.Month())] = i
	}

	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		i, ok := index[monthKey(r.Date.Year(), r.Date.Month())]
		if !ok {
			continue
		}
		amt := spend(r)
		out[i].Total = out[i].Total.Add(amt)
		switch r.Kind {
		case KindFixed:
			out[i].FixedTotal = out[i].FixedTotal.Add(amt)
		case KindVariable:
			out[i].VariableTotal = out[i].VariableTotal.Add(amt)
		}
	}
	return out
}

// CompareMonths aligns two calendar months by day-of-month index and
// reports the daily spend of each. The result always has
// max(daysIn(a), daysIn(b)) entries; day indices past a shorter month's
// end report zero for that month while the longer month's value is kept,
// so consumers can overlay both on one axis without an off-by-N shift.
func CompareMonths(records []Record, yearA int, monthA time.Month, yearB int, monthB time.Month) []DayComparison {
	daysA := daysIn(yearA, monthA)
	daysB := daysIn(yearB, monthB)
	n := daysA
	if daysB > n {
		n = daysB
	}

	out := make([]DayComparison, n)
	for i := range out {
		out[i] = DayComparison{Day: i + 1, TotalA: decimal.Zero, TotalB: decimal.Zero}
	}

	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		day := r.Date.Day()
		if r.Date.Year() == yearA && r.Date.Month() == monthA && day <= daysA {
			out[day-1].TotalA = out[day-1].TotalA.Add(spend(r))
		}
		if r.Date.Year() == yearB && r.Date.Month() == monthB && day <= daysB {
			out[day-1].TotalB = out[day-1].TotalB.Add(spend(r))
		}
	}
	return out
}

// Total sums the clamped amounts of a record set.
func Total(records []Record) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(spend(r))
	}
	return sum
}

func monthKey(year int, month time.Month) int {
	return year*100 + int(month)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

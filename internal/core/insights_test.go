package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEmptySnapshot(t *testing.T) {
	gen := NewGenerator(DefaultRules()...)
	insights := gen.Generate(Snapshot{})
	require.NotNil(t, insights)
	assert.Empty(t, insights)
}

func TestGeneratorWithoutRules(t *testing.T) {
	gen := NewGenerator()
	assert.Empty(t, gen.Generate(Snapshot{Records: filterFixture()}))
}

func TestGeneratorRegisterAppends(t *testing.T) {
	gen := NewGenerator()
	gen.Register(func(Snapshot) []Insight {
		return []Insight{{Kind: InsightTrend, Title: "custom"}}
	})
	insights := gen.Generate(Snapshot{})
	require.Len(t, insights, 1)
	assert.Equal(t, "custom", insights[0].Title)
}

func TestGeneratorRulesAreOrderInsensitive(t *testing.T) {
	snap := Snapshot{
		Budgets: []BudgetStatus{{
			Category:           "Food",
			Spent:              decimal.NewFromInt(600),
			Ceiling:            decimal.NewFromInt(500),
			UtilizationPercent: 120,
			Tier:               TierOver,
		}},
		Trend: []PeriodBucket{
			{Total: decimal.NewFromInt(100)},
			{Total: decimal.NewFromInt(200)},
		},
		Now: day(2024, time.May, 10),
	}

	forward := NewGenerator(BudgetOverrunRule, MonthTrendRule).Generate(snap)
	reversed := NewGenerator(MonthTrendRule, BudgetOverrunRule).Generate(snap)
	assert.ElementsMatch(t, forward, reversed)
}

func TestCategoryOverspendRule(t *testing.T) {
	now := day(2024, time.May, 15)
	records := []Record{
		// Food: 100, 100, then 400 this month. Average 200, threshold 260.
		rec("1", 100, "Food", "", day(2024, time.March, 5), KindVariable),
		rec("2", 100, "Food", "", day(2024, time.April, 5), KindVariable),
		rec("3", 400, "Food", "", day(2024, time.May, 5), KindVariable),
		// Transport: flat, no alert.
		rec("4", 50, "Transport", "", day(2024, time.April, 8), KindVariable),
		rec("5", 50, "Transport", "", day(2024, time.May, 8), KindVariable),
	}

	insights := CategoryOverspendRule(Snapshot{Records: records, Now: now})
	require.Len(t, insights, 1)
	got := insights[0]
	assert.Equal(t, InsightAlert, got.Kind)
	assert.Equal(t, "Food", got.Category)
	assert.True(t, got.Magnitude.Equal(decimal.NewFromInt(400)))
	assert.InDelta(t, 100, got.DeltaPercent, 1e-6)
}

func TestCategoryOverspendRuleIgnoresQuietHistory(t *testing.T) {
	now := day(2024, time.May, 15)
	// A category appearing only this month has a positive average driven
	// entirely by the current month; 400 vs avg 133.33 still alerts,
	// while one with no spend at all never does.
	records := []Record{
		rec("1", 400, "Food", "", day(2024, time.May, 5), KindVariable),
	}
	insights := CategoryOverspendRule(Snapshot{Records: records, Now: now})
	require.Len(t, insights, 1)

	assert.Empty(t, CategoryOverspendRule(Snapshot{Now: now}))
}

func TestSubscriptionRule(t *testing.T) {
	records := []Record{
		rec("1", 15.9, "Leisure", "Netflix monthly plan", day(2024, time.May, 3), KindFixed),
		rec("2", 9.9, "Leisure", "Spotify family", day(2024, time.May, 4), KindFixed),
		rec("3", 80, "Food", "groceries", day(2024, time.May, 5), KindVariable),
	}

	insights := SubscriptionRule(Snapshot{Records: records})
	require.Len(t, insights, 1)
	got := insights[0]
	assert.Equal(t, InsightOpportunity, got.Kind)
	assert.True(t, got.Magnitude.Equal(decimal.NewFromFloat(25.8)))
}

func TestSubscriptionRuleNeedsTwoMatches(t *testing.T) {
	records := []Record{
		rec("1", 15.9, "Leisure", "Netflix monthly plan", day(2024, time.May, 3), KindFixed),
	}
	assert.Empty(t, SubscriptionRule(Snapshot{Records: records}))
}

func TestBudgetOverrunRule(t *testing.T) {
	snap := Snapshot{Budgets: []BudgetStatus{
		{Category: "Food", Spent: decimal.NewFromInt(600), Ceiling: decimal.NewFromInt(500), UtilizationPercent: 120, Tier: TierOver},
		{Category: "Transport", Spent: decimal.NewFromInt(100), Ceiling: decimal.NewFromInt(200), UtilizationPercent: 50, Tier: TierOK},
	}}

	insights := BudgetOverrunRule(snap)
	require.Len(t, insights, 1)
	got := insights[0]
	assert.Equal(t, InsightAlert, got.Kind)
	assert.Equal(t, "Food", got.Category)
	assert.True(t, got.Magnitude.Equal(decimal.NewFromInt(100)))
	assert.InDelta(t, 20, got.DeltaPercent, 1e-9)
}

func TestBudgetGoalRule(t *testing.T) {
	snap := Snapshot{Budgets: []BudgetStatus{
		{Category: "Transport", Spent: decimal.NewFromInt(100), Ceiling: decimal.NewFromInt(200), UtilizationPercent: 50, Tier: TierOK},
		{Category: "Health", Spent: decimal.Zero, Ceiling: decimal.NewFromInt(300), Tier: TierOK},
		{Category: "Food", Spent: decimal.NewFromInt(450), Ceiling: decimal.NewFromInt(500), UtilizationPercent: 90, Tier: TierWarning},
	}}

	insights := BudgetGoalRule(snap)
	require.Len(t, insights, 1)
	got := insights[0]
	assert.Equal(t, InsightGoalMet, got.Kind)
	assert.Equal(t, "Transport", got.Category)
	assert.True(t, got.Magnitude.Equal(decimal.NewFromInt(100)))
}

func TestMonthTrendRule(t *testing.T) {
	up := Snapshot{Trend: []PeriodBucket{
		{Total: decimal.NewFromInt(100)},
		{Total: decimal.NewFromInt(150)},
	}}
	insights := MonthTrendRule(up)
	require.Len(t, insights, 1)
	assert.Equal(t, InsightTrend, insights[0].Kind)
	assert.InDelta(t, 50, insights[0].DeltaPercent, 1e-9)

	down := Snapshot{Trend: []PeriodBucket{
		{Total: decimal.NewFromInt(200)},
		{Total: decimal.NewFromInt(100)},
	}}
	insights = MonthTrendRule(down)
	require.Len(t, insights, 1)
	assert.InDelta(t, -50, insights[0].DeltaPercent, 1e-9)
}

func TestMonthTrendRuleStaysQuiet(t *testing.T) {
	// Small moves and zero baselines emit nothing.
	flat := Snapshot{Trend: []PeriodBucket{
		{Total: decimal.NewFromInt(100)},
		{Total: decimal.NewFromInt(105)},
	}}
	assert.Empty(t, MonthTrendRule(flat))

	zeroBase := Snapshot{Trend: []PeriodBucket{
		{Total: decimal.Zero},
		{Total: decimal.NewFromInt(500)},
	}}
	assert.Empty(t, MonthTrendRule(zeroBase))

	assert.Empty(t, MonthTrendRule(Snapshot{Trend: []PeriodBucket{{Total: decimal.NewFromInt(10)}}}))
}

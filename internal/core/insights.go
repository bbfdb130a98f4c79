package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	InsightAlert       InsightKind = "alert"
	InsightOpportunity InsightKind = "opportunity"
	InsightGoalMet     InsightKind = "goal_met"
	InsightTrend       InsightKind = "trend"
)

type (
	// InsightKind tags the nature of an observation.
	InsightKind string

	// Insight is one human-readable observation emitted by a rule.
	Insight struct {
		Kind         InsightKind     `json:"kind"`
		Title        string          `json:"title"`
		Description  string          `json:"description"`
		Category     string          `json:"category,omitempty"`
		Magnitude    decimal.Decimal `json:"magnitude"`
		DeltaPercent float64         `json:"deltaPercent"`
	}

	// Snapshot is the aggregation state rules inspect. All fields are
	// derived from the same record set at one point in time; rules must
	// not assume any field is non-empty.
	Snapshot struct {
		Records    []Record
		Aggregates []CategoryAggregate
		Trend      []PeriodBucket
		Budgets    []BudgetStatus
		Now        time.Time
	}

	// Rule inspects a snapshot and emits zero or more insights. Rules
	// are independent and order-insensitive; new rules are registered
	// without touching existing ones.
	Rule func(Snapshot) []Insight
)

// Generator runs a list of independent rules over one snapshot and
// concatenates their output.
type Generator struct {
	rules []Rule
}

// NewGenerator creates a generator with the given rules.
func NewGenerator(rules ...Rule) *Generator {
	return &Generator{rules: rules}
}

// Register appends rules to the generator.
func (g *Generator) Register(rules ...Rule) {
	g.rules = append(g.rules, rules...)
}

// Generate evaluates every rule against the snapshot. An empty snapshot
// yields zero insights; it never fails.
func (g *Generator) Generate(s Snapshot) []Insight {
	if s.Now.IsZero() {
		s.Now = time.Now()
	}
	out := []Insight{}
	for _, rule := range g.rules {
		out = append(out, rule(s)...)
	}
	return out
}

// DefaultRules is the built-in rule set.
func DefaultRules() []Rule {
	return []Rule{
		CategoryOverspendRule,
		SubscriptionRule,
		BudgetOverrunRule,
		BudgetGoalRule,
		MonthTrendRule,
	}
}

var overspendFactor = decimal.NewFromFloat(1.3)

// CategoryOverspendRule flags categories whose current-month spend runs
// more than 30% above their trailing three-month average (current month
// included in the average).
func CategoryOverspendRule(s Snapshot) []Insight {
	const trailing = 3

	totals := make(map[int]map[string]decimal.Decimal, trailing)
	keys := make([]int, trailing)
	first := time.Date(s.Now.Year(), s.Now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < trailing; i++ {
		m := first.AddDate(0, -i, 0)
		keys[i] = monthKey(m.Year(), m.Month())
		totals[keys[i]] = make(map[string]decimal.Decimal)
	}

	var categories []string
	seen := make(map[string]bool)
	for _, r := range s.Records {
		if r.Date.IsZero() {
			continue
		}
		byCat, ok := totals[monthKey(r.Date.Year(), r.Date.Month())]
		if !ok {
			continue
		}
		byCat[r.Category] = byCat[r.Category].Add(spend(r))
		if !seen[r.Category] {
			seen[r.Category] = true
			categories = append(categories, r.Category)
		}
	}

	var out []Insight
	for _, cat := range categories {
		sum := decimal.Zero
		for _, key := range keys {
			sum = sum.Add(totals[key][cat])
		}
		average := sum.Div(decimal.NewFromInt(trailing))
		current := totals[keys[0]][cat]
		if !average.IsPositive() || !current.GreaterThan(average.Mul(overspendFactor)) {
			continue
		}
		delta := current.Sub(average).Div(average).InexactFloat64() * 100
		out = append(out, Insight{
			Kind:         InsightAlert,
			Title:        fmt.Sprintf("High spending in %s", cat),
			Description:  fmt.Sprintf("You spent %s on %s this month, %.0f%% above your three-month average.", current.StringFixed(2), cat, delta),
			Category:     cat,
			Magnitude:    current,
			DeltaPercent: delta,
		})
	}
	return out
}

var subscriptionKeywords = []string{
	"netflix",
	"spotify",
	"disney",
	"amazon prime",
	"youtube premium",
}

// SubscriptionRule surfaces a savings opportunity when at least two
// records look like streaming subscriptions.
func SubscriptionRule(s Snapshot) []Insight {
	count := 0
	total := decimal.Zero
	for _, r := range s.Records {
		desc := strings.ToLower(r.Description)
		for _, kw := range subscriptionKeywords {
			if strings.Contains(desc, kw) {
				count++
				total = total.Add(spend(r))
				break
			}
		}
	}
	if count < 2 {
		return nil
	}
	return []Insight{{
		Kind:        InsightOpportunity,
		Title:       "Savings opportunity",
		Description: fmt.Sprintf("Your subscriptions add up to %s. Consider reviewing which ones you actually use.", total.StringFixed(2)),
		Magnitude:   total,
	}}
}

// BudgetOverrunRule raises an alert for every category over its ceiling.
func BudgetOverrunRule(s Snapshot) []Insight {
	var out []Insight
	for _, b := range s.Budgets {
		if b.Tier != TierOver {
			continue
		}
		out = append(out, Insight{
			Kind:         InsightAlert,
			Title:        fmt.Sprintf("%s budget exceeded", b.Category),
			Description:  fmt.Sprintf("%s is %s over its %s ceiling.", b.Category, b.Overage().StringFixed(2), b.Ceiling.StringFixed(2)),
			Category:     b.Category,
			Magnitude:    b.Overage(),
			DeltaPercent: b.UtilizationPercent - 100,
		})
	}
	return out
}

// BudgetGoalRule celebrates categories comfortably within budget. Zero
// spend does not count; an untouched budget is not an achievement.
func BudgetGoalRule(s Snapshot) []Insight {
	var out []Insight
	for _, b := range s.Budgets {
		if b.Tier != TierOK || !b.Spent.IsPositive() {
			continue
		}
		out = append(out, Insight{
			Kind:         InsightGoalMet,
			Title:        fmt.Sprintf("%s on track", b.Category),
			Description:  fmt.Sprintf("%s is at %.0f%% of its budget with %s to spare.", b.Category, b.UtilizationPercent, b.Ceiling.Sub(b.Spent).StringFixed(2)),
			Category:     b.Category,
			Magnitude:    b.Ceiling.Sub(b.Spent),
			DeltaPercent: b.UtilizationPercent,
		})
	}
	return out
}

// monthTrendThreshold is the month-over-month change, in percent, below
// which the trend rule stays quiet.
const monthTrendThreshold = 10.0

// MonthTrendRule flags a notable change between the last two trend
// buckets.
func MonthTrendRule(s Snapshot) []Insight {
	if len(s.Trend) < 2 {
		return nil
	}
	prev := s.Trend[len(s.Trend)-2]
	cur := s.Trend[len(s.Trend)-1]
	if !prev.Total.IsPositive() {
		return nil
	}
	delta := cur.Total.Sub(prev.Total).Div(prev.Total).InexactFloat64() * 100
	if delta < monthTrendThreshold && delta > -monthTrendThreshold {
		return nil
	}
	direction := "up"
	if delta < 0 {
		direction = "down"
	}
	return []Insight{{
		Kind:         InsightTrend,
		Title:        fmt.Sprintf("Spending trending %s", direction),
		Description:  fmt.Sprintf("Total spend moved from %s to %s month over month (%+.1f%%).", prev.Total.StringFixed(2), cur.Total.StringFixed(2), delta),
		Magnitude:    cur.Total,
		DeltaPercent: delta,
	}}
}

package core

import "github.com/shopspring/decimal"

const (
	TierOK      Tier = "ok"
	TierWarning Tier = "warning"
	TierOver    Tier = "over"
)

// Tier classifies budget utilization: at most 80% is ok, up to and
// including 100% is warning, anything above is over.
type Tier string

// BudgetStatus compares one category's period spend against its catalog
// ceiling. Derived and ephemeral like every aggregate.
type BudgetStatus struct {
	Category           string          `json:"category"`
	Spent              decimal.Decimal `json:"spent"`
	Ceiling            decimal.Decimal `json:"ceiling"`
	UtilizationPercent float64         `json:"utilizationPercent"`
	Tier               Tier            `json:"tier"`
}

// Overage returns the amount spent beyond the ceiling, zero when within
// budget. Used for excess messaging.
func (b BudgetStatus) Overage() decimal.Decimal {
	if b.Spent.GreaterThan(b.Ceiling) {
		return b.Spent.Sub(b.Ceiling)
	}
	return decimal.Zero
}

var (
	tierWarningBound = decimal.NewFromInt(80)
	tierOverBound    = decimal.NewFromInt(100)
)

// EvaluateBudgets derives a BudgetStatus for every catalog category that
// declares a monthly budget, in catalog order. Categories with no
// aggregate entry this period count as zero spend. Categories absent
// from the catalog, or present without a ceiling, yield no status.
func EvaluateBudgets(aggregates []CategoryAggregate, catalog Catalog) []BudgetStatus {
	spentBy := make(map[string]decimal.Decimal, len(aggregates))
	for _, agg := range aggregates {
		spentBy[agg.Category] = agg.Total
	}

	var out []BudgetStatus
	for _, def := range catalog.Budgeted() {
		spent, ok := spentBy[def.Name]
		if !ok {
			spent = decimal.Zero
		}
		out = append(out, newBudgetStatus(def.Name, spent, *def.MonthlyBudget))
	}
	return out
}

func newBudgetStatus(category string, spent, ceiling decimal.Decimal) BudgetStatus {
	status := BudgetStatus{
		Category: category,
		Spent:    spent,
		Ceiling:  ceiling,
		Tier:     TierOK,
	}
	if !ceiling.IsPositive() {
		// Zero ceiling: any spend at all is an overrun, but the
		// utilization ratio is undefined and reported as 0.
		if spent.IsPositive() {
			status.Tier = TierOver
		}
		return status
	}

	ratio := spent.Div(ceiling).Mul(tierOverBound)
	status.UtilizationPercent = ratio.InexactFloat64()
	switch {
	case ratio.GreaterThan(tierOverBound):
		status.Tier = TierOver
	case ratio.GreaterThan(tierWarningBound):
		status.Tier = TierWarning
	}
	return status
}

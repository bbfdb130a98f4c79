package core

import "github.com/shopspring/decimal"

// DefaultCatalog is the built-in category list. Budgets are monthly
// ceilings; categories without one are not budget-tracked.
func DefaultCatalog() Catalog {
	return Catalog{
		{Name: "Food", Color: "bg-orange-500", Icon: "🍽️", MonthlyBudget: ceiling(800)},
		{Name: "Transport", Color: "bg-blue-500", Icon: "🚗", MonthlyBudget: ceiling(400)},
		{Name: "Housing", Color: "bg-green-500", Icon: "🏠", MonthlyBudget: ceiling(1200)},
		{Name: "Health", Color: "bg-red-500", Icon: "🏥", MonthlyBudget: ceiling(300)},
		{Name: "Education", Color: "bg-purple-500", Icon: "📚", MonthlyBudget: ceiling(200)},
		{Name: "Leisure", Color: "bg-pink-500", Icon: "🎮", MonthlyBudget: ceiling(300)},
		{Name: "Clothing", Color: "bg-yellow-500", Icon: "👕", MonthlyBudget: ceiling(200)},
		{Name: "Other", Color: "bg-gray-500", Icon: "📦"},
	}
}

func ceiling(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// Package match scores cities against a monthly budget and ranks them.
package match

import (
	"github.com/shopspring/decimal"

	"basket-match/core/types"
)

// Score measures how closely a city's costs fit a budget as the sum of
// absolute per-category differences, rounded to 2 decimal places.
// Categories absent from the budget are ignored; lower is better and a
// perfect fit scores zero.
func Score(budget types.BudgetVector, costs types.CostRecord) decimal.Decimal {
	total := decimal.Zero
	for category, amount := range budget {
		cost, ok := costs.Get(category)
		if !ok {
			continue
		}
		total = total.Add(amount.Sub(cost).Abs())
	}
	return total.Round(2)
}

// Differences returns budget minus cost per budgeted category; positive
// means the budget exceeds the city's cost in that category.
func Differences(budget types.BudgetVector, costs types.CostRecord) map[types.Category]decimal.Decimal {
	diffs := make(map[types.Category]decimal.Decimal, len(budget))
	for category, amount := range budget {
		cost, ok := costs.Get(category)
		if !ok {
			continue
		}
		diffs[category] = amount.Sub(cost)
	}
	return diffs
}

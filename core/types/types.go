// Package types defines the domain value types shared across the core.
package types

import (
	"github.com/shopspring/decimal"
)

// Category is one of the four canonical monthly cost categories
type Category string

const (
	CategoryRent      Category = "rent"
	CategoryGroceries Category = "groceries"
	CategoryTransport Category = "transport"
	CategoryLeisure   Category = "leisure"
)

// Categories returns the canonical categories in display order
func Categories() []Category {
	return []Category{CategoryRent, CategoryGroceries, CategoryTransport, CategoryLeisure}
}

// String returns the string representation
func (c Category) String() string {
	return string(c)
}

// CostRecord is a normalized monthly cost estimate for one city.
// Amounts are USD-denominated when produced by a source; Convert
// derives a record in a target currency. Records are value types
// and are never mutated in place.
type CostRecord struct {
	// Rent is the monthly one-bedroom housing cost
	Rent decimal.Decimal `json:"rent"`

	// Groceries is the monthly grocery cost
	Groceries decimal.Decimal `json:"groceries"`

	// Transport is the monthly transport cost
	Transport decimal.Decimal `json:"transport"`

	// Leisure is the monthly leisure cost
	Leisure decimal.Decimal `json:"leisure"`
}

// Get returns the amount for a category; ok is false for categories
// the record does not carry
func (r CostRecord) Get(c Category) (decimal.Decimal, bool) {
	switch c {
	case CategoryRent:
		return r.Rent, true
	case CategoryGroceries:
		return r.Groceries, true
	case CategoryTransport:
		return r.Transport, true
	case CategoryLeisure:
		return r.Leisure, true
	default:
		return decimal.Zero, false
	}
}

// Total returns the sum across all categories
func (r CostRecord) Total() decimal.Decimal {
	return r.Rent.Add(r.Groceries).Add(r.Transport).Add(r.Leisure)
}

// Convert returns a new record with every amount multiplied by the
// exchange rate and rounded to 2 decimal places
func (r CostRecord) Convert(rate ExchangeRate) CostRecord {
	return CostRecord{
		Rent:      r.Rent.Mul(rate.RateToTarget).Round(2),
		Groceries: r.Groceries.Mul(rate.RateToTarget).Round(2),
		Transport: r.Transport.Mul(rate.RateToTarget).Round(2),
		Leisure:   r.Leisure.Mul(rate.RateToTarget).Round(2),
	}
}

// BudgetVector is a user's monthly budget by category. It is supplied
// externally and never cached. Categories may be omitted.
type BudgetVector map[Category]decimal.Decimal

// Total returns the sum across all budgeted categories
func (b BudgetVector) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range b {
		total = total.Add(amount)
	}
	return total
}

// ExchangeRate is a USD to target-currency multiplier
type ExchangeRate struct {
	// RateToTarget converts a USD amount into the target currency
	RateToTarget decimal.Decimal `json:"rate_to_target"`

	// LastUpdated is the unix timestamp of the upstream rate publication,
	// zero when unknown
	LastUpdated int64 `json:"last_updated,omitempty"`
}

// Identity returns the 1:1 USD rate
func Identity() ExchangeRate {
	return ExchangeRate{RateToTarget: decimal.NewFromInt(1)}
}

// MatchResult ranks one city against a budget. Derived per request,
// never persisted.
type MatchResult struct {
	// City is the matched city name
	City string `json:"city"`

	// Score is the sum of absolute per-category differences; lower is better
	Score decimal.Decimal `json:"score"`

	// BudgetDifference is budget total minus cost total; positive means surplus
	BudgetDifference decimal.Decimal `json:"budget_difference"`

	// Differences is budget minus cost per category
	Differences map[Category]decimal.Decimal `json:"differences"`

	// Costs is the city's converted cost record
	Costs CostRecord `json:"costs"`
}

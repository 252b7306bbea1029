package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestConvertRoundsToCents(t *testing.T) {
	record := CostRecord{
		Rent:      decimal.NewFromInt(333),
		Groceries: decimal.NewFromInt(100),
		Transport: decimal.NewFromInt(47),
		Leisure:   decimal.NewFromInt(99),
	}
	rate := ExchangeRate{RateToTarget: decimal.RequireFromString("0.333")}

	converted := record.Convert(rate)

	if !converted.Rent.Equal(decimal.RequireFromString("110.89")) {
		t.Errorf("rent = %s, want 110.89", converted.Rent)
	}
	if converted.Transport.Exponent() < -2 {
		t.Errorf("transport = %s, want at most 2 decimal places", converted.Transport)
	}

	// The original record is untouched
	if !record.Rent.Equal(decimal.NewFromInt(333)) {
		t.Errorf("Convert mutated the receiver: %s", record.Rent)
	}
}

func TestConvertIdentityPreservesAmounts(t *testing.T) {
	record := CostRecord{
		Rent:      decimal.RequireFromString("800.5"),
		Groceries: decimal.NewFromInt(250),
		Transport: decimal.NewFromInt(40),
		Leisure:   decimal.NewFromInt(120),
	}

	converted := record.Convert(Identity())
	if !converted.Total().Equal(record.Total()) {
		t.Errorf("identity conversion changed the total: %s vs %s", converted.Total(), record.Total())
	}
}

func TestGetCoversAllCategories(t *testing.T) {
	record := CostRecord{
		Rent:      decimal.NewFromInt(1),
		Groceries: decimal.NewFromInt(2),
		Transport: decimal.NewFromInt(3),
		Leisure:   decimal.NewFromInt(4),
	}

	total := decimal.Zero
	for _, category := range Categories() {
		amount, ok := record.Get(category)
		if !ok {
			t.Fatalf("Get(%s) not ok", category)
		}
		total = total.Add(amount)
	}
	if !total.Equal(record.Total()) {
		t.Errorf("categories sum %s, Total %s", total, record.Total())
	}

	if _, ok := record.Get(Category("utilities")); ok {
		t.Error("Get accepted an unknown category")
	}
}

func TestBudgetTotal(t *testing.T) {
	budget := BudgetVector{
		CategoryRent:      decimal.NewFromInt(1000),
		CategoryGroceries: decimal.NewFromInt(300),
	}
	if !budget.Total().Equal(decimal.NewFromInt(1300)) {
		t.Errorf("total = %s, want 1300", budget.Total())
	}
}

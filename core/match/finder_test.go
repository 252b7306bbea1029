package match

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"basket-match/core/types"
	"basket-match/internal/errors"
)

// fixtureCatalog lists a fixed set of cities
type fixtureCatalog struct {
	cities []string
}

func (c *fixtureCatalog) Cities(_ context.Context) []string {
	return c.cities
}

// fixtureRates always returns the identity rate
type fixtureRates struct{}

func (fixtureRates) Rate(_ context.Context, _ string) types.ExchangeRate {
	return types.Identity()
}

// fixtureResolver serves a fixed table; unlisted cities are not found
type fixtureResolver struct {
	table map[string]types.CostRecord
}

func (r *fixtureResolver) Costs(_ context.Context, city string, rate types.ExchangeRate) (types.CostRecord, error) {
	record, ok := r.table[city]
	if !ok {
		return types.CostRecord{}, errors.NotFound("cost data", city)
	}
	return record.Convert(rate), nil
}

func worldFixture() (*fixtureCatalog, *fixtureResolver) {
	table := map[string]types.CostRecord{
		"Lisbon":  record("800", "250", "40", "120"),
		"Prague":  record("650", "250", "30", "100"),
		"London":  record("1800", "400", "150", "250"),
		"Bangkok": record("500", "200", "30", "100"),
	}
	cities := []string{"Bangkok", "Lisbon", "London", "Prague", "Ruritania"}
	return &fixtureCatalog{cities: cities}, &fixtureResolver{table: table}
}

func TestFindRanksByAscendingScore(t *testing.T) {
	catalog, resolver := worldFixture()
	finder := NewFinder(fixtureRates{}, catalog, resolver)

	budget := fullBudget("800", "250", "40", "120")
	results, err := finder.Find(context.Background(), budget, "USD", Options{})
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}

	if len(results) != 4 {
		t.Fatalf("results = %d, want 4 (Ruritania is unpriceable)", len(results))
	}
	if results[0].City != "Lisbon" {
		t.Errorf("best match = %s, want Lisbon", results[0].City)
	}
	if !results[0].Score.IsZero() {
		t.Errorf("best score = %s, want 0", results[0].Score)
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].Score.GreaterThan(results[i].Score) {
			t.Fatalf("results not sorted at %d: %s > %s", i, results[i-1].Score, results[i].Score)
		}
	}
}

func TestFindBudgetDifference(t *testing.T) {
	catalog, resolver := worldFixture()
	finder := NewFinder(fixtureRates{}, catalog, resolver)

	// Lisbon totals 1210; a 1700 budget leaves a 490 surplus
	budget := fullBudget("1200", "300", "50", "150")
	results, err := finder.Find(context.Background(), budget, "USD", Options{Limit: 1})
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].City != "Lisbon" {
		t.Fatalf("best match = %s, want Lisbon", results[0].City)
	}
	if !results[0].BudgetDifference.Equal(amount("490")) {
		t.Errorf("budget difference = %s, want 490", results[0].BudgetDifference)
	}
}

func TestFindRegionFilter(t *testing.T) {
	catalog, resolver := worldFixture()
	finder := NewFinder(fixtureRates{}, catalog, resolver)

	budget := fullBudget("800", "250", "40", "120")
	results, err := finder.Find(context.Background(), budget, "USD", Options{Region: "Europe"})
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}

	for _, result := range results {
		if result.City == "Bangkok" {
			t.Errorf("Bangkok survived the Europe filter")
		}
	}
	if len(results) != 3 {
		t.Errorf("results = %d, want 3 European cities", len(results))
	}
}

func TestFindUnknownRegionIsInputError(t *testing.T) {
	catalog, resolver := worldFixture()
	finder := NewFinder(fixtureRates{}, catalog, resolver)

	budget := fullBudget("800", "250", "40", "120")
	_, err := finder.Find(context.Background(), budget, "USD", Options{Region: "Middle Earth"})
	if !errors.IsType(err, errors.TypeInput) {
		t.Fatalf("expected an input error for an unknown region, got %v", err)
	}
}

func TestFindMaxBudgetFilter(t *testing.T) {
	catalog, resolver := worldFixture()
	finder := NewFinder(fixtureRates{}, catalog, resolver)

	budget := fullBudget("800", "250", "40", "120")
	max := decimal.NewFromInt(1100)
	results, err := finder.Find(context.Background(), budget, "USD", Options{MaxBudget: &max})
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}

	// Only Prague (1030) and Bangkok (830) total at or under 1100
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	for _, result := range results {
		if result.Costs.Total().GreaterThan(max) {
			t.Errorf("%s totals %s, above the cap", result.City, result.Costs.Total())
		}
	}
}

func TestFindLimit(t *testing.T) {
	catalog, resolver := worldFixture()
	finder := NewFinder(fixtureRates{}, catalog, resolver)

	budget := fullBudget("800", "250", "40", "120")
	results, err := finder.Find(context.Background(), budget, "USD", Options{Limit: 2})
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("results = %d, want 2", len(results))
	}
}

func TestFindEmptyBudgetRejected(t *testing.T) {
	catalog, resolver := worldFixture()
	finder := NewFinder(fixtureRates{}, catalog, resolver)

	_, err := finder.Find(context.Background(), types.BudgetVector{}, "USD", Options{})
	if !errors.IsType(err, errors.TypeInput) {
		t.Fatalf("expected an input error for an empty budget, got %v", err)
	}
}

func TestFindNegativeBudgetRejected(t *testing.T) {
	catalog, resolver := worldFixture()
	finder := NewFinder(fixtureRates{}, catalog, resolver)

	budget := types.BudgetVector{types.CategoryRent: amount("-1")}
	_, err := finder.Find(context.Background(), budget, "USD", Options{})
	if !errors.IsType(err, errors.TypeInput) {
		t.Fatalf("expected an input error for a negative amount, got %v", err)
	}
}

func TestFindConcurrencyDoesNotChangeResults(t *testing.T) {
	catalog, resolver := worldFixture()
	finder := NewFinder(fixtureRates{}, catalog, resolver)
	budget := fullBudget("800", "250", "40", "120")

	sequential, err := finder.Find(context.Background(), budget, "USD", Options{Concurrency: 1})
	if err != nil {
		t.Fatalf("sequential Find returned error: %v", err)
	}
	parallel, err := finder.Find(context.Background(), budget, "USD", Options{Concurrency: 16})
	if err != nil {
		t.Fatalf("parallel Find returned error: %v", err)
	}

	if len(sequential) != len(parallel) {
		t.Fatalf("result counts differ: %d vs %d", len(sequential), len(parallel))
	}
	for i := range sequential {
		if sequential[i].City != parallel[i].City || !sequential[i].Score.Equal(parallel[i].Score) {
			t.Errorf("rank %d differs: %s/%s vs %s/%s",
				i, sequential[i].City, sequential[i].Score, parallel[i].City, parallel[i].Score)
		}
	}
}

package match

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"basket-match/core/regions"
	"basket-match/core/types"
	"basket-match/internal/errors"
	"basket-match/internal/logging"
)

// DefaultConcurrency bounds parallel city resolutions when no explicit
// limit is configured
const DefaultConcurrency = 8

// RateProvider supplies the USD-to-target exchange rate
type RateProvider interface {
	Rate(ctx context.Context, currency string) types.ExchangeRate
}

// CityLister supplies the candidate city names
type CityLister interface {
	Cities(ctx context.Context) []string
}

// CostResolver produces a converted cost record for one city
type CostResolver interface {
	Costs(ctx context.Context, city string, rate types.ExchangeRate) (types.CostRecord, error)
}

// Options narrows and bounds a match run
type Options struct {
	// Region restricts candidates to a named region; empty means all
	Region string

	// MaxBudget excludes cities whose total cost exceeds it, when set
	MaxBudget *decimal.Decimal

	// Limit caps the number of results; zero or negative means all
	Limit int

	// Concurrency bounds parallel city resolutions; zero or negative
	// falls back to DefaultConcurrency
	Concurrency int
}

// Finder ranks catalog cities against a budget
type Finder struct {
	rates    RateProvider
	catalog  CityLister
	resolver CostResolver
}

// NewFinder creates a finder
func NewFinder(rates RateProvider, catalog CityLister, resolver CostResolver) *Finder {
	return &Finder{rates: rates, catalog: catalog, resolver: resolver}
}

// Find resolves costs for every candidate city, scores them against the
// budget, and returns results sorted by ascending score with city name
// as the tiebreak. Cities no source can price are skipped, not errors.
func (f *Finder) Find(ctx context.Context, budget types.BudgetVector, currency string, opts Options) ([]types.MatchResult, error) {
	if len(budget) == 0 {
		return nil, errors.Input("budget carries no categories")
	}
	for category, amount := range budget {
		if amount.IsNegative() {
			return nil, errors.Input("budget amount for " + category.String() + " is negative")
		}
	}

	cities := f.catalog.Cities(ctx)
	if opts.Region != "" {
		regionCities, ok := regions.Cities(opts.Region)
		if !ok {
			return nil, errors.Input("unknown region: " + opts.Region)
		}
		cities = intersect(cities, regionCities)
	}

	rate := f.rates.Rate(ctx, currency)

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	logging.Info("scoring cities against budget",
		zap.Int("cities", len(cities)),
		zap.String("currency", currency),
		zap.Int("concurrency", concurrency))

	results := make([]*types.MatchResult, len(cities))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for i, city := range cities {
		wg.Add(1)
		go func(i int, city string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			costs, err := f.resolver.Costs(ctx, city, rate)
			if err != nil {
				logging.Debug("skipping unpriceable city",
					zap.String("city", city),
					zap.Error(err))
				return
			}

			results[i] = &types.MatchResult{
				City:             city,
				Score:            Score(budget, costs),
				BudgetDifference: budget.Total().Sub(costs.Total()),
				Differences:      Differences(budget, costs),
				Costs:            costs,
			}
		}(i, city)
	}
	wg.Wait()

	matches := make([]types.MatchResult, 0, len(cities))
	for _, result := range results {
		if result == nil {
			continue
		}
		if opts.MaxBudget != nil && result.Costs.Total().GreaterThan(*opts.MaxBudget) {
			continue
		}
		matches = append(matches, *result)
	}

	sort.Slice(matches, func(a, b int) bool {
		cmp := matches[a].Score.Cmp(matches[b].Score)
		if cmp != 0 {
			return cmp < 0
		}
		return matches[a].City < matches[b].City
	})

	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	return matches, nil
}

// intersect keeps the cities present in both lists, preserving the
// order of the first
func intersect(cities, allowed []string) []string {
	set := make(map[string]struct{}, len(allowed))
	for _, city := range allowed {
		set[city] = struct{}{}
	}
	out := make([]string, 0, len(cities))
	for _, city := range cities {
		if _, ok := set[city]; ok {
			out = append(out, city)
		}
	}
	return out
}

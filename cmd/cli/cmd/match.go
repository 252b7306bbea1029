// Package cmd - match command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"basket-match/core/match"
	"basket-match/core/types"
	"basket-match/internal/config"
	"basket-match/internal/logging"
)

var (
	budgetRent      float64
	budgetGroceries float64
	budgetTransport float64
	budgetLeisure   float64
	matchCurrency   string
	matchRegion     string
	maxBudget       float64
	matchLimit      int
	matchFormat     string
	matchWorkers    int
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank cities by how well their costs fit your budget",
	Long: `Score every known city against your monthly budget and list the
closest fits. Categories you leave at zero still count: a zero budget
for a category rewards cities where that category is cheap.

Examples:
  basket-match match --rent 1200 --groceries 300 --transport 100 --leisure 200
  basket-match match --rent 900 --groceries 250 --currency EUR --region Europe
  basket-match match --rent 800 --max-budget 1500 --limit 5 --format json`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().Float64Var(&budgetRent, "rent", 0, "monthly rent budget")
	matchCmd.Flags().Float64Var(&budgetGroceries, "groceries", 0, "monthly groceries budget")
	matchCmd.Flags().Float64Var(&budgetTransport, "transport", 0, "monthly transport budget")
	matchCmd.Flags().Float64Var(&budgetLeisure, "leisure", 0, "monthly leisure budget")
	matchCmd.Flags().StringVarP(&matchCurrency, "currency", "c", "", "target currency (default from config)")
	matchCmd.Flags().StringVarP(&matchRegion, "region", "r", "", "restrict to a region")
	matchCmd.Flags().Float64Var(&maxBudget, "max-budget", 0, "exclude cities whose total cost exceeds this")
	matchCmd.Flags().IntVarP(&matchLimit, "limit", "l", 10, "maximum number of results (0 for all)")
	matchCmd.Flags().StringVarP(&matchFormat, "format", "f", "cli", "output format (cli, json)")
	matchCmd.Flags().IntVar(&matchWorkers, "concurrency", 0, "parallel city lookups (default from config)")
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	start := time.Now()
	cfg := config.Get()

	budget := types.BudgetVector{
		types.CategoryRent:      decimal.NewFromFloat(budgetRent),
		types.CategoryGroceries: decimal.NewFromFloat(budgetGroceries),
		types.CategoryTransport: decimal.NewFromFloat(budgetTransport),
		types.CategoryLeisure:   decimal.NewFromFloat(budgetLeisure),
	}
	if budget.Total().IsZero() {
		return fmt.Errorf("set at least one budget category (--rent, --groceries, --transport, --leisure)")
	}

	currency := strings.ToUpper(matchCurrency)
	if currency == "" {
		currency = cfg.Currency
	}

	opts := match.Options{
		Region:      matchRegion,
		Limit:       matchLimit,
		Concurrency: matchWorkers,
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = cfg.Match.Concurrency
	}
	if maxBudget > 0 {
		ceiling := decimal.NewFromFloat(maxBudget)
		opts.MaxBudget = &ceiling
	}

	comp, err := buildComponents()
	if err != nil {
		return err
	}

	logging.Info("matching cities against budget")
	results, err := comp.finder.Find(ctx, budget, currency, opts)
	if err != nil {
		return err
	}

	if matchFormat == "json" {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	printMatchTable(budget, currency, results, time.Since(start))
	return nil
}

func printMatchTable(budget types.BudgetVector, currency string, results []types.MatchResult, elapsed time.Duration) {
	fmt.Printf("Monthly budget: %s %s", budget.Total().StringFixed(2), currency)
	fmt.Printf("  (rent %s, groceries %s, transport %s, leisure %s)\n\n",
		budget[types.CategoryRent].StringFixed(0),
		budget[types.CategoryGroceries].StringFixed(0),
		budget[types.CategoryTransport].StringFixed(0),
		budget[types.CategoryLeisure].StringFixed(0))

	if len(results) == 0 {
		fmt.Println("No cities matched the given filters.")
		return
	}

	fmt.Printf("%-4s %-20s %10s %10s %10s %10s %10s %10s\n",
		"#", "City", "Score", "Rent", "Grocer.", "Transp.", "Leisure", "Surplus")
	fmt.Println(strings.Repeat("-", 92))

	for i, result := range results {
		fmt.Printf("%-4d %-20s %10s %10s %10s %10s %10s %10s\n",
			i+1,
			result.City,
			result.Score.StringFixed(2),
			result.Costs.Rent.StringFixed(0),
			result.Costs.Groceries.StringFixed(0),
			result.Costs.Transport.StringFixed(0),
			result.Costs.Leisure.StringFixed(0),
			result.BudgetDifference.StringFixed(2))
	}

	fmt.Printf("\n%d cities in %s. Lower scores fit the budget closer; a positive\nsurplus means the budget covers the city's total costs.\n",
		len(results), elapsed.Round(time.Millisecond))
}

// Package cmd - rate command
package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// rateCmd shows the USD exchange rate for a currency
var rateCmd = &cobra.Command{
	Use:   "rate [currency]",
	Short: "Show the USD exchange rate for a currency",
	Long: `Show the multiplier used to convert USD cost estimates into the
given currency. Rates come from the exchange rate API when a key is
configured, from the cache when fresh, and from built-in approximations
otherwise.

Examples:
  basket-match rate EUR
  basket-match rate JPY`,
	Args: cobra.ExactArgs(1),
	RunE: runRate,
}

func runRate(cmd *cobra.Command, args []string) error {
	currency := strings.ToUpper(args[0])
	if len(currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter ISO code, got %q", args[0])
	}

	comp, err := buildComponents()
	if err != nil {
		return err
	}

	rate := comp.converter.Rate(context.Background(), currency)

	fmt.Printf("1 USD = %s %s\n", rate.RateToTarget.String(), currency)
	if rate.LastUpdated > 0 {
		fmt.Printf("Rate published %s\n", time.Unix(rate.LastUpdated, 0).UTC().Format(time.RFC3339))
	} else {
		fmt.Println("Using a built-in approximate rate.")
	}
	return nil
}

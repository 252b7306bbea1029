// Package cmd - cities command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"basket-match/core/regions"
)

var citiesRegion string

// citiesCmd lists the cities the matcher can score
var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List the cities available for matching",
	Long: `List every city the matcher can score, optionally restricted to a
region. The list merges remote coverage (when credentials are
configured) with the built-in tables.

Examples:
  basket-match cities
  basket-match cities --region Europe`,
	RunE: runCities,
}

func init() {
	citiesCmd.Flags().StringVarP(&citiesRegion, "region", "r", "", "restrict to a region")
}

func runCities(cmd *cobra.Command, args []string) error {
	comp, err := buildComponents()
	if err != nil {
		return err
	}

	cities := comp.catalog.Cities(context.Background())

	if citiesRegion != "" {
		regionCities, ok := regions.Cities(citiesRegion)
		if !ok {
			return fmt.Errorf("unknown region %q (known: %v)", citiesRegion, regions.Names())
		}
		allowed := make(map[string]struct{}, len(regionCities))
		for _, city := range regionCities {
			allowed[city] = struct{}{}
		}
		filtered := cities[:0]
		for _, city := range cities {
			if _, ok := allowed[city]; ok {
				filtered = append(filtered, city)
			}
		}
		cities = filtered
	}

	for _, city := range cities {
		fmt.Println(city)
	}
	fmt.Printf("\n%d cities\n", len(cities))
	return nil
}

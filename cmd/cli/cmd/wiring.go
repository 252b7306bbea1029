package cmd

import (
	"fmt"

	"basket-match/core/cache"
	"basket-match/core/catalog"
	"basket-match/core/costs"
	"basket-match/core/currency"
	"basket-match/core/match"
	"basket-match/internal/config"
)

// components holds the wired core for one command invocation
type components struct {
	store     cache.Store
	converter *currency.Converter
	rapidAPI  *costs.RapidAPISource
	catalog   *catalog.Catalog
	finder    *match.Finder
}

// buildComponents wires the core from the effective configuration
func buildComponents() (*components, error) {
	cfg := config.Get()

	var store cache.Store = cache.NopStore{}
	if cfg.Cache.Enabled {
		fileStore, err := cache.NewFileStore(cfg.Cache.Directory)
		if err != nil {
			return nil, fmt.Errorf("opening cache directory: %w", err)
		}
		store = fileStore
	}

	converter := currency.NewConverter(store, cfg.Sources.ExchangeRateAPIKey)
	rapidAPI := costs.NewRapidAPISource(store, cfg.Sources.RapidAPIKey)
	teleport := costs.NewTeleportSource(store)
	resolver := costs.DefaultResolver(rapidAPI, teleport)
	cityCatalog := catalog.New(store, rapidAPI)

	return &components{
		store:     store,
		converter: converter,
		rapidAPI:  rapidAPI,
		catalog:   cityCatalog,
		finder:    match.NewFinder(converter, cityCatalog, resolver),
	}, nil
}

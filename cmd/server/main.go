// Package main - Entry point for the basket-match API server
package main

import (
	"flag"
	"fmt"
	"os"

	"basket-match/api"
	"basket-match/core/cache"
	"basket-match/core/catalog"
	"basket-match/core/costs"
	"basket-match/core/currency"
	"basket-match/core/match"
	"basket-match/internal/config"
	"basket-match/internal/logging"
)

const version = "0.1.0"

func main() {
	addr := flag.String("addr", "", "listen address (default from config)")
	cfgFile := flag.String("config", "", "config file path")
	flag.Parse()

	path := *cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}

	var store cache.Store = cache.NopStore{}
	if cfg.Cache.Enabled {
		fileStore, err := cache.NewFileStore(cfg.Cache.Directory)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening cache directory: %v\n", err)
			os.Exit(1)
		}
		store = fileStore
	}

	converter := currency.NewConverter(store, cfg.Sources.ExchangeRateAPIKey)
	rapidAPI := costs.NewRapidAPISource(store, cfg.Sources.RapidAPIKey)
	teleport := costs.NewTeleportSource(store)
	resolver := costs.DefaultResolver(rapidAPI, teleport)
	cityCatalog := catalog.New(store, rapidAPI)
	finder := match.NewFinder(converter, cityCatalog, resolver)

	server := api.NewServer(version, cfg.Currency, finder, cityCatalog, converter, cfg.Server.EnableCORS)

	listenAddr := *addr
	if listenAddr == "" {
		listenAddr = cfg.Server.Address
	}

	fmt.Printf("basket-match server v%s listening on %s\n", version, listenAddr)
	if err := server.ListenAndServe(listenAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// Package catalog assembles the list of cities the matcher can score.
package catalog

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"basket-match/core/cache"
	"basket-match/core/costs"
	"basket-match/internal/logging"
)

// CityLister supplies remotely-discovered city names; failures surface
// as an empty list.
type CityLister interface {
	Cities(ctx context.Context) []string
}

// Catalog merges remote and built-in city coverage. The merged list is
// cached under its own key with a weekly freshness window.
type Catalog struct {
	store   cache.Store
	primary CityLister
}

// New creates a catalog backed by a cache store and a primary lister
func New(store cache.Store, primary CityLister) *Catalog {
	return &Catalog{store: store, primary: primary}
}

// Cities returns the deduplicated, sorted union of the primary source's
// city list and the names of the built-in tables. The union is never
// empty: the built-in tables always contribute.
func (c *Catalog) Cities(ctx context.Context) []string {
	const cacheKey = "all_cities"

	if cities, ok := cache.ReadFresh[[]string](c.store, cacheKey, cache.TTLWeekly); ok && len(cities) > 0 {
		logging.Debug("using cached city catalog", zap.Int("count", len(cities)))
		return cities
	}

	seen := make(map[string]struct{})

	if c.primary != nil {
		for _, city := range c.primary.Cities(ctx) {
			seen[city] = struct{}{}
		}
	}
	for _, city := range costs.KnownCities() {
		seen[city] = struct{}{}
	}
	for _, city := range costs.StaticCities() {
		seen[city] = struct{}{}
	}

	cities := make([]string, 0, len(seen))
	for city := range seen {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	if err := cache.Write(c.store, cacheKey, cities); err != nil {
		logging.Warn("failed to cache city catalog", zap.Error(err))
	}

	logging.Info("assembled city catalog", zap.Int("count", len(cities)))
	return cities
}

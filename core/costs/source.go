// Package costs resolves normalized four-category cost records for cities.
// Three sources are tried in fixed order: the RapidAPI cost-of-living API,
// the Teleport urban area API, and a built-in static table. Each source
// produces USD-denominated records and caches its own raw result; the
// resolver converts the first hit into the target currency.
package costs

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"basket-match/core/types"
	"basket-match/internal/errors"
	"basket-match/internal/logging"
)

// Source is one cost-lookup tier. Resolve returns a USD-denominated
// record, or an errors.TypeUnavailable error when the source has nothing
// to say about the city. Any other error is a genuine fault; the resolver
// still falls through, but logs it louder.
type Source interface {
	// Name identifies the source in logs and cache keys
	Name() string

	// Resolve produces a USD cost record for a city
	Resolve(ctx context.Context, city string) (*types.CostRecord, error)
}

// Resolver composes sources into an ordered fallback chain
type Resolver struct {
	sources []Source
}

// NewResolver creates a resolver trying sources in the given order
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// DefaultResolver wires the standard three-tier chain
func DefaultResolver(rapidAPI *RapidAPISource, teleport *TeleportSource) *Resolver {
	return NewResolver(rapidAPI, teleport, NewStaticSource())
}

// Costs resolves a city's costs through the tier chain and converts the
// first hit with the supplied exchange rate. Source failures never
// propagate; when every tier declines the result is a NOT_FOUND error
// for this one city.
func (r *Resolver) Costs(ctx context.Context, city string, rate types.ExchangeRate) (types.CostRecord, error) {
	for _, source := range r.sources {
		record, err := source.Resolve(ctx, city)
		if err != nil {
			if errors.IsUnavailable(err) {
				logging.Debug("cost source declined",
					zap.String("source", source.Name()),
					zap.String("city", city),
					zap.Error(err))
			} else {
				logging.Warn("cost source failed",
					zap.String("source", source.Name()),
					zap.String("city", city),
					zap.Error(err))
			}
			continue
		}

		logging.Info("resolved city costs",
			zap.String("source", source.Name()),
			zap.String("city", city))
		return record.Convert(rate), nil
	}

	return types.CostRecord{}, errors.NotFound("cost data", city)
}

// containsAny reports whether s contains at least one of the substrings
func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

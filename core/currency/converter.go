// Package currency resolves USD to target-currency exchange rates.
// Rates come from the exchangerate-api.com v6 endpoint, are cached for a
// day, and degrade to a static table when the remote source is unusable.
// Resolution never fails: the static tier always yields a multiplier.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"basket-match/core/cache"
	"basket-match/core/types"
	"basket-match/internal/logging"
)

const (
	defaultBaseURL = "https://v6.exchangerate-api.com"
	cacheKeyPrefix = "exchange_"

	requestTimeout = 10 * time.Second
	maxAttempts    = 3
	retryBackoff   = 1 * time.Second
)

// fallbackRates are approximate USD multipliers used when the remote
// source is unreachable. Unlisted currencies fall back to 1.0.
var fallbackRates = map[string]string{
	"EUR": "0.92",
	"GBP": "0.78",
	"JPY": "110.0",
	"AUD": "1.35",
	"CAD": "1.25",
}

// Converter resolves exchange rates with caching and a static fallback
type Converter struct {
	store   cache.Store
	client  *http.Client
	apiKey  string
	baseURL string
	backoff time.Duration
}

// NewConverter creates a converter. An empty apiKey disables the remote
// source, so every non-USD request resolves from the static table.
func NewConverter(store cache.Store, apiKey string) *Converter {
	return &Converter{
		store:   store,
		client:  &http.Client{Timeout: requestTimeout},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		backoff: retryBackoff,
	}
}

// apiResponse is the exchangerate-api.com v6 payload
type apiResponse struct {
	Result             string                     `json:"result"`
	TimeLastUpdateUnix int64                      `json:"time_last_update_unix"`
	ConversionRates    map[string]decimal.Decimal `json:"conversion_rates"`
	ErrorType          string                     `json:"error-type"`
}

// Rate resolves the USD rate for a target currency.
//
// USD short-circuits to the identity rate with no cache or network access.
// Fallback rates are deliberately not cached so the next call retries the
// remote source.
func (c *Converter) Rate(ctx context.Context, target string) types.ExchangeRate {
	if target == "USD" {
		return types.Identity()
	}

	cacheKey := cacheKeyPrefix + target
	if rate, ok := cache.ReadFresh[types.ExchangeRate](c.store, cacheKey, cache.TTLDaily); ok {
		logging.Debug("using cached exchange rate", zap.String("currency", target))
		return rate
	}

	if c.apiKey == "" {
		logging.Warn("exchange rate key not configured, using fallback rate",
			zap.String("currency", target))
		return c.fallback(target)
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		rate, err := c.fetch(ctx, target)
		if err == nil {
			if err := cache.Write(c.store, cacheKey, rate); err != nil {
				logging.Warn("failed to cache exchange rate", zap.Error(err))
			}
			return rate
		}

		logging.Warn("exchange rate fetch failed",
			zap.String("currency", target),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Error(err))

		if attempt < maxAttempts {
			time.Sleep(c.backoff)
		}
	}

	logging.Warn("exchange rate retries exhausted, using fallback rate",
		zap.String("currency", target))
	return c.fallback(target)
}

// fetch performs one remote lookup
func (c *Converter) fetch(ctx context.Context, target string) (types.ExchangeRate, error) {
	url := fmt.Sprintf("%s/v6/%s/latest/USD", c.baseURL, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return types.ExchangeRate{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return types.ExchangeRate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.ExchangeRate{}, fmt.Errorf("rate endpoint returned status %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return types.ExchangeRate{}, fmt.Errorf("malformed rate response: %w", err)
	}

	if body.Result != "success" {
		return types.ExchangeRate{}, fmt.Errorf("rate endpoint reported %q (%s)", body.Result, body.ErrorType)
	}

	rate, ok := body.ConversionRates[target]
	if !ok {
		return types.ExchangeRate{}, fmt.Errorf("no conversion rate for %s", target)
	}

	updated := body.TimeLastUpdateUnix
	if updated == 0 {
		updated = time.Now().Unix()
	}

	return types.ExchangeRate{RateToTarget: rate, LastUpdated: updated}, nil
}

// fallback resolves a rate from the static table
func (c *Converter) fallback(target string) types.ExchangeRate {
	rate := decimal.NewFromInt(1)
	if s, ok := fallbackRates[target]; ok {
		rate = decimal.RequireFromString(s)
	}
	return types.ExchangeRate{RateToTarget: rate, LastUpdated: time.Now().Unix()}
}

// Package costs - RapidAPI cost-of-living source (primary tier)
package costs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"basket-match/core/cache"
	"basket-match/core/types"
	"basket-match/internal/errors"
	"basket-match/internal/logging"
)

const (
	rapidAPIBaseURL = "https://cost-of-living-and-prices.p.rapidapi.com"
	rapidAPIHost    = "cost-of-living-and-prices.p.rapidapi.com"

	rapidAPITimeout = 10 * time.Second
)

// Keyword sets driving line-item classification. Matching is substring
// based against the lowercased item name; the first matching category in
// rent -> groceries -> transport -> leisure order wins.
var (
	rapidAPIRentKeywords      = []string{"rent", "apartment", "housing"}
	rapidAPIOneBedQualifiers  = []string{"one bedroom", "1 bedroom", "1-bedroom"}
	rapidAPIGroceryKeywords   = []string{"food", "grocery", "market", "supermarket", "milk", "bread", "rice", "eggs", "cheese", "meat"}
	rapidAPITransportKeywords = []string{"transport", "transportation", "bus", "train", "taxi", "gasoline", "fuel", "public transport"}
	rapidAPILeisureKeywords   = []string{"leisure", "entertainment", "restaurant", "cinema", "theater", "gym", "fitness", "sports"}
)

// Scaling assumptions for per-unit prices
var (
	// Per-kg and per-liter grocery prices assume 4 units a month
	rapidAPIGroceryUnitsPerMonth = decimal.NewFromInt(4)

	// One-way transport fares assume 40 trips a month
	rapidAPITripsPerMonth = decimal.NewFromInt(40)

	// Per-visit leisure prices assume 4 visits a month
	rapidAPILeisureVisitsPerMonth = decimal.NewFromInt(4)
)

// Rent back-estimation ratios and category floors
var (
	rapidAPIThreeBedRatio  = decimal.RequireFromString("0.6")
	rapidAPIStudioRatio    = decimal.RequireFromString("1.2")
	rapidAPIRentOtherRatio = decimal.RequireFromString("1.5")
	rapidAPIDefaultRent    = decimal.NewFromInt(1000)

	rapidAPIGroceriesFloor = decimal.NewFromInt(200)
	rapidAPITransportFloor = decimal.NewFromInt(50)
	rapidAPILeisureFloor   = decimal.NewFromInt(100)
)

// RapidAPISource fetches line-item prices from the RapidAPI
// cost-of-living endpoint and aggregates them into the four categories.
// Without an API key the source declines every city.
type RapidAPISource struct {
	store   cache.Store
	client  *http.Client
	apiKey  string
	baseURL string
}

// NewRapidAPISource creates the primary source
func NewRapidAPISource(store cache.Store, apiKey string) *RapidAPISource {
	return &RapidAPISource{
		store:   store,
		client:  &http.Client{Timeout: rapidAPITimeout},
		apiKey:  apiKey,
		baseURL: rapidAPIBaseURL,
	}
}

// Name implements Source
func (s *RapidAPISource) Name() string {
	return "rapidapi"
}

// CitySlug normalizes a city name for use in cache keys and queries:
// lowercase, spaces to underscores, commas stripped.
func CitySlug(city string) string {
	slug := strings.ToLower(city)
	slug = strings.ReplaceAll(slug, " ", "_")
	slug = strings.ReplaceAll(slug, ",", "")
	return slug
}

// rapidAPIPricesResponse is the /prices payload
type rapidAPIPricesResponse struct {
	Prices []rapidAPIItem `json:"prices"`
}

// rapidAPIItem is one price line item
type rapidAPIItem struct {
	ItemName string `json:"item_name"`
	USD      struct {
		Avg decimal.Decimal `json:"avg"`
	} `json:"usd"`
}

// Resolve implements Source
func (s *RapidAPISource) Resolve(ctx context.Context, city string) (*types.CostRecord, error) {
	cacheKey := "rapidapi_" + CitySlug(city)
	if record, ok := cache.ReadFresh[types.CostRecord](s.store, cacheKey, cache.TTLDaily); ok {
		logging.Debug("using cached rapidapi costs", zap.String("city", city))
		return &record, nil
	}

	if s.apiKey == "" {
		return nil, errors.Unavailable(s.Name(), "no API key configured")
	}

	items, err := s.fetchPrices(ctx, city)
	if err != nil {
		return nil, err
	}

	record := classifyRapidAPIItems(items)

	if err := cache.Write(s.store, cacheKey, record); err != nil {
		logging.Warn("failed to cache rapidapi costs", zap.String("city", city), zap.Error(err))
	}

	return &record, nil
}

// fetchPrices calls the /prices endpoint for a city
func (s *RapidAPISource) fetchPrices(ctx context.Context, city string) ([]rapidAPIItem, error) {
	url := fmt.Sprintf("%s/prices?city_name=%s", s.baseURL, strings.ReplaceAll(city, " ", "%20"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Source("building rapidapi request", err)
	}
	req.Header.Set("X-RapidAPI-Key", s.apiKey)
	req.Header.Set("X-RapidAPI-Host", rapidAPIHost)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Network("rapidapi request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Source(fmt.Sprintf("rapidapi returned status %d", resp.StatusCode), nil)
	}

	var body rapidAPIPricesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Source("malformed rapidapi response", err)
	}

	if body.Prices == nil {
		return nil, errors.Source("rapidapi response carried no prices list", nil)
	}

	return body.Prices, nil
}

// classifyRapidAPIItems maps line items onto the four categories using the
// keyword tables and scaling assumptions, then normalizes the aggregate.
func classifyRapidAPIItems(items []rapidAPIItem) types.CostRecord {
	rent := decimal.Zero
	groceries := decimal.Zero
	transport := decimal.Zero
	leisure := decimal.Zero

	for _, item := range items {
		name := strings.ToLower(item.ItemName)
		price := item.USD.Avg

		switch {
		case containsAny(name, rapidAPIRentKeywords):
			// Only a one-bedroom listing sets rent directly; other
			// housing items are consumed without contributing
			if containsAny(name, rapidAPIOneBedQualifiers) {
				rent = price
			}

		case containsAny(name, rapidAPIGroceryKeywords):
			if strings.Contains(name, "price per") {
				if strings.Contains(name, "kg") || strings.Contains(name, "liter") {
					groceries = groceries.Add(price.Mul(rapidAPIGroceryUnitsPerMonth))
				} else {
					groceries = groceries.Add(price)
				}
			} else {
				groceries = groceries.Add(price)
			}

		case containsAny(name, rapidAPITransportKeywords):
			if strings.Contains(name, "monthly") {
				transport = transport.Add(price)
			} else if strings.Contains(name, "one-way") || strings.Contains(name, "single") {
				transport = transport.Add(price.Mul(rapidAPITripsPerMonth))
			} else {
				transport = transport.Add(price)
			}

		case containsAny(name, rapidAPILeisureKeywords):
			if strings.Contains(name, "monthly") {
				leisure = leisure.Add(price)
			} else {
				leisure = leisure.Add(price.Mul(rapidAPILeisureVisitsPerMonth))
			}
		}
	}

	// Back-estimate rent from other housing listings when no one-bedroom
	// item was found
	if rent.IsZero() {
		for _, item := range items {
			name := strings.ToLower(item.ItemName)
			price := item.USD.Avg

			if strings.Contains(name, "rent") || strings.Contains(name, "apartment") {
				if strings.Contains(name, "three bedroom") || strings.Contains(name, "3 bedroom") {
					rent = price.Mul(rapidAPIThreeBedRatio)
					break
				}
				if strings.Contains(name, "studio") {
					rent = price.Mul(rapidAPIStudioRatio)
					break
				}
			}
		}
	}

	// Clamp to per-category floors to avoid near-zero noise
	groceries = decimal.Max(groceries, rapidAPIGroceriesFloor)
	transport = decimal.Max(transport, rapidAPITransportFloor)
	leisure = decimal.Max(leisure, rapidAPILeisureFloor)

	// Last-resort rent estimate from the other categories
	if rent.IsZero() {
		others := groceries.Add(transport).Add(leisure)
		if others.IsPositive() {
			rent = others.Mul(rapidAPIRentOtherRatio)
		} else {
			rent = rapidAPIDefaultRent
		}
	}

	return types.CostRecord{
		Rent:      rent,
		Groceries: groceries,
		Transport: transport,
		Leisure:   leisure,
	}
}

// Cities fetches the list of city names the API covers. Failures and a
// missing credential yield an empty list, never an error; the result is
// cached for a week under its own key.
func (s *RapidAPISource) Cities(ctx context.Context) []string {
	const cacheKey = "rapidapi_cities"

	if cities, ok := cache.ReadFresh[[]string](s.store, cacheKey, cache.TTLWeekly); ok {
		return cities
	}

	if s.apiKey == "" {
		logging.Debug("rapidapi key not configured, skipping remote city list")
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/cities", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("X-RapidAPI-Key", s.apiKey)
	req.Header.Set("X-RapidAPI-Host", rapidAPIHost)

	resp, err := s.client.Do(req)
	if err != nil {
		logging.Warn("rapidapi city list request failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logging.Warn("rapidapi city list returned error status", zap.Int("status", resp.StatusCode))
		return nil
	}

	var body struct {
		Cities []struct {
			CityName string `json:"city_name"`
		} `json:"cities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logging.Warn("malformed rapidapi city list", zap.Error(err))
		return nil
	}
	if body.Cities == nil {
		logging.Warn("rapidapi city list carried no cities field")
		return nil
	}

	cities := make([]string, 0, len(body.Cities))
	for _, c := range body.Cities {
		cities = append(cities, c.CityName)
	}

	if err := cache.Write(s.store, cacheKey, cities); err != nil {
		logging.Warn("failed to cache rapidapi city list", zap.Error(err))
	}

	return cities
}

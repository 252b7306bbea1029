// Package costs - Teleport urban area source (secondary tier)
package costs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
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
	teleportBaseURL = "https://api.teleport.org"

	teleportTimeout     = 10 * time.Second
	teleportMaxAttempts = 3
	teleportBackoff     = 1 * time.Second
)

// Keyword sets for Teleport data-point IDs. Classification is an
// exclusive first-match chain in rent -> groceries -> transport ->
// leisure order; an item counted as rent never also counts elsewhere.
var (
	teleportGroceryKeywords   = []string{"market", "food", "groceries", "supermarket"}
	teleportTransportKeywords = []string{"transport", "transit", "transportation", "bus", "train", "subway", "taxi"}
	teleportLeisureKeywords   = []string{"leisure", "restaurant", "entertainment", "fitness", "cinema", "sports", "gym"}
)

// Scaling and normalization constants. The aggregate scales differ from
// the RapidAPI tier because Teleport reports broader per-category price
// points; the factors avoid over-counting.
var (
	teleportStudioRatio    = decimal.RequireFromString("1.2")
	teleportGroceryScale   = decimal.RequireFromString("0.25")
	teleportTransportScale = decimal.RequireFromString("0.5")
	teleportLeisureScale   = decimal.RequireFromString("0.25")

	teleportGroceriesFloor = decimal.NewFromInt(150)
	teleportTransportFloor = decimal.NewFromInt(30)
	teleportLeisureFloor   = decimal.NewFromInt(50)

	// Rent back-estimate weights: 3x groceries + 2x transport + 2x leisure
	teleportRentGroceryWeight   = decimal.NewFromInt(3)
	teleportRentTransportWeight = decimal.NewFromInt(2)
	teleportRentLeisureWeight   = decimal.NewFromInt(2)
)

// TeleportSource fetches urban area cost details from the Teleport API.
// Cities are addressed through a static name-to-slug table; unknown
// cities decline. No credential is required.
type TeleportSource struct {
	store   cache.Store
	client  *http.Client
	baseURL string
	backoff time.Duration
}

// NewTeleportSource creates the secondary source
func NewTeleportSource(store cache.Store) *TeleportSource {
	return &TeleportSource{
		store:   store,
		client:  &http.Client{Timeout: teleportTimeout},
		baseURL: teleportBaseURL,
		backoff: teleportBackoff,
	}
}

// Name implements Source
func (s *TeleportSource) Name() string {
	return "teleport"
}

// SlugFor resolves a city name to its Teleport slug, trying an exact
// match first and then substring containment in either direction (so
// "New York City" still finds "New York"). Candidates are scanned in
// sorted name order for determinism.
func SlugFor(city string) (string, bool) {
	if slug, ok := teleportCities[city]; ok {
		return slug, true
	}

	names := make([]string, 0, len(teleportCities))
	for name := range teleportCities {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.Contains(name, city) || strings.Contains(city, name) {
			return teleportCities[name], true
		}
	}
	return "", false
}

// teleportDetailsResponse is the urban area details payload
type teleportDetailsResponse struct {
	Categories []struct {
		Data []teleportDataPoint `json:"data"`
	} `json:"categories"`
}

// teleportDataPoint is one cost data point
type teleportDataPoint struct {
	ID                  string          `json:"id"`
	CurrencyDollarValue decimal.Decimal `json:"currency_dollar_value"`
}

// Resolve implements Source
func (s *TeleportSource) Resolve(ctx context.Context, city string) (*types.CostRecord, error) {
	slug, ok := SlugFor(city)
	if !ok {
		return nil, errors.Unavailable(s.Name(), "no slug mapping for city")
	}

	cacheKey := "teleport_" + slug
	if record, ok := cache.ReadFresh[types.CostRecord](s.store, cacheKey, cache.TTLDaily); ok {
		logging.Debug("using cached teleport costs", zap.String("city", city))
		return &record, nil
	}

	var lastErr error
	for attempt := 1; attempt <= teleportMaxAttempts; attempt++ {
		points, err := s.fetchDetails(ctx, slug)
		if err == nil {
			record := classifyTeleportPoints(points)

			if err := cache.Write(s.store, cacheKey, record); err != nil {
				logging.Warn("failed to cache teleport costs", zap.String("city", city), zap.Error(err))
			}
			return &record, nil
		}

		lastErr = err
		logging.Warn("teleport fetch failed",
			zap.String("city", city),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", teleportMaxAttempts),
			zap.Error(err))

		if attempt < teleportMaxAttempts {
			time.Sleep(s.backoff)
		}
	}

	return nil, errors.Source("teleport retries exhausted", lastErr)
}

// fetchDetails performs one details request for a slug
func (s *TeleportSource) fetchDetails(ctx context.Context, slug string) ([]teleportDataPoint, error) {
	url := fmt.Sprintf("%s/api/urban_areas/slug:%s/details/", s.baseURL, slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("teleport returned status %d", resp.StatusCode)
	}

	var body teleportDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("malformed teleport response: %w", err)
	}
	if body.Categories == nil {
		return nil, fmt.Errorf("teleport response carried no categories")
	}

	var points []teleportDataPoint
	for _, category := range body.Categories {
		points = append(points, category.Data...)
	}
	return points, nil
}

// classifyTeleportPoints aggregates data points into the four categories
func classifyTeleportPoints(points []teleportDataPoint) types.CostRecord {
	rent := decimal.Zero
	groceries := decimal.Zero
	transport := decimal.Zero
	leisure := decimal.Zero

	for _, point := range points {
		id := strings.ToLower(point.ID)
		val := point.CurrencyDollarValue

		switch {
		case strings.Contains(id, "apartment") && strings.Contains(id, "1bed"):
			rent = val
		case strings.Contains(id, "studio") && strings.Contains(id, "apartment") && rent.IsZero():
			// Adjust a studio price up to approximate a one-bedroom
			rent = val.Mul(teleportStudioRatio)
		case strings.Contains(id, "apartment") && strings.Contains(id, "medium") && rent.IsZero():
			rent = val
		case containsAny(id, teleportGroceryKeywords):
			groceries = groceries.Add(val.Mul(teleportGroceryScale))
		case containsAny(id, teleportTransportKeywords):
			transport = transport.Add(val.Mul(teleportTransportScale))
		case containsAny(id, teleportLeisureKeywords):
			leisure = leisure.Add(val.Mul(teleportLeisureScale))
		}
	}

	groceries = decimal.Max(groceries, teleportGroceriesFloor)
	transport = decimal.Max(transport, teleportTransportFloor)
	leisure = decimal.Max(leisure, teleportLeisureFloor)

	if rent.IsZero() {
		rent = groceries.Mul(teleportRentGroceryWeight).
			Add(transport.Mul(teleportRentTransportWeight)).
			Add(leisure.Mul(teleportRentLeisureWeight))
	}

	return types.CostRecord{
		Rent:      rent,
		Groceries: groceries,
		Transport: transport,
		Leisure:   leisure,
	}
}

// KnownCities returns the names in the slug table
func KnownCities() []string {
	names := make([]string, 0, len(teleportCities))
	for name := range teleportCities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package costs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"basket-match/internal/errors"
)

func point(id string, value string) teleportDataPoint {
	return teleportDataPoint{
		ID:                  id,
		CurrencyDollarValue: decimal.RequireFromString(value),
	}
}

func TestSlugForExactMatch(t *testing.T) {
	slug, ok := SlugFor("Lisbon")
	if !ok || slug != "lisbon" {
		t.Errorf("SlugFor(Lisbon) = (%q, %v), want (lisbon, true)", slug, ok)
	}
}

func TestSlugForSubstringMatch(t *testing.T) {
	// "New York City" is not a table key but contains "New York"
	slug, ok := SlugFor("New York City")
	if !ok || slug != "new-york" {
		t.Errorf("SlugFor(New York City) = (%q, %v), want (new-york, true)", slug, ok)
	}
}

func TestSlugForUnknownCity(t *testing.T) {
	if _, ok := SlugFor("Atlantis"); ok {
		t.Error("SlugFor(Atlantis) matched, want no slug")
	}
}

func TestClassifyTeleportExclusiveCategories(t *testing.T) {
	// An id mentioning both apartment and transit must count once, as rent
	record := classifyTeleportPoints([]teleportDataPoint{
		point("apartment-1bed-near-transit", "1400"),
	})
	if !record.Rent.Equal(decimal.NewFromInt(1400)) {
		t.Errorf("rent = %s, want 1400", record.Rent)
	}
	if !record.Transport.Equal(teleportTransportFloor) {
		t.Errorf("transport = %s, want floor %s", record.Transport, teleportTransportFloor)
	}
}

func TestClassifyTeleportStudioAdjustment(t *testing.T) {
	record := classifyTeleportPoints([]teleportDataPoint{
		point("studio-apartment-rent", "1000"),
	})
	if !record.Rent.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("rent = %s, want 1000 * 1.2 = 1200", record.Rent)
	}

	// A one-bedroom listing takes precedence over the studio adjustment
	record = classifyTeleportPoints([]teleportDataPoint{
		point("apartment-1bed", "1500"),
		point("studio-apartment-rent", "1000"),
	})
	if !record.Rent.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("rent = %s, want the one-bedroom price 1500", record.Rent)
	}
}

func TestClassifyTeleportScaling(t *testing.T) {
	record := classifyTeleportPoints([]teleportDataPoint{
		point("apartment-1bed", "1200"),
		point("market-basket-cost", "1000"),     // x0.25 = 250
		point("public-transit-monthly", "200"),  // x0.5 = 100
		point("restaurant-price-index", "400"),  // x0.25 = 100
	})
	if !record.Groceries.Equal(decimal.NewFromInt(250)) {
		t.Errorf("groceries = %s, want 250", record.Groceries)
	}
	if !record.Transport.Equal(decimal.NewFromInt(100)) {
		t.Errorf("transport = %s, want 100", record.Transport)
	}
	if !record.Leisure.Equal(decimal.NewFromInt(100)) {
		t.Errorf("leisure = %s, want 100", record.Leisure)
	}
}

func TestClassifyTeleportRentBackEstimate(t *testing.T) {
	// No housing data points at all: floors apply, then
	// rent = 3*150 + 2*30 + 2*50 = 610
	record := classifyTeleportPoints(nil)

	if !record.Groceries.Equal(decimal.NewFromInt(150)) ||
		!record.Transport.Equal(decimal.NewFromInt(30)) ||
		!record.Leisure.Equal(decimal.NewFromInt(50)) {
		t.Errorf("floors not applied: %+v", record)
	}
	if !record.Rent.Equal(decimal.NewFromInt(610)) {
		t.Errorf("rent = %s, want 610", record.Rent)
	}
}

func TestTeleportDeclinesUnknownCity(t *testing.T) {
	source := NewTeleportSource(newTestStore())

	_, err := source.Resolve(context.Background(), "Atlantis")
	if !errors.IsUnavailable(err) {
		t.Fatalf("expected a decline for an unmapped city, got %v", err)
	}
}

func TestTeleportRetriesThenSucceeds(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"categories": []map[string]interface{}{
				{"data": []map[string]interface{}{
					{"id": "apartment-1bed", "currency_dollar_value": 900},
				}},
			},
		})
	}))
	defer server.Close()

	source := NewTeleportSource(newTestStore())
	source.baseURL = server.URL
	source.backoff = time.Millisecond

	record, err := source.Resolve(context.Background(), "Lisbon")
	if err != nil {
		t.Fatalf("resolve failed after retries: %v", err)
	}
	if requests != 3 {
		t.Errorf("upstream requests = %d, want 3", requests)
	}
	if !record.Rent.Equal(decimal.NewFromInt(900)) {
		t.Errorf("rent = %s, want 900", record.Rent)
	}
}

func TestTeleportRetriesExhaustedIsFault(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := NewTeleportSource(newTestStore())
	source.baseURL = server.URL
	source.backoff = time.Millisecond

	_, err := source.Resolve(context.Background(), "Lisbon")
	if err == nil {
		t.Fatal("expected an error once retries are exhausted")
	}
	if errors.IsUnavailable(err) {
		t.Errorf("exhausted retries are a fault, not a decline: %v", err)
	}
	if requests != teleportMaxAttempts {
		t.Errorf("upstream requests = %d, want %d", requests, teleportMaxAttempts)
	}
}

func TestTeleportResolveCachesResult(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"categories": []map[string]interface{}{
				{"data": []map[string]interface{}{
					{"id": "apartment-1bed", "currency_dollar_value": 800},
				}},
			},
		})
	}))
	defer server.Close()

	source := NewTeleportSource(newTestStore())
	source.baseURL = server.URL

	if _, err := source.Resolve(context.Background(), "Lisbon"); err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	if _, err := source.Resolve(context.Background(), "Lisbon"); err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if requests != 1 {
		t.Errorf("upstream requests = %d, want 1", requests)
	}
}

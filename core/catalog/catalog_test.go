package catalog

import (
	"context"
	"testing"

	"basket-match/core/cache"
	"basket-match/core/costs"
)

type staticLister struct {
	cities []string
	calls  int
}

func (l *staticLister) Cities(_ context.Context) []string {
	l.calls++
	return l.cities
}

func TestCitiesUnionWithEmptyPrimary(t *testing.T) {
	catalog := New(cache.NewMemoryStore(), &staticLister{})

	cities := catalog.Cities(context.Background())
	if len(cities) == 0 {
		t.Fatal("catalog empty despite built-in tables")
	}

	// Every built-in name must appear exactly once
	seen := make(map[string]int)
	for _, city := range cities {
		seen[city]++
	}
	for _, city := range costs.KnownCities() {
		if seen[city] != 1 {
			t.Errorf("built-in city %q appears %d times", city, seen[city])
		}
	}
	for _, city := range costs.StaticCities() {
		if seen[city] != 1 {
			t.Errorf("curated city %q appears %d times", city, seen[city])
		}
	}
}

func TestCitiesMergesPrimaryAndDeduplicates(t *testing.T) {
	lister := &staticLister{cities: []string{"Lisbon", "Springfield"}}
	catalog := New(cache.NewMemoryStore(), lister)

	cities := catalog.Cities(context.Background())

	count := make(map[string]int)
	for _, city := range cities {
		count[city]++
	}
	if count["Lisbon"] != 1 {
		t.Errorf("Lisbon appears %d times, want 1", count["Lisbon"])
	}
	if count["Springfield"] != 1 {
		t.Errorf("Springfield appears %d times, want 1", count["Springfield"])
	}

	for i := 1; i < len(cities); i++ {
		if cities[i-1] >= cities[i] {
			t.Fatalf("catalog not strictly sorted at %d: %q >= %q", i, cities[i-1], cities[i])
		}
	}
}

func TestCitiesServedFromCache(t *testing.T) {
	lister := &staticLister{cities: []string{"Lisbon"}}
	catalog := New(cache.NewMemoryStore(), lister)

	first := catalog.Cities(context.Background())
	second := catalog.Cities(context.Background())

	if lister.calls != 1 {
		t.Errorf("primary lister calls = %d, want 1", lister.calls)
	}
	if len(first) != len(second) {
		t.Errorf("cached catalog differs in size: %d vs %d", len(first), len(second))
	}
}

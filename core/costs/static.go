package costs

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"basket-match/core/types"
	"basket-match/internal/errors"
	"basket-match/internal/logging"
)

// usd builds a USD cost record from whole-dollar amounts
func usd(rent, groceries, transport, leisure int64) types.CostRecord {
	return types.CostRecord{
		Rent:      decimal.NewFromInt(rent),
		Groceries: decimal.NewFromInt(groceries),
		Transport: decimal.NewFromInt(transport),
		Leisure:   decimal.NewFromInt(leisure),
	}
}

// staticCosts holds curated monthly USD estimates for major cities.
// Values are last-resort approximations used when both remote sources
// decline or fail.
var staticCosts = map[string]types.CostRecord{
	// North America
	"New York":      usd(2500, 450, 120, 300),
	"San Francisco": usd(2800, 450, 100, 250),
	"Los Angeles":   usd(2000, 400, 100, 200),
	"Chicago":       usd(1600, 350, 100, 180),
	"Boston":        usd(2200, 400, 90, 200),
	"Seattle":       usd(1900, 400, 90, 190),
	"Washington DC": usd(2000, 400, 100, 200),
	"Miami":         usd(1700, 350, 70, 180),
	"Toronto":       usd(1400, 350, 80, 170),
	"Vancouver":     usd(1500, 350, 70, 170),
	"Montreal":      usd(900, 300, 70, 140),
	"Austin":        usd(1500, 350, 60, 170),
	"Denver":        usd(1500, 350, 80, 150),
	"Philadelphia":  usd(1400, 350, 80, 170),
	"San Diego":     usd(1800, 350, 70, 180),
	"Portland":      usd(1500, 350, 80, 150),
	"Dallas":        usd(1300, 350, 70, 150),
	"Atlanta":       usd(1400, 350, 60, 150),
	"Houston":       usd(1200, 350, 70, 150),
	"Phoenix":       usd(1200, 300, 60, 130),
	"Las Vegas":     usd(1100, 300, 60, 150),
	"Minneapolis":   usd(1300, 350, 70, 150),
	"Mexico City":   usd(500, 200, 25, 100),
	"Calgary":       usd(1000, 300, 80, 140),
	"Ottawa":        usd(1100, 300, 80, 140),

	// Europe
	"London":     usd(1800, 400, 150, 250),
	"Paris":      usd(1300, 350, 70, 200),
	"Berlin":     usd(950, 300, 70, 150),
	"Barcelona":  usd(900, 300, 50, 150),
	"Amsterdam":  usd(1300, 350, 70, 180),
	"Rome":       usd(900, 300, 50, 150),
	"Madrid":     usd(850, 250, 50, 130),
	"Dublin":     usd(1500, 350, 100, 170),
	"Lisbon":     usd(800, 250, 40, 120),
	"Athens":     usd(450, 250, 30, 100),
	"Prague":     usd(650, 250, 30, 100),
	"Stockholm":  usd(1200, 350, 90, 180),
	"Vienna":     usd(900, 300, 60, 150),
	"Munich":     usd(1200, 300, 70, 160),
	"Copenhagen": usd(1350, 400, 80, 180),
	"Oslo":       usd(1300, 400, 80, 180),
	"Helsinki":   usd(1100, 350, 60, 160),
	"Budapest":   usd(450, 230, 25, 90),
	"Warsaw":     usd(600, 250, 30, 100),
	"Zurich":     usd(1800, 450, 100, 200),

	// Asia
	"Tokyo":        usd(1200, 350, 80, 200),
	"Singapore":    usd(1800, 350, 60, 180),
	"Hong Kong":    usd(2000, 400, 50, 180),
	"Seoul":        usd(1000, 350, 60, 150),
	"Shanghai":     usd(900, 300, 40, 130),
	"Beijing":      usd(800, 280, 40, 120),
	"Dubai":        usd(1200, 350, 60, 170),
	"Bangkok":      usd(500, 200, 30, 100),
	"Mumbai":       usd(600, 200, 15, 80),
	"Delhi":        usd(400, 150, 15, 60),
	"Tel Aviv":     usd(1200, 350, 60, 170),
	"Kuala Lumpur": usd(450, 200, 25, 90),
	"Taipei":       usd(700, 250, 30, 120),

	// Australia & Pacific
	"Sydney":    usd(1400, 350, 60, 180),
	"Melbourne": usd(1300, 350, 60, 160),
	"Auckland":  usd(1200, 330, 55, 150),

	// South America
	"Buenos Aires":   usd(400, 200, 20, 80),
	"Rio de Janeiro": usd(500, 200, 30, 100),
	"Sao Paulo":      usd(550, 200, 30, 100),
	"Santiago":       usd(600, 250, 40, 110),

	// Africa & Middle East
	"Cairo":        usd(300, 180, 15, 70),
	"Cape Town":    usd(500, 220, 30, 100),
	"Johannesburg": usd(400, 200, 25, 90),
	"Lagos":        usd(500, 250, 30, 100),
}

// StaticSource serves the curated table. It is the terminal tier and
// requires neither network nor credentials.
type StaticSource struct{}

// NewStaticSource creates the fallback source
func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

// Name implements Source
func (s *StaticSource) Name() string {
	return "static"
}

// Resolve implements Source. Lookup tries an exact name match first,
// then substring containment in either direction over sorted names.
func (s *StaticSource) Resolve(_ context.Context, city string) (*types.CostRecord, error) {
	if record, ok := staticCosts[city]; ok {
		return &record, nil
	}

	names := make([]string, 0, len(staticCosts))
	for name := range staticCosts {
		names = append(names, name)
	}
	sort.Strings(names)

	lower := strings.ToLower(city)
	for _, name := range names {
		nameLower := strings.ToLower(name)
		if strings.Contains(nameLower, lower) || strings.Contains(lower, nameLower) {
			logging.Debug("static costs matched by substring",
				zap.String("requested", city),
				zap.String("matched", name))
			record := staticCosts[name]
			return &record, nil
		}
	}

	return nil, errors.Unavailable(s.Name(), "city not in curated table")
}

// StaticCities returns the names in the curated table
func StaticCities() []string {
	names := make([]string, 0, len(staticCosts))
	for name := range staticCosts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package regions groups curated city names into world regions for
// match filtering.
package regions

import "sort"

var regionCities = map[string][]string{
	"Europe": {
		"Amsterdam", "Athens", "Barcelona", "Berlin", "Brussels", "Budapest", "Copenhagen",
		"Dublin", "Edinburgh", "Florence", "Frankfurt", "Geneva", "Hamburg", "Helsinki", "Istanbul",
		"Kiev", "Lisbon", "London", "Lyon", "Madrid", "Manchester", "Milan", "Moscow", "Munich",
		"Naples", "Nice", "Oslo", "Paris", "Porto", "Prague", "Rome", "Seville", "Stockholm",
		"Valencia", "Vienna", "Warsaw", "Zurich",
	},
	"North America": {
		"Atlanta", "Austin", "Boston", "Calgary", "Chicago", "Dallas", "Denver",
		"Houston", "Las Vegas", "Los Angeles", "Miami", "Minneapolis", "Montreal", "New York",
		"Ottawa", "Philadelphia", "Phoenix", "Portland", "San Diego", "San Francisco", "Seattle",
		"Toronto", "Vancouver", "Washington DC",
	},
	"Asia": {
		"Bangkok", "Beijing", "Bali", "Chengdu", "Chiang Mai", "Delhi", "Dubai", "Guangzhou",
		"Hanoi", "Ho Chi Minh City", "Hong Kong", "Hyderabad", "Jakarta", "Kuala Lumpur", "Kyoto",
		"Manila", "Mumbai", "Osaka", "Phuket", "Seoul", "Shanghai", "Shenzhen", "Singapore", "Taipei",
		"Tel Aviv", "Tokyo",
	},
	"South America": {
		"Asuncion", "Bogota", "Buenos Aires", "Cartagena", "Cuenca", "La Paz", "Lima",
		"Medellin", "Mexico City", "Montevideo", "Quito", "Rio de Janeiro", "Santiago",
		"Sao Paulo",
	},
	"Africa & Middle East": {
		"Abu Dhabi", "Accra", "Addis Ababa", "Baku", "Cairo", "Cape Town", "Casablanca",
		"Dar es Salaam", "Doha", "Durban", "Johannesburg", "Lagos", "Marrakech",
		"Nairobi", "Port Louis", "Riyadh", "Tbilisi", "Tunis",
	},
	"Australia & Pacific": {
		"Adelaide", "Auckland", "Brisbane", "Christchurch", "Melbourne", "Perth",
		"Sydney", "Wellington",
	},
}

// Names returns the region names, sorted
func Names() []string {
	names := make([]string, 0, len(regionCities))
	for name := range regionCities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cities returns the city names in a region; ok is false for an
// unknown region
func Cities(region string) ([]string, bool) {
	cities, ok := regionCities[region]
	if !ok {
		return nil, false
	}
	out := make([]string, len(cities))
	copy(out, cities)
	return out, true
}

// Contains reports whether a region includes the city
func Contains(region, city string) bool {
	cities, ok := regionCities[region]
	if !ok {
		return false
	}
	for _, c := range cities {
		if c == city {
			return true
		}
	}
	return false
}

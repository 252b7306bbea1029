package costs

// teleportCities maps human-readable city names to Teleport urban area
// slugs. The table covers the urban areas Teleport publishes cost data
// for; names outside it fall through to the next source.
var teleportCities = map[string]string{
	"Amsterdam":      "amsterdam",
	"Athens":         "athens",
	"Atlanta":        "atlanta",
	"Austin":         "austin",
	"Bangkok":        "bangkok",
	"Barcelona":      "barcelona",
	"Beijing":        "beijing",
	"Bengaluru":      "bangalore",
	"Berlin":         "berlin",
	"Bogota":         "bogota",
	"Boston":         "boston",
	"Brussels":       "brussels",
	"Budapest":       "budapest",
	"Buenos Aires":   "buenos-aires",
	"Cairo":          "cairo",
	"Cape Town":      "cape-town",
	"Chicago":        "chicago",
	"Copenhagen":     "copenhagen",
	"Dallas":         "dallas",
	"Denver":         "denver",
	"Dubai":          "dubai",
	"Dublin":         "dublin",
	"Edinburgh":      "edinburgh",
	"Frankfurt":      "frankfurt",
	"Hamburg":        "hamburg",
	"Helsinki":       "helsinki",
	"Hong Kong":      "hong-kong",
	"Honolulu":       "honolulu",
	"Houston":        "houston",
	"Istanbul":       "istanbul",
	"Jakarta":        "jakarta",
	"Johannesburg":   "johannesburg",
	"Kiev":           "kiev",
	"Kuala Lumpur":   "kuala-lumpur",
	"Lagos":          "lagos",
	"Las Vegas":      "las-vegas",
	"Lisbon":         "lisbon",
	"London":         "london",
	"Los Angeles":    "los-angeles",
	"Madrid":         "madrid",
	"Manila":         "manila",
	"Melbourne":      "melbourne",
	"Mexico City":    "mexico-city",
	"Miami":          "miami",
	"Milan":          "milan",
	"Minneapolis":    "minneapolis",
	"Montreal":       "montreal",
	"Moscow":         "moscow",
	"Mumbai":         "mumbai",
	"Munich":         "munich",
	"Nairobi":        "nairobi",
	"New York":       "new-york",
	"Oslo":           "oslo",
	"Paris":          "paris",
	"Philadelphia":   "philadelphia",
	"Prague":         "prague",
	"Rio de Janeiro": "rio-de-janeiro",
	"Rome":           "rome",
	"San Diego":      "san-diego",
	"San Francisco":  "san-francisco",
	"Santiago":       "santiago",
	"Sao Paulo":      "sao-paulo",
	"Seattle":        "seattle",
	"Seoul":          "seoul",
	"Shanghai":       "shanghai",
	"Singapore":      "singapore",
	"Stockholm":      "stockholm",
	"Sydney":         "sydney",
	"Taipei":         "taipei",
	"Tel Aviv":       "tel-aviv",
	"Tokyo":          "tokyo",
	"Toronto":        "toronto",
	"Vancouver":      "vancouver",
	"Vienna":         "vienna",
	"Warsaw":         "warsaw",
	"Washington DC":  "washington-dc",
	"Zurich":         "zurich",
}

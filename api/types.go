package api

import (
	"github.com/shopspring/decimal"

	"basket-match/core/types"
)

// MatchRequest is the POST /api/v1/match payload
type MatchRequest struct {
	// Budget holds the monthly amounts per category; at least one
	// category is required
	Budget map[string]decimal.Decimal `json:"budget"`

	// Currency is the ISO code amounts are denominated in; empty
	// defaults to the configured currency
	Currency string `json:"currency,omitempty"`

	// Region restricts candidates to a named region; empty means all
	Region string `json:"region,omitempty"`

	// MaxBudget excludes cities whose total cost exceeds it
	MaxBudget *decimal.Decimal `json:"max_budget,omitempty"`

	// Limit caps the number of results; zero means all
	Limit int `json:"limit,omitempty"`
}

// MatchResponse is the POST /api/v1/match result
type MatchResponse struct {
	RequestID string              `json:"request_id"`
	Currency  string              `json:"currency"`
	Total     decimal.Decimal     `json:"total_budget"`
	Count     int                 `json:"count"`
	Results   []types.MatchResult `json:"results"`
}

// CitiesResponse is the GET /api/v1/cities result
type CitiesResponse struct {
	Count  int      `json:"count"`
	Cities []string `json:"cities"`
}

// RegionsResponse is the GET /api/v1/regions result
type RegionsResponse struct {
	Regions []string `json:"regions"`
}

// RateResponse is the GET /api/v1/rates/{currency} result
type RateResponse struct {
	Currency    string          `json:"currency"`
	Rate        decimal.Decimal `json:"rate_to_target"`
	LastUpdated int64           `json:"last_updated,omitempty"`
}

// Package api - Thin HTTP layer over the match core.
// The API is only responsible for input ingestion, core orchestration,
// and output serialization; it never performs scoring or cost logic.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"basket-match/core/match"
	"basket-match/core/regions"
	"basket-match/core/types"
	"basket-match/internal/errors"
	"basket-match/internal/logging"
)

// Server is the API server
type Server struct {
	mux        *http.ServeMux
	finder     *match.Finder
	catalog    match.CityLister
	rates      match.RateProvider
	version    string
	currency   string
	enableCORS bool
}

// NewServer creates the API server
func NewServer(version, defaultCurrency string, finder *match.Finder, catalog match.CityLister, rates match.RateProvider, enableCORS bool) *Server {
	s := &Server{
		mux:        http.NewServeMux(),
		finder:     finder,
		catalog:    catalog,
		rates:      rates,
		version:    version,
		currency:   defaultCurrency,
		enableCORS: enableCORS,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
	s.mux.HandleFunc("GET /api/v1/cities", s.handleCities)
	s.mux.HandleFunc("GET /api/v1/regions", s.handleRegions)
	s.mux.HandleFunc("GET /api/v1/rates/{currency}", s.handleRate)
	s.mux.HandleFunc("POST /api/v1/match", s.handleMatch)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"api_version": "v1",
	}, http.StatusOK)
}

// handleCities handles GET /api/v1/cities
func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	cities := s.catalog.Cities(r.Context())

	if region := r.URL.Query().Get("region"); region != "" {
		regionCities, ok := regions.Cities(region)
		if !ok {
			s.writeError(w, "INVALID_REGION", "unknown region: "+region, http.StatusBadRequest)
			return
		}
		allowed := make(map[string]struct{}, len(regionCities))
		for _, city := range regionCities {
			allowed[city] = struct{}{}
		}
		filtered := make([]string, 0, len(cities))
		for _, city := range cities {
			if _, ok := allowed[city]; ok {
				filtered = append(filtered, city)
			}
		}
		cities = filtered
	}

	s.writeJSON(w, CitiesResponse{Count: len(cities), Cities: cities}, http.StatusOK)
}

// handleRegions handles GET /api/v1/regions
func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, RegionsResponse{Regions: regions.Names()}, http.StatusOK)
}

// handleRate handles GET /api/v1/rates/{currency}
func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	currency := strings.ToUpper(r.PathValue("currency"))
	if len(currency) != 3 {
		s.writeError(w, "INVALID_CURRENCY", "currency must be a 3-letter ISO code", http.StatusBadRequest)
		return
	}

	rate := s.rates.Rate(r.Context(), currency)
	s.writeJSON(w, RateResponse{
		Currency:    currency,
		Rate:        rate.RateToTarget,
		LastUpdated: rate.LastUpdated,
	}, http.StatusOK)
}

// handleMatch handles POST /api/v1/match
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	budget, err := budgetFrom(req.Budget)
	if err != nil {
		s.writeError(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = s.currency
	}

	results, err := s.finder.Find(r.Context(), budget, currency, match.Options{
		Region:    req.Region,
		MaxBudget: req.MaxBudget,
		Limit:     req.Limit,
	})
	if err != nil {
		if errors.IsType(err, errors.TypeInput) {
			s.writeError(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
			return
		}
		s.writeError(w, "MATCH_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, MatchResponse{
		RequestID: requestID,
		Currency:  currency,
		Total:     budget.Total(),
		Count:     len(results),
		Results:   results,
	}, http.StatusOK)
}

// budgetFrom validates and converts the request budget
func budgetFrom(raw map[string]decimal.Decimal) (types.BudgetVector, error) {
	if len(raw) == 0 {
		return nil, errors.Input("budget carries no categories")
	}

	budget := make(types.BudgetVector, len(raw))
	for name, amount := range raw {
		category := types.Category(strings.ToLower(name))
		if _, ok := (types.CostRecord{}).Get(category); !ok {
			return nil, errors.Input("unknown budget category: " + name)
		}
		if amount.IsNegative() {
			return nil, errors.Input("budget amount for " + name + " is negative")
		}
		budget[category] = amount
	}
	return budget, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}, status)
}

// requestIDFrom honors a caller-supplied X-Request-ID and mints one
// otherwise
func requestIDFrom(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}

// ServeHTTP implements http.Handler with the middleware chain applied
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := http.Handler(s.mux)
	handler = s.logRequests(handler)
	if s.enableCORS {
		handler = s.allowCORS(handler)
	}
	handler = s.recoverPanics(handler)
	handler.ServeHTTP(w, r)
}

// logRequests logs one line per request with its id and duration
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := requestIDFrom(r)
		r.Header.Set("X-Request-ID", requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r)

		logging.Info("handled request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// allowCORS permits cross-origin browser clients
func (s *Server) allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recoverPanics converts handler panics into 500 responses
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Error("handler panic",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec))
				s.writeError(w, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	logging.Info("api server listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s)
}

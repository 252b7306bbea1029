// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"basket-match/internal/logging"
)

// Environment variables carrying source credentials. Their absence disables
// the corresponding remote source instead of failing.
const (
	EnvRapidAPIKey     = "RAPIDAPI_KEY"
	EnvExchangeRateKey = "EXCHANGERATE_API_KEY"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Currency is the default target currency
	Currency string `json:"currency"`

	// Cache contains cache configuration
	Cache CacheConfig `json:"cache"`

	// Sources contains remote source credentials
	Sources SourcesConfig `json:"sources"`

	// Match contains match-finder configuration
	Match MatchConfig `json:"match"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// CacheConfig contains cache-related settings
type CacheConfig struct {
	// Enabled enables durable caching
	Enabled bool `json:"enabled"`

	// Directory is the cache directory
	Directory string `json:"directory"`
}

// SourcesConfig contains credentials for remote data sources.
// Either key may be empty; the source degrades gracefully.
type SourcesConfig struct {
	// RapidAPIKey authenticates the primary cost-of-living source
	RapidAPIKey string `json:"rapidapi_key,omitempty"`

	// ExchangeRateAPIKey authenticates the currency rate source
	ExchangeRateAPIKey string `json:"exchangerate_api_key,omitempty"`
}

// MatchConfig contains match-finder settings
type MatchConfig struct {
	// Concurrency bounds parallel per-city cost resolution
	Concurrency int `json:"concurrency"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Address to listen on
	Address string `json:"address"`

	// EnableCORS enables CORS headers
	EnableCORS bool `json:"enable_cors"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	cacheDir := filepath.Join(homeDir, ".basket-match", "cache")

	return &Config{
		Version:  "1.0",
		Currency: "USD",
		Cache: CacheConfig{
			Enabled:   true,
			Directory: cacheDir,
		},
		Sources: SourcesConfig{},
		Match: MatchConfig{
			Concurrency: 4,
		},
		Server: ServerConfig{
			Address:    ":8080",
			EnableCORS: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".basket-match", "config.json")
}

// Load loads configuration from a file, overlaying credentials from the
// environment. A missing file yields defaults, not an error.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			config.loadCredentials()
			return config, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	config.loadCredentials()
	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// loadCredentials fills in credentials from a .env file and the process
// environment. Values already present in the config file win over defaults
// but the environment wins over both.
func (c *Config) loadCredentials() {
	_ = godotenv.Load()

	if key := os.Getenv(EnvRapidAPIKey); key != "" {
		c.Sources.RapidAPIKey = key
	}
	if key := os.Getenv(EnvExchangeRateKey); key != "" {
		c.Sources.ExchangeRateAPIKey = key
	}
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

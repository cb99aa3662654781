// Package config loads the application configuration from an optional .env
// style file plus environment variables. The API key is an explicit value
// threaded into the provider constructor, never a package-level variable.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Server struct {
	Port              string
	RequestTimeoutSec int
}

type AlphaVantage struct {
	APIKey               string
	Endpoint             string
	IncludeProfile       bool
	MaxRequestsPerMinute int
	Burst                int
	MinIntervalSec       int
}

type Yahoo struct {
	Endpoint string
}

type Cache struct {
	QuoteTTLSeconds   int
	HistoryTTLSeconds int
	MaxItems          int
}

type Config struct {
	Server       Server
	Provider     string // "yahoo" or "alphavantage"
	AlphaVantage AlphaVantage
	Yahoo        Yahoo
	Cache        Cache
}

// Load reads configuration with this precedence, lowest first: defaults,
// the file at path (or ./.env when path is empty; a missing file is fine),
// then environment variables.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT_SEC", 10)
	v.SetDefault("PROVIDER", "yahoo")
	v.SetDefault("ALPHAVANTAGE_ENDPOINT", "https://www.alphavantage.co")
	v.SetDefault("ALPHAVANTAGE_INCLUDE_PROFILE", true)
	// Free tier: 5 calls per minute. 0 disables the client-side gate and
	// lets the provider enforce its own limit.
	v.SetDefault("ALPHAVANTAGE_MAX_RPM", 0)
	v.SetDefault("ALPHAVANTAGE_BURST", 1)
	v.SetDefault("ALPHAVANTAGE_MIN_INTERVAL_SEC", 0)
	v.SetDefault("YAHOO_ENDPOINT", "https://query1.finance.yahoo.com")
	// Quotes go stale fast, history much less so.
	v.SetDefault("QUOTE_CACHE_TTL_SEC", 60)
	v.SetDefault("HISTORY_CACHE_TTL_SEC", 300)
	v.SetDefault("CACHE_MAX_ITEMS", 1000)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigFile(".env")
		_ = v.ReadInConfig() // optional in local dev
	}
	v.AutomaticEnv()

	cfg := Config{
		Server: Server{
			Port:              v.GetString("SERVER_PORT"),
			RequestTimeoutSec: v.GetInt("REQUEST_TIMEOUT_SEC"),
		},
		Provider: strings.ToLower(v.GetString("PROVIDER")),
		AlphaVantage: AlphaVantage{
			APIKey:               v.GetString("ALPHAVANTAGE_API_KEY"),
			Endpoint:             v.GetString("ALPHAVANTAGE_ENDPOINT"),
			IncludeProfile:       v.GetBool("ALPHAVANTAGE_INCLUDE_PROFILE"),
			MaxRequestsPerMinute: v.GetInt("ALPHAVANTAGE_MAX_RPM"),
			Burst:                v.GetInt("ALPHAVANTAGE_BURST"),
			MinIntervalSec:       v.GetInt("ALPHAVANTAGE_MIN_INTERVAL_SEC"),
		},
		Yahoo: Yahoo{
			Endpoint: v.GetString("YAHOO_ENDPOINT"),
		},
		Cache: Cache{
			QuoteTTLSeconds:   v.GetInt("QUOTE_CACHE_TTL_SEC"),
			HistoryTTLSeconds: v.GetInt("HISTORY_CACHE_TTL_SEC"),
			MaxItems:          v.GetInt("CACHE_MAX_ITEMS"),
		},
	}

	switch cfg.Provider {
	case "yahoo", "alphavantage":
	default:
		return Config{}, fmt.Errorf("unknown provider %q (expected yahoo or alphavantage)", cfg.Provider)
	}
	return cfg, nil
}

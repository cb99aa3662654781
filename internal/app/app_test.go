package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockview/internal/config"
	"stockview/internal/httpx"
	"stockview/internal/provider/cache"
	"stockview/internal/provider/ratelimit"
)

func baseConfig(providerName string) config.Config {
	return config.Config{
		Provider: providerName,
		Server:   config.Server{RequestTimeoutSec: 5},
	}
}

func TestBuildProvider_YahooWithoutCache(t *testing.T) {
	p, err := BuildProvider(baseConfig("yahoo"), httpx.New(5*time.Second))
	require.NoError(t, err)
	require.Equal(t, "yahoo", p.Name())
}

func TestBuildProvider_CacheIsOutermost(t *testing.T) {
	cfg := baseConfig("yahoo")
	cfg.Cache = config.Cache{QuoteTTLSeconds: 60, HistoryTTLSeconds: 300}

	p, err := BuildProvider(cfg, httpx.New(5*time.Second))
	require.NoError(t, err)
	require.IsType(t, &cache.Provider{}, p)
}

func TestBuildProvider_AlphaVantageTokenBucket(t *testing.T) {
	cfg := baseConfig("alphavantage")
	cfg.AlphaVantage = config.AlphaVantage{APIKey: "demo", MaxRequestsPerMinute: 5, Burst: 2}

	p, err := BuildProvider(cfg, httpx.New(5*time.Second))
	require.NoError(t, err)
	require.IsType(t, &ratelimit.TokenBucketProvider{}, p)
	require.Equal(t, "alphavantage", p.Name())
}

func TestBuildProvider_AlphaVantageMinInterval(t *testing.T) {
	cfg := baseConfig("alphavantage")
	cfg.AlphaVantage = config.AlphaVantage{APIKey: "demo", MinIntervalSec: 12}

	p, err := BuildProvider(cfg, httpx.New(5*time.Second))
	require.NoError(t, err)
	require.IsType(t, &ratelimit.MinInterval{}, p)
}

func TestBuildProvider_UnknownProvider(t *testing.T) {
	_, err := BuildProvider(baseConfig("bloomberg"), httpx.New(5*time.Second))
	require.Error(t, err)
}

func TestBuildFetcher(t *testing.T) {
	f, err := BuildFetcher(baseConfig("yahoo"))
	require.NoError(t, err)
	require.NotNil(t, f)
}

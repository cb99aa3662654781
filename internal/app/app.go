// Package app assembles the provider chain shared by the CLI and the HTTP
// server: concrete client, optional rate gate, then the response cache.
package app

import (
	"fmt"
	"time"

	"stockview/internal/config"
	"stockview/internal/fetcher"
	"stockview/internal/httpx"
	"stockview/internal/provider"
	"stockview/internal/provider/alphavantage"
	"stockview/internal/provider/cache"
	"stockview/internal/provider/ratelimit"
	"stockview/internal/provider/yahoo"
)

// BuildProvider constructs the configured provider with its decorators.
// Decorator order matters: the cache sits outermost so cache hits never
// touch the rate gate.
func BuildProvider(cfg config.Config, hc *httpx.Client) (provider.Provider, error) {
	var p provider.Provider
	switch cfg.Provider {
	case "alphavantage":
		av := cfg.AlphaVantage
		p = alphavantage.New(av.APIKey,
			alphavantage.WithBaseURL(av.Endpoint),
			alphavantage.WithHTTPClient(hc.HTTP),
			alphavantage.WithProfile(av.IncludeProfile),
		)
		// Prefer a token bucket with burst when RPM is set, otherwise the
		// plain minimum interval.
		if av.MaxRequestsPerMinute > 0 {
			rate := float64(av.MaxRequestsPerMinute) / 60.0
			burst := av.Burst
			if burst <= 0 {
				burst = 1
			}
			p = &ratelimit.TokenBucketProvider{P: p, TB: ratelimit.NewTokenBucket(rate, burst)}
		} else if av.MinIntervalSec > 0 {
			p = &ratelimit.MinInterval{P: p, Interval: time.Duration(av.MinIntervalSec) * time.Second}
		}
	case "yahoo":
		p = yahoo.New(yahoo.Config{BaseURL: cfg.Yahoo.Endpoint}, hc)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	if cfg.Cache.QuoteTTLSeconds > 0 || cfg.Cache.HistoryTTLSeconds > 0 {
		p = &cache.Provider{
			P:          p,
			QuoteTTL:   time.Duration(cfg.Cache.QuoteTTLSeconds) * time.Second,
			HistoryTTL: time.Duration(cfg.Cache.HistoryTTLSeconds) * time.Second,
			MaxItems:   cfg.Cache.MaxItems,
		}
	}
	return p, nil
}

// BuildFetcher is the full wiring: config -> provider chain -> fetcher.
func BuildFetcher(cfg config.Config) (*fetcher.Fetcher, error) {
	hc := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	p, err := BuildProvider(cfg, hc)
	if err != nil {
		return nil, err
	}
	return fetcher.New(p), nil
}

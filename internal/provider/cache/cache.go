// Package cache decorates a Provider with short-TTL response caching so a
// session of repeated lookups does not burn the provider's call quota.
package cache

import (
	"context"
	"sync"
	"time"

	"stockview/internal/provider"
	"stockview/internal/stock"
)

type quoteEntry struct {
	expiresAt time.Time
	quote     provider.RawQuote
}

type seriesKey struct {
	symbol   string
	period   stock.Period
	interval stock.Interval
}

type seriesEntry struct {
	expiresAt time.Time
	series    provider.RawSeries
}

// Provider caches quotes per symbol and history per (symbol, period,
// interval). Entries are overwrite-only with a best-effort size cap; errors
// are never cached.
type Provider struct {
	P          provider.Provider
	QuoteTTL   time.Duration
	HistoryTTL time.Duration
	MaxItems   int

	mu     sync.RWMutex
	quotes map[string]quoteEntry
	series map[seriesKey]seriesEntry
}

func (c *Provider) Name() string { return c.P.Name() }

func (c *Provider) Quote(ctx context.Context, symbol string) (provider.RawQuote, error) {
	if c.QuoteTTL <= 0 {
		return c.P.Quote(ctx, symbol)
	}

	now := time.Now()
	c.mu.RLock()
	e, ok := c.quotes[symbol]
	c.mu.RUnlock()
	if ok && now.Before(e.expiresAt) {
		return e.quote, nil
	}

	quote, err := c.P.Quote(ctx, symbol)
	if err != nil {
		return provider.RawQuote{}, err
	}

	c.mu.Lock()
	if c.quotes == nil {
		c.quotes = make(map[string]quoteEntry)
	}
	c.quotes[symbol] = quoteEntry{expiresAt: now.Add(c.QuoteTTL), quote: quote}
	c.evictQuotesLocked(now)
	c.mu.Unlock()
	return quote, nil
}

func (c *Provider) History(ctx context.Context, symbol string, period stock.Period, interval stock.Interval) (provider.RawSeries, error) {
	if c.HistoryTTL <= 0 {
		return c.P.History(ctx, symbol, period, interval)
	}

	key := seriesKey{symbol: symbol, period: period, interval: interval}
	now := time.Now()
	c.mu.RLock()
	e, ok := c.series[key]
	c.mu.RUnlock()
	if ok && now.Before(e.expiresAt) {
		return e.series, nil
	}

	series, err := c.P.History(ctx, symbol, period, interval)
	if err != nil {
		return provider.RawSeries{}, err
	}

	c.mu.Lock()
	if c.series == nil {
		c.series = make(map[seriesKey]seriesEntry)
	}
	c.series[key] = seriesEntry{expiresAt: now.Add(c.HistoryTTL), series: series}
	c.evictSeriesLocked(now)
	c.mu.Unlock()
	return series, nil
}

// evictQuotesLocked caps the map size: expired entries go first, then
// arbitrary ones. Held under c.mu.
func (c *Provider) evictQuotesLocked(now time.Time) {
	if c.MaxItems <= 0 || len(c.quotes) <= c.MaxItems {
		return
	}
	for k, v := range c.quotes {
		if now.After(v.expiresAt) {
			delete(c.quotes, k)
		}
		if len(c.quotes) <= c.MaxItems {
			return
		}
	}
	for k := range c.quotes {
		if len(c.quotes) <= c.MaxItems {
			return
		}
		delete(c.quotes, k)
	}
}

func (c *Provider) evictSeriesLocked(now time.Time) {
	if c.MaxItems <= 0 || len(c.series) <= c.MaxItems {
		return
	}
	for k, v := range c.series {
		if now.After(v.expiresAt) {
			delete(c.series, k)
		}
		if len(c.series) <= c.MaxItems {
			return
		}
	}
	for k := range c.series {
		if len(c.series) <= c.MaxItems {
			return
		}
		delete(c.series, k)
	}
}

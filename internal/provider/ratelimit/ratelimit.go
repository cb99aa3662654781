// Package ratelimit gates outbound provider calls so the free-tier quotas
// (Alpha Vantage: 5 calls per minute) are respected by waiting, not by
// retrying. Both decorators share one gate across Quote and History since
// the provider counts them against the same budget.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"stockview/internal/provider"
	"stockview/internal/stock"
)

// MinInterval wraps a provider and enforces a minimum time between calls.
// Concurrent calls wait until the interval has elapsed since the last call,
// or return early if the context is canceled.
type MinInterval struct {
	P        provider.Provider
	Interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func (m *MinInterval) Name() string { return m.P.Name() }

func (m *MinInterval) Quote(ctx context.Context, symbol string) (provider.RawQuote, error) {
	if err := m.wait(ctx); err != nil {
		return provider.RawQuote{}, err
	}
	q, err := m.P.Quote(ctx, symbol)
	m.stamp()
	return q, err
}

func (m *MinInterval) History(ctx context.Context, symbol string, period stock.Period, interval stock.Interval) (provider.RawSeries, error) {
	if err := m.wait(ctx); err != nil {
		return provider.RawSeries{}, err
	}
	s, err := m.P.History(ctx, symbol, period, interval)
	m.stamp()
	return s, err
}

func (m *MinInterval) wait(ctx context.Context) error {
	if m.Interval <= 0 {
		return nil
	}
	m.mu.Lock()
	wait := time.Until(m.last.Add(m.Interval))
	m.mu.Unlock()
	if wait <= 0 {
		return nil
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *MinInterval) stamp() {
	if m.Interval <= 0 {
		return
	}
	m.mu.Lock()
	m.last = time.Now()
	m.mu.Unlock()
}

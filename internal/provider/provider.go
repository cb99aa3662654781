package provider

import (
	"context"
	"time"

	"stockview/internal/stock"
)

// RawQuote is the provider-shaped snapshot before normalization. Numeric
// fields stay strings exactly as they arrived on the wire; the normalizer
// owns parsing and validation.
type RawQuote struct {
	Symbol           string
	CompanyName      string
	Price            string
	PreviousClose    string
	Open             string
	DayHigh          string
	DayLow           string
	Volume           string
	LatestTradingDay string // YYYY-MM-DD when the provider reports it
	ReceivedAt       time.Time

	Profile *stock.CompanyProfile
}

// RawBar is one unvalidated OHLCV bar.
type RawBar struct {
	Timestamp time.Time
	Open      string
	High      string
	Low       string
	Close     string
	Volume    string
}

// RawSeries is the provider's historical payload. Bars arrive in whatever
// order the provider chose; the resampler must not assume any.
type RawSeries struct {
	Symbol string
	Bars   []RawBar
}

// Provider is the contract both quote providers implement. Calls perform no
// retries; errors carry a stock.ErrorKind so a missing symbol is
// distinguishable from a transport failure.
type Provider interface {
	Name() string
	Quote(ctx context.Context, symbol string) (RawQuote, error)
	History(ctx context.Context, symbol string, period stock.Period, interval stock.Interval) (RawSeries, error)
}

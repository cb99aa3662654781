// Package fetcher runs the fetch -> normalize -> resample sequence and
// assembles the tri-state FetchResult every rendering sink consumes.
package fetcher

import (
	"context"
	"fmt"
	"strings"

	"stockview/internal/normalize"
	"stockview/internal/provider"
	"stockview/internal/resample"
	"stockview/internal/stock"
)

// Fetcher binds the active provider to the shared core. It holds no state
// across requests; caching, if any, lives in the provider decorators.
type Fetcher struct {
	p provider.Provider
}

func New(p provider.Provider) *Fetcher {
	return &Fetcher{p: p}
}

// Fetch runs one synchronous request cycle. Policy:
//   - bad symbol, period or interval is rejected before any network call;
//   - a quote failure is always fatal, with the error kind preserved;
//     there is no synthetic fallback for quotes;
//   - a history failure alone downgrades to PartialOk with a synthetic
//     series and a warning, so the caller always has something to show.
func (f *Fetcher) Fetch(ctx context.Context, symbol, periodStr, intervalStr string) stock.FetchResult {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !validSymbol(symbol) {
		return stock.Fail(stock.Errf(stock.KindNotFound, "invalid symbol %q: use letters, digits, '.' or '-'", symbol))
	}
	period, err := stock.ParsePeriod(periodStr)
	if err != nil {
		return stock.Fail(err)
	}
	interval, err := stock.ParseInterval(intervalStr)
	if err != nil {
		return stock.Fail(err)
	}

	rawQuote, err := f.p.Quote(ctx, symbol)
	if err != nil {
		return stock.Fail(err)
	}
	quote, err := normalize.Quote(rawQuote)
	if err != nil {
		return stock.Fail(err)
	}

	rawSeries, err := f.p.History(ctx, symbol, period, interval)
	if err != nil {
		return f.fallback(quote, period, interval, err)
	}
	series, err := resample.Series(rawSeries, period, interval)
	if err != nil {
		return f.fallback(quote, period, interval, err)
	}
	return stock.OK(quote, series)
}

// fallback substitutes a synthetic walk around the live price and keeps the
// cause in the warning so sinks can show why the chart is simulated.
func (f *Fetcher) fallback(quote stock.Quote, period stock.Period, interval stock.Interval, cause error) stock.FetchResult {
	base, _ := quote.CurrentPrice.Float64()
	series := resample.Synthesize(quote.Symbol, period, interval, base)
	warning := fmt.Sprintf("historical data unavailable (%v); showing simulated data", cause)
	return stock.Partial(quote, series, warning)
}

// validSymbol accepts the usual ticker alphabet: letters, digits, hyphens
// and periods (BRK.B, BF-B).
func validSymbol(symbol string) bool {
	if symbol == "" {
		return false
	}
	for _, r := range symbol {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-':
		default:
			return false
		}
	}
	return true
}

package fetcher_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockview/internal/fetcher"
	"stockview/internal/provider"
	"stockview/internal/stock"
)

func mustDate(s string) time.Time {
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return ts.UTC()
}

// stubProvider returns canned responses and records what was asked of it.
type stubProvider struct {
	quote      provider.RawQuote
	quoteErr   error
	series     provider.RawSeries
	seriesErr  error
	quoteCalls int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Quote(_ context.Context, _ string) (provider.RawQuote, error) {
	p.quoteCalls++
	return p.quote, p.quoteErr
}

func (p *stubProvider) History(_ context.Context, _ string, _ stock.Period, _ stock.Interval) (provider.RawSeries, error) {
	return p.series, p.seriesErr
}

func goodQuote() provider.RawQuote {
	return provider.RawQuote{
		Symbol:           "MSFT",
		CompanyName:      "Microsoft Corporation",
		Price:            "415.50",
		PreviousClose:    "412.30",
		LatestTradingDay: "2024-03-15",
	}
}

func goodSeries() provider.RawSeries {
	raw := provider.RawSeries{Symbol: "MSFT"}
	for _, date := range []string{"2024-03-11", "2024-03-12", "2024-03-13", "2024-03-14", "2024-03-15"} {
		raw.Bars = append(raw.Bars, provider.RawBar{
			Timestamp: mustDate(date),
			Close:     "415.50",
		})
	}
	return raw
}

func TestFetch_FullSuccess(t *testing.T) {
	f := fetcher.New(&stubProvider{quote: goodQuote(), series: goodSeries()})

	res := f.Fetch(t.Context(), "msft", "5d", "")
	require.Equal(t, stock.StatusOK, res.Status)
	require.Equal(t, "MSFT", res.Quote.Symbol)
	require.Equal(t, "3.20", res.Quote.ChangeAbsolute().StringFixed(2))
	require.Len(t, res.Series.Points, 5)
	require.False(t, res.Series.IsSynthetic)
	require.Empty(t, res.Warning)
	require.Nil(t, res.Err)
}

func TestFetch_HistoryFailureDowngradesToPartial(t *testing.T) {
	f := fetcher.New(&stubProvider{
		quote:     goodQuote(),
		seriesErr: stock.Errf(stock.KindNetwork, "connection refused"),
	})

	res := f.Fetch(t.Context(), "MSFT", "5d", "daily")
	require.Equal(t, stock.StatusPartial, res.Status)
	require.Equal(t, "MSFT", res.Quote.Symbol)
	require.True(t, res.Series.IsSynthetic)
	require.Len(t, res.Series.Points, 5)
	require.Contains(t, res.Warning, "simulated")
	require.Contains(t, res.Warning, "connection refused")
	// The synthetic walk starts at the live price, so the chart lines up
	// with the quote.
	require.Equal(t, 415.50, res.Series.Points[0].Open)
}

func TestFetch_UnusableBarsAlsoDowngrade(t *testing.T) {
	f := fetcher.New(&stubProvider{
		quote:  goodQuote(),
		series: provider.RawSeries{Symbol: "MSFT", Bars: []provider.RawBar{{Timestamp: mustDate("2024-03-15"), Close: "n/a"}}},
	})

	res := f.Fetch(t.Context(), "MSFT", "5d", "daily")
	require.Equal(t, stock.StatusPartial, res.Status)
	require.True(t, res.Series.IsSynthetic)
}

func TestFetch_QuoteFailureIsFatal(t *testing.T) {
	f := fetcher.New(&stubProvider{
		quoteErr: stock.Errf(stock.KindNotFound, "no data found for symbol %q", "ZZZZINVALID"),
	})

	res := f.Fetch(t.Context(), "ZZZZINVALID", "3mo", "")
	require.Equal(t, stock.StatusErr, res.Status)
	require.Equal(t, stock.KindNotFound, res.Err.Kind)
	require.Nil(t, res.Quote)
	require.Nil(t, res.Series)
}

func TestFetch_QuoteErrorKindsPreserved(t *testing.T) {
	for _, kind := range []stock.ErrorKind{stock.KindRateLimited, stock.KindAuth, stock.KindNetwork, stock.KindMalformed} {
		t.Run(string(kind), func(t *testing.T) {
			f := fetcher.New(&stubProvider{quoteErr: stock.Errf(kind, "boom")})
			res := f.Fetch(t.Context(), "MSFT", "3mo", "")
			require.Equal(t, stock.StatusErr, res.Status)
			require.Equal(t, kind, res.Err.Kind)
		})
	}
}

func TestFetch_InvalidPeriodRejectedBeforeProviderCall(t *testing.T) {
	upstream := &stubProvider{quote: goodQuote(), series: goodSeries()}
	f := fetcher.New(upstream)

	res := f.Fetch(t.Context(), "MSFT", "3wk", "")
	require.Equal(t, stock.StatusErr, res.Status)
	require.Equal(t, stock.KindInvalidPeriod, res.Err.Kind)
	require.Zero(t, upstream.quoteCalls)
}

func TestFetch_InvalidIntervalRejected(t *testing.T) {
	upstream := &stubProvider{quote: goodQuote(), series: goodSeries()}
	f := fetcher.New(upstream)

	res := f.Fetch(t.Context(), "MSFT", "5d", "hourly")
	require.Equal(t, stock.StatusErr, res.Status)
	require.Equal(t, stock.KindInvalidPeriod, res.Err.Kind)
	require.Zero(t, upstream.quoteCalls)
}

func TestFetch_InvalidSymbolRejected(t *testing.T) {
	upstream := &stubProvider{quote: goodQuote()}
	f := fetcher.New(upstream)

	for _, sym := range []string{"", "   ", "AA PL", "AAPL;DROP", "☃"} {
		res := f.Fetch(t.Context(), sym, "3mo", "")
		require.Equal(t, stock.StatusErr, res.Status, "symbol %q", sym)
		require.Equal(t, stock.KindNotFound, res.Err.Kind, "symbol %q", sym)
	}
	require.Zero(t, upstream.quoteCalls)
}

func TestFetch_DottedAndHyphenatedSymbolsAccepted(t *testing.T) {
	f := fetcher.New(&stubProvider{quote: goodQuote(), series: goodSeries()})

	for _, sym := range []string{"BRK.B", "BF-B", "brk.b"} {
		res := f.Fetch(t.Context(), sym, "5d", "")
		require.Equal(t, stock.StatusOK, res.Status, "symbol %q", sym)
	}
}

func TestFetch_MalformedQuoteIsFatal(t *testing.T) {
	f := fetcher.New(&stubProvider{
		quote: provider.RawQuote{Symbol: "MSFT", Price: "n/a", PreviousClose: "412.30"},
	})

	res := f.Fetch(t.Context(), "MSFT", "3mo", "")
	require.Equal(t, stock.StatusErr, res.Status)
	require.Equal(t, stock.KindMalformed, res.Err.Kind)
}

package normalize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockview/internal/normalize"
	"stockview/internal/provider"
	"stockview/internal/stock"
)

func TestQuote_FullRawQuote(t *testing.T) {
	raw := provider.RawQuote{
		Symbol:           "AAPL",
		CompanyName:      "Apple Inc",
		Price:            "173.44",
		PreviousClose:    "171.23",
		Open:             "172.10",
		DayHigh:          "174.00",
		DayLow:           "171.80",
		Volume:           "61234567",
		LatestTradingDay: "2024-03-15",
	}

	q, err := normalize.Quote(raw)
	require.NoError(t, err)

	require.Equal(t, "AAPL", q.Symbol)
	require.Equal(t, "Apple Inc", q.CompanyName)
	require.Equal(t, "173.44", q.CurrentPrice.StringFixed(2))
	require.Equal(t, "171.23", q.PreviousClose.StringFixed(2))
	require.Equal(t, int64(61234567), q.Volume)
	require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), q.AsOf)

	// Change fields are derived from the validated prices, never mapped.
	require.Equal(t, "2.21", q.ChangeAbsolute().StringFixed(2))
	require.Equal(t, "1.29", q.ChangePercent().StringFixed(2))
}

func TestQuote_SymbolUppercasedAndTrimmed(t *testing.T) {
	q, err := normalize.Quote(provider.RawQuote{
		Symbol:        "  aapl ",
		Price:         "10",
		PreviousClose: "9",
	})
	require.NoError(t, err)
	require.Equal(t, "AAPL", q.Symbol)
}

func TestQuote_CompanyNameFallsBackToSymbol(t *testing.T) {
	q, err := normalize.Quote(provider.RawQuote{
		Symbol:        "IBM",
		Price:         "185.50",
		PreviousClose: "184.00",
	})
	require.NoError(t, err)
	require.Equal(t, "IBM", q.CompanyName)
}

func TestQuote_MissingRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		raw  provider.RawQuote
	}{
		{"no symbol", provider.RawQuote{Price: "10", PreviousClose: "9"}},
		{"no price", provider.RawQuote{Symbol: "IBM", PreviousClose: "9"}},
		{"no previous close", provider.RawQuote{Symbol: "IBM", Price: "10"}},
		{"non-numeric price", provider.RawQuote{Symbol: "IBM", Price: "n/a", PreviousClose: "9"}},
		{"non-numeric previous close", provider.RawQuote{Symbol: "IBM", Price: "10", PreviousClose: "-"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := normalize.Quote(tc.raw)
			require.Error(t, err)
			require.Equal(t, stock.KindMalformed, stock.KindOf(err))
		})
	}
}

func TestQuote_OptionalFieldsDegradeToZero(t *testing.T) {
	q, err := normalize.Quote(provider.RawQuote{
		Symbol:        "IBM",
		Price:         "185.50",
		PreviousClose: "184.00",
		Open:          "garbage",
		Volume:        "not-a-number",
	})
	require.NoError(t, err)
	require.True(t, q.Open.IsZero())
	require.Zero(t, q.Volume)
}

func TestQuote_AsOfPrefersTradingDayOverReceivedAt(t *testing.T) {
	received := time.Date(2024, 3, 16, 9, 30, 0, 0, time.UTC)

	q, err := normalize.Quote(provider.RawQuote{
		Symbol:           "IBM",
		Price:            "185.50",
		PreviousClose:    "184.00",
		LatestTradingDay: "2024-03-15",
		ReceivedAt:       received,
	})
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), q.AsOf)

	q, err = normalize.Quote(provider.RawQuote{
		Symbol:        "IBM",
		Price:         "185.50",
		PreviousClose: "184.00",
		ReceivedAt:    received,
	})
	require.NoError(t, err)
	require.Equal(t, received, q.AsOf)
}

func TestQuote_ZeroPreviousCloseDerivesZeroPercent(t *testing.T) {
	q, err := normalize.Quote(provider.RawQuote{
		Symbol:        "NEWCO",
		Price:         "5.00",
		PreviousClose: "0",
	})
	require.NoError(t, err)
	require.True(t, q.ChangePercent().IsZero())
}

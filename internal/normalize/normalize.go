// Package normalize maps provider-shaped raw quotes into the canonical
// stock.Quote. It is the only place that parses the providers' string
// numerics, so every front end sees one validated shape.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stockview/internal/provider"
	"stockview/internal/stock"
)

// Quote validates and converts a raw quote. Symbol, current price and
// previous close are required; anything else missing degrades to zero
// values. Change fields are not mapped at all: stock.Quote derives them.
func Quote(raw provider.RawQuote) (stock.Quote, error) {
	symbol := strings.ToUpper(strings.TrimSpace(raw.Symbol))
	if symbol == "" {
		return stock.Quote{}, stock.Errf(stock.KindMalformed, "provider returned a quote without a symbol")
	}

	price, err := required("current price", raw.Price)
	if err != nil {
		return stock.Quote{}, err
	}
	prevClose, err := required("previous close", raw.PreviousClose)
	if err != nil {
		return stock.Quote{}, err
	}

	q := stock.Quote{
		Symbol:        symbol,
		CompanyName:   strings.TrimSpace(raw.CompanyName),
		CurrentPrice:  price,
		PreviousClose: prevClose,
		Open:          optional(raw.Open),
		DayHigh:       optional(raw.DayHigh),
		DayLow:        optional(raw.DayLow),
		Profile:       raw.Profile,
		AsOf:          asOf(raw),
	}
	if q.CompanyName == "" {
		// An empty company name renders badly; the symbol is the agreed
		// fallback.
		q.CompanyName = symbol
	}
	if v := strings.TrimSpace(raw.Volume); v != "" {
		q.Volume, _ = strconv.ParseInt(v, 10, 64)
	}
	return q, nil
}

func required(field, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, stock.Errf(stock.KindMalformed, "provider quote is missing the %s", field)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, stock.Errf(stock.KindMalformed, "provider quote has a non-numeric %s %q", field, value)
	}
	return d, nil
}

func optional(value string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func asOf(raw provider.RawQuote) time.Time {
	if day := strings.TrimSpace(raw.LatestTradingDay); day != "" {
		if ts, err := time.Parse("2006-01-02", day); err == nil {
			return ts.UTC()
		}
	}
	if !raw.ReceivedAt.IsZero() {
		return raw.ReceivedAt
	}
	return time.Now().UTC()
}

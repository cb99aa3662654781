package stock

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the normalized point-in-time snapshot for one ticker symbol.
// Prices are decimals to keep cent arithmetic exact.
//
// DayLow <= CurrentPrice <= DayHigh is NOT guaranteed: after-hours prices
// routinely fall outside the day range, so nothing here asserts it.
type Quote struct {
	Symbol        string
	CompanyName   string
	CurrentPrice  decimal.Decimal
	PreviousClose decimal.Decimal
	Open          decimal.Decimal
	DayLow        decimal.Decimal
	DayHigh       decimal.Decimal
	Volume        int64
	AsOf          time.Time

	// Profile carries optional company metadata; nil when the provider
	// has none.
	Profile *CompanyProfile
}

// ChangeAbsolute is CurrentPrice - PreviousClose. It is always derived,
// never stored, so it cannot drift out of sync with the prices.
func (q Quote) ChangeAbsolute() decimal.Decimal {
	return q.CurrentPrice.Sub(q.PreviousClose)
}

// ChangePercent is 100 * ChangeAbsolute / PreviousClose. A zero previous
// close yields zero rather than a division error.
func (q Quote) ChangePercent() decimal.Decimal {
	if q.PreviousClose.IsZero() {
		return decimal.Zero
	}
	return q.ChangeAbsolute().Div(q.PreviousClose).Mul(decimal.NewFromInt(100))
}

// CompanyProfile is supplementary company metadata (Alpha Vantage OVERVIEW).
// Ratio fields stay strings because the provider reports "None" for missing
// values; absent fields are empty.
type CompanyProfile struct {
	Name          string
	Exchange      string
	Sector        string
	Industry      string
	Description   string
	Employees     int64
	MarketCap     int64
	PERatio       string
	EPS           string
	DividendYield string
	WeekHigh52    string
	WeekLow52     string
}

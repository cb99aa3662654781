// Package dto holds the JSON shapes the HTTP API returns. They are built
// from the core types, never the other way around, so the API surface can
// evolve without touching the fetch core.
package dto

import (
	"time"

	"stockview/internal/resample"
	"stockview/internal/stock"
)

// QuoteResponse is the JSON projection of a normalized quote. Change fields
// are rendered from the derived values, rounded to cents.
type QuoteResponse struct {
	Symbol         string           `json:"symbol"`
	CompanyName    string           `json:"company_name"`
	CurrentPrice   string           `json:"current_price"`
	PreviousClose  string           `json:"previous_close"`
	Open           string           `json:"open,omitempty"`
	DayLow         string           `json:"day_low,omitempty"`
	DayHigh        string           `json:"day_high,omitempty"`
	ChangeAbsolute string           `json:"change_absolute"`
	ChangePercent  string           `json:"change_percent"`
	Volume         int64            `json:"volume"`
	AsOf           time.Time        `json:"as_of"`
	Profile        *ProfileResponse `json:"profile,omitempty"`
}

type ProfileResponse struct {
	Name          string `json:"name,omitempty"`
	Exchange      string `json:"exchange,omitempty"`
	Sector        string `json:"sector,omitempty"`
	Industry      string `json:"industry,omitempty"`
	MarketCap     int64  `json:"market_cap,omitempty"`
	PERatio       string `json:"pe_ratio,omitempty"`
	EPS           string `json:"eps,omitempty"`
	DividendYield string `json:"dividend_yield,omitempty"`
	WeekHigh52    string `json:"week_high_52,omitempty"`
	WeekLow52     string `json:"week_low_52,omitempty"`
}

type PointResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// SeriesResponse carries the chart window. IsSynthetic is always present in
// the JSON (no omitempty): clients must be able to check it.
type SeriesResponse struct {
	Symbol      string          `json:"symbol"`
	Period      string          `json:"period"`
	Interval    string          `json:"interval"`
	IsSynthetic bool            `json:"is_synthetic"`
	Points      []PointResponse `json:"points"`
	MA20        []float64       `json:"ma20,omitempty"`
	MA50        []float64       `json:"ma50,omitempty"`
}

// StockResponse is the 200/206-style payload for GET /api/v1/stock.
type StockResponse struct {
	Status  string          `json:"status"`
	Quote   *QuoteResponse  `json:"quote,omitempty"`
	Series  *SeriesResponse `json:"series,omitempty"`
	Warning string          `json:"warning,omitempty"`
}

// NewStockResponse projects a non-error FetchResult.
func NewStockResponse(res stock.FetchResult) StockResponse {
	out := StockResponse{Status: string(res.Status), Warning: res.Warning}
	if res.Quote != nil {
		out.Quote = newQuoteResponse(*res.Quote)
	}
	if res.Series != nil {
		out.Series = newSeriesResponse(*res.Series)
	}
	return out
}

func newQuoteResponse(q stock.Quote) *QuoteResponse {
	out := &QuoteResponse{
		Symbol:         q.Symbol,
		CompanyName:    q.CompanyName,
		CurrentPrice:   q.CurrentPrice.StringFixed(2),
		PreviousClose:  q.PreviousClose.StringFixed(2),
		ChangeAbsolute: q.ChangeAbsolute().StringFixed(2),
		ChangePercent:  q.ChangePercent().StringFixed(2),
		Volume:         q.Volume,
		AsOf:           q.AsOf,
	}
	if !q.Open.IsZero() {
		out.Open = q.Open.StringFixed(2)
	}
	if !q.DayLow.IsZero() {
		out.DayLow = q.DayLow.StringFixed(2)
	}
	if !q.DayHigh.IsZero() {
		out.DayHigh = q.DayHigh.StringFixed(2)
	}
	if p := q.Profile; p != nil {
		out.Profile = &ProfileResponse{
			Name:          p.Name,
			Exchange:      p.Exchange,
			Sector:        p.Sector,
			Industry:      p.Industry,
			MarketCap:     p.MarketCap,
			PERatio:       p.PERatio,
			EPS:           p.EPS,
			DividendYield: p.DividendYield,
			WeekHigh52:    p.WeekHigh52,
			WeekLow52:     p.WeekLow52,
		}
	}
	return out
}

func newSeriesResponse(s stock.Series) *SeriesResponse {
	out := &SeriesResponse{
		Symbol:      s.Symbol,
		Period:      string(s.Period),
		Interval:    string(s.Interval),
		IsSynthetic: s.IsSynthetic,
		Points:      make([]PointResponse, len(s.Points)),
		MA20:        resample.MovingAverage(s.Points, 20),
		MA50:        resample.MovingAverage(s.Points, 50),
	}
	for i, p := range s.Points {
		out.Points[i] = PointResponse{
			Timestamp: p.Timestamp,
			Open:      p.Open,
			High:      p.High,
			Low:       p.Low,
			Close:     p.Close,
			Volume:    p.Volume,
		}
	}
	return out
}

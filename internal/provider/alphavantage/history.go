package alphavantage

import (
	"context"
	"net/url"
	"time"

	"stockview/internal/provider"
	"stockview/internal/stock"
)

type historyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

type historyResponse struct {
	envelope
	Daily   map[string]historyBar `json:"Time Series (Daily)"`
	Weekly  map[string]historyBar `json:"Weekly Time Series"`
	Monthly map[string]historyBar `json:"Monthly Time Series"`
}

// History fetches the time series matching the interval. Alpha Vantage
// returns bars keyed by date, newest first; ordering is left to the
// resampler. The period only picks the output size here: compact (100 bars)
// is enough for short windows, longer ones need the full dump.
func (c *Client) History(ctx context.Context, symbol string, period stock.Period, interval stock.Interval) (provider.RawSeries, error) {
	params := url.Values{"symbol": {symbol}}
	switch interval {
	case stock.IntervalWeekly:
		params.Set("function", "TIME_SERIES_WEEKLY")
	case stock.IntervalMonthly:
		params.Set("function", "TIME_SERIES_MONTHLY")
	default:
		params.Set("function", "TIME_SERIES_DAILY")
		if n := period.Points(); n == 0 || n > 100 {
			params.Set("outputsize", "full")
		} else {
			params.Set("outputsize", "compact")
		}
	}

	body, err := c.get(ctx, params)
	if err != nil {
		return provider.RawSeries{}, err
	}

	var resp historyResponse
	if err := decode(body, &resp); err != nil {
		return provider.RawSeries{}, err
	}
	if err := resp.classify(symbol); err != nil {
		return provider.RawSeries{}, err
	}

	series := resp.Daily
	switch interval {
	case stock.IntervalWeekly:
		series = resp.Weekly
	case stock.IntervalMonthly:
		series = resp.Monthly
	}
	if len(series) == 0 {
		return provider.RawSeries{}, stock.Errf(stock.KindNotFound, "no historical data available for symbol %q", symbol)
	}

	raw := provider.RawSeries{Symbol: symbol, Bars: make([]provider.RawBar, 0, len(series))}
	for date, bar := range series {
		ts, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		raw.Bars = append(raw.Bars, provider.RawBar{
			Timestamp: ts.UTC(),
			Open:      bar.Open,
			High:      bar.High,
			Low:       bar.Low,
			Close:     bar.Close,
			Volume:    bar.Volume,
		})
	}
	return raw, nil
}

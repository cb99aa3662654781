package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stockview/internal/httpx"
	"stockview/internal/provider"
	"stockview/internal/stock"
)

// Config for the unauthenticated Yahoo-style chart provider.
type Config struct {
	Name    string
	BaseURL string
}

// Client reads the v8 chart endpoint. A single call carries both the quote
// snapshot (meta block) and the historical bars, so Quote and History hit
// the same URL with different ranges. No API key, but the endpoint is the
// less reliable of the two providers.
type Client struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Client {
	if cfg.Name == "" {
		cfg.Name = "yahoo"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://query1.finance.yahoo.com"
	}
	return &Client{cfg: cfg, client: hc}
}

func (c *Client) Name() string { return c.cfg.Name }

// rangeFor maps a period to the chart API's range parameter. The period set
// is modeled on the same strings, so this is almost the identity.
func rangeFor(period stock.Period) string { return string(period) }

func intervalFor(interval stock.Interval) string {
	switch interval {
	case stock.IntervalWeekly:
		return "1wk"
	case stock.IntervalMonthly:
		return "1mo"
	default:
		return "1d"
	}
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Symbol               string  `json:"symbol"`
		LongName             string  `json:"longName"`
		ShortName            string  `json:"shortName"`
		RegularMarketPrice   float64 `json:"regularMarketPrice"`
		ChartPreviousClose   float64 `json:"chartPreviousClose"`
		PreviousClose        float64 `json:"previousClose"`
		RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
		RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
		RegularMarketVolume  int64   `json:"regularMarketVolume"`
		RegularMarketTime    int64   `json:"regularMarketTime"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

func (c *Client) fetch(ctx context.Context, symbol, rng, interval string) (chartResult, error) {
	query := url.Values{
		"range":          {rng},
		"interval":       {interval},
		"includePrePost": {"false"},
	}
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.cfg.BaseURL, url.PathEscape(symbol), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return chartResult{}, stock.WrapErr(stock.KindNetwork, err, "creating request")
	}

	res, err := c.client.Do(ctx, req)
	if err != nil {
		return chartResult{}, stock.WrapErr(stock.KindNetwork, err, "chart request failed")
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK, http.StatusNotFound:
		// 404 still carries a JSON error body worth classifying.
	case http.StatusTooManyRequests:
		return chartResult{}, stock.Errf(stock.KindRateLimited, "chart endpoint rate limited (HTTP 429)")
	default:
		return chartResult{}, stock.Errf(stock.KindNetwork, "unexpected status %d from chart endpoint", res.StatusCode)
	}

	var resp chartResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return chartResult{}, stock.WrapErr(stock.KindMalformed, err, "undecodable chart response")
	}
	if e := resp.Chart.Error; e != nil {
		if e.Code == "Not Found" || res.StatusCode == http.StatusNotFound {
			return chartResult{}, stock.Errf(stock.KindNotFound, "symbol %q is unknown: %s", symbol, e.Description)
		}
		return chartResult{}, stock.Errf(stock.KindMalformed, "chart error %s: %s", e.Code, e.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return chartResult{}, stock.Errf(stock.KindNotFound, "no data found for symbol %q", symbol)
	}
	return resp.Chart.Result[0], nil
}

// Quote builds the raw snapshot from the chart meta block plus the first bar
// of the day (the meta has no open price).
func (c *Client) Quote(ctx context.Context, symbol string) (provider.RawQuote, error) {
	result, err := c.fetch(ctx, symbol, "1d", "1d")
	if err != nil {
		return provider.RawQuote{}, err
	}

	meta := result.Meta
	prevClose := meta.ChartPreviousClose
	if meta.PreviousClose > 0 {
		prevClose = meta.PreviousClose
	}
	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}

	raw := provider.RawQuote{
		Symbol:        meta.Symbol,
		CompanyName:   name,
		Price:         formatPrice(meta.RegularMarketPrice),
		PreviousClose: formatPrice(prevClose),
		DayHigh:       formatPrice(meta.RegularMarketDayHigh),
		DayLow:        formatPrice(meta.RegularMarketDayLow),
		Volume:        strconv.FormatInt(meta.RegularMarketVolume, 10),
		ReceivedAt:    time.Now().UTC(),
	}
	if raw.Symbol == "" {
		raw.Symbol = symbol
	}
	if meta.RegularMarketTime > 0 {
		raw.LatestTradingDay = time.Unix(meta.RegularMarketTime, 0).UTC().Format("2006-01-02")
	}
	if quotes := result.Indicators.Quote; len(quotes) > 0 && len(quotes[0].Open) > 0 {
		if open := quotes[0].Open[0]; open != nil {
			raw.Open = formatPrice(*open)
		}
	}
	return raw, nil
}

// History returns the bars for the requested window. Null entries (halted
// sessions) are skipped; ordering is left to the resampler.
func (c *Client) History(ctx context.Context, symbol string, period stock.Period, interval stock.Interval) (provider.RawSeries, error) {
	result, err := c.fetch(ctx, symbol, rangeFor(period), intervalFor(interval))
	if err != nil {
		return provider.RawSeries{}, err
	}
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return provider.RawSeries{}, stock.Errf(stock.KindMalformed, "chart response for %q has no bars", symbol)
	}

	quote := result.Indicators.Quote[0]
	raw := provider.RawSeries{Symbol: symbol, Bars: make([]provider.RawBar, 0, len(result.Timestamp))}
	for i, ts := range result.Timestamp {
		closePx := at(quote.Close, i)
		if closePx == nil {
			continue
		}
		bar := provider.RawBar{
			Timestamp: time.Unix(ts, 0).UTC(),
			Close:     formatPrice(*closePx),
		}
		if open := at(quote.Open, i); open != nil {
			bar.Open = formatPrice(*open)
		}
		if high := at(quote.High, i); high != nil {
			bar.High = formatPrice(*high)
		}
		if low := at(quote.Low, i); low != nil {
			bar.Low = formatPrice(*low)
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = strconv.FormatInt(*quote.Volume[i], 10)
		}
		raw.Bars = append(raw.Bars, bar)
	}
	return raw, nil
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

func formatPrice(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package alphavantage

import (
	"context"
	"net/url"
	"time"

	"stockview/internal/provider"
	"stockview/internal/stock"
)

type quoteResponse struct {
	envelope
	GlobalQuote map[string]string `json:"Global Quote"`
}

// Quote fetches GLOBAL_QUOTE for one symbol. When the client was built with
// WithProfile it also fetches OVERVIEW; a profile failure never fails the
// quote, it just leaves Profile nil.
func (c *Client) Quote(ctx context.Context, symbol string) (provider.RawQuote, error) {
	body, err := c.get(ctx, url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {symbol},
	})
	if err != nil {
		return provider.RawQuote{}, err
	}

	var resp quoteResponse
	if err := decode(body, &resp); err != nil {
		return provider.RawQuote{}, err
	}
	if err := resp.classify(symbol); err != nil {
		return provider.RawQuote{}, err
	}
	// An unknown symbol comes back as an empty (or near-empty) quote object
	// with HTTP 200.
	if len(resp.GlobalQuote) <= 1 {
		return provider.RawQuote{}, stock.Errf(stock.KindNotFound, "no data found for symbol %q", symbol)
	}

	gq := resp.GlobalQuote
	raw := provider.RawQuote{
		Symbol:           gq["01. symbol"],
		Price:            gq["05. price"],
		PreviousClose:    gq["08. previous close"],
		Open:             gq["02. open"],
		DayHigh:          gq["03. high"],
		DayLow:           gq["04. low"],
		Volume:           gq["06. volume"],
		LatestTradingDay: gq["07. latest trading day"],
		ReceivedAt:       time.Now().UTC(),
	}
	if raw.Symbol == "" {
		raw.Symbol = symbol
	}

	if c.withProfile {
		if profile, err := c.overview(ctx, symbol); err == nil {
			raw.Profile = profile
			raw.CompanyName = profile.Name
		}
	}
	return raw, nil
}

package alphavantage

import (
	"context"
	"net/url"
	"strconv"

	"stockview/internal/stock"
)

// overview fetches the OVERVIEW fundamentals payload. Every value arrives as
// a string; missing ones are "None", "-" or absent.
func (c *Client) overview(ctx context.Context, symbol string) (*stock.CompanyProfile, error) {
	body, err := c.get(ctx, url.Values{
		"function": {"OVERVIEW"},
		"symbol":   {symbol},
	})
	if err != nil {
		return nil, err
	}

	var fields map[string]string
	if err := decode(body, &fields); err != nil {
		return nil, err
	}
	if len(fields) <= 1 || fields["Symbol"] == "" {
		return nil, stock.Errf(stock.KindNotFound, "no company information for symbol %q", symbol)
	}

	profile := &stock.CompanyProfile{
		Name:          pick(fields, "Name"),
		Exchange:      pick(fields, "Exchange"),
		Sector:        pick(fields, "Sector"),
		Industry:      pick(fields, "Industry"),
		Description:   pick(fields, "Description"),
		PERatio:       pick(fields, "PERatio"),
		EPS:           pick(fields, "EPS"),
		DividendYield: pick(fields, "DividendYield"),
		WeekHigh52:    pick(fields, "52WeekHigh"),
		WeekLow52:     pick(fields, "52WeekLow"),
	}
	profile.MarketCap, _ = strconv.ParseInt(pick(fields, "MarketCapitalization"), 10, 64)
	profile.Employees, _ = strconv.ParseInt(pick(fields, "FullTimeEmployees"), 10, 64)
	return profile, nil
}

// pick reads a field, treating the provider's "None" placeholders as absent.
func pick(fields map[string]string, key string) string {
	switch v := fields[key]; v {
	case "None", "none", "-":
		return ""
	default:
		return v
	}
}

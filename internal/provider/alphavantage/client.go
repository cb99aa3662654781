package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"stockview/internal/stock"
)

const defaultBaseURL = "https://www.alphavantage.co"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=alphavantage_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Alpha Vantage REST API. The free tier allows 5 calls
// per minute and 500 per day; the provider enforces this itself and answers
// over-quota calls with a "Note" body, surfaced as stock.KindRateLimited.
type Client struct {
	baseURL     string
	httpClient  HTTPClient
	header      http.Header
	apiKey      string
	withProfile bool
}

// Option is a configuration option for the Alpha Vantage client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader adds headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithProfile toggles the extra OVERVIEW call that fills the company
// profile on quotes. It costs one request against the rate budget.
func WithProfile(enabled bool) Option {
	return func(c *Client) {
		c.withProfile = enabled
	}
}

// New creates an Alpha Vantage client. The key is required by the API; an
// empty one makes every call fail with stock.KindAuth before any request.
func New(apiKey string, options ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		apiKey:     strings.TrimSpace(apiKey),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Client) Name() string { return "alphavantage" }

// get performs one /query call and maps transport and status failures to
// classified errors. The JSON body is returned for the caller to decode.
func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, stock.Errf(stock.KindAuth, "alpha vantage api key is not configured")
	}
	query := url.Values{}
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	query.Set("apikey", c.apiKey)

	u := fmt.Sprintf("%s/query?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, stock.WrapErr(stock.KindNetwork, err, "creating request")
	}
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, stock.WrapErr(stock.KindNetwork, err, "alpha vantage request failed")
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, stock.Errf(stock.KindRateLimited, "alpha vantage rate limit exceeded (HTTP 429)")
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, stock.Errf(stock.KindAuth, "alpha vantage rejected the api key (HTTP %d)", res.StatusCode)
	default:
		return nil, stock.Errf(stock.KindNetwork, "unexpected status %d from alpha vantage", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, 8<<20))
	if err != nil {
		return nil, stock.WrapErr(stock.KindNetwork, err, "reading response body")
	}
	return body, nil
}

// envelope holds the error fields Alpha Vantage mixes into every payload.
// The API reports failures with HTTP 200 and one of these set, so kind
// classification has to sniff the message text, same as the upstream docs
// suggest.
type envelope struct {
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
}

func (e envelope) classify(symbol string) error {
	if e.ErrorMessage != "" {
		if strings.Contains(e.ErrorMessage, "Invalid API call") {
			return stock.Errf(stock.KindNotFound, "symbol %q is unknown to alpha vantage", symbol)
		}
		return stock.Errf(stock.KindMalformed, "alpha vantage error: %s", e.ErrorMessage)
	}
	for _, note := range []string{e.Note, e.Information} {
		if note == "" {
			continue
		}
		lower := strings.ToLower(note)
		if strings.Contains(lower, "frequency") || strings.Contains(lower, "rate limit") ||
			strings.Contains(lower, "per minute") || strings.Contains(lower, "per day") {
			return stock.Errf(stock.KindRateLimited, "alpha vantage rate limit reached; wait a minute and retry")
		}
		return stock.Errf(stock.KindMalformed, "alpha vantage notice: %s", note)
	}
	return nil
}

func decode(body []byte, v any) error {
	if len(body) == 0 {
		return stock.Errf(stock.KindMalformed, "empty response from alpha vantage")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return stock.WrapErr(stock.KindMalformed, err, "undecodable response from alpha vantage")
	}
	return nil
}

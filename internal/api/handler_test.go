package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"stockview/internal/api"
	"stockview/internal/dto"
	"stockview/internal/stock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubFetcher returns a canned result and records the arguments it was
// called with.
type stubFetcher struct {
	result   stock.FetchResult
	symbol   string
	period   string
	interval string
	calls    int
}

func (s *stubFetcher) Fetch(_ context.Context, symbol, period, interval string) stock.FetchResult {
	s.calls++
	s.symbol, s.period, s.interval = symbol, period, interval
	return s.result
}

func serve(t *testing.T, f api.StockFetcher, target string) *httptest.ResponseRecorder {
	t.Helper()
	router := api.NewRouter(api.NewHandler(f))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(rec, req)
	return rec
}

func okResult() stock.FetchResult {
	return stock.OK(
		stock.Quote{
			Symbol:        "AAPL",
			CompanyName:   "Apple Inc",
			CurrentPrice:  decimal.RequireFromString("173.44"),
			PreviousClose: decimal.RequireFromString("171.23"),
		},
		stock.Series{
			Symbol:   "AAPL",
			Period:   stock.Period3Mo,
			Interval: stock.IntervalDaily,
			Points:   []stock.SeriesPoint{{Close: 173.44}},
		},
	)
}

func TestGetStock_OK(t *testing.T) {
	fetcher := &stubFetcher{result: okResult()}

	rec := serve(t, fetcher, "/api/v1/stock?symbol=AAPL&period=1mo&interval=weekly")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "AAPL", fetcher.symbol)
	require.Equal(t, "1mo", fetcher.period)
	require.Equal(t, "weekly", fetcher.interval)

	var body dto.StockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body.Status)
	require.Equal(t, "173.44", body.Quote.CurrentPrice)
	require.Equal(t, "2.21", body.Quote.ChangeAbsolute)
	require.Equal(t, "1.29", body.Quote.ChangePercent)
	require.False(t, body.Series.IsSynthetic)
	require.Empty(t, body.Warning)
}

func TestGetStock_DefaultsPeriodAndInterval(t *testing.T) {
	fetcher := &stubFetcher{result: okResult()}

	serve(t, fetcher, "/api/v1/stock?symbol=AAPL")
	require.Equal(t, "3mo", fetcher.period)
	require.Equal(t, "daily", fetcher.interval)
}

func TestGetStock_MissingSymbol(t *testing.T) {
	fetcher := &stubFetcher{}

	rec := serve(t, fetcher, "/api/v1/stock")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, fetcher.calls)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "symbol is required", body.Message)
}

func TestGetStock_PartialPayload(t *testing.T) {
	fetcher := &stubFetcher{result: stock.Partial(
		stock.Quote{
			Symbol:        "MSFT",
			CurrentPrice:  decimal.RequireFromString("415.50"),
			PreviousClose: decimal.RequireFromString("412.30"),
		},
		stock.Series{Symbol: "MSFT", IsSynthetic: true, Points: []stock.SeriesPoint{{Close: 415.50}}},
		"historical data unavailable (connection refused); showing simulated data",
	)}

	rec := serve(t, fetcher, "/api/v1/stock?symbol=MSFT&period=5d")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.StockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "partial", body.Status)
	require.True(t, body.Series.IsSynthetic)
	require.Contains(t, body.Warning, "simulated")

	require.Contains(t, rec.Body.String(), `"is_synthetic":true`)
}

func TestGetStock_ErrorKindToStatusCode(t *testing.T) {
	cases := []struct {
		kind stock.ErrorKind
		want int
	}{
		{stock.KindInvalidPeriod, http.StatusBadRequest},
		{stock.KindNotFound, http.StatusNotFound},
		{stock.KindRateLimited, http.StatusTooManyRequests},
		{stock.KindAuth, http.StatusUnauthorized},
		{stock.KindNetwork, http.StatusBadGateway},
		{stock.KindMalformed, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			fetcher := &stubFetcher{result: stock.Fail(stock.Errf(tc.kind, "boom"))}

			rec := serve(t, fetcher, "/api/v1/stock?symbol=AAPL")
			require.Equal(t, tc.want, rec.Code)

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, string(tc.kind), body.Kind)
			require.Equal(t, "boom", body.Message)
			require.False(t, body.Timestamp.IsZero())
		})
	}
}

func TestHealthz(t *testing.T) {
	rec := serve(t, &stubFetcher{}, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	rec := serve(t, &stubFetcher{result: okResult()}, "/healthz")
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

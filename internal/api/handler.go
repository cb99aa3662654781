package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockview/internal/dto"
	"stockview/internal/stock"
)

// StockFetcher is the slice of the fetch core the HTTP layer needs.
type StockFetcher interface {
	Fetch(ctx context.Context, symbol, period, interval string) stock.FetchResult
}

// Handler renders FetchResults as JSON. It owns presentation only: status
// code mapping and DTO projection, no fetch or normalization logic.
type Handler struct {
	fetcher StockFetcher
}

func NewHandler(f StockFetcher) *Handler {
	return &Handler{fetcher: f}
}

// GetStock handles GET /api/v1/stock?symbol=&period=&interval=.
//
// The response mirrors the tri-state result: "ok" and "partial" answer 200
// with the partial payload carrying a warning and is_synthetic=true on the
// series, errors answer with a kind-specific status and an ErrorResponse.
func (h *Handler) GetStock(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(stock.Errf(stock.KindNotFound, "symbol is required")))
		return
	}
	period := c.DefaultQuery("period", string(stock.Period3Mo))
	interval := c.DefaultQuery("interval", string(stock.IntervalDaily))

	res := h.fetcher.Fetch(c.Request.Context(), symbol, period, interval)
	if res.Status == stock.StatusErr {
		c.JSON(statusFor(res.Err.Kind), dto.NewErrorResponse(res.Err))
		return
	}
	c.JSON(http.StatusOK, dto.NewStockResponse(res))
}

// statusFor keeps the error taxonomy visible on the wire instead of
// collapsing everything to 500.
func statusFor(kind stock.ErrorKind) int {
	switch kind {
	case stock.KindInvalidPeriod:
		return http.StatusBadRequest
	case stock.KindNotFound:
		return http.StatusNotFound
	case stock.KindRateLimited:
		return http.StatusTooManyRequests
	case stock.KindAuth:
		return http.StatusUnauthorized
	case stock.KindNetwork, stock.KindMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

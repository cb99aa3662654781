package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockview/internal/middleware"
)

// NewRouter wires the middleware chain and routes around a Handler.
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Recovery(),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/stock", handler.GetStock)
	}
	return router
}

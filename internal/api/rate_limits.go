package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
)

// RegisterRateLimitRoutes exposes the caller's remaining write budget.
func RegisterRateLimitRoutes(router *gin.RouterGroup, writeLimiter *middleware.RateLimiter) {
	if !writeLimiter.Enabled() {
		return
	}
	router.GET("/rate-limits", middleware.RequireAuth(), func(c *gin.Context) {
		remaining, resetTime, err := writeLimiter.GetRemainingRequests(c.Request.Context(), middleware.ClientKey(c))
		if err != nil {
			respondError(c, err)
			return
		}
		cfg := writeLimiter.Config()
		c.JSON(http.StatusOK, gin.H{
			"limit":      cfg.Limit,
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
			"window":     cfg.Window.String(),
		})
	})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteOptions carries the per-route middleware settings.
type RouteOptions struct {
	// MaxBodyBytes caps /api/generate bodies; 0 disables the cap.
	MaxBodyBytes int64
	// MaxExportBytes caps /api/export bodies, which carry whole pages and may hold data: URLs.
	MaxExportBytes int64
	// Limiter is optional; nil disables rate limiting on the generation endpoint.
	Limiter *IPRateLimiter
}

// RegisterRoutes sets up the API endpoints.
func RegisterRoutes(router *gin.Engine, h *APIHandler, opts RouteOptions) {
	apiGroup := router.Group("/api")
	{
		generate := []gin.HandlerFunc{}
		if opts.MaxBodyBytes > 0 {
			generate = append(generate, LimitBody(opts.MaxBodyBytes))
		}
		if opts.Limiter != nil {
			generate = append(generate, RateLimit(opts.Limiter))
		}
		apiGroup.POST("/generate", append(generate, h.GenerateSite)...) // Generate a site and its images from a prompt

		export := []gin.HandlerFunc{CheckContentType()}
		if opts.MaxExportBytes > 0 {
			export = append(export, LimitBody(opts.MaxExportBytes))
		}
		apiGroup.POST("/export", append(export, h.ExportSite)...) // Download markup as an .html attachment
	}

	// --- Simple Health Check ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

package api

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"site_designer_server/internal/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-Id"

// RequestID reuses the caller's X-Request-Id or mints a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Set("RequestID", requestID)
		c.Next()
	}
}

// RequestLogger attaches a request-scoped logger to the request context and logs
// one line per request once the handler chain has finished.
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		logger := base.With().Str("request_id", c.GetString("RequestID")).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		} else if status >= http.StatusBadRequest {
			event = logger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

// Recovery turns a panic into the same generic failure payload a failed generation gets.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				zerolog.Ctx(c.Request.Context()).Error().
					Str("code", types.ErrCodeInternal).
					Str("path", c.Request.URL.Path).
					Str("reason", fmt.Sprintf("%v", r)).
					Str("stack", string(debug.Stack())).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, GenerateResponse{Success: false, Error: generateFailedMessage})
			}
		}()
		c.Next()
	}
}

func CheckContentType() gin.HandlerFunc {
	return func(c *gin.Context) {
		contentType := strings.Split(c.GetHeader("Content-Type"), ";")[0]
		if strings.TrimSpace(strings.ToLower(contentType)) != "application/json" {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, GenerateResponse{Success: false, Error: "invalid content type, expected application/json"})
			return
		}
		c.Next()
	}
}

// LimitBody caps the request body; oversized bodies fail to bind.
func LimitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func RateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.Allow(ip) {
			zerolog.Ctx(c.Request.Context()).Warn().
				Str("code", types.ErrCodeRateLimited).
				Str("client_ip", ip).
				Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, GenerateResponse{Success: false, Error: "Rate limit exceeded"})
			return
		}
		c.Next()
	}
}

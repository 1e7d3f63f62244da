package httpserver

import (
	"time"

	"fireworks-storefront/internal/logger"
	"fireworks-storefront/internal/metrics"
	"fireworks-storefront/internal/storefront"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware tags every request with an id and a request-scoped logger.
func requestIDMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		ctx := log.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func accessLogMiddleware(log *logger.Logger, m *metrics.Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		m.ObserveHTTP(c.Request.Method, route, status, elapsed)

		ctx := log.WithFields(c.Request.Context(), map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": elapsed.Milliseconds(),
		})
		if status >= 500 {
			log.Warn(ctx, "request failed")
			return
		}
		log.Debug(ctx, "request served")
	}
}

// guardMiddleware renders the redirect before a protected handler runs.
func guardMiddleware(app *storefront.App, requireAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := app.Guard(requireAdmin, c.Request.URL.Path)
		if !d.Allowed {
			writeError(c, d.Err())
			c.Abort()
			return
		}
		c.Next()
	}
}

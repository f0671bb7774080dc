package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/measure/ctxutil"
	"github.com/ncobase/measure/logging/observes"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// traceMiddleware gives every request a trace id, taken from the request
// header when present, and a span.
func traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if id := c.GetHeader(ctxutil.TraceIDHeader); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)
		c.Set(ctxutil.TraceIDKey, traceID)
		c.Header(ctxutil.TraceIDHeader, traceID)

		ctx, span := observes.StartSpan(ctx, fmt.Sprintf("%s %s", c.Request.Method, c.FullPath()),
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.target", c.Request.URL.Path),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
	}
}

// loggerMiddleware logs one record per request.
func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		entry := s.logger.WithFieldsContext(c.Request.Context(), logrus.Fields{
			"method":   method,
			"path":     path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
		if c.Writer.Status() >= 500 {
			entry.Warn("HTTP request")
			return
		}
		entry.Debug("HTTP request")
	}
}

package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hooksink/hooksink/internal/metrics"
)

// Context keys set by handlers to enrich the request log line.
const (
	ctxMessageID = "log_message_id"
	ctxResult    = "log_result"
	ctxDup       = "log_dup"
)

// Observe assigns a request id, then records one http_requests_total
// increment, one latency observation and one log line per request, whatever
// the outcome. The metric path label uses the matched route template to keep
// cardinality bounded; unmatched requests fall back to the raw path.
func Observe(m *metrics.Metrics, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-Id", requestID)

		c.Next()

		latencyMS := float64(time.Since(start).Microseconds()) / 1000.0
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		m.ObserveHTTP(path, status, latencyMS)

		evt := logger.Info()
		if status >= 400 {
			evt = logger.Error()
		}
		evt = evt.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Float64("latency_ms", latencyMS)
		if v, ok := c.Get(ctxMessageID); ok {
			if id, ok := v.(string); ok {
				evt = evt.Str("message_id", id)
			}
		}
		if v, ok := c.Get(ctxResult); ok {
			if result, ok := v.(string); ok {
				evt = evt.Str("result", result)
			}
		}
		if v, ok := c.Get(ctxDup); ok {
			if dup, ok := v.(bool); ok {
				evt = evt.Bool("dup", dup)
			}
		}
		evt.Msg("request completed")
	}
}

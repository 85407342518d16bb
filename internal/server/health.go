package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hooksink/hooksink/internal/db"
)

// handleHealthLive answers 200 whenever the process is running.
func handleHealthLive() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "live"})
	}
}

// handleHealthReady answers 200 only when storage is reachable with the
// schema in place and the webhook secret is configured.
func handleHealthReady(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		if opts.Config.WebhookSecret != "" && db.Ready(opts.DB) {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
	}
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hooksink/hooksink/internal/store"
)

// handleStats serves the aggregate snapshot.
func handleStats(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := store.ComputeStats(opts.DB)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "storage unavailable"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

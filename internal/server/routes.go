package server

import "github.com/gin-gonic/gin"

// registerRoutes sets up all routes on the router.
func registerRoutes(router *gin.Engine, opts Options) {
	router.POST("/webhook", handleWebhook(opts))
	router.GET("/messages", handleMessages(opts))
	router.GET("/stats", handleStats(opts))

	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	router.GET("/health/live", handleHealthLive())
	router.GET("/health/ready", handleHealthReady(opts))
}

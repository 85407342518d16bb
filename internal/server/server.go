// Package server exposes the webhook ingestion and query HTTP surface.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hooksink/hooksink/internal/config"
	"github.com/hooksink/hooksink/internal/metrics"
)

// Options holds the dependencies of the HTTP server. Metrics and Logger are
// injected so tests can run isolated instances.
type Options struct {
	DB      *gorm.DB
	Config  *config.Config
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

// NewRouter builds the Gin router with all routes and middleware attached.
func NewRouter(opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Observe wraps everything, including panics recovered below, so every
	// request lands in the counters exactly once.
	router.Use(Observe(opts.Metrics, opts.Logger))
	router.Use(gin.Recovery())

	registerRoutes(router, opts)
	return router
}

// Start launches the HTTP server on the configured port. It blocks until ctx
// is cancelled, then shuts down gracefully.
func Start(ctx context.Context, opts Options) error {
	if opts.DB == nil {
		return fmt.Errorf("server: db is required")
	}
	if opts.Config == nil {
		return fmt.Errorf("server: config is required")
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	router := NewRouter(opts)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Config.Port),
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	opts.Logger.Info().Int("port", opts.Config.Port).Msg("listening")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

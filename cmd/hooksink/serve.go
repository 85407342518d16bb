package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hooksink/hooksink/internal/config"
	"github.com/hooksink/hooksink/internal/db"
	"github.com/hooksink/hooksink/internal/logging"
	"github.com/hooksink/hooksink/internal/metrics"
	"github.com/hooksink/hooksink/internal/notify"
	"github.com/hooksink/hooksink/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook ingestion HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "hooksink.yaml", "path to config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	_ = godotenv.Load(".env")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Port = port
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)
	if cfg.WebhookSecret == "" {
		logger.Warn().Msg("webhook secret not configured; ingestion disabled until WEBHOOK_SECRET is set")
	}

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(conn); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	if cfg.Digest.Enabled() {
		adapter, err := notify.NewAdapter(cfg.Digest)
		if err != nil {
			return err
		}
		digester, err := notify.NewDigester(notify.DigesterOpts{
			DB:       conn,
			Adapter:  adapter,
			Schedule: cfg.Digest.Schedule,
			Logger:   logger,
		})
		if err != nil {
			return err
		}
		go digester.Run(ctx)
	}

	return server.Start(ctx, server.Options{
		DB:      conn,
		Config:  cfg,
		Metrics: metrics.New(),
		Logger:  logger,
	})
}

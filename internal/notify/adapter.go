// Package notify delivers periodic ingest digests to chat platforms
// (Slack, Discord). Delivery is best-effort and never affects ingestion.
package notify

import (
	"context"
	"fmt"

	"github.com/hooksink/hooksink/internal/config"
)

// Adapter is the interface platform-specific implementations satisfy.
type Adapter interface {
	// Post delivers a plain-text message to the configured channel.
	Post(ctx context.Context, text string) error

	// Close releases any platform connection.
	Close() error
}

// NewAdapter builds the Adapter selected by cfg.
func NewAdapter(cfg config.DigestConfig) (Adapter, error) {
	switch cfg.Platform {
	case "slack":
		return NewSlackAdapter(cfg.Token, cfg.ChannelID), nil
	case "discord":
		return NewDiscordAdapter(cfg.Token, cfg.ChannelID)
	default:
		return nil, fmt.Errorf("notify: unknown platform %q", cfg.Platform)
	}
}

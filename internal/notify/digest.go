package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hooksink/hooksink/internal/store"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Digester posts a recurring ingest stats digest.
type Digester struct {
	db      *gorm.DB
	adapter Adapter
	sched   cron.Schedule
	logger  zerolog.Logger
}

// DigesterOpts holds parameters for NewDigester.
type DigesterOpts struct {
	DB       *gorm.DB
	Adapter  Adapter
	Schedule string // 5-field cron expression
	Logger   zerolog.Logger
}

// NewDigester validates opts and parses the schedule.
func NewDigester(opts DigesterOpts) (*Digester, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("notify: db is required")
	}
	if opts.Adapter == nil {
		return nil, fmt.Errorf("notify: adapter is required")
	}
	sched, err := cronParser.Parse(opts.Schedule)
	if err != nil {
		return nil, fmt.Errorf("notify: parse schedule %q: %w", opts.Schedule, err)
	}
	return &Digester{
		db:      opts.DB,
		adapter: opts.Adapter,
		sched:   sched,
		logger:  opts.Logger,
	}, nil
}

// Run posts a digest on every schedule fire until ctx is cancelled. Build
// and delivery failures are logged and the loop continues.
func (d *Digester) Run(ctx context.Context) {
	defer d.adapter.Close()
	for {
		next := d.sched.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		text, err := BuildDigest(d.db)
		if err != nil {
			d.logger.Error().Err(err).Msg("digest build failed")
			continue
		}
		if text == "" {
			continue
		}
		if err := d.adapter.Post(ctx, text); err != nil {
			d.logger.Error().Err(err).Msg("digest delivery failed")
			continue
		}
		d.logger.Info().Msg("digest delivered")
	}
}

// BuildDigest renders the current stats snapshot as chat text. Returns ""
// when the store is empty (no digest worth posting).
func BuildDigest(conn *gorm.DB) (string, error) {
	stats, err := store.ComputeStats(conn)
	if err != nil {
		return "", fmt.Errorf("notify: build digest: %w", err)
	}
	if stats.TotalMessages == 0 {
		return "", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "hooksink digest: %d messages from %d senders\n", stats.TotalMessages, stats.SendersCount)
	if stats.FirstMessageTs != nil && stats.LastMessageTs != nil {
		fmt.Fprintf(&b, "window: %s .. %s\n", *stats.FirstMessageTs, *stats.LastMessageTs)
	}
	if len(stats.MessagesPerSender) > 0 {
		b.WriteString("top senders:\n")
		for _, s := range stats.MessagesPerSender {
			fmt.Fprintf(&b, "  %s (%d)\n", s.From, s.Count)
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

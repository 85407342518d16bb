package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hooksink/hooksink/internal/config"
	"github.com/hooksink/hooksink/internal/db"
	"github.com/hooksink/hooksink/internal/models"
	"github.com/hooksink/hooksink/internal/store"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return conn
}

func seed(t *testing.T, conn *gorm.DB, id, from, ts string) {
	t.Helper()
	_, err := store.Insert(conn, &models.Message{
		MessageID:  id,
		FromMSISDN: from,
		ToMSISDN:   "+14155550100",
		Ts:         ts,
		Text:       "hi",
	})
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestBuildDigest(t *testing.T) {
	conn := openTestDB(t)
	seed(t, conn, "m1", "+111", "2025-01-15T10:00:00Z")
	seed(t, conn, "m2", "+111", "2025-01-15T11:00:00Z")
	seed(t, conn, "m3", "+222", "2025-01-14T10:00:00Z")

	text, err := BuildDigest(conn)
	if err != nil {
		t.Fatalf("BuildDigest: %v", err)
	}
	wantParts := []string{
		"3 messages from 2 senders",
		"2025-01-14T10:00:00Z .. 2025-01-15T11:00:00Z",
		"+111 (2)",
		"+222 (1)",
	}
	for _, part := range wantParts {
		if !strings.Contains(text, part) {
			t.Errorf("digest missing %q:\n%s", part, text)
		}
	}
}

func TestBuildDigest_EmptyStore(t *testing.T) {
	conn := openTestDB(t)

	text, err := BuildDigest(conn)
	if err != nil {
		t.Fatalf("BuildDigest: %v", err)
	}
	if text != "" {
		t.Errorf("digest = %q, want empty for empty store", text)
	}
}

func TestNewDigester_Validation(t *testing.T) {
	conn := openTestDB(t)
	adapter := NewMockAdapter()

	tests := []struct {
		name string
		opts DigesterOpts
	}{
		{name: "missing db", opts: DigesterOpts{Adapter: adapter, Schedule: "0 9 * * *"}},
		{name: "missing adapter", opts: DigesterOpts{DB: conn, Schedule: "0 9 * * *"}},
		{name: "bad schedule", opts: DigesterOpts{DB: conn, Adapter: adapter, Schedule: "whenever"}},
		{name: "six fields", opts: DigesterOpts{DB: conn, Adapter: adapter, Schedule: "0 0 9 * * *"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDigester(tt.opts); err == nil {
				t.Error("NewDigester() error = nil, want error")
			}
		})
	}

	if _, err := NewDigester(DigesterOpts{DB: conn, Adapter: adapter, Schedule: "*/5 * * * *", Logger: zerolog.Nop()}); err != nil {
		t.Errorf("valid opts: %v", err)
	}
}

func TestDigester_RunStopsOnCancel(t *testing.T) {
	conn := openTestDB(t)
	adapter := NewMockAdapter()
	d, err := NewDigester(DigesterOpts{DB: conn, Adapter: adapter, Schedule: "0 9 * * *", Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewDigester: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if !adapter.Closed() {
		t.Error("adapter not closed on shutdown")
	}
	if posts := adapter.Posts(); len(posts) != 0 {
		t.Errorf("unexpected posts before schedule fire: %v", posts)
	}
}

func TestNewAdapter(t *testing.T) {
	if a, err := NewAdapter(config.DigestConfig{Platform: "slack", Token: "xoxb-1", ChannelID: "C1"}); err != nil {
		t.Errorf("slack: %v", err)
	} else if _, ok := a.(*SlackAdapter); !ok {
		t.Errorf("slack: adapter is %T", a)
	}

	if _, err := NewAdapter(config.DigestConfig{Platform: "teams", Token: "t", ChannelID: "c"}); err == nil {
		t.Error("unknown platform: error = nil, want error")
	}
}

func TestMockAdapter(t *testing.T) {
	m := NewMockAdapter()
	ctx := context.Background()

	if err := m.Post(ctx, "first"); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if err := m.Post(ctx, "second"); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if last, ok := m.LastPost(); !ok || last != "second" {
		t.Errorf("LastPost = %q, %v", last, ok)
	}
	if got := m.Posts(); len(got) != 2 {
		t.Errorf("Posts = %v", got)
	}

	primed := errors.New("rate limited")
	m.FailWith(primed)
	if err := m.Post(ctx, "third"); !errors.Is(err, primed) {
		t.Errorf("Post after FailWith: %v", err)
	}
	if got := m.Posts(); len(got) != 2 {
		t.Errorf("failed post recorded: %v", got)
	}
}

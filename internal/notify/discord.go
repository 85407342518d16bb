package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// discordSession abstracts the discordgo methods we use, enabling test mocks.
type discordSession interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Close() error
}

// DiscordAdapter posts digests to a Discord channel over the REST API.
// No gateway connection is opened; ChannelMessageSend works without one.
type DiscordAdapter struct {
	sess      discordSession
	channelID string
}

// NewDiscordAdapter creates a DiscordAdapter using a bot token.
func NewDiscordAdapter(botToken, channelID string) (*DiscordAdapter, error) {
	sess, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("notify: discord session: %w", err)
	}
	return &DiscordAdapter{sess: sess, channelID: channelID}, nil
}

// Post sends text to the configured channel.
func (a *DiscordAdapter) Post(ctx context.Context, text string) error {
	_, err := a.sess.ChannelMessageSend(a.channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("notify: discord post: %w", err)
	}
	return nil
}

// Close shuts down the underlying session.
func (a *DiscordAdapter) Close() error {
	return a.sess.Close()
}

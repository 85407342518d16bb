package notify

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// SlackAdapter posts digests to a Slack channel via the Web API.
type SlackAdapter struct {
	client    slackClient
	channelID string
}

// NewSlackAdapter creates a SlackAdapter using a bot token (xoxb-...).
func NewSlackAdapter(botToken, channelID string) *SlackAdapter {
	return &SlackAdapter{
		client:    slackapi.New(botToken),
		channelID: channelID,
	}
}

// Post sends text to the configured channel.
func (a *SlackAdapter) Post(ctx context.Context, text string) error {
	_, _, err := a.client.PostMessageContext(ctx, a.channelID,
		slackapi.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("notify: slack post: %w", err)
	}
	return nil
}

// Close is a no-op; the Slack Web API client holds no connection.
func (a *SlackAdapter) Close() error { return nil }

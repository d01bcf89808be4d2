package share

import (
	"context"
	"errors"

	"github.com/gopak/ytmsearch/internal/config"
	"github.com/slack-go/slack"
)

var ErrNotConfigured = errors.New("slack bot token and channel id are required; set slack.bot_token and slack.channel_id or YTMSEARCH_SLACK_BOT_TOKEN and YTMSEARCH_SLACK_CHANNEL_ID")

// Service posts links to a Slack channel.
type Service struct {
	client    *slack.Client
	channelID string
}

func NewService(botToken, channelID string, opts ...slack.Option) (*Service, error) {
	if botToken == "" || channelID == "" {
		return nil, ErrNotConfigured
	}
	return &Service{
		client:    slack.New(botToken, opts...),
		channelID: channelID,
	}, nil
}

// FromConfig builds a Service from the slack section of the configuration.
func FromConfig(c config.Slack) (*Service, error) {
	var opts []slack.Option
	if c.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(c.APIURL))
	}
	return NewService(c.BotToken, c.ChannelID, opts...)
}

// PostLink posts only the URL so Slack unfurls it with a rich preview.
func (s *Service) PostLink(ctx context.Context, url string) error {
	_, _, err := s.client.PostMessageContext(ctx, s.channelID, slack.MsgOptionText(url, false))
	return err
}

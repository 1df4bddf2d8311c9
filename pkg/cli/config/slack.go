package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/fintel-lab/pentarisk/pkg/service/slack"
)

// Slack holds configuration for completed-report notifications
type Slack struct {
	botToken  string
	channelID string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for report notifications",
			Category:    "Notification",
			Sources:     cli.EnvVars("PENTARISK_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID to post completed reports to",
			Category:    "Notification",
			Sources:     cli.EnvVars("PENTARISK_SLACK_CHANNEL_ID"),
			Destination: &s.channelID,
		},
	}
}

// IsConfigured returns true when both token and channel are set
func (s *Slack) IsConfigured() bool {
	return s.botToken != "" && s.channelID != ""
}

// Configure creates the notification service. Returns nil when Slack is not
// configured.
func (s *Slack) Configure() (slack.Service, error) {
	if s.botToken == "" && s.channelID == "" {
		return nil, nil
	}
	if !s.IsConfigured() {
		return nil, goerr.New("both slack-bot-token and slack-channel-id are required")
	}

	svc, err := slack.New(s.botToken, s.channelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}
	return svc, nil
}

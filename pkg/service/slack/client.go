package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/fintel-lab/pentarisk/pkg/domain/model"
)

// Service posts analysis results to Slack
type Service interface {
	// NotifyReport posts a completed report summary to the configured channel
	NotifyReport(ctx context.Context, report *model.Report) error
}

// api is the subset of the Slack client used by this service
type api interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// client implements Service interface
type client struct {
	api       api
	channelID string
}

// New creates a new Slack notification service posting to the given channel
func New(token, channelID string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	return &client{
		api:       slack.New(token),
		channelID: channelID,
	}, nil
}

// NotifyReport posts a completed report summary to the configured channel
func (c *client) NotifyReport(ctx context.Context, report *model.Report) error {
	if report.Result == nil {
		return goerr.New("report has no result", goerr.V("reportID", report.ID))
	}

	header := fmt.Sprintf("Risk analysis completed: %s (%s)", report.Target.Company, report.Target.Ticker)

	var lines []string
	for _, risk := range report.Result.Risks {
		lines = append(lines, fmt.Sprintf("• *%s*: %.2f", risk.Label, risk.ImpactScore.Float()))
	}
	lines = append(lines, fmt.Sprintf("*Final Risk Score: %.2f*", report.Result.FinalRiskScore.Float()))

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, header, false, false)),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, strings.Join(lines, "\n"), false, false),
			nil, nil,
		),
	}

	_, _, err := c.api.PostMessageContext(ctx, c.channelID,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(header, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post report to Slack",
			goerr.V("channelID", c.channelID), goerr.V("reportID", report.ID))
	}

	return nil
}

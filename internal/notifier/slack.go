package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Ensure SlackSink implements Sink.
var _ Sink = (*SlackSink)(nil)

// SlackSink posts alerts to a Slack channel via an Incoming Webhook. The
// message carries a button that opens the posting.
type SlackSink struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSlackSink returns a sink that posts each alert to Slack.
func NewSlackSink(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackSink {
	return &SlackSink{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (s *SlackSink) Name() string { return "slack" }

// Send posts one Block Kit message. Any non-200 answer, including 429, is an
// error so the dispatcher can fall back.
func (s *SlackSink) Send(ctx context.Context, a Alert) error {
	body, err := json.Marshal(buildPayload(a))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned %d", resp.StatusCode)
	}
	s.logger.Debug("slack message sent", "title", a.Title)
	return nil
}

// Block Kit payload types.

type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string         `json:"type"`
	Text     *slackText     `json:"text,omitempty"`
	Elements []slackElement `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackElement struct {
	Type  string    `json:"type"`
	Text  slackText `json:"text"`
	URL   string    `json:"url"`
	Style string    `json:"style"`
}

func buildPayload(a Alert) slackPayload {
	return slackPayload{
		// Fallback text for clients that cannot render blocks.
		Text: a.Title + "\n" + a.Body,
		Blocks: []slackBlock{
			{
				Type: "header",
				Text: &slackText{Type: "plain_text", Text: a.Title},
			},
			{
				Type: "section",
				Text: &slackText{Type: "mrkdwn", Text: a.Body},
			},
			{
				Type: "actions",
				Elements: []slackElement{
					{
						Type:  "button",
						Text:  slackText{Type: "plain_text", Text: "Open Posting"},
						URL:   a.Link,
						Style: "primary",
					},
				},
			},
			{Type: "divider"},
		},
	}
}

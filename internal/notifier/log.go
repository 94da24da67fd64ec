package notifier

import (
	"context"
	"log/slog"
)

// Ensure ConsoleSink implements Sink.
var _ Sink = (*ConsoleSink)(nil)

// ConsoleSink is the last link of every chain. It delivers nothing beyond a
// log line, which leaves the dispatcher's audit block as the only output on
// headless machines.
type ConsoleSink struct {
	logger *slog.Logger
}

// NewConsoleSink returns a sink that only logs.
func NewConsoleSink(logger *slog.Logger) *ConsoleSink {
	return &ConsoleSink{logger: logger}
}

func (c *ConsoleSink) Name() string { return "console" }

// Send never fails.
func (c *ConsoleSink) Send(_ context.Context, a Alert) error {
	c.logger.Debug("no notification capability, console only", "title", a.Title, "body", a.Body, "link", a.Link)
	return nil
}

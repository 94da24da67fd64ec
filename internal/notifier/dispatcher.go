package notifier

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/amishk599/jobping/internal/model"
)

// Ensure Dispatcher implements model.Notifier.
var _ model.Notifier = (*Dispatcher)(nil)

// Alert is what a sink shows the user.
type Alert struct {
	Title string
	Body  string
	Link  string
}

// NewAlert formats a posting the way every sink displays it.
func NewAlert(p model.Posting) Alert {
	return Alert{
		Title: "New Job: " + p.Title,
		Body:  p.Company + " - " + p.Location,
		Link:  p.Link,
	}
}

// Sink delivers an alert through one mechanism (desktop popup, Slack, ...).
type Sink interface {
	Name() string
	Send(ctx context.Context, a Alert) error
}

// Dispatcher hands alerts to a chain of sinks, falling through to the next one
// when a sink fails. Whatever happens, every posting is also written to out.
type Dispatcher struct {
	chain  []Sink
	out    io.Writer
	logger *slog.Logger
}

// NewDispatcher returns a dispatcher that tries sinks in order and writes the
// audit block to out.
func NewDispatcher(chain []Sink, out io.Writer, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{chain: chain, out: out, logger: logger}
}

// Notify delivers the alert through the first sink that succeeds. Sink errors
// are logged, never returned.
func (d *Dispatcher) Notify(ctx context.Context, p model.Posting) {
	a := NewAlert(p)

	delivered := ""
	for _, s := range d.chain {
		if err := s.Send(ctx, a); err != nil {
			d.logger.Warn("notification sink failed, falling back", "sink", s.Name(), "link", p.Link, "error", err)
			continue
		}
		delivered = s.Name()
		break
	}

	d.logger.Info("new job",
		"title", p.Title,
		"company", p.Company,
		"location", p.Location,
		"link", p.Link,
		"sink", delivered,
	)
	fmt.Fprintf(d.out, "=======================\nNew job: %s at %s (%s)\n%s\n", p.Title, p.Company, p.Location, p.Link)
}

// Sinks returns the names of the configured chain, in order.
func (d *Dispatcher) Sinks() []string {
	names := make([]string, len(d.chain))
	for i, s := range d.chain {
		names[i] = s.Name()
	}
	return names
}

// SendTest pushes a sample posting through n to verify delivery works.
func SendTest(ctx context.Context, n model.Notifier) {
	n.Notify(ctx, model.Posting{
		Title:    "Test Notification",
		Company:  "jobping",
		Location: "Everywhere",
		Link:     "https://www.linkedin.com/jobs/",
	})
}

package notifier

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/amishk599/jobping/internal/model"
)

// recordingSink records alerts and optionally fails.
type recordingSink struct {
	name string
	err  error
	got  []Alert
}

func (r *recordingSink) Name() string { return r.name }

func (r *recordingSink) Send(_ context.Context, a Alert) error {
	r.got = append(r.got, a)
	return r.err
}

func samplePosting() model.Posting {
	return model.Posting{
		Title:    "Backend Engineer",
		Company:  "Acme",
		Location: "Austin, TX",
		Link:     "https://www.linkedin.com/jobs/view/1",
	}
}

func TestNewAlert_Format(t *testing.T) {
	a := NewAlert(samplePosting())
	if a.Title != "New Job: Backend Engineer" {
		t.Errorf("Title = %q", a.Title)
	}
	if a.Body != "Acme - Austin, TX" {
		t.Errorf("Body = %q", a.Body)
	}
	if a.Link != "https://www.linkedin.com/jobs/view/1" {
		t.Errorf("Link = %q", a.Link)
	}
}

func TestDispatcher_WritesAuditBlock(t *testing.T) {
	var out bytes.Buffer
	d := NewDispatcher([]Sink{&recordingSink{name: "ok"}}, &out, discardLogger())

	d.Notify(context.Background(), samplePosting())

	want := "=======================\nNew job: Backend Engineer at Acme (Austin, TX)\nhttps://www.linkedin.com/jobs/view/1\n"
	if out.String() != want {
		t.Errorf("audit block = %q, want %q", out.String(), want)
	}
}

func TestDispatcher_FirstSuccessfulSinkWins(t *testing.T) {
	rich := &recordingSink{name: "rich"}
	basic := &recordingSink{name: "basic"}
	d := NewDispatcher([]Sink{rich, basic}, &bytes.Buffer{}, discardLogger())

	d.Notify(context.Background(), samplePosting())

	if len(rich.got) != 1 {
		t.Errorf("rich sink calls = %d, want 1", len(rich.got))
	}
	if len(basic.got) != 0 {
		t.Errorf("basic sink should not be used when rich succeeds")
	}
}

func TestDispatcher_FallsBackOnFailure(t *testing.T) {
	rich := &recordingSink{name: "rich", err: errors.New("terminal-notifier: executable file not found")}
	basic := &recordingSink{name: "basic", err: errors.New("osascript failed")}
	console := &recordingSink{name: "console"}
	var out bytes.Buffer
	d := NewDispatcher([]Sink{rich, basic, console}, &out, discardLogger())

	d.Notify(context.Background(), samplePosting())

	if len(rich.got) != 1 || len(basic.got) != 1 || len(console.got) != 1 {
		t.Errorf("calls rich=%d basic=%d console=%d, want 1 each", len(rich.got), len(basic.got), len(console.got))
	}
	if out.Len() == 0 {
		t.Error("audit block must be written even when sinks fail")
	}
}

func TestDispatcher_EmptyChainStillLogs(t *testing.T) {
	var out bytes.Buffer
	d := NewDispatcher(nil, &out, discardLogger())

	d.Notify(context.Background(), samplePosting())

	if out.Len() == 0 {
		t.Error("audit block must be written with no sinks")
	}
}

func TestSendTest(t *testing.T) {
	sink := &recordingSink{name: "ok"}
	d := NewDispatcher([]Sink{sink}, &bytes.Buffer{}, discardLogger())

	SendTest(context.Background(), d)

	if len(sink.got) != 1 {
		t.Fatalf("sink calls = %d, want 1", len(sink.got))
	}
	if sink.got[0].Title != "New Job: Test Notification" {
		t.Errorf("Title = %q", sink.got[0].Title)
	}
}

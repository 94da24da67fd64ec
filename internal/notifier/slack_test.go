package notifier

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleAlert() Alert {
	return Alert{
		Title: "New Job: Backend Engineer",
		Body:  "Acme Corp - Remote, US",
		Link:  "https://www.linkedin.com/jobs/view/123",
	}
}

func TestSlackSink_PayloadFormat(t *testing.T) {
	var body []byte
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSlackSink(srv.URL, srv.Client(), discardLogger())
	if err := s.Send(context.Background(), sampleAlert()); err != nil {
		t.Fatalf("Send() = %v", err)
	}
	if contentType != "application/json" {
		t.Errorf("Content-Type = %q", contentType)
	}

	var payload slackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(payload.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(payload.Blocks))
	}
	if payload.Blocks[0].Type != "header" || payload.Blocks[0].Text.Text != "New Job: Backend Engineer" {
		t.Errorf("header block = %+v", payload.Blocks[0])
	}
	if payload.Blocks[1].Text.Text != "Acme Corp - Remote, US" {
		t.Errorf("section text = %q", payload.Blocks[1].Text.Text)
	}
	actions := payload.Blocks[2]
	if actions.Type != "actions" || len(actions.Elements) != 1 {
		t.Fatalf("block[2] not a single-element actions block")
	}
	if actions.Elements[0].URL != "https://www.linkedin.com/jobs/view/123" {
		t.Errorf("button URL = %q", actions.Elements[0].URL)
	}
	if actions.Elements[0].Style != "primary" {
		t.Errorf("button style = %q, want primary", actions.Elements[0].Style)
	}
	if payload.Blocks[3].Type != "divider" {
		t.Errorf("block[3] type = %q, want divider", payload.Blocks[3].Type)
	}
	if payload.Text == "" {
		t.Error("fallback text should be set")
	}
}

func TestSlackSink_ErrorStatus(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusTooManyRequests, http.StatusNotFound} {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(status)
		}))

		s := NewSlackSink(srv.URL, srv.Client(), discardLogger())
		if err := s.Send(context.Background(), sampleAlert()); err == nil {
			t.Errorf("status %d: expected error, got nil", status)
		}
		if c := calls.Load(); c != 1 {
			t.Errorf("status %d: expected exactly 1 HTTP call, got %d", status, c)
		}
		srv.Close()
	}
}

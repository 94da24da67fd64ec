package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := validate(cfg); err != nil {
		t.Fatalf("Default() does not validate: %v", err)
	}
	if cfg.Search.Keywords != "Software Engineer" || cfg.Search.Location != "United States" {
		t.Errorf("Search = %+v", cfg.Search)
	}
	if cfg.Search.Position != 1 || cfg.Search.PageNum != 0 {
		t.Errorf("Position/PageNum = %d/%d, want 1/0", cfg.Search.Position, cfg.Search.PageNum)
	}
	if cfg.State.Path != "seen_jobs.json" || cfg.State.Backend != "json" {
		t.Errorf("State = %+v", cfg.State)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
search:
  keywords: Backend Engineer
  location: Remote
  page_num: 0
  timeout: 10s
state:
  path: /tmp/jobping/seen.json
  lock: false
notification:
  type: console
filters:
  title_exclude_keywords:
    - senior
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.Keywords != "Backend Engineer" || cfg.Search.Location != "Remote" {
		t.Errorf("Search = %+v", cfg.Search)
	}
	if cfg.Search.URL != DefaultSearchURL {
		t.Errorf("URL = %q, want default", cfg.Search.URL)
	}
	if cfg.Search.Position != 1 {
		t.Errorf("Position = %d, want default 1", cfg.Search.Position)
	}
	if cfg.Search.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Search.Timeout)
	}
	if cfg.State.Path != "/tmp/jobping/seen.json" || cfg.State.Lock {
		t.Errorf("State = %+v", cfg.State)
	}
	if cfg.Notification.Type != "console" {
		t.Errorf("Notification.Type = %q", cfg.Notification.Type)
	}
	if len(cfg.Filters.TitleExcludeKeywords) != 1 || cfg.Filters.TitleExcludeKeywords[0] != "senior" {
		t.Errorf("TitleExcludeKeywords = %v", cfg.Filters.TitleExcludeKeywords)
	}
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Search != def.Search || cfg.State != def.State || cfg.Notification != def.Notification {
		t.Errorf("empty config should equal defaults, got %+v", cfg)
	}
}

func TestLoad_SQLiteDefaultPath(t *testing.T) {
	cfg, err := Load(writeConfig(t, "state:\n  backend: sqlite\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.State.Path != DefaultSQLitePath {
		t.Errorf("Path = %q, want %q", cfg.State.Path, DefaultSQLitePath)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("JOBPING_TEST_KEYWORDS", "Go Developer")
	cfg, err := Load(writeConfig(t, "search:\n  keywords: ${JOBPING_TEST_KEYWORDS}\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.Keywords != "Go Developer" {
		t.Errorf("Keywords = %q", cfg.Search.Keywords)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "search: [broken"))
	if err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad timeout", "search:\n  timeout: soon\n", "search.timeout"},
		{"zero timeout", "search:\n  timeout: 0s\n", "search.timeout"},
		{"negative page", "search:\n  page_num: -1\n", "page_num"},
		{"bad backend", "state:\n  backend: redis\n", "state.backend"},
		{"slack without webhook", "notification:\n  type: slack\n", "webhook_url is required"},
		{"slack with wrong host", "notification:\n  type: slack\n  webhook_url: https://example.com/hook\n", "hooks.slack.com"},
		{"unknown notifier", "notification:\n  type: pager\n", "notification.type"},
		{"bad url", "search:\n  url: ftp://example.com\n", "search.url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load: expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_SlackValid(t *testing.T) {
	cfg, err := Load(writeConfig(t, "notification:\n  type: slack\n  webhook_url: https://hooks.slack.com/services/T/B/X\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Notification.WebhookURL != "https://hooks.slack.com/services/T/B/X" {
		t.Errorf("WebhookURL = %q", cfg.Notification.WebhookURL)
	}
	if cfg.Notification.AppIcon != DefaultAppIcon {
		t.Errorf("AppIcon = %q, want default", cfg.Notification.AppIcon)
	}
}

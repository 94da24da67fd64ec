package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for one jobping pass.
type Config struct {
	Search       SearchConfig
	State        StateConfig
	Notification NotificationConfig
	Filters      FilterConfig
}

// SearchConfig is the fixed query sent to the job search page.
type SearchConfig struct {
	URL       string
	Keywords  string
	Location  string
	Trk       string
	Position  int
	PageNum   int
	UserAgent string
	Timeout   time.Duration // HTTP client timeout for the page fetch
}

// StateConfig controls where the seen-set lives.
type StateConfig struct {
	Backend     string // "json" or "sqlite"
	Path        string
	Lock        bool          // hold an advisory lock on Path+".lock" for the whole pass
	LockTimeout time.Duration // how long to wait for another run to finish
}

// NotificationConfig controls which sink delivers alerts.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "desktop", "slack" or "console"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
	AppIcon    string `yaml:"app_icon"`    // terminal-notifier -appIcon
}

// FilterConfig holds keyword and location filter settings.
type FilterConfig struct {
	TitleKeywords        []string `yaml:"title_keywords"`
	TitleExcludeKeywords []string `yaml:"title_exclude_keywords"`
	Locations            []string `yaml:"locations"`
	ExcludeLocations     []string `yaml:"exclude_locations"`
}

const (
	DefaultSearchURL   = "https://www.linkedin.com/jobs/search/"
	DefaultKeywords    = "Software Engineer"
	DefaultLocation    = "United States"
	DefaultTrk         = "public_jobs_jobs-search-bar_search-submit"
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"
	DefaultJSONPath    = "seen_jobs.json"
	DefaultSQLitePath  = "seen_jobs.db"
	DefaultAppIcon     = "/System/Library/CoreServices/CoreTypes.bundle/Contents/Resources/ToolbarAdvanced.icns"
	defaultTimeout     = 30 * time.Second
	defaultLockTimeout = 10 * time.Second
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			URL:       DefaultSearchURL,
			Keywords:  DefaultKeywords,
			Location:  DefaultLocation,
			Trk:       DefaultTrk,
			Position:  1,
			PageNum:   0,
			UserAgent: DefaultUserAgent,
			Timeout:   defaultTimeout,
		},
		State: StateConfig{
			Backend:     "json",
			Path:        DefaultJSONPath,
			Lock:        true,
			LockTimeout: defaultLockTimeout,
		},
		Notification: NotificationConfig{
			Type:    "desktop",
			AppIcon: DefaultAppIcon,
		},
	}
}

// rawConfig is used for YAML unmarshaling (snake_case fields, durations as
// strings, pointers where zero is a meaningful value).
type rawConfig struct {
	Search       rawSearchConfig    `yaml:"search"`
	State        rawStateConfig     `yaml:"state"`
	Notification NotificationConfig `yaml:"notification"`
	Filters      FilterConfig       `yaml:"filters"`
}

type rawSearchConfig struct {
	URL       string `yaml:"url"`
	Keywords  string `yaml:"keywords"`
	Location  string `yaml:"location"`
	Trk       string `yaml:"trk"`
	Position  *int   `yaml:"position"`
	PageNum   *int   `yaml:"page_num"`
	UserAgent string `yaml:"user_agent"`
	Timeout   string `yaml:"timeout"`
}

type rawStateConfig struct {
	Backend     string `yaml:"backend"`
	Path        string `yaml:"path"`
	Lock        *bool  `yaml:"lock"`
	LockTimeout string `yaml:"lock_timeout"`
}

// Load reads and parses the YAML config file at path, fills in defaults,
// validates it, and returns Config. A .env file in the working directory, if
// present, is loaded first so ${VAR} references can point at it.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg, err := raw.apply(Default())
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw rawConfig) apply(cfg *Config) (*Config, error) {
	s := &cfg.Search
	setString(&s.URL, raw.Search.URL)
	setString(&s.Keywords, raw.Search.Keywords)
	setString(&s.Location, raw.Search.Location)
	setString(&s.Trk, raw.Search.Trk)
	setString(&s.UserAgent, raw.Search.UserAgent)
	if raw.Search.Position != nil {
		s.Position = *raw.Search.Position
	}
	if raw.Search.PageNum != nil {
		s.PageNum = *raw.Search.PageNum
	}
	if raw.Search.Timeout != "" {
		d, err := time.ParseDuration(raw.Search.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse search.timeout %q: %w", raw.Search.Timeout, err)
		}
		s.Timeout = d
	}

	st := &cfg.State
	setString(&st.Backend, strings.ToLower(raw.State.Backend))
	if raw.State.Path != "" {
		st.Path = raw.State.Path
	} else if st.Backend == "sqlite" {
		st.Path = DefaultSQLitePath
	}
	if raw.State.Lock != nil {
		st.Lock = *raw.State.Lock
	}
	if raw.State.LockTimeout != "" {
		d, err := time.ParseDuration(raw.State.LockTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse state.lock_timeout %q: %w", raw.State.LockTimeout, err)
		}
		st.LockTimeout = d
	}

	n := &cfg.Notification
	setString(&n.Type, strings.ToLower(raw.Notification.Type))
	setString(&n.WebhookURL, raw.Notification.WebhookURL)
	setString(&n.AppIcon, raw.Notification.AppIcon)

	cfg.Filters = raw.Filters
	return cfg, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.Search.URL == "" || !(strings.HasPrefix(cfg.Search.URL, "http://") || strings.HasPrefix(cfg.Search.URL, "https://")) {
		return fmt.Errorf("search.url must be an http(s) URL, got %q", cfg.Search.URL)
	}
	if strings.TrimSpace(cfg.Search.Keywords) == "" {
		return fmt.Errorf("search.keywords must not be empty")
	}
	if cfg.Search.Position < 0 || cfg.Search.PageNum < 0 {
		return fmt.Errorf("search.position and search.page_num must not be negative")
	}
	if cfg.Search.Timeout <= 0 {
		return fmt.Errorf("search.timeout must be positive, got %v", cfg.Search.Timeout)
	}

	switch cfg.State.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("state.backend must be \"json\" or \"sqlite\", got %q", cfg.State.Backend)
	}
	if cfg.State.Lock && cfg.State.LockTimeout <= 0 {
		return fmt.Errorf("state.lock_timeout must be positive when state.lock is true, got %v", cfg.State.LockTimeout)
	}

	switch cfg.Notification.Type {
	case "desktop", "console":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("notification.webhook_url must start with https://hooks.slack.com/")
		}
	default:
		return fmt.Errorf("notification.type must be one of desktop, slack, console; got %q", cfg.Notification.Type)
	}

	return nil
}

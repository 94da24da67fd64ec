package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"runtime"

	"github.com/amishk599/jobping/internal/adapter"
	"github.com/amishk599/jobping/internal/config"
	"github.com/amishk599/jobping/internal/extract"
	"github.com/amishk599/jobping/internal/filter"
	"github.com/amishk599/jobping/internal/model"
	"github.com/amishk599/jobping/internal/notifier"
	"github.com/amishk599/jobping/internal/poller"
	"github.com/amishk599/jobping/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobping",
	Short: "Get pinged when a new job shows up in your LinkedIn search",
	Long: "jobping fetches one LinkedIn job search page, compares it with the postings it has\n" +
		"already seen, and raises a desktop notification for each new one. Run it from cron.",
	// Default to `run` so cron entries can invoke the bare binary.
	RunE:          runOnce,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBPING_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBPING_CONFIG env var > "./config.yaml".
// When nothing was asked for and ./config.yaml does not exist, defaults apply.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		if env := os.Getenv("JOBPING_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = "config.yaml"
		}
	}
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

// releaseLock drops the run lock taken by store.Lock. A failed unlock only
// leaves a stale advisory lock, so it is logged rather than returned.
func releaseLock(unlock func() error, path string, logger *slog.Logger) {
	if err := unlock(); err != nil {
		logger.Warn("failed to release run lock", "path", path, "error", err)
	}
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) *notifier.Dispatcher {
	var chain []notifier.Sink
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		chain = []notifier.Sink{
			notifier.NewSlackSink(cfg.Notification.WebhookURL, httpClient, logger),
			notifier.NewConsoleSink(logger),
		}
	case "console":
		chain = []notifier.Sink{notifier.NewConsoleSink(logger)}
	default:
		chain = notifier.Probe(runtime.GOOS, exec.LookPath, notifier.ExecRunner, notifier.BeeepNotify, cfg.Notification.AppIcon, logger)
	}
	d := notifier.NewDispatcher(chain, os.Stdout, logger)
	logger.Debug("notification chain", "sinks", d.Sinks())
	return d
}

// openStore returns the configured seen-set store and a func that releases it.
func openStore(cfg *config.Config, logger *slog.Logger) (model.SeenStore, func() error, error) {
	switch cfg.State.Backend {
	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.State.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return store.NewFileStore(cfg.State.Path, logger), func() error { return nil }, nil
	}
}

func newHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.Search.Timeout}
}

func buildPoller(cfg *config.Config, seenStore model.SeenStore, n model.Notifier, httpClient *http.Client, logger *slog.Logger) *poller.Poller {
	fetcher := adapter.NewLinkedInAdapter(adapter.SearchQuery{
		URL:       cfg.Search.URL,
		Keywords:  cfg.Search.Keywords,
		Location:  cfg.Search.Location,
		Trk:       cfg.Search.Trk,
		Position:  cfg.Search.Position,
		PageNum:   cfg.Search.PageNum,
		UserAgent: cfg.Search.UserAgent,
	}, httpClient)

	var postingFilter model.PostingFilter
	f := filter.NewTitleAndLocationFilter(
		cfg.Filters.TitleKeywords,
		cfg.Filters.TitleExcludeKeywords,
		cfg.Filters.Locations,
		cfg.Filters.ExcludeLocations,
	)
	if !f.IsEmpty() {
		postingFilter = f
	}

	return poller.NewPoller(fetcher, extract.New(logger), postingFilter, seenStore, n, logger)
}

func reportNewJobs(count int) {
	if count == 0 {
		fmt.Println("No new jobs found today.")
	}
}

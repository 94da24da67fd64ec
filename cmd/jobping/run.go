package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/amishk599/jobping/internal/store"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one pass: fetch, notify new postings, remember them",
	Long:  "One pass over the configured search. Exits 0 whether or not anything new was found.",
	RunE:  runOnce,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	logger.Debug("config loaded",
		"keywords", cfg.Search.Keywords,
		"location", cfg.Search.Location,
		"state", cfg.State.Path,
		"backend", cfg.State.Backend,
		"notification", cfg.Notification.Type,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.State.Lock {
		unlock, err := store.Lock(ctx, cfg.State.Path, cfg.State.LockTimeout)
		if err != nil {
			logger.Error("another run is in progress", "path", cfg.State.Path, "error", err)
			return err
		}
		defer releaseLock(unlock, cfg.State.Path, logger)
	}

	seenStore, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		return err
	}
	defer closeStore()

	httpClient := newHTTPClient(cfg)
	n := setupNotifier(cfg, httpClient, logger)

	p := buildPoller(cfg, seenStore, n, httpClient, logger)
	count, err := p.Run(ctx)
	if err != nil {
		logger.Error("poll failed", "error", err)
		return err
	}

	reportNewJobs(count)
	return nil
}

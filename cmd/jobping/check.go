package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/amishk599/jobping/internal/store"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Poll once, alert on every match, remember nothing",
	Long:  "Dry run: fetches the search page and notifies every posting on it. Does not read or write the seen-set.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	logger.Info("check mode: no postings will be marked as seen")

	httpClient := newHTTPClient(cfg)
	n := setupNotifier(cfg, httpClient, logger)
	p := buildPoller(cfg, store.NewNopStore(), n, httpClient, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	count, err := p.Run(ctx)
	if err != nil {
		logger.Error("poll failed", "error", err)
		return err
	}

	reportNewJobs(count)
	logger.Info("check complete", "postings", count)
	return nil
}

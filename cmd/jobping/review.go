package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/amishk599/jobping/internal/audit"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse the current search page interactively (TUI)",
	Long:  "Fetches the search page and shows new and already-seen postings side by side. Nothing is notified or saved.",
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	// Any log output before the alt-screen starts corrupts the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	seenStore, closeStore, err := openStore(cfg, silentLogger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		return err
	}
	defer closeStore()

	httpClient := newHTTPClient(cfg)
	p := buildPoller(cfg, seenStore, nil, httpClient, silentLogger)

	fresh, seen, err := audit.RunLoader(cfg.Search.Keywords, cfg.Search.Timeout, p.Preview)
	if err != nil {
		logger.Error("failed to fetch postings", "error", err)
		return err
	}
	if len(fresh)+len(seen) == 0 {
		fmt.Println("No postings found on the search page.")
		return nil
	}
	if err := audit.RunReviewTUI(fresh, seen); err != nil {
		logger.Error("TUI error", "error", err)
		return err
	}
	return nil
}

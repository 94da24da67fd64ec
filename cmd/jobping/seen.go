package main

import (
	"fmt"

	"github.com/amishk599/jobping/internal/store"
	"github.com/spf13/cobra"
)

var seenCmd = &cobra.Command{
	Use:   "seen",
	Short: "Inspect or clear the seen-set",
}

var seenListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every posting link already notified",
	RunE:  runSeenList,
}

var seenResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget every posting; the next run alerts on the whole page",
	RunE:  runSeenReset,
}

func init() {
	rootCmd.AddCommand(seenCmd)
	seenCmd.AddCommand(seenListCmd)
	seenCmd.AddCommand(seenResetCmd)
}

func runSeenList(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	seenStore, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		return err
	}
	defer closeStore()

	set, err := seenStore.Load()
	if err != nil {
		logger.Error("failed to load seen-set", "error", err)
		return err
	}
	for _, id := range set.Slice() {
		fmt.Println(id)
	}
	fmt.Printf("\nTotal: %d postings seen (%s)\n", set.Len(), cfg.State.Path)
	return nil
}

// resetter is implemented by the persistent stores.
type resetter interface {
	Reset() error
}

func runSeenReset(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	if cfg.State.Lock {
		unlock, err := store.Lock(cmd.Context(), cfg.State.Path, cfg.State.LockTimeout)
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

	r, ok := seenStore.(resetter)
	if !ok {
		err := fmt.Errorf("state backend %q cannot be reset", cfg.State.Backend)
		logger.Error("failed to reset seen-set", "error", err)
		return err
	}
	if err := r.Reset(); err != nil {
		logger.Error("failed to reset seen-set", "error", err)
		return err
	}
	logger.Info("seen-set cleared", "path", cfg.State.Path)
	return nil
}

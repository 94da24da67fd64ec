package main

import (
	"context"

	"github.com/amishk599/jobping/internal/notifier"
	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification subcommands",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification",
	Long:  "Sends a sample posting through the configured notification chain.",
	RunE:  runNotifyTest,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	n := setupNotifier(cfg, newHTTPClient(cfg), logger)
	logger.Info("sending test notification", "sinks", n.Sinks())
	notifier.SendTest(context.Background(), n)
	return nil
}

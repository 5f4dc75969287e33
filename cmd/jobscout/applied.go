package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var appliedCmd = &cobra.Command{
	Use:   "applied <url>",
	Short: "Log an application for a posting URL",
	Long:  "Appends the URL to the application log so future discovery runs mark it as already seen. Logging the same URL twice keeps the original date.",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplied,
}

func init() {
	rootCmd.AddCommand(appliedCmd)
}

func runApplied(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, closeStore := openHistory(cfg, logger)
	defer closeStore()

	url := args[0]
	if err := store.Append(url, time.Now()); err != nil {
		return fmt.Errorf("log application: %w", err)
	}

	fmt.Println("logged:", url)
	return nil
}

package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mzaleski/jobscout/internal/config"
	"github.com/mzaleski/jobscout/internal/history"
	"github.com/mzaleski/jobscout/internal/model"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "Job triage — discover postings, skip the ghosts",
	Long:  "Jobscout pulls postings from configured job sites, flags the suspicious ones, and scores the rest against your CV.",
	RunE:  runDiscover,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSCOUT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSCOUT_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBSCOUT_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// openHistory opens the application log, degrading to a no-op store when the
// database is unavailable so discovery still runs.
func openHistory(cfg *config.Config, logger *slog.Logger) (model.HistoryStore, func()) {
	store, err := history.NewSQLiteStore(cfg.HistoryDB)
	if err != nil {
		logger.Warn("application log unavailable, nothing will be marked as seen", "error", err)
		return history.NewNopStore(), func() {}
	}
	return store, func() { store.Close() }
}

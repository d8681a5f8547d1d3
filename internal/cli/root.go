// Package cli implements the insight-engine CLI commands.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quillt/insight-engine/internal/config"
	"github.com/quillt/insight-engine/internal/store"
)

var (
	dbPath      string
	journalFlag string
	verbose     bool

	cfg    *config.Config
	logger zerolog.Logger
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "insight-engine",
	Short: "Pattern memory and narrative insights for a journal",
	Long: "Turns a stream of timestamped journal entries into evidence-gated insight cards\n" +
		"and tracks how detected patterns evolve across time windows. SQLite-backed, single binary.",
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $INSIGHT_ENGINE_DB_PATH or ~/.insight-engine/insights.db)")
	RootCmd.PersistentFlags().StringVarP(&journalFlag, "journal", "j", "", "Journal name (default from config)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	logger = newLogger(cfg.Logging)
	return nil
}

func newLogger(lc config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil || lc.Level == "" {
		level = zerolog.WarnLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	var l zerolog.Logger
	if lc.Format == "json" {
		l = zerolog.New(os.Stderr)
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return l.Level(level).With().Timestamp().Logger()
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.DBPath
}

func getJournal() string {
	if journalFlag != "" {
		return journalFlag
	}
	return cfg.Journal
}

func location() *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		logger.Warn().Err(err).Msg("falling back to UTC")
		return time.UTC
	}
	return loc
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

// badges tracks per-user badge boards for a spaced-repetition game.
//
// Usage:
//
//	badges user create <name>          - Create a user
//	badges user list                   - List users
//	badges event <user> <kind> <secs>  - Apply a gameplay event
//	badges board <user>                - Show the current board
//	badges progress <user> <secs>      - Show badge progress
//	badges level <difficulty> <n>      - Preview a generated level
//	badges history <user>              - Show recent unlocks
//	badges play <user>                 - Interactive simulator
//
// Global flags:
//
//	--config <path>    - Config file (default search: ~/.badges/configs, ./configs)
//	--db <path>        - Database path (default: ~/.badges/badges.db)
//	--log-level <lvl>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-badges/internal/config"
	"github.com/vovakirdan/tui-badges/internal/levels"
	"github.com/vovakirdan/tui-badges/internal/storage"
	"github.com/vovakirdan/tui-badges/internal/tracker"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "badges",
	Short: "Badge progression engine for spaced-repetition games",
	Long: `badges keeps a board of badges per user and unlocks them as
gameplay events arrive. Play time is a monotonic clock in seconds that
the caller passes with every event.

Available commands:
  user      - Create, list and delete users
  event     - Apply one gameplay event
  board     - Show the current board
  progress  - Show progress towards locked badges
  level     - Preview a generated level
  history   - Show recent unlocks
  play      - Interactive simulator

Examples:
  badges user create ada --difficulty hard
  badges event ada game_started 0
  badges event ada review 3600
  badges board ada --encoded
  badges play ada`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to badges database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")

	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(playCmd)
}

// app bundles what most commands need.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	store   *storage.Store
	tracker *tracker.Tracker
}

// loadConfig reads the config and applies the global flag overrides.
func loadConfig() (config.Config, *log.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, nil, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	logger, err := newLogger(cfg.Log.Level)
	return cfg, logger, err
}

func newLogger(level string) (*log.Logger, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "badges",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// newGenerator seeds level generation from config, or per run when unset.
func newGenerator(seed uint64, logger *log.Logger) (*levels.Generator, error) {
	if seed != 0 {
		return levels.New(levels.NewSeededSource(seed)), nil
	}
	src, err := levels.NewSource()
	if err != nil {
		return nil, err
	}
	logger.Debug("seeded level generator from crypto/rand")
	return levels.New(src), nil
}

// openApp loads config and opens the store. Callers must call close.
func openApp() (*app, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	gen, err := newGenerator(cfg.Engine.Seed, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	logger.Debug("opened store", "path", cfg.Storage.Path)
	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		tracker: tracker.New(store, gen, logger),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("could not close store", "error", err)
	}
}

// mustOpenApp exits on failure the way every command reports errors.
func mustOpenApp() *app {
	a, err := openApp()
	if err != nil {
		fail("Error: %v", err)
	}
	return a
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

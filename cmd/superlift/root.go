// ABOUTME: Root Cobra command for superlift CLI.
// ABOUTME: Loads config and opens the record store via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harperreed/superlift/internal/config"
	"github.com/harperreed/superlift/internal/logging"
	"github.com/harperreed/superlift/internal/storage"
)

var (
	cfg    *config.Config
	logger *log.Logger
	repo   *storage.Repository

	flagBackend  string
	flagDataDir  string
	flagLogLevel string
	flagNoSeed   bool
)

// Commands that manage their own stores or need none.
var skipRepo = map[string]bool{
	"help":       true,
	"completion": true,
	"migrate":    true,
	"exercises":  true,
}

var rootCmd = &cobra.Command{
	Use:   "superlift",
	Short: "Strength training log with a strength score",
	Long: `Superlift is a CLI tool for logging strength workouts and tracking progress.

WHAT IT TRACKS:

  Workouts    name, duration and date
  Exercises   any movement, e.g. "Squat (Barbell)"
  Sets        weight (lbs) and reps, in the order performed

STRENGTH SCORE:

  Each set is converted to an estimated one-rep max with the Brzycki formula.
  Your strength score is the sum of your best estimates for Squat (Barbell),
  Bench Press (Barbell) and Deadlift (Barbell).

QUICK START:

  $ superlift init                                       # Create the record store
  $ superlift workout add "Leg Day" --set "Squat (Barbell)=135x5"
  $ superlift workout list                               # See recent workouts
  $ superlift score                                      # Current score and PRs
  $ superlift chart                                      # Score after each workout

STORAGE:

  --backend auto picks SQLite when the data directory is writable and falls
  back to an in-memory store otherwise. Other choices: sqlite, kv (local
  Badger), charm (Charm Cloud synced KV), memory.

MCP INTEGRATION:

  Run 'superlift mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "superlift": { "command": "superlift", "args": ["mcp"] }
    }
  }`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		if skipRepo[cmd.Name()] {
			return nil
		}

		var err error
		repo, err = cfg.OpenRepository(cmd.Context(), logger)
		if err != nil {
			return fmt.Errorf("failed to open record store: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeRepo()
	},
}

// closeRepo closes the store opened for the current command. Cobra skips
// post-run hooks when RunE fails, so main calls it too.
func closeRepo() error {
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo = nil
	return err
}

// loadConfig reads the config file, applies flag overrides and builds the logger.
func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if flagBackend != "" {
		cfg.Backend = flagBackend
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagNoSeed {
		cfg.NoSeed = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger = logging.New(os.Stderr, cfg.GetLogLevel())
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: auto, sqlite, kv, charm, memory")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.local/share/superlift)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagNoSeed, "no-seed", false, "do not load demo workouts into an empty store")
}

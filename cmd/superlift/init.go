// ABOUTME: CLI command that prepares the record store.
// ABOUTME: Creates the schema, seeds demo data and saves the config file.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/superlift/internal/config"
	"github.com/harperreed/superlift/internal/storage"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the record store",
	Long: `Initialize the record store.

Creates the tables (or the empty KV document) and loads five demo workouts
into an empty store unless --no-seed is given. Running it again is safe:
existing workouts are never touched.

When no config file exists yet, the chosen --backend and --data-dir are
saved to ~/.config/superlift/config.json.

EXAMPLES:

  superlift init
  superlift init --backend kv --data-dir ~/lifts
  superlift init --no-seed`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := repo.CountWorkouts(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count workouts: %w", err)
		}

		kind := repo.Backend().Kind()
		color.Green("✓ Record store ready")
		fmt.Fprintf(cmd.OutOrStdout(), "  Backend:  %s\n", kind)
		if s, ok := repo.Backend().(*storage.SQLiteStore); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "  Database: %s\n", s.Path())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Workouts: %d\n", n)

		if kind == storage.KindMemory && cfg.GetBackend() != string(storage.KindMemory) {
			color.Yellow("⚠ Persistent storage unavailable, data will not be saved")
		}

		path := config.GetConfigPath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Config:   %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// ABOUTME: CLI command for copying workouts between storage backends.
// ABOUTME: Opens source and destination stores side by side under the data dir.
package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/superlift/internal/config"
	"github.com/harperreed/superlift/internal/storage"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy workouts between storage backends",
	Long: `Copy every workout with its exercises and sets from one backend to another.

Both stores live under the same --data-dir. Workout IDs are kept, so running
the migration twice replaces rather than duplicates. Neither store is seeded.

USAGE:

  superlift migrate --from kv --to sqlite --dry-run   # Preview counts
  superlift migrate --from kv --to sqlite             # Perform the migration
  superlift migrate --from sqlite --to charm          # Move to Charm Cloud`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := storage.ParseKind(migrateFrom)
		if err != nil {
			return err
		}
		to, err := storage.ParseKind(migrateTo)
		if err != nil {
			return err
		}
		if from == storage.KindAuto || to == storage.KindAuto {
			return fmt.Errorf("--from and --to must name a concrete backend")
		}
		if from == to {
			return fmt.Errorf("source and destination are both %s", from)
		}

		ctx := cmd.Context()
		src, err := openExact(ctx, from)
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer src.Close()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			workouts, err := src.GetAllWorkouts(ctx)
			if err != nil {
				return fmt.Errorf("failed to list source workouts: %w", err)
			}
			exercises, sets := 0, 0
			for _, w := range workouts {
				exercises += len(w.Exercises)
				sets += w.SetCount()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Would copy %d workouts, %d exercises, %d sets from %s to %s\n",
				len(workouts), exercises, sets, from, to)
			return nil
		}

		dst, err := openExact(ctx, to)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer dst.Close()

		summary, err := storage.MigrateData(ctx, src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %s → %s", from, to)
		fmt.Fprintf(cmd.OutOrStdout(), "  Workouts:  %d\n", summary.Workouts)
		fmt.Fprintf(cmd.OutOrStdout(), "  Exercises: %d\n", summary.Exercises)
		fmt.Fprintf(cmd.OutOrStdout(), "  Sets:      %d\n", summary.Sets)
		return nil
	},
}

// openExact opens kind without seeding and fails instead of falling back
// to the memory store.
func openExact(ctx context.Context, kind storage.Kind) (*storage.Repository, error) {
	c := config.Config{
		Backend:   string(kind),
		DataDir:   cfg.DataDir,
		CharmHost: cfg.CharmHost,
		NoSeed:    true,
	}
	r, err := c.OpenRepository(ctx, logger)
	if err != nil {
		return nil, err
	}
	if got := r.Backend().Kind(); got != kind {
		_ = r.Close()
		return nil, fmt.Errorf("%s backend unavailable", kind)
	}
	return r, nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend: sqlite, kv, charm, memory")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: sqlite, kv, charm, memory")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	_ = migrateCmd.MarkFlagRequired("from")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}

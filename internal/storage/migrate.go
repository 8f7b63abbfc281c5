// ABOUTME: Data migration between superlift storage backends.
// ABOUTME: Copies workouts with their exercises and sets from source to destination.
package storage

import (
	"context"
	"fmt"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Workouts  int
	Exercises int
	Sets      int
}

// MigrateData copies every workout from src to dst. Workout IDs are kept;
// exercise and set IDs are reassigned by the destination. Workouts already
// present in dst with the same ID are replaced.
func MigrateData(ctx context.Context, src, dst *Repository) (*MigrateSummary, error) {
	workouts, err := src.GetAllWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list source workouts: %w", err)
	}

	summary := &MigrateSummary{}
	for _, w := range workouts {
		if err := dst.InsertWorkout(ctx, w); err != nil {
			return summary, fmt.Errorf("copy workout %s: %w", w.ID, err)
		}
		summary.Workouts++
		summary.Exercises += len(w.Exercises)
		summary.Sets += w.SetCount()
	}

	return summary, nil
}

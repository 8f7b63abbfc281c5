// ABOUTME: Seeder that fills an empty record store with a starter dataset.
// ABOUTME: Per-workout insert failures are logged and collected, never fatal.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"

	"github.com/harperreed/superlift/internal/models"
)

// Store is the subset of the repository the Seeder writes through.
type Store interface {
	CountWorkouts(ctx context.Context) (int, error)
	InsertWorkout(ctx context.Context, w *models.Workout) error
}

// Seeder inserts a dataset into a store that holds no workouts.
type Seeder struct {
	dataset []*models.Workout
	logger  *log.Logger
	now     func() time.Time
}

// New returns a Seeder for dataset. A nil logger uses the default logger.
func New(dataset []*models.Workout, logger *log.Logger) *Seeder {
	if logger == nil {
		logger = log.Default()
	}
	return &Seeder{dataset: dataset, logger: logger, now: time.Now}
}

// NewDemo returns a Seeder for the built-in demo workouts dated from now.
func NewDemo(logger *log.Logger) *Seeder {
	return New(Demo(time.Now()), logger)
}

// SeedIfEmpty inserts the dataset when the store has no workouts. It
// reports whether anything was inserted. Only a failure to count the
// store is returned as an error.
func (s *Seeder) SeedIfEmpty(ctx context.Context, store Store) (bool, error) {
	n, err := store.CountWorkouts(ctx)
	if err != nil {
		return false, fmt.Errorf("count workouts: %w", err)
	}
	if n > 0 {
		s.logger.Debug("store already populated, skipping seed", "workouts", n)
		return false, nil
	}

	dataset := s.dataset
	if len(dataset) == 0 {
		s.logger.Warn("seed dataset is empty, inserting a sample workout")
		dataset = []*models.Workout{Minimal(s.now())}
	}

	var errs error
	inserted := 0
	for _, w := range dataset {
		if err := store.InsertWorkout(ctx, w.Clone()); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seed workout %s: %w", w.ID, err))
			continue
		}
		inserted++
	}

	if errs != nil {
		s.logger.Warn("seeding incomplete",
			"inserted", inserted,
			"failed", len(multierr.Errors(errs)),
			"err", errs)
	}
	s.logger.Info("seeded record store", "workouts", inserted)

	return inserted > 0, nil
}

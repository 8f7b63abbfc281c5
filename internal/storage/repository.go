// ABOUTME: Repository assembles full workouts on top of the active Backend.
// ABOUTME: Handles one-time initialization, seeding and error containment on reads.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"
	"golang.org/x/sync/singleflight"

	"github.com/harperreed/superlift/internal/models"
	"github.com/harperreed/superlift/internal/seed"
)

// Repository is the workout data access layer used by the CLI and MCP server.
type Repository struct {
	backend Backend
	seeder  *seed.Seeder
	logger  *log.Logger
	now     func() time.Time

	initGroup singleflight.Group
	initMu    sync.Mutex
}

// NewRepository wraps backend. A nil seeder disables seeding.
func NewRepository(backend Backend, seeder *seed.Seeder, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.Default()
	}
	return &Repository{
		backend: backend,
		seeder:  seeder,
		logger:  logger,
		now:     time.Now,
	}
}

// Backend returns the underlying store.
func (r *Repository) Backend() Backend { return r.backend }

// Initialize creates the schema and seeds an empty store. Concurrent
// callers share one run, and repeated calls are safe.
func (r *Repository) Initialize(ctx context.Context) error {
	_, err, _ := r.initGroup.Do("init", func() (any, error) {
		r.initMu.Lock()
		defer r.initMu.Unlock()
		return nil, r.initialize(ctx)
	})
	return err
}

func (r *Repository) initialize(ctx context.Context) error {
	if err := r.backend.Init(ctx); err != nil {
		return fmt.Errorf("initialize %s store: %w", r.backend.Kind(), err)
	}

	if r.seeder == nil {
		return nil
	}
	seeded, err := r.seeder.SeedIfEmpty(ctx, r)
	if err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	if seeded {
		r.logger.Debug("store seeded", "backend", r.backend.Kind())
	}
	return nil
}

// CountWorkouts returns the number of stored workouts.
func (r *Repository) CountWorkouts(ctx context.Context) (int, error) {
	return r.backend.CountWorkouts(ctx)
}

// InsertWorkout normalizes and stores a workout with all its exercises and
// sets. The caller's workout is not modified.
func (r *Repository) InsertWorkout(ctx context.Context, w *models.Workout) error {
	_, err := r.SaveWorkout(ctx, w)
	return err
}

// SaveWorkout is InsertWorkout returning the stored copy with its assigned IDs.
func (r *Repository) SaveWorkout(ctx context.Context, w *models.Workout) (*models.Workout, error) {
	if w == nil {
		return nil, fmt.Errorf("insert workout: nil workout")
	}
	stored := w.Clone()
	stored.Normalize(r.now())

	if err := r.backend.InsertWorkout(ctx, stored); err != nil {
		r.logger.Error("insert workout failed", "id", stored.ID, "err", err)
		return nil, err
	}
	return stored, nil
}

// GetAllWorkouts returns every workout, most recent first, with exercises
// and sets attached. A failure reading one workout's children is logged
// and that workout is returned with an empty collection.
func (r *Repository) GetAllWorkouts(ctx context.Context) ([]*models.Workout, error) {
	workouts, err := r.listWorkouts(ctx)
	if err != nil {
		return nil, err
	}

	for _, w := range workouts {
		r.attachExercises(ctx, w)
	}
	return workouts, nil
}

// GetWorkout returns one workout by exact ID or unique ID prefix.
func (r *Repository) GetWorkout(ctx context.Context, idOrPrefix string) (*models.Workout, error) {
	workouts, err := r.listWorkouts(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*models.Workout
	for _, w := range workouts {
		if w.ID == idOrPrefix {
			matches = []*models.Workout{w}
			break
		}
		if strings.HasPrefix(w.ID, idOrPrefix) {
			matches = append(matches, w)
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}

	w := matches[0]
	r.attachExercises(ctx, w)
	return w, nil
}

// listWorkouts reads the workout rows. Rows with an unreadable date are
// kept with a zero date and logged.
func (r *Repository) listWorkouts(ctx context.Context) ([]*models.Workout, error) {
	workouts, err := r.backend.ListWorkouts(ctx)
	if err != nil {
		if workouts == nil || !errors.Is(err, ErrInvalidDate) {
			return nil, err
		}
		for _, e := range multierr.Errors(err) {
			r.logger.Warn("unreadable workout date", "err", e)
		}
	}
	return workouts, nil
}

func (r *Repository) attachExercises(ctx context.Context, w *models.Workout) {
	exercises, err := r.backend.ListExercises(ctx, w.ID)
	if err != nil {
		r.logger.Error("load exercises failed", "workout", w.ID, "err", err)
		exercises = nil
	}

	w.Exercises = make([]models.Exercise, 0, len(exercises))
	for _, ex := range exercises {
		sets, err := r.backend.ListSets(ctx, ex.ID)
		if err != nil {
			r.logger.Error("load sets failed", "workout", w.ID, "exercise", ex.ID, "err", err)
			sets = nil
		}
		ex.Sets = append(make([]models.Set, 0, len(sets)), sets...)
		w.Exercises = append(w.Exercises, ex)
	}
}

// DeleteWorkout removes a workout and its children. It returns true when
// the store no longer holds the workout, including when it never existed.
func (r *Repository) DeleteWorkout(ctx context.Context, id string) (bool, error) {
	found, err := r.backend.DeleteWorkout(ctx, id)
	if err != nil {
		r.logger.Error("delete workout failed", "id", id, "err", err)
		return false, err
	}
	if !found {
		r.logger.Debug("delete of unknown workout", "id", id)
	}
	return true, nil
}

// Close closes the underlying store.
func (r *Repository) Close() error {
	return r.backend.Close()
}

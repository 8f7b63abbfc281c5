// ABOUTME: Workout, exercise and set operations for SQLite storage.
// ABOUTME: Inserts and deletes run in one transaction so a workout is never half-written.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/multierr"

	"github.com/harperreed/superlift/internal/models"
)

// CountWorkouts returns the number of stored workouts.
func (s *SQLiteStore) CountWorkouts(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM workouts").Scan(&n); err != nil {
		return 0, fmt.Errorf("count workouts: %w", err)
	}
	return n, nil
}

// InsertWorkout stores a workout and its children, replacing any workout
// with the same ID.
func (s *SQLiteStore) InsertWorkout(ctx context.Context, w *models.Workout) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := deleteWorkoutTx(ctx, tx, w.ID); err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO workouts (id, name, duration, date) VALUES (?, ?, ?, ?)`,
		w.ID, w.Name, w.Duration, models.FormatDate(w.Date),
	)
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}

	for i := range w.Exercises {
		ex := &w.Exercises[i]
		res, err := tx.ExecContext(ctx,
			`INSERT INTO exercises (workoutId, name) VALUES (?, ?)`,
			w.ID, ex.Name,
		)
		if err != nil {
			return fmt.Errorf("insert exercise %q: %w", ex.Name, err)
		}
		ex.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert exercise %q: %w", ex.Name, err)
		}
		ex.WorkoutID = w.ID

		for j := range ex.Sets {
			set := &ex.Sets[j]
			res, err := tx.ExecContext(ctx,
				`INSERT INTO sets (exerciseId, setOrder, weight, reps) VALUES (?, ?, ?, ?)`,
				ex.ID, set.SetOrder, set.Weight, set.Reps,
			)
			if err != nil {
				return fmt.Errorf("insert set for %q: %w", ex.Name, err)
			}
			set.ID, err = res.LastInsertId()
			if err != nil {
				return fmt.Errorf("insert set for %q: %w", ex.Name, err)
			}
			set.ExerciseID = ex.ID
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit workout: %w", err)
	}
	return nil
}

// ListWorkouts returns workout rows, most recent first.
func (s *SQLiteStore) ListWorkouts(ctx context.Context) ([]*models.Workout, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, duration, date FROM workouts ORDER BY date DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.Workout
	var dateErrs error
	for rows.Next() {
		var w models.Workout
		var duration sql.NullString
		var date string
		if err := rows.Scan(&w.ID, &w.Name, &duration, &date); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		w.Duration = duration.String
		w.Date, err = models.ParseDate(date)
		if err != nil {
			dateErrs = multierr.Append(dateErrs, fmt.Errorf("%w: workout %s: %q", ErrInvalidDate, w.ID, date))
		}
		workouts = append(workouts, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return workouts, dateErrs
}

// ListExercises returns a workout's exercises in insertion order.
func (s *SQLiteStore) ListExercises(ctx context.Context, workoutID string) ([]models.Exercise, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, workoutId, name FROM exercises WHERE workoutId = ? ORDER BY id ASC`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.WorkoutID, &ex.Name); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, ex)
	}
	return exercises, rows.Err()
}

// ListSets returns an exercise's sets ordered by set order.
func (s *SQLiteStore) ListSets(ctx context.Context, exerciseID int64) ([]models.Set, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, exerciseId, setOrder, weight, reps FROM sets WHERE exerciseId = ? ORDER BY setOrder ASC, id ASC`,
		exerciseID)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	var sets []models.Set
	for rows.Next() {
		var set models.Set
		if err := rows.Scan(&set.ID, &set.ExerciseID, &set.SetOrder, &set.Weight, &set.Reps); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

// DeleteWorkout removes a workout with its exercises and sets.
func (s *SQLiteStore) DeleteWorkout(ctx context.Context, id string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("delete workout: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	found, err := deleteWorkoutTx(ctx, tx, id)
	if err != nil {
		return false, fmt.Errorf("delete workout: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete: %w", err)
	}
	return found, nil
}

// deleteWorkoutTx removes children before the parent. The foreign keys
// cascade as well, but explicit deletes keep older databases created
// without them consistent.
func deleteWorkoutTx(ctx context.Context, tx *sql.Tx, id string) (bool, error) {
	stmts := []string{
		`DELETE FROM sets WHERE exerciseId IN (SELECT id FROM exercises WHERE workoutId = ?)`,
		`DELETE FROM exercises WHERE workoutId = ?`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return false, err
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the workouts, exercises and sets tables.
package storage

import "context"

// initSchema creates the schema. Every statement is idempotent.
func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY NOT NULL,
		name TEXT NOT NULL,
		duration TEXT,
		date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workoutId TEXT NOT NULL,
		name TEXT NOT NULL,
		FOREIGN KEY (workoutId) REFERENCES workouts(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exerciseId INTEGER NOT NULL,
		setOrder INTEGER NOT NULL,
		weight REAL NOT NULL,
		reps INTEGER NOT NULL,
		FOREIGN KEY (exerciseId) REFERENCES exercises(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date DESC);
	CREATE INDEX IF NOT EXISTS idx_exercises_workout ON exercises(workoutId);
	CREATE INDEX IF NOT EXISTS idx_sets_exercise ON sets(exerciseId, setOrder);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

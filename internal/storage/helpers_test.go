// ABOUTME: Shared fixtures for storage tests.
// ABOUTME: Builds each Backend implementation against temporary storage.
package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/superlift/internal/logging"
	"github.com/harperreed/superlift/internal/models"
)

type backendFactory struct {
	name string
	open func(t *testing.T) Backend
}

func allBackends() []backendFactory {
	return []backendFactory{
		{"sqlite", func(t *testing.T) Backend { return setupTestDB(t) }},
		{"badger", func(t *testing.T) Backend {
			t.Helper()
			s, err := OpenBadgerInMemory()
			if err != nil {
				t.Fatalf("OpenBadgerInMemory failed: %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			return s
		}},
		{"memory", func(t *testing.T) Backend { return NewMemoryStore() }},
	}
}

func setupTestDB(t *testing.T) *SQLiteStore {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "superlift.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func initBackend(t *testing.T, b Backend) {
	t.Helper()
	if err := b.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
}

func newTestRepo(t *testing.T, b Backend) *Repository {
	t.Helper()
	repo := NewRepository(b, nil, logging.Discard())
	if err := repo.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return repo
}

func sampleWorkout(id string, date time.Time) *models.Workout {
	w := models.NewWorkout("Push " + id).WithID(id).WithDuration("40min").WithDate(date)
	w.AddExercise("Bench Press (Barbell)").AddSet(135, 5).AddSet(155, 3)
	w.AddExercise("Overhead Press (Barbell)").AddSet(85, 6)
	return w
}

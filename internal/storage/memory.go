// ABOUTME: In-memory Backend used when no persistent engine is available.
// ABOUTME: Contents live for the lifetime of the process only.
package storage

import (
	"context"
	"sync"

	"github.com/harperreed/superlift/internal/models"
)

// MemoryStore is the volatile Backend. It keeps the same record document
// as KVStore without serializing it.
type MemoryStore struct {
	mu  sync.RWMutex
	doc *document
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{doc: newDocument()}
}

// Kind implements Backend.
func (m *MemoryStore) Kind() Kind { return KindMemory }

// Init implements Backend. Existing contents are kept.
func (m *MemoryStore) Init(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		m.doc = newDocument()
	}
	return nil
}

// CountWorkouts implements Backend.
func (m *MemoryStore) CountWorkouts(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.doc.Workouts), nil
}

// InsertWorkout implements Backend.
func (m *MemoryStore) InsertWorkout(ctx context.Context, w *models.Workout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc.insert(w)
	return nil
}

// ListWorkouts implements Backend.
func (m *MemoryStore) ListWorkouts(ctx context.Context) ([]*models.Workout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc.workouts()
}

// ListExercises implements Backend.
func (m *MemoryStore) ListExercises(ctx context.Context, workoutID string) ([]models.Exercise, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc.exercises(workoutID), nil
}

// ListSets implements Backend.
func (m *MemoryStore) ListSets(ctx context.Context, exerciseID int64) ([]models.Set, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc.sets(exerciseID), nil
}

// DeleteWorkout implements Backend.
func (m *MemoryStore) DeleteWorkout(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.remove(id), nil
}

// Close implements Backend.
func (m *MemoryStore) Close() error { return nil }

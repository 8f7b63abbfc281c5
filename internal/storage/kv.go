// ABOUTME: Key-value Backend that keeps the record store as one JSON document.
// ABOUTME: Runs over a local badger database or a Charm-synced kv store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/harperreed/superlift/internal/models"
)

// DocumentKey is the key holding the serialized record document.
const DocumentKey = "superlift:records"

var errBlobNotFound = errors.New("key not found")

// blobEngine is the minimal byte store a KVStore needs.
type blobEngine interface {
	get(key string) ([]byte, error)
	set(key string, value []byte) error
	close() error
}

// KVStore is the key-value Backend. Every write rewrites the whole
// document in one Set so a workout is never partially committed. The
// decoded document is kept between calls and replaced on every save.
type KVStore struct {
	mu     sync.Mutex
	engine blobEngine
	kind   Kind
	cached *document
}

func newKVStore(engine blobEngine, kind Kind) *KVStore {
	return &KVStore{engine: engine, kind: kind}
}

// Kind implements Backend.
func (s *KVStore) Kind() Kind { return s.kind }

// Init writes an empty document if none exists and validates an existing one.
func (s *KVStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = nil
	data, err := s.engine.get(DocumentKey)
	if errors.Is(err, errBlobNotFound) {
		return s.save(newDocument())
	}
	if err != nil {
		return fmt.Errorf("read record document: %w", err)
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	s.cached = doc
	return nil
}

// CountWorkouts implements Backend.
func (s *KVStore) CountWorkouts(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return 0, fmt.Errorf("count workouts: %w", err)
	}
	return len(doc.Workouts), nil
}

// InsertWorkout implements Backend.
func (s *KVStore) InsertWorkout(ctx context.Context, w *models.Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}
	doc.insert(w)
	if err := s.save(doc); err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}
	return nil
}

// ListWorkouts implements Backend.
func (s *KVStore) ListWorkouts(ctx context.Context) ([]*models.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return doc.workouts()
}

// ListExercises implements Backend.
func (s *KVStore) ListExercises(ctx context.Context, workoutID string) ([]models.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return doc.exercises(workoutID), nil
}

// ListSets implements Backend.
func (s *KVStore) ListSets(ctx context.Context, exerciseID int64) ([]models.Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	return doc.sets(exerciseID), nil
}

// DeleteWorkout implements Backend.
func (s *KVStore) DeleteWorkout(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, fmt.Errorf("delete workout: %w", err)
	}
	found := doc.remove(id)
	if !found {
		return false, nil
	}
	if err := s.save(doc); err != nil {
		return false, fmt.Errorf("delete workout: %w", err)
	}
	return true, nil
}

// Close implements Backend.
func (s *KVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	return s.engine.close()
}

// load returns the document, reading it from the engine only when no
// decoded copy is held. A missing key reads as an empty document.
func (s *KVStore) load() (*document, error) {
	if s.cached != nil {
		return s.cached, nil
	}
	data, err := s.engine.get(DocumentKey)
	if errors.Is(err, errBlobNotFound) {
		return newDocument(), nil
	}
	if err != nil {
		return nil, err
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	s.cached = doc
	return doc, nil
}

// save writes doc and makes it the cached copy. On failure the cache is
// dropped, since callers mutate the loaded document before saving.
func (s *KVStore) save(doc *document) error {
	s.cached = nil
	data, err := doc.encode()
	if err != nil {
		return fmt.Errorf("encode record document: %w", err)
	}
	if err := s.engine.set(DocumentKey, data); err != nil {
		return err
	}
	s.cached = doc
	return nil
}

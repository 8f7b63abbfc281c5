// ABOUTME: Tests specific to the key-value Backend and its document format.
// ABOUTME: Covers init, malformed documents, persistence and the decoded-document cache.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/superlift/internal/logging"
)

func TestKVStoreInitWritesEmptyDocument(t *testing.T) {
	s, err := OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("OpenBadgerInMemory failed: %v", err)
	}
	defer s.Close()

	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	raw, err := s.engine.get(DocumentKey)
	if err != nil {
		t.Fatalf("document missing after Init: %v", err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}
	if len(doc.Workouts) != 0 || doc.NextExerciseID != 1 || doc.NextSetID != 1 {
		t.Errorf("unexpected initial document: %+v", doc)
	}
}

func TestKVStoreMalformedDocument(t *testing.T) {
	s, err := OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("OpenBadgerInMemory failed: %v", err)
	}
	defer s.Close()

	if err := s.engine.set(DocumentKey, []byte("{not json")); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := s.Init(context.Background()); !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("Init error = %v, want ErrMalformedDocument", err)
	}
	if _, err := s.ListWorkouts(context.Background()); !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("ListWorkouts error = %v, want ErrMalformedDocument", err)
	}
}

func TestKVStoreReadsBeforeInit(t *testing.T) {
	s, err := OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("OpenBadgerInMemory failed: %v", err)
	}
	defer s.Close()

	n, err := s.CountWorkouts(context.Background())
	if err != nil {
		t.Fatalf("CountWorkouts failed: %v", err)
	}
	if n != 0 {
		t.Errorf("got %d workouts, want 0", n)
	}
}

func TestKVStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "kv")

	s, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	initBackend(t, s)
	if err := s.InsertWorkout(ctx, sampleWorkout("keep", time.Now())); err != nil {
		t.Fatalf("InsertWorkout failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = OpenBadger(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	initBackend(t, s)

	workouts, err := s.ListWorkouts(ctx)
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 1 || workouts[0].ID != "keep" {
		t.Errorf("unexpected workouts after reopen: %+v", workouts)
	}

	exercises, err := s.ListExercises(ctx, "keep")
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(exercises) != 2 {
		t.Errorf("got %d exercises, want 2", len(exercises))
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "superlift.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	initBackend(t, s)
	if err := s.InsertWorkout(ctx, sampleWorkout("keep", time.Now())); err != nil {
		t.Fatalf("InsertWorkout failed: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	initBackend(t, s)

	n, err := s.CountWorkouts(ctx)
	if err != nil {
		t.Fatalf("CountWorkouts failed: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d workouts after reopen, want 1", n)
	}
}

// memEngine is a blobEngine over a map that can be told to fail writes.
type memEngine struct {
	blobs    map[string][]byte
	gets     int
	failSets bool
}

func (e *memEngine) get(key string) ([]byte, error) {
	e.gets++
	v, ok := e.blobs[key]
	if !ok {
		return nil, errBlobNotFound
	}
	return v, nil
}

func (e *memEngine) set(key string, value []byte) error {
	if e.failSets {
		return errors.New("disk full")
	}
	e.blobs[key] = value
	return nil
}

func (e *memEngine) close() error { return nil }

func TestKVStoreReadsDocumentOncePerHistory(t *testing.T) {
	ctx := context.Background()
	engine := &memEngine{blobs: map[string][]byte{}}
	s := newKVStore(engine, KindKV)
	repo := newTestRepo(t, s)

	for i := 0; i < 20; i++ {
		w := sampleWorkout(fmt.Sprintf("w%02d", i), time.Now().Add(-time.Duration(i)*time.Hour))
		if err := repo.InsertWorkout(ctx, w); err != nil {
			t.Fatalf("InsertWorkout failed: %v", err)
		}
	}

	engine.gets = 0
	all, err := repo.GetAllWorkouts(ctx)
	if err != nil {
		t.Fatalf("GetAllWorkouts failed: %v", err)
	}
	if len(all) != 20 || len(all[0].Exercises) != 2 || len(all[0].Exercises[0].Sets) != 2 {
		t.Fatalf("unexpected history: %d workouts", len(all))
	}
	if engine.gets != 0 {
		t.Errorf("engine read %d times for a cached document, want 0", engine.gets)
	}

	// A fresh store over the same engine decodes once for the whole history.
	fresh := newKVStore(engine, KindKV)
	engine.gets = 0
	if _, err := NewRepository(fresh, nil, logging.Discard()).GetAllWorkouts(ctx); err != nil {
		t.Fatalf("GetAllWorkouts failed: %v", err)
	}
	if engine.gets != 1 {
		t.Errorf("engine read %d times, want 1", engine.gets)
	}
}

func TestKVStoreDropsCacheWhenSaveFails(t *testing.T) {
	ctx := context.Background()
	engine := &memEngine{blobs: map[string][]byte{}}
	s := newKVStore(engine, KindKV)
	initBackend(t, s)

	if err := s.InsertWorkout(ctx, sampleWorkout("kept", time.Now())); err != nil {
		t.Fatalf("InsertWorkout failed: %v", err)
	}

	engine.failSets = true
	if err := s.InsertWorkout(ctx, sampleWorkout("lost", time.Now())); err == nil {
		t.Fatal("InsertWorkout should fail when the engine rejects the write")
	}
	if found, err := s.DeleteWorkout(ctx, "kept"); err == nil || found {
		t.Fatalf("DeleteWorkout = %v, %v; want a write error", found, err)
	}
	engine.failSets = false

	workouts, err := s.ListWorkouts(ctx)
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 1 || workouts[0].ID != "kept" {
		t.Errorf("store should match the last successful write, got %+v", workouts)
	}
	if exercises, _ := s.ListExercises(ctx, "kept"); len(exercises) != 2 {
		t.Errorf("kept workout has %d exercises, want 2", len(exercises))
	}
}

func TestKVStoreInitRereadsDocument(t *testing.T) {
	ctx := context.Background()
	engine := &memEngine{blobs: map[string][]byte{}}
	s := newKVStore(engine, KindKV)
	initBackend(t, s)
	if err := s.InsertWorkout(ctx, sampleWorkout("a", time.Now())); err != nil {
		t.Fatalf("InsertWorkout failed: %v", err)
	}

	// Another writer replaced the document.
	engine.blobs[DocumentKey] = []byte("{not json")
	if err := s.Init(ctx); !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("Init error = %v, want ErrMalformedDocument", err)
	}
}

// ABOUTME: Backend interface implemented by every storage engine.
// ABOUTME: SQLite, key-value and in-memory engines share this contract.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/superlift/internal/models"
)

// Kind names a storage engine.
type Kind string

const (
	KindAuto   Kind = "auto"
	KindSQLite Kind = "sqlite"
	KindKV     Kind = "kv"
	KindCharm  Kind = "charm"
	KindMemory Kind = "memory"
)

var (
	// ErrUnknownBackend is returned when a backend name is not recognized.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrNotFound is returned when no workout matches an ID or prefix.
	ErrNotFound = errors.New("not found")

	// ErrMalformedDocument is returned when a key-value document cannot be decoded.
	ErrMalformedDocument = errors.New("malformed record document")

	// ErrInvalidDate marks a stored workout whose date cannot be parsed.
	ErrInvalidDate = errors.New("invalid workout date")
)

// ParseKind validates a backend name. An empty name means KindAuto.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(name); k {
	case "":
		return KindAuto, nil
	case KindAuto, KindSQLite, KindKV, KindCharm, KindMemory:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// Backend is the record store contract. Callers outside this package go
// through Repository rather than using a Backend directly.
type Backend interface {
	// Kind reports which engine is active.
	Kind() Kind

	// Init creates the workouts, exercises and sets collections if absent.
	Init(ctx context.Context) error

	CountWorkouts(ctx context.Context) (int, error)

	// InsertWorkout stores the workout with its exercises and sets as one
	// unit. An existing workout with the same ID is replaced. Store-assigned
	// exercise and set IDs are written back into w.
	InsertWorkout(ctx context.Context, w *models.Workout) error

	// ListWorkouts returns workout rows without exercises, most recent first.
	// Rows whose date cannot be parsed are still returned with a zero Date,
	// together with an error wrapping ErrInvalidDate for each of them.
	ListWorkouts(ctx context.Context) ([]*models.Workout, error)

	// ListExercises returns a workout's exercises in insertion order, without sets.
	ListExercises(ctx context.Context, workoutID string) ([]models.Exercise, error)

	// ListSets returns an exercise's sets ordered by set order.
	ListSets(ctx context.Context, exerciseID int64) ([]models.Set, error)

	// DeleteWorkout removes a workout with its exercises and sets. It
	// reports whether a workout existed.
	DeleteWorkout(ctx context.Context, id string) (bool, error)

	Close() error
}

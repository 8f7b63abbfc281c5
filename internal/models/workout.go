// ABOUTME: Workout, Exercise and Set models for strength training logs.
// ABOUTME: A workout owns its exercises; an exercise owns its sets.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultWorkoutName is used when a workout is saved without a name.
const DefaultWorkoutName = "Untitled Workout"

// DateLayout is the persisted form of Workout.Date. It is fixed-width and
// always UTC so lexical order matches chronological order.
const DateLayout = "2006-01-02T15:04:05.000Z"

// Workout represents one logged training session.
type Workout struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Duration  string     `json:"duration" yaml:"duration"`
	Date      time.Time  `json:"date" yaml:"date"`
	Exercises []Exercise `json:"exercises" yaml:"exercises"`
}

// Exercise is one movement performed within a workout.
type Exercise struct {
	ID        int64  `json:"id" yaml:"id"`
	WorkoutID string `json:"workoutId" yaml:"workout_id"`
	Name      string `json:"name" yaml:"name"`
	Sets      []Set  `json:"sets" yaml:"sets"`
}

// Set is one performed set within an exercise.
type Set struct {
	ID         int64   `json:"id" yaml:"id"`
	ExerciseID int64   `json:"exerciseId" yaml:"exercise_id"`
	SetOrder   int     `json:"setOrder" yaml:"set_order"`
	Weight     float64 `json:"weight" yaml:"weight"`
	Reps       int     `json:"reps" yaml:"reps"`
}

// NewWorkout creates a new Workout with a generated ID dated now.
func NewWorkout(name string) *Workout {
	if strings.TrimSpace(name) == "" {
		name = DefaultWorkoutName
	}
	return &Workout{
		ID:   uuid.NewString(),
		Name: name,
		Date: time.Now(),
	}
}

// WithID overrides the generated ID.
func (w *Workout) WithID(id string) *Workout {
	w.ID = id
	return w
}

// WithDuration sets the free-form duration label.
func (w *Workout) WithDuration(duration string) *Workout {
	w.Duration = duration
	return w
}

// WithDate sets a custom workout date.
func (w *Workout) WithDate(t time.Time) *Workout {
	w.Date = t
	return w
}

// AddExercise appends an exercise and returns a pointer to it so sets can be added.
func (w *Workout) AddExercise(name string) *Exercise {
	w.Exercises = append(w.Exercises, Exercise{WorkoutID: w.ID, Name: name})
	return &w.Exercises[len(w.Exercises)-1]
}

// Exercise returns the first exercise with the given name, or nil.
func (w *Workout) Exercise(name string) *Exercise {
	for i := range w.Exercises {
		if w.Exercises[i].Name == name {
			return &w.Exercises[i]
		}
	}
	return nil
}

// AddSet appends a set using the next set order.
func (e *Exercise) AddSet(weight float64, reps int) *Exercise {
	e.Sets = append(e.Sets, Set{
		ExerciseID: e.ID,
		SetOrder:   len(e.Sets) + 1,
		Weight:     weight,
		Reps:       reps,
	})
	return e
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a persisted date. It also accepts RFC 3339 so that
// records written by other tools can be read back.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// Normalize fills the defaults applied when a workout is stored: a blank
// name becomes DefaultWorkoutName, a zero date becomes now, dates are
// truncated to the persisted precision, and set orders left at zero take
// their 1-based position.
func (w *Workout) Normalize(now time.Time) {
	if strings.TrimSpace(w.ID) == "" {
		w.ID = uuid.NewString()
	}
	if strings.TrimSpace(w.Name) == "" {
		w.Name = DefaultWorkoutName
	}
	if w.Date.IsZero() {
		w.Date = now
	}
	w.Date = w.Date.UTC().Truncate(time.Millisecond)
	for i := range w.Exercises {
		ex := &w.Exercises[i]
		ex.WorkoutID = w.ID
		for j := range ex.Sets {
			if ex.Sets[j].SetOrder <= 0 {
				ex.Sets[j].SetOrder = j + 1
			}
		}
	}
}

// Clone returns a deep copy of the workout.
func (w *Workout) Clone() *Workout {
	c := *w
	c.Exercises = make([]Exercise, len(w.Exercises))
	for i, ex := range w.Exercises {
		ex.Sets = append([]Set(nil), ex.Sets...)
		c.Exercises[i] = ex
	}
	return &c
}

// SetCount returns the total number of sets across all exercises.
func (w *Workout) SetCount() int {
	n := 0
	for _, ex := range w.Exercises {
		n += len(ex.Sets)
	}
	return n
}

// ABOUTME: JSON record document shared by the key-value and in-memory engines.
// ABOUTME: Mirrors the workouts, exercises and sets tables plus ID counters.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/harperreed/superlift/internal/models"
)

// document is the whole record store serialized as one value.
type document struct {
	Workouts       []workoutRecord  `json:"workouts"`
	Exercises      []exerciseRecord `json:"exercises"`
	Sets           []setRecord      `json:"sets"`
	NextExerciseID int64            `json:"nextExerciseId"`
	NextSetID      int64            `json:"nextSetId"`

	// Positions in Exercises and Sets by owner, rebuilt after every change.
	exercisesByWorkout map[string][]int
	setsByExercise     map[int64][]int
}

type workoutRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Date     string `json:"date"`
}

type exerciseRecord struct {
	ID        int64  `json:"id"`
	WorkoutID string `json:"workoutId"`
	Name      string `json:"name"`
}

type setRecord struct {
	ID         int64   `json:"id"`
	ExerciseID int64   `json:"exerciseId"`
	SetOrder   int     `json:"setOrder"`
	Weight     float64 `json:"weight"`
	Reps       int     `json:"reps"`
}

func newDocument() *document {
	d := &document{
		Workouts:       []workoutRecord{},
		Exercises:      []exerciseRecord{},
		Sets:           []setRecord{},
		NextExerciseID: 1,
		NextSetID:      1,
	}
	d.reindex()
	return d
}

func decodeDocument(data []byte) (*document, error) {
	doc := newDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.NextExerciseID < 1 {
		doc.NextExerciseID = 1
	}
	if doc.NextSetID < 1 {
		doc.NextSetID = 1
	}
	doc.reindex()
	return doc, nil
}

func (d *document) reindex() {
	d.exercisesByWorkout = make(map[string][]int, len(d.Workouts))
	for i, ex := range d.Exercises {
		d.exercisesByWorkout[ex.WorkoutID] = append(d.exercisesByWorkout[ex.WorkoutID], i)
	}
	d.setsByExercise = make(map[int64][]int, len(d.Exercises))
	for i, s := range d.Sets {
		d.setsByExercise[s.ExerciseID] = append(d.setsByExercise[s.ExerciseID], i)
	}
}

func (d *document) encode() ([]byte, error) {
	return json.Marshal(d)
}

// insert adds w, replacing any workout with the same ID.
func (d *document) insert(w *models.Workout) {
	d.remove(w.ID)

	d.Workouts = append(d.Workouts, workoutRecord{
		ID:       w.ID,
		Name:     w.Name,
		Duration: w.Duration,
		Date:     models.FormatDate(w.Date),
	})

	for i := range w.Exercises {
		ex := &w.Exercises[i]
		ex.ID = d.NextExerciseID
		ex.WorkoutID = w.ID
		d.NextExerciseID++
		d.Exercises = append(d.Exercises, exerciseRecord{ID: ex.ID, WorkoutID: w.ID, Name: ex.Name})

		for j := range ex.Sets {
			s := &ex.Sets[j]
			s.ID = d.NextSetID
			s.ExerciseID = ex.ID
			d.NextSetID++
			d.Sets = append(d.Sets, setRecord{
				ID:         s.ID,
				ExerciseID: ex.ID,
				SetOrder:   s.SetOrder,
				Weight:     s.Weight,
				Reps:       s.Reps,
			})
		}
	}
	d.reindex()
}

// remove deletes a workout and everything it owns. It reports whether the
// workout existed.
func (d *document) remove(id string) bool {
	found := false
	workouts := d.Workouts[:0]
	for _, w := range d.Workouts {
		if w.ID == id {
			found = true
			continue
		}
		workouts = append(workouts, w)
	}
	d.Workouts = workouts

	owned := make(map[int64]bool)
	exercises := d.Exercises[:0]
	for _, ex := range d.Exercises {
		if ex.WorkoutID == id {
			owned[ex.ID] = true
			continue
		}
		exercises = append(exercises, ex)
	}
	d.Exercises = exercises

	sets := d.Sets[:0]
	for _, s := range d.Sets {
		if owned[s.ExerciseID] {
			continue
		}
		sets = append(sets, s)
	}
	d.Sets = sets
	d.reindex()

	return found
}

// workouts returns the workout rows, most recent first. Rows with an
// unreadable date keep a zero Date and are reported in the error.
func (d *document) workouts() ([]*models.Workout, error) {
	out := make([]*models.Workout, 0, len(d.Workouts))
	var dateErrs error
	for _, r := range d.Workouts {
		date, err := models.ParseDate(r.Date)
		if err != nil {
			dateErrs = multierr.Append(dateErrs, fmt.Errorf("%w: workout %s: %q", ErrInvalidDate, r.ID, r.Date))
		}
		out = append(out, &models.Workout{
			ID:       r.ID,
			Name:     r.Name,
			Duration: r.Duration,
			Date:     date,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, dateErrs
}

func (d *document) exercises(workoutID string) []models.Exercise {
	var out []models.Exercise
	for _, i := range d.exercisesByWorkout[workoutID] {
		r := d.Exercises[i]
		out = append(out, models.Exercise{ID: r.ID, WorkoutID: r.WorkoutID, Name: r.Name})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (d *document) sets(exerciseID int64) []models.Set {
	var out []models.Set
	for _, i := range d.setsByExercise[exerciseID] {
		r := d.Sets[i]
		out = append(out, models.Set{
			ID:         r.ID,
			ExerciseID: r.ExerciseID,
			SetOrder:   r.SetOrder,
			Weight:     r.Weight,
			Reps:       r.Reps,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SetOrder == out[j].SetOrder {
			return out[i].ID < out[j].ID
		}
		return out[i].SetOrder < out[j].SetOrder
	})
	return out
}

// ABOUTME: JSON shapes returned by MCP tools and resources.
// ABOUTME: Dates are rendered as strings and collections are never null.
package mcp

import (
	"github.com/harperreed/superlift/internal/models"
	"github.com/harperreed/superlift/internal/strength"
)

type setView struct {
	Order  int     `json:"order"`
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

type exerciseView struct {
	Name string    `json:"name"`
	Sets []setView `json:"sets"`
}

type workoutView struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Duration  string         `json:"duration"`
	Date      string         `json:"date"`
	Exercises []exerciseView `json:"exercises"`
}

type pointView struct {
	WorkoutID string `json:"workout_id"`
	Label     string `json:"label"`
	Date      string `json:"date"`
	Score     int    `json:"score"`
	Session   int    `json:"session"`
}

type recordView struct {
	Lift      string  `json:"lift"`
	OneRepMax float64 `json:"one_rep_max"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	WorkoutID string  `json:"workout_id"`
	Date      string  `json:"date"`
}

func newWorkoutView(w *models.Workout) workoutView {
	v := workoutView{
		ID:        w.ID,
		Name:      w.Name,
		Duration:  w.Duration,
		Date:      models.FormatDate(w.Date),
		Exercises: make([]exerciseView, 0, len(w.Exercises)),
	}
	for _, ex := range w.Exercises {
		ev := exerciseView{Name: ex.Name, Sets: make([]setView, 0, len(ex.Sets))}
		for _, s := range ex.Sets {
			ev.Sets = append(ev.Sets, setView{Order: s.SetOrder, Weight: s.Weight, Reps: s.Reps})
		}
		v.Exercises = append(v.Exercises, ev)
	}
	return v
}

func newWorkoutViews(workouts []*models.Workout) []workoutView {
	out := make([]workoutView, 0, len(workouts))
	for _, w := range workouts {
		out = append(out, newWorkoutView(w))
	}
	return out
}

func newPointViews(points []strength.Point) []pointView {
	out := make([]pointView, 0, len(points))
	for _, p := range points {
		out = append(out, pointView{
			WorkoutID: p.WorkoutID,
			Label:     p.Label,
			Date:      models.FormatDate(p.Date),
			Score:     p.Score,
			Session:   p.Session,
		})
	}
	return out
}

func newRecordViews(records []strength.Record) []recordView {
	out := make([]recordView, 0, len(records))
	for _, r := range records {
		out = append(out, recordView{
			Lift:      r.Lift,
			OneRepMax: r.OneRepMax,
			Weight:    r.Weight,
			Reps:      r.Reps,
			WorkoutID: r.WorkoutID,
			Date:      models.FormatDate(r.Date),
		})
	}
	return out
}

// ABOUTME: Strength score derived from logged sets using Brzycki one-rep-max estimates.
// ABOUTME: Pure functions over workout history; empty input yields zero values.
package strength

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/superlift/internal/models"
)

// Lift is one of the canonical barbell movements that make up the score.
type Lift struct {
	// Name is the canonical exercise name, e.g. "Squat (Barbell)".
	Name string
}

// Lifts are the canonical lifts, in display order.
var Lifts = []Lift{
	{Name: "Squat (Barbell)"},
	{Name: "Bench Press (Barbell)"},
	{Name: "Deadlift (Barbell)"},
}

// LabelLayout formats Point.Label.
const LabelLayout = "Jan 2"

// OneRepMax estimates the single-repetition maximum for a set. A single
// rep returns the weight itself. Degenerate input and non-finite or
// negative estimates return 0.
func OneRepMax(weight float64, reps int) float64 {
	if weight <= 0 || reps <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return 0
	}
	if reps == 1 {
		return weight
	}
	est := weight / (1.0278 - 0.0278*float64(reps))
	if math.IsNaN(est) || math.IsInf(est, 0) || est < 0 {
		return 0
	}
	return est
}

// Matches reports whether an exercise name contains the lift's canonical
// name, ignoring case. "Paused Squat (Barbell)" counts; "Front Squat" and
// "Squat (Dumbbell)" do not.
func (l Lift) Matches(exercise string) bool {
	return strings.Contains(strings.ToLower(exercise), strings.ToLower(l.Name))
}

// BestOneRepMax returns the highest estimate for lift across every set of
// every matching exercise in w.
func BestOneRepMax(w *models.Workout, lift Lift) float64 {
	if w == nil {
		return 0
	}
	best := 0.0
	for _, ex := range w.Exercises {
		if !lift.Matches(ex.Name) {
			continue
		}
		for _, s := range ex.Sets {
			if orm := OneRepMax(s.Weight, s.Reps); orm > best {
				best = orm
			}
		}
	}
	return best
}

// Point is one workout's entry in the strength time series.
type Point struct {
	WorkoutID string    `json:"workoutId"`
	Label     string    `json:"label"`
	Date      time.Time `json:"date"`
	// Score is the best-ever total through this workout. It never decreases.
	Score int `json:"score"`
	// Session is the total of this workout's own bests.
	Session int `json:"session"`
	// Maxes holds the running maximum per lift name.
	Maxes map[string]float64 `json:"maxes"`
}

// Series returns one point per workout in ascending date order. Input
// order does not matter and the input slice is not modified.
func Series(workouts []*models.Workout) []Point {
	ordered := chronological(workouts)
	running := make([]float64, len(Lifts))
	points := make([]Point, 0, len(ordered))

	for _, w := range ordered {
		session := 0.0
		maxes := make(map[string]float64, len(Lifts))
		for i, lift := range Lifts {
			best := BestOneRepMax(w, lift)
			session += best
			if best > running[i] {
				running[i] = best
			}
			maxes[lift.Name] = running[i]
		}
		points = append(points, Point{
			WorkoutID: w.ID,
			Label:     w.Date.Local().Format(LabelLayout),
			Date:      w.Date,
			Score:     roundScore(sum(running)),
			Session:   roundScore(session),
			Maxes:     maxes,
		})
	}
	return points
}

// CurrentScore is the sum of the all-time maxima of the canonical lifts.
func CurrentScore(workouts []*models.Workout) int {
	total := 0.0
	for _, lift := range Lifts {
		best := 0.0
		for _, w := range workouts {
			if orm := BestOneRepMax(w, lift); orm > best {
				best = orm
			}
		}
		total += best
	}
	return roundScore(total)
}

// Record is the best-ever estimate for one lift and the set that produced it.
type Record struct {
	Lift      string    `json:"lift"`
	OneRepMax float64   `json:"oneRepMax"`
	Weight    float64   `json:"weight"`
	Reps      int       `json:"reps"`
	WorkoutID string    `json:"workoutId"`
	Date      time.Time `json:"date"`
}

// PersonalRecords returns one Record per canonical lift that has been
// performed, in Lifts order. Ties go to the earliest workout.
func PersonalRecords(workouts []*models.Workout) []Record {
	ordered := chronological(workouts)
	var records []Record
	for _, lift := range Lifts {
		var rec *Record
		for _, w := range ordered {
			for _, ex := range w.Exercises {
				if !lift.Matches(ex.Name) {
					continue
				}
				for _, s := range ex.Sets {
					orm := OneRepMax(s.Weight, s.Reps)
					if orm <= 0 || (rec != nil && orm <= rec.OneRepMax) {
						continue
					}
					rec = &Record{
						Lift:      lift.Name,
						OneRepMax: orm,
						Weight:    s.Weight,
						Reps:      s.Reps,
						WorkoutID: w.ID,
						Date:      w.Date,
					}
				}
			}
		}
		if rec != nil {
			records = append(records, *rec)
		}
	}
	return records
}

func chronological(workouts []*models.Workout) []*models.Workout {
	out := make([]*models.Workout, 0, len(workouts))
	for _, w := range workouts {
		if w != nil {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func sum(vals []float64) float64 {
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total
}

func roundScore(v float64) int {
	return int(math.Round(v))
}

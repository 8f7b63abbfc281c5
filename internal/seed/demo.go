// ABOUTME: Built-in demo workouts used to populate an empty store.
// ABOUTME: Dates are relative to the time the store is first seeded.
package seed

import (
	"time"

	"github.com/harperreed/superlift/internal/models"
)

type demoSet struct {
	weight float64
	reps   int
}

type demoExercise struct {
	name string
	sets []demoSet
}

type demoWorkout struct {
	id        string
	name      string
	duration  string
	daysAgo   int
	exercises []demoExercise
}

var demoWorkouts = []demoWorkout{
	{"1", "Upper Body Push", "45min", 1, []demoExercise{
		{"Bench Press (Barbell)", []demoSet{{45, 8}, {45, 10}, {45, 12}}},
		{"Bicep Curl (Barbell)", []demoSet{{25, 10}, {25, 10}, {30, 8}}},
	}},
	{"2", "Leg Day", "52min", 3, []demoExercise{
		{"Squat (Barbell)", []demoSet{{135, 8}, {155, 6}, {165, 5}, {155, 6}}},
		{"Leg Press", []demoSet{{180, 12}, {200, 10}, {220, 8}}},
		{"Leg Curl", []demoSet{{60, 12}, {70, 10}, {70, 10}}},
		{"Calf Raises", []demoSet{{100, 15}, {120, 12}, {120, 12}}},
	}},
	{"3", "Pull Day", "48min", 5, []demoExercise{
		{"Deadlift (Barbell)", []demoSet{{135, 8}, {185, 5}, {205, 3}, {185, 5}}},
		{"Pull-ups", []demoSet{{0, 10}, {0, 8}, {0, 7}}},
		{"Bent Over Row", []demoSet{{95, 10}, {115, 8}, {115, 8}}},
		{"Bicep Curl (Barbell)", []demoSet{{40, 12}, {50, 10}, {50, 8}}},
	}},
	{"4", "Core & Cardio", "35min", 7, []demoExercise{
		{"Planks", []demoSet{{0, 60}, {0, 60}, {0, 45}}},
		{"Russian Twists", []demoSet{{25, 30}, {25, 30}, {25, 25}}},
		{"Leg Raises", []demoSet{{0, 15}, {0, 12}, {0, 10}}},
	}},
	{"5", "Full Body Strength", "1h 5min", 10, []demoExercise{
		{"Bench Press (Barbell)", []demoSet{{135, 10}, {155, 8}, {165, 6}, {175, 4}}},
		{"Deadlift (Barbell)", []demoSet{{185, 8}, {205, 6}, {225, 4}}},
		{"Squat (Barbell)", []demoSet{{135, 10}, {155, 8}, {165, 6}}},
		{"Overhead Press (Barbell)", []demoSet{{65, 10}, {75, 8}, {85, 6}}},
		{"Bent Over Row", []demoSet{{95, 10}, {115, 8}, {125, 6}}},
	}},
}

// Demo returns the five demo workouts dated 1, 3, 5, 7 and 10 days before now.
func Demo(now time.Time) []*models.Workout {
	out := make([]*models.Workout, 0, len(demoWorkouts))
	for _, d := range demoWorkouts {
		w := models.NewWorkout(d.name).
			WithID(d.id).
			WithDuration(d.duration).
			WithDate(now.AddDate(0, 0, -d.daysAgo))
		for _, de := range d.exercises {
			ex := w.AddExercise(de.name)
			for _, s := range de.sets {
				ex.AddSet(s.weight, s.reps)
			}
		}
		out = append(out, w)
	}
	return out
}

// Minimal returns a single synthetic workout, used when the seed dataset
// is empty.
func Minimal(now time.Time) *models.Workout {
	w := models.NewWorkout("Sample Workout").WithDuration("30min").WithDate(now)
	w.AddExercise("Squat (Barbell)").AddSet(95, 5).AddSet(115, 5).AddSet(135, 5)
	return w
}

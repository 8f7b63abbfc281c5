// ABOUTME: Built-in exercise library grouped by muscle category.
// ABOUTME: Names match the canonical lifts used by the strength score.
package exercises

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category name is not in Categories.
var ErrUnknownCategory = errors.New("unknown category")

// Definition is one library exercise.
type Definition struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Categories lists the library categories in display order.
var Categories = []string{
	"Chest",
	"Back",
	"Legs",
	"Shoulders",
	"Arms",
	"Core",
	"Full Body",
}

var library = []Definition{
	{"bench-press-barbell", "Bench Press (Barbell)", "Chest"},
	{"bench-press-dumbbell", "Bench Press (Dumbbell)", "Chest"},
	{"incline-bench-press", "Incline Bench Press", "Chest"},
	{"decline-bench-press", "Decline Bench Press", "Chest"},
	{"chest-fly", "Chest Fly", "Chest"},
	{"push-ups", "Push-ups", "Chest"},
	{"cable-crossover", "Cable Crossover", "Chest"},

	{"deadlift-barbell", "Deadlift (Barbell)", "Back"},
	{"bent-over-row", "Bent Over Row", "Back"},
	{"pull-ups", "Pull-ups", "Back"},
	{"lat-pulldown", "Lat Pulldown", "Back"},
	{"seated-cable-row", "Seated Cable Row", "Back"},
	{"t-bar-row", "T-Bar Row", "Back"},
	{"face-pulls", "Face Pulls", "Back"},

	{"squat-barbell", "Squat (Barbell)", "Legs"},
	{"leg-press", "Leg Press", "Legs"},
	{"leg-extension", "Leg Extension", "Legs"},
	{"leg-curl", "Leg Curl", "Legs"},
	{"lunges", "Lunges", "Legs"},
	{"romanian-deadlift", "Romanian Deadlift", "Legs"},
	{"calf-raises", "Calf Raises", "Legs"},
	{"bulgarian-split-squat", "Bulgarian Split Squat", "Legs"},

	{"overhead-press", "Overhead Press (Barbell)", "Shoulders"},
	{"shoulder-press-dumbbell", "Shoulder Press (Dumbbell)", "Shoulders"},
	{"lateral-raises", "Lateral Raises", "Shoulders"},
	{"front-raises", "Front Raises", "Shoulders"},
	{"rear-delt-fly", "Rear Delt Fly", "Shoulders"},
	{"arnold-press", "Arnold Press", "Shoulders"},
	{"shrugs", "Shrugs", "Shoulders"},

	{"bicep-curl-barbell", "Bicep Curl (Barbell)", "Arms"},
	{"bicep-curl-dumbbell", "Bicep Curl (Dumbbell)", "Arms"},
	{"hammer-curl", "Hammer Curl", "Arms"},
	{"preacher-curl", "Preacher Curl", "Arms"},
	{"tricep-dips", "Tricep Dips", "Arms"},
	{"tricep-pushdown", "Tricep Pushdown", "Arms"},
	{"overhead-tricep-extension", "Overhead Tricep Extension", "Arms"},
	{"skull-crushers", "Skull Crushers", "Arms"},

	{"planks", "Planks", "Core"},
	{"crunches", "Crunches", "Core"},
	{"russian-twists", "Russian Twists", "Core"},
	{"leg-raises", "Leg Raises", "Core"},
	{"ab-wheel-rollout", "Ab Wheel Rollout", "Core"},
	{"cable-crunch", "Cable Crunch", "Core"},

	{"burpees", "Burpees", "Full Body"},
	{"kettlebell-swings", "Kettlebell Swings", "Full Body"},
	{"clean-and-press", "Clean and Press", "Full Body"},
	{"thrusters", "Thrusters", "Full Body"},
}

// All returns every library exercise in category order. The slice is a copy.
func All() []Definition {
	return append([]Definition(nil), library...)
}

// ParseCategory returns the canonical spelling of a category name, ignoring
// case and surrounding space.
func ParseCategory(name string) (string, error) {
	for _, c := range Categories {
		if strings.EqualFold(c, strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q (choose from %s)", ErrUnknownCategory, name, strings.Join(Categories, ", "))
}

// ByCategory returns the exercises in one category. An empty category
// returns the whole library.
func ByCategory(category string) ([]Definition, error) {
	if strings.TrimSpace(category) == "" {
		return All(), nil
	}
	c, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}
	var out []Definition
	for _, d := range library {
		if d.Category == c {
			out = append(out, d)
		}
	}
	return out, nil
}

// Lookup finds a library exercise by name, ignoring case and surrounding space.
func Lookup(name string) (Definition, bool) {
	name = strings.TrimSpace(name)
	for _, d := range library {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Definition{}, false
}

// ABOUTME: Plain-text workout history summaries handed to a coaching assistant.
// ABOUTME: Brief one-line-per-workout form or full exercise and set detail.
package coach

import (
	"fmt"
	"strings"

	"github.com/harperreed/superlift/internal/models"
	"github.com/harperreed/superlift/internal/strength"
)

// NoHistory is returned when there are no workouts to summarize.
const NoHistory = "No previous workouts yet."

const (
	briefDateLayout    = "1/2/2006"
	detailedDateLayout = "Mon Jan 02 2006"
)

// Options controls what Summary includes.
type Options struct {
	// Limit keeps only the most recent workouts. Zero means all.
	Limit int
	// Detailed lists every exercise and set instead of one line per workout.
	Detailed bool
	// IncludeScore appends the current strength score and personal records.
	IncludeScore bool
}

// Summary renders workouts, which are expected newest first.
func Summary(workouts []*models.Workout, opts Options) string {
	if len(workouts) == 0 {
		return NoHistory
	}

	recent := workouts
	if opts.Limit > 0 && len(recent) > opts.Limit {
		recent = recent[:opts.Limit]
	}

	var sb strings.Builder
	if opts.Detailed {
		for i, w := range recent {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			writeDetailed(&sb, w)
		}
	} else {
		for i, w := range recent {
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "- %s on %s with %d exercises",
				w.Name, w.Date.Local().Format(briefDateLayout), len(w.Exercises))
		}
	}

	if opts.IncludeScore {
		fmt.Fprintf(&sb, "\n\nCurrent strength score: %d", strength.CurrentScore(workouts))
		for _, rec := range strength.PersonalRecords(workouts) {
			fmt.Fprintf(&sb, "\n- %s best: %g lbs x %d (est. 1RM %.1f lbs)",
				rec.Lift, rec.Weight, rec.Reps, rec.OneRepMax)
		}
	}

	return sb.String()
}

func writeDetailed(sb *strings.Builder, w *models.Workout) {
	fmt.Fprintf(sb, "Workout: %s (%s, %s)\n  Exercises:", w.Name, w.Duration, w.Date.Local().Format(detailedDateLayout))
	for _, ex := range w.Exercises {
		sets := make([]string, 0, len(ex.Sets))
		for _, s := range ex.Sets {
			sets = append(sets, fmt.Sprintf("%d: %g lbs x %d", s.SetOrder, s.Weight, s.Reps))
		}
		fmt.Fprintf(sb, "\n  %s → %s", ex.Name, strings.Join(sets, ", "))
	}
}

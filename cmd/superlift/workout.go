// ABOUTME: CLI commands for managing workouts.
// ABOUTME: Supports add, list, show, delete and import subcommands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/superlift/internal/exercises"
	"github.com/harperreed/superlift/internal/models"
)

var (
	workoutDuration string
	workoutDate     string
	workoutSets     []string
	workoutLimit    int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workouts",
	Long: `Log strength workouts made of exercises and sets.

WORKFLOW:

  1. Log a workout:        superlift workout add "Leg Day" --set "Squat (Barbell)=135x5"
  2. See recent workouts:  superlift workout list
  3. View its sets:        superlift workout show abc123

COMMANDS:

  add      Log a new workout
  list     List recent workouts
  show     View a workout with all its sets
  delete   Delete a workout with its exercises and sets
  import   Import workouts from a JSON or YAML export

Exercise names are freeform; 'superlift exercises' lists the built-in
library. Only names containing "Squat (Barbell)", "Bench Press (Barbell)" or
"Deadlift (Barbell)" (any case) count toward the strength score, so
"Romanian Deadlift" and "Incline Bench Press" do not.`,
}

var workoutAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Log a new workout",
	Long: `Log a new workout.

Each --set is EXERCISE=WEIGHTxREPS and sets are kept in the order given.
Repeat the same exercise name to add more sets to it.

Examples:
  superlift workout add "Leg Day" --duration 45min \
    --set "Squat (Barbell)=135x5" --set "Squat (Barbell)=155x5"
  superlift workout add Push --date 2025-03-09 --set "Bench Press (Barbell)=135x8"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}

		w := models.NewWorkout(name).WithDuration(workoutDuration)
		if workoutDate != "" {
			t, err := parseTime(workoutDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s", workoutDate)
			}
			w.WithDate(t)
		}

		for _, spec := range workoutSets {
			exercise, weight, reps, err := parseSetSpec(spec)
			if err != nil {
				return err
			}
			ex := w.Exercise(exercise)
			if ex == nil {
				ex = w.AddExercise(exercise)
			}
			ex.AddSet(weight, reps)
		}

		stored, err := repo.SaveWorkout(cmd.Context(), w)
		if err != nil {
			return fmt.Errorf("failed to save workout: %w", err)
		}

		color.Green("✓ Logged %s", stored.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s\n", shortID(stored.ID))
		fmt.Fprintf(cmd.OutOrStdout(), "  %d exercises, %d sets\n", len(stored.Exercises), stored.SetCount())

		faint := color.New(color.Faint)
		for _, ex := range stored.Exercises {
			if _, ok := exercises.Lookup(ex.Name); !ok {
				fmt.Fprintln(cmd.OutOrStdout(), faint.Sprintf("  note: %q is not in the exercise library (see 'superlift exercises')", ex.Name))
			}
		}
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := repo.GetAllWorkouts(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		if len(workouts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No workouts found.")
			return nil
		}
		if workoutLimit > 0 && len(workouts) > workoutLimit {
			workouts = workouts[:workoutLimit]
		}

		faint := color.New(color.Faint)
		for _, w := range workouts {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				faint.Sprint(padRight(shortID(w.ID), 8)),
				faint.Sprint(w.Date.Local().Format("2006-01-02 15:04")),
				padRight(truncate(w.Name, 24), 24),
				fmt.Sprintf("%d exercises", len(w.Exercises)))
		}

		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show workout details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := repo.GetWorkout(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Workout: %s\n", w.Name)
		fmt.Fprintf(out, "ID: %s\n", w.ID)
		fmt.Fprintf(out, "Date: %s\n", w.Date.Local().Format("2006-01-02 15:04"))
		if w.Duration != "" {
			fmt.Fprintf(out, "Duration: %s\n", w.Duration)
		}

		if len(w.Exercises) > 0 {
			fmt.Fprintln(out, "\nExercises:")
			for _, ex := range w.Exercises {
				fmt.Fprintf(out, "  %s\n", ex.Name)
				for _, s := range ex.Sets {
					fmt.Fprintf(out, "    %d. %g lbs x %d\n", s.SetOrder, s.Weight, s.Reps)
				}
			}
		}

		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a workout",
	Long: `Delete a workout with its exercises and sets by ID or ID prefix.

Deleting an ID that does not exist is not an error.

EXAMPLES:

  superlift workout delete abc12345
  superlift workout rm abc1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		label := id
		if w, err := repo.GetWorkout(cmd.Context(), id); err == nil {
			id = w.ID
			label = w.Name
		}

		if _, err := repo.DeleteWorkout(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		color.Yellow("✗ Deleted %s", label)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", color.New(color.Faint).Sprint(shortID(id)))
		return nil
	},
}

var workoutImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import workouts from a JSON or YAML export",
	Long: `Import workouts from a file written by 'superlift export json' or
'superlift export yaml'. Files ending in .yaml or .yml are read as YAML.

Workouts with an ID that already exists replace the stored copy.

EXAMPLES:

  superlift workout import backup.json
  superlift workout import backup.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var n int
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".yaml", ".yml":
			n, err = repo.ImportYAML(cmd.Context(), data)
		default:
			n, err = repo.ImportJSON(cmd.Context(), data)
		}
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported %d workouts from %s", n, filename)
		return nil
	},
}

func init() {
	workoutAddCmd.Flags().StringVarP(&workoutDuration, "duration", "d", "", "duration, e.g. 45min")
	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "workout date (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	workoutAddCmd.Flags().StringArrayVarP(&workoutSets, "set", "s", nil, "set as EXERCISE=WEIGHTxREPS (repeatable)")

	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")

	workoutCmd.AddCommand(workoutAddCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	workoutCmd.AddCommand(workoutImportCmd)
	rootCmd.AddCommand(workoutCmd)
}

// parseSetSpec parses EXERCISE=WEIGHTxREPS. The exercise name may itself
// contain '=' so the last one separates it from the numbers.
func parseSetSpec(spec string) (string, float64, int, error) {
	i := strings.LastIndex(spec, "=")
	if i <= 0 {
		return "", 0, 0, fmt.Errorf("invalid set %q: use EXERCISE=WEIGHTxREPS", spec)
	}
	name := strings.TrimSpace(spec[:i])
	if name == "" {
		return "", 0, 0, fmt.Errorf("invalid set %q: missing exercise name", spec)
	}

	parts := strings.Split(strings.ToLower(strings.TrimSpace(spec[i+1:])), "x")
	if len(parts) != 2 {
		return "", 0, 0, fmt.Errorf("invalid set %q: use EXERCISE=WEIGHTxREPS", spec)
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || weight < 0 {
		return "", 0, 0, fmt.Errorf("invalid weight in set %q", spec)
	}
	reps, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || reps < 0 {
		return "", 0, 0, fmt.Errorf("invalid reps in set %q", spec)
	}
	return name, weight, reps, nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

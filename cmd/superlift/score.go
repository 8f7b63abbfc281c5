// ABOUTME: CLI commands for the strength score.
// ABOUTME: Shows the current score with PRs, a progress chart and the coach summary.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/superlift/internal/coach"
	"github.com/harperreed/superlift/internal/strength"
)

const chartWidth = 40

var (
	historyLimit    int
	historyDetailed bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the current strength score",
	Long: `Show the current strength score and the set behind each personal record.

The score is the sum of the best estimated one-rep maxes (Brzycki formula)
for Squat (Barbell), Bench Press (Barbell) and Deadlift (Barbell) across all
logged workouts. An exercise counts when its name contains one of those names,
ignoring case. Sets of 37 reps or more do not count.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := repo.GetAllWorkouts(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		bold.Fprintf(out, "Strength score: %d\n", strength.CurrentScore(workouts))

		records := strength.PersonalRecords(workouts)
		if len(records) == 0 {
			fmt.Fprintln(out, "No Squat, Bench Press or Deadlift (Barbell) sets logged yet.")
			return nil
		}

		faint := color.New(color.Faint)
		fmt.Fprintln(out)
		for _, r := range records {
			fmt.Fprintf(out, "  %s %6.1f lbs  %s\n",
				padRight(r.Lift, 12),
				r.OneRepMax,
				faint.Sprintf("(%g x %d on %s)", r.Weight, r.Reps, r.Date.Local().Format("2006-01-02")))
		}
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Chart the strength score over time",
	Long: `Print the strength score after each workout, oldest first.

The score never goes down: each point uses the best estimate seen so far for
every lift. The session column is what that workout alone produced.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := repo.GetAllWorkouts(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		points := strength.Series(workouts)
		if len(points) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No workouts found.")
			return nil
		}

		maxScore := points[len(points)-1].Score
		faint := color.New(color.Faint)
		green := color.New(color.FgGreen)
		for _, p := range points {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %5d %s %s\n",
				padRight(p.Label, 7),
				p.Score,
				green.Sprint(bar(p.Score, maxScore)),
				faint.Sprintf("session %d", p.Session))
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Summarize recent workouts for coaching",
	Long: `Print a plain-text summary of recent workouts with the current score
and personal records. This is the context handed to an AI coach.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := repo.GetAllWorkouts(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), coach.Summary(workouts, coach.Options{
			Limit:        historyLimit,
			Detailed:     historyDetailed,
			IncludeScore: true,
		}))
		return nil
	},
}

// bar renders score as a proportion of top, padded to chartWidth cells.
func bar(score, top int) string {
	n := 0
	if top > 0 && score > 0 {
		n = score * chartWidth / top
		if n == 0 {
			n = 1
		}
	}
	return strings.Repeat("█", n) + strings.Repeat(" ", chartWidth-n)
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 5, "number of recent workouts")
	historyCmd.Flags().BoolVar(&historyDetailed, "detailed", false, "include every exercise and set")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(historyCmd)
}

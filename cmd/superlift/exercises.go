// ABOUTME: CLI command listing the built-in exercise library.
// ABOUTME: Groups exercises by category and marks the lifts that are scored.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/superlift/internal/exercises"
	"github.com/harperreed/superlift/internal/strength"
)

var exercisesCategory string

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List the built-in exercise library",
	Long: `List the built-in exercises by category. Use these names with
'superlift workout add --set' so the score and history line up.

Exercises marked "strength score" are the canonical lifts.

EXAMPLES:

  superlift exercises
  superlift exercises --category legs`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := exercises.ByCategory(exercisesCategory)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		category := ""
		for _, d := range defs {
			if d.Category != category {
				if category != "" {
					fmt.Fprintln(out)
				}
				category = d.Category
				bold.Fprintln(out, category)
			}
			fmt.Fprintf(out, "  %s", d.Name)
			if isScored(d.Name) {
				fmt.Fprintf(out, "  %s", faint.Sprint("strength score"))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func isScored(name string) bool {
	for _, lift := range strength.Lifts {
		if lift.Matches(name) {
			return true
		}
	}
	return false
}

func init() {
	exercisesCmd.Flags().StringVarP(&exercisesCategory, "category", "c", "", "only list one category, e.g. legs")
	rootCmd.AddCommand(exercisesCmd)
}

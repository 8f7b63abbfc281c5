// ABOUTME: MCP tool implementations for the superlift workout log.
// ABOUTME: Workout CRUD, strength score and series, coaching summary and the exercise library.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/superlift/internal/coach"
	"github.com/harperreed/superlift/internal/exercises"
	"github.com/harperreed/superlift/internal/models"
	"github.com/harperreed/superlift/internal/strength"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List logged workouts with exercises and sets, most recent first",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get one workout by ID or ID prefix",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_workout",
		Description: "Log a workout with its exercises and sets",
	}, s.handleAddWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout with its exercises and sets",
	}, s.handleDeleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_strength_score",
		Description: "Current strength score (sum of best estimated one-rep maxes for Squat (Barbell), Bench Press (Barbell) and Deadlift (Barbell)) with personal records",
	}, s.handleGetStrengthScore)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_strength_series",
		Description: "Strength score after each workout in date order, for charting progress",
	}, s.handleGetStrengthSeries)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_coach_context",
		Description: "Plain-text summary of recent workouts for coaching advice",
	}, s.handleGetCoachContext)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "Built-in exercise library by category. Use these names when logging so lifts count toward the strength score",
	}, s.handleListExercises)
}

// Tool input/output types

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type listWorkoutsOutput struct {
	Count    int           `json:"count"`
	Workouts []workoutView `json:"workouts"`
	Message  string        `json:"message,omitempty"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"Workout ID or ID prefix"`
}

type setInput struct {
	Weight float64 `json:"weight,omitempty" jsonschema:"Weight in lbs"`
	Reps   int     `json:"reps,omitempty" jsonschema:"Repetitions performed"`
}

type exerciseInput struct {
	Name string     `json:"name" jsonschema:"Exercise name, e.g. Squat (Barbell)"`
	Sets []setInput `json:"sets,omitempty" jsonschema:"Sets in the order performed"`
}

type addWorkoutInput struct {
	Name      string          `json:"name,omitempty" jsonschema:"Workout name (default Untitled Workout)"`
	Duration  string          `json:"duration,omitempty" jsonschema:"Free-form duration, e.g. 45min"`
	Date      string          `json:"date,omitempty" jsonschema:"When the workout happened (RFC 3339 or YYYY-MM-DD), defaults to now"`
	Exercises []exerciseInput `json:"exercises,omitempty" jsonschema:"Exercises performed"`
}

type workoutOutput struct {
	Workout workoutView `json:"workout"`
	Message string      `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type emptyInput struct{}

type scoreOutput struct {
	Score   int          `json:"score"`
	Records []recordView `json:"records"`
}

type seriesOutput struct {
	Points []pointView `json:"points"`
}

type coachInput struct {
	Limit    int  `json:"limit,omitempty" jsonschema:"Number of recent workouts to include (default 5)"`
	Detailed bool `json:"detailed,omitempty" jsonschema:"Include every exercise and set"`
}

type coachOutput struct {
	Summary string `json:"summary"`
}

type listExercisesInput struct {
	Category string `json:"category,omitempty" jsonschema:"Only list one category: Chest, Back, Legs, Shoulders, Arms, Core or Full Body"`
}

type exerciseDefinitionView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Scored   bool   `json:"scored"`
}

type listExercisesOutput struct {
	Count      int                      `json:"count"`
	Categories []string                 `json:"categories"`
	Exercises  []exerciseDefinitionView `json:"exercises"`
}

// Tool handlers

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, listWorkoutsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	workouts, err := s.repo.GetAllWorkouts(ctx)
	if err != nil {
		return nil, listWorkoutsOutput{}, fmt.Errorf("failed to list workouts: %w", err)
	}
	if len(workouts) > input.Limit {
		workouts = workouts[:input.Limit]
	}

	out := listWorkoutsOutput{Count: len(workouts), Workouts: newWorkoutViews(workouts)}
	if len(workouts) == 0 {
		out.Message = "No workouts found."
	}
	return nil, out, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, workoutView, error) {
	w, err := s.repo.GetWorkout(ctx, input.ID)
	if err != nil {
		return nil, workoutView{}, fmt.Errorf("failed to get workout: %w", err)
	}
	return nil, newWorkoutView(w), nil
}

func (s *Server) handleAddWorkout(ctx context.Context, req *mcp.CallToolRequest, input addWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	w := models.NewWorkout(input.Name).WithDuration(input.Duration)

	if input.Date != "" {
		t, err := parseDate(input.Date)
		if err != nil {
			return nil, workoutOutput{}, err
		}
		w.WithDate(t)
	}

	for _, ei := range input.Exercises {
		if strings.TrimSpace(ei.Name) == "" {
			return nil, workoutOutput{}, fmt.Errorf("exercise name is required")
		}
		ex := w.AddExercise(ei.Name)
		for _, si := range ei.Sets {
			ex.AddSet(si.Weight, si.Reps)
		}
	}

	stored, err := s.repo.SaveWorkout(ctx, w)
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to save workout: %w", err)
	}

	msg := fmt.Sprintf("Logged %s with %d exercises (ID: %s)", stored.Name, len(stored.Exercises), shortID(stored.ID))
	var unknown []string
	for _, ex := range stored.Exercises {
		if _, ok := exercises.Lookup(ex.Name); !ok {
			unknown = append(unknown, ex.Name)
		}
	}
	if len(unknown) > 0 {
		msg += fmt.Sprintf(". Not in the exercise library: %s", strings.Join(unknown, ", "))
	}

	return nil, workoutOutput{
		Workout: newWorkoutView(stored),
		Message: msg,
	}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	id := input.ID
	if w, err := s.repo.GetWorkout(ctx, input.ID); err == nil {
		id = w.ID
	}

	if _, err := s.repo.DeleteWorkout(ctx, id); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout: %s", id),
	}, nil
}

func (s *Server) handleGetStrengthScore(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, scoreOutput, error) {
	workouts, err := s.repo.GetAllWorkouts(ctx)
	if err != nil {
		return nil, scoreOutput{}, fmt.Errorf("failed to list workouts: %w", err)
	}
	return nil, scoreOutput{
		Score:   strength.CurrentScore(workouts),
		Records: newRecordViews(strength.PersonalRecords(workouts)),
	}, nil
}

func (s *Server) handleGetStrengthSeries(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, seriesOutput, error) {
	workouts, err := s.repo.GetAllWorkouts(ctx)
	if err != nil {
		return nil, seriesOutput{}, fmt.Errorf("failed to list workouts: %w", err)
	}
	return nil, seriesOutput{Points: newPointViews(strength.Series(workouts))}, nil
}

func (s *Server) handleGetCoachContext(ctx context.Context, req *mcp.CallToolRequest, input coachInput) (*mcp.CallToolResult, coachOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 5
	}

	workouts, err := s.repo.GetAllWorkouts(ctx)
	if err != nil {
		return nil, coachOutput{}, fmt.Errorf("failed to list workouts: %w", err)
	}
	return nil, coachOutput{
		Summary: coach.Summary(workouts, coach.Options{
			Limit:        input.Limit,
			Detailed:     input.Detailed,
			IncludeScore: true,
		}),
	}, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, listExercisesOutput, error) {
	defs, err := exercises.ByCategory(input.Category)
	if err != nil {
		return nil, listExercisesOutput{}, err
	}

	views := make([]exerciseDefinitionView, 0, len(defs))
	for _, d := range defs {
		scored := false
		for _, lift := range strength.Lifts {
			if lift.Matches(d.Name) {
				scored = true
				break
			}
		}
		views = append(views, exerciseDefinitionView{ID: d.ID, Name: d.Name, Category: d.Category, Scored: scored})
	}
	return nil, listExercisesOutput{
		Count:      len(views),
		Categories: exercises.Categories,
		Exercises:  views,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use RFC 3339 or YYYY-MM-DD", s)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

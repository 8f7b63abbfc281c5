// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Commands run against a SQLite store in a temp XDG data dir.
package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/superlift/internal/config"
	"github.com/harperreed/superlift/internal/logging"
	"github.com/harperreed/superlift/internal/seed"
	"github.com/harperreed/superlift/internal/storage"
)

func TestParseSetSpec(t *testing.T) {
	tests := []struct {
		spec       string
		wantName   string
		wantWeight float64
		wantReps   int
		wantErr    bool
	}{
		{spec: "Squat (Barbell)=135x5", wantName: "Squat (Barbell)", wantWeight: 135, wantReps: 5},
		{spec: "Bench Press = 102.5 X 8", wantName: "Bench Press", wantWeight: 102.5, wantReps: 8},
		{spec: "Pull-ups=0x10", wantName: "Pull-ups", wantWeight: 0, wantReps: 10},
		{spec: "a=b=45x3", wantName: "a=b", wantWeight: 45, wantReps: 3},
		{spec: "Squat 135x5", wantErr: true},
		{spec: "=135x5", wantErr: true},
		{spec: "Squat=135", wantErr: true},
		{spec: "Squat=heavyx5", wantErr: true},
		{spec: "Squat=135x-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			name, weight, reps, err := parseSetSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseSetSpec(%q) expected error", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSetSpec(%q) unexpected error: %v", tt.spec, err)
			}
			if name != tt.wantName || weight != tt.wantWeight || reps != tt.wantReps {
				t.Errorf("parseSetSpec(%q) = %q %g %d, want %q %g %d",
					tt.spec, name, weight, reps, tt.wantName, tt.wantWeight, tt.wantReps)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	valid := []string{"2025-01-31 08:30", "2025-01-31T08:30", "2025-01-31", "2025-01-31T08:30:00Z"}
	for _, s := range valid {
		if _, err := parseTime(s); err != nil {
			t.Errorf("parseTime(%q) unexpected error: %v", s, err)
		}
	}

	invalid := []string{"31-01-2025", "not a date", ""}
	for _, s := range invalid {
		if _, err := parseTime(s); err == nil {
			t.Errorf("parseTime(%q) expected error", s)
		}
	}

	got, _ := parseTime("2025-03-09")
	want := time.Date(2025, 3, 9, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("parseTime date-only = %v, want local midnight %v", got, want)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Full Body Strength Session", 10); got != "Full Bo..." {
		t.Errorf("truncate = %q, want %q", got, "Full Bo...")
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Errorf("padRight should not cut: %q", got)
	}
}

func TestBar(t *testing.T) {
	if got := bar(0, 100); strings.Contains(got, "█") || len([]rune(got)) != chartWidth {
		t.Errorf("zero score should be blank padding: %q", got)
	}
	if got := bar(100, 100); strings.Count(got, "█") != chartWidth {
		t.Errorf("max score should fill the bar: %q", got)
	}
	if got := bar(50, 100); strings.Count(got, "█") != chartWidth/2 || len([]rune(got)) != chartWidth {
		t.Errorf("half score should fill half: %q", got)
	}
	if got := bar(1, 1000); strings.Count(got, "█") != 1 {
		t.Errorf("tiny positive score should show one cell: %q", got)
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "superlift" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "superlift")
	}
	for _, name := range []string{"backend", "data-dir", "log-level", "no-seed"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}

	cmdNames := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdNames[cmd.Name()] = true
	}
	for _, name := range []string{"init", "workout", "score", "chart", "history", "export", "migrate", "mcp"} {
		if !cmdNames[name] {
			t.Errorf("Expected %q command to be registered", name)
		}
	}
}

func TestWorkoutCmdSubcommands(t *testing.T) {
	cmdNames := make(map[string]bool)
	for _, cmd := range workoutCmd.Commands() {
		cmdNames[cmd.Name()] = true
	}
	for _, name := range []string{"add", "list", "show", "delete", "import"} {
		if !cmdNames[name] {
			t.Errorf("Expected workout subcommand %q", name)
		}
	}
}

func TestWorkoutListCmdFlags(t *testing.T) {
	limitFlag := workoutListCmd.Flags().Lookup("limit")
	if limitFlag == nil {
		t.Fatal("Expected --limit flag on workout list command")
	}
	if limitFlag.DefValue != "20" {
		t.Errorf("Expected default limit 20, got %s", limitFlag.DefValue)
	}
}

// setupTestCLI points config and data at temp dirs and selects an unseeded
// SQLite store.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SUPERLIFT_BACKEND", "sqlite")
	t.Setenv("SUPERLIFT_NO_SEED", "true")
	t.Setenv("SUPERLIFT_LOG_LEVEL", "error")

	return filepath.Join(dataHome, "superlift")
}

// resetFlags restores flag globals, which cobra keeps between runs.
func resetFlags() {
	flagBackend, flagDataDir, flagLogLevel, flagNoSeed = "", "", "", false
	workoutDuration, workoutDate, workoutSets, workoutLimit = "", "", nil, 20
	exportOutput, exportSince = "", ""
	migrateFrom, migrateTo, migrateDryRun = "", "", false
	historyLimit, historyDetailed = 5, false
	exercisesCategory = ""
}

// runCLI executes args and returns what the command wrote to its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetOut(nil)

	err := rootCmd.Execute()
	_ = closeRepo()
	return buf.String(), err
}

// openTestRepo opens the store the CLI is configured to use.
func openTestRepo(t *testing.T) *storage.Repository {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	r, err := cfg.OpenRepository(context.Background(), logging.Discard())
	if err != nil {
		t.Fatalf("OpenRepository failed: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestInitCmdSeedsAndSavesConfig(t *testing.T) {
	dataDir := setupTestCLI(t)
	os.Unsetenv("SUPERLIFT_NO_SEED")

	out, err := runCLI(t, "init")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "sqlite") || !strings.Contains(out, "Workouts: 5") {
		t.Errorf("unexpected init output: %s", out)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "superlift.db")); err != nil {
		t.Errorf("Expected superlift.db to be created: %v", err)
	}
	if _, err := os.Stat(config.GetConfigPath()); err != nil {
		t.Errorf("Expected config file to be saved: %v", err)
	}

	// A second init keeps the existing rows.
	out, err = runCLI(t, "init")
	if err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if !strings.Contains(out, "Workouts: 5") {
		t.Errorf("second init should not reseed: %s", out)
	}
}

func TestWorkoutAddCmd(t *testing.T) {
	setupTestCLI(t)

	_, err := runCLI(t, "workout", "add", "Leg Day",
		"--duration", "45min",
		"--date", "2025-03-09",
		"--set", "Squat (Barbell)=135x5",
		"--set", "Leg Press=180x12",
		"--set", "Squat (Barbell)=155x5",
	)
	if err != nil {
		t.Fatalf("workout add failed: %v", err)
	}

	workouts, err := openTestRepo(t).GetAllWorkouts(context.Background())
	if err != nil {
		t.Fatalf("GetAllWorkouts failed: %v", err)
	}
	if len(workouts) != 1 {
		t.Fatalf("Expected 1 workout, got %d", len(workouts))
	}
	w := workouts[0]
	if w.Name != "Leg Day" || w.Duration != "45min" {
		t.Errorf("unexpected workout header: %+v", w)
	}
	if len(w.Exercises) != 2 {
		t.Fatalf("Expected 2 exercises, got %d", len(w.Exercises))
	}
	squat := w.Exercises[0]
	if squat.Name != "Squat (Barbell)" || len(squat.Sets) != 2 {
		t.Fatalf("squat sets should be grouped: %+v", squat)
	}
	if squat.Sets[1].SetOrder != 2 || squat.Sets[1].Weight != 155 {
		t.Errorf("second squat set = %+v", squat.Sets[1])
	}
}

func TestWorkoutAddNotesUnknownExercises(t *testing.T) {
	setupTestCLI(t)

	out, err := runCLI(t, "workout", "add", "Mixed",
		"--set", "Squat (Barbell)=135x5",
		"--set", "Zercher Squat=95x8",
	)
	if err != nil {
		t.Fatalf("workout add failed: %v", err)
	}
	if !strings.Contains(out, `"Zercher Squat" is not in the exercise library`) {
		t.Errorf("expected a note for the unknown exercise, got:\n%s", out)
	}
	if strings.Contains(out, `"Squat (Barbell)" is not`) {
		t.Errorf("library exercise should not get a note:\n%s", out)
	}

	workouts, _ := openTestRepo(t).GetAllWorkouts(context.Background())
	if len(workouts) != 1 || len(workouts[0].Exercises) != 2 {
		t.Errorf("unknown exercises should still be saved, got %+v", workouts)
	}
}

func TestExercisesCmd(t *testing.T) {
	setupTestCLI(t)

	out, err := runCLI(t, "exercises")
	if err != nil {
		t.Fatalf("exercises failed: %v", err)
	}
	for _, want := range []string{"Chest", "Full Body", "Romanian Deadlift", "Thrusters"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "strength score"); n != 3 {
		t.Errorf("%d exercises marked as scored, want 3:\n%s", n, out)
	}
	if _, err := os.Stat(filepath.Join(os.Getenv("XDG_DATA_HOME"), "superlift", "superlift.db")); err == nil {
		t.Error("listing exercises should not open the record store")
	}
}

func TestExercisesCmdCategory(t *testing.T) {
	setupTestCLI(t)

	out, err := runCLI(t, "exercises", "--category", "legs")
	if err != nil {
		t.Fatalf("exercises --category failed: %v", err)
	}
	if !strings.Contains(out, "Bulgarian Split Squat") || strings.Contains(out, "Bench Press") {
		t.Errorf("expected only leg exercises, got:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "strength score") && !strings.Contains(line, "Squat (Barbell)") {
			t.Errorf("unexpected scored exercise: %q", line)
		}
	}

	if _, err := runCLI(t, "exercises", "--category", "cardio"); err == nil {
		t.Error("Expected error for unknown category")
	}
}

func TestWorkoutAddCmdDefaults(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "workout", "add"); err != nil {
		t.Fatalf("workout add failed: %v", err)
	}

	workouts, _ := openTestRepo(t).GetAllWorkouts(context.Background())
	if len(workouts) != 1 || workouts[0].Name != "Untitled Workout" {
		t.Errorf("Expected one Untitled Workout, got %+v", workouts)
	}
}

func TestWorkoutAddCmdInvalidSet(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "workout", "add", "Bad", "--set", "Squat 135x5"); err == nil {
		t.Error("Expected error for malformed --set")
	}
	if _, err := runCLI(t, "workout", "add", "Bad", "--date", "yesterday"); err == nil {
		t.Error("Expected error for malformed --date")
	}
}

func TestWorkoutListCmd(t *testing.T) {
	setupTestCLI(t)

	out, err := runCLI(t, "workout", "list")
	if err != nil {
		t.Fatalf("workout list failed: %v", err)
	}
	if !strings.Contains(out, "No workouts found.") {
		t.Errorf("empty list output = %q", out)
	}

	if _, err := runCLI(t, "workout", "add", "Pull Day", "--set", "Deadlift (Barbell)=225x4"); err != nil {
		t.Fatal(err)
	}
	out, err = runCLI(t, "workout", "list")
	if err != nil {
		t.Fatalf("workout list failed: %v", err)
	}
	if !strings.Contains(out, "Pull Day") || !strings.Contains(out, "1 exercises") {
		t.Errorf("list output = %q", out)
	}
}

func TestWorkoutShowCmd(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "workout", "add", "Push", "--set", "Bench Press (Barbell)=135x8"); err != nil {
		t.Fatal(err)
	}
	workouts, _ := openTestRepo(t).GetAllWorkouts(context.Background())

	out, err := runCLI(t, "workout", "show", workouts[0].ID[:8])
	if err != nil {
		t.Fatalf("workout show failed: %v", err)
	}
	if !strings.Contains(out, "Bench Press (Barbell)") || !strings.Contains(out, "1. 135 lbs x 8") {
		t.Errorf("show output = %q", out)
	}

	if _, err := runCLI(t, "workout", "show", "nonexistent"); err == nil {
		t.Error("Expected error for unknown workout")
	}
}

func TestWorkoutDeleteCmd(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "workout", "add", "Push", "--set", "Bench Press (Barbell)=135x8"); err != nil {
		t.Fatal(err)
	}
	r := openTestRepo(t)
	workouts, _ := r.GetAllWorkouts(context.Background())

	if _, err := runCLI(t, "workout", "delete", workouts[0].ID[:8]); err != nil {
		t.Fatalf("workout delete failed: %v", err)
	}
	if n, _ := r.CountWorkouts(context.Background()); n != 0 {
		t.Errorf("Expected 0 workouts after delete, got %d", n)
	}

	// Unknown IDs are not an error.
	if _, err := runCLI(t, "workout", "rm", "nonexistent"); err != nil {
		t.Errorf("delete of unknown workout should succeed: %v", err)
	}
}

func TestWorkoutImportCmd(t *testing.T) {
	setupTestCLI(t)

	src := storage.NewRepository(storage.NewMemoryStore(), seed.NewDemo(logging.Discard()), logging.Discard())
	if err := src.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	data, err := src.ExportYAML(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "backup.yaml")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "workout", "import", path); err != nil {
		t.Fatalf("workout import failed: %v", err)
	}
	if n, _ := openTestRepo(t).CountWorkouts(context.Background()); n != 5 {
		t.Errorf("Expected 5 imported workouts, got %d", n)
	}

	if _, err := runCLI(t, "workout", "import", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestScoreCmd(t *testing.T) {
	setupTestCLI(t)

	out, err := runCLI(t, "score")
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if !strings.Contains(out, "Strength score: 0") {
		t.Errorf("empty score output = %q", out)
	}

	if _, err := runCLI(t, "workout", "add", "A", "--date", "2025-03-08", "--set", "Squat (Barbell)=135x1"); err != nil {
		t.Fatal(err)
	}
	out, err = runCLI(t, "score")
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if !strings.Contains(out, "Strength score: 135") || !strings.Contains(out, "Squat (Barbell)") {
		t.Errorf("score output = %q", out)
	}
}

func TestChartCmd(t *testing.T) {
	setupTestCLI(t)

	out, err := runCLI(t, "chart")
	if err != nil {
		t.Fatalf("chart failed: %v", err)
	}
	if !strings.Contains(out, "No workouts found.") {
		t.Errorf("empty chart output = %q", out)
	}

	if _, err := runCLI(t, "workout", "add", "A", "--date", "2025-03-08", "--set", "Squat (Barbell)=100x1"); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "workout", "add", "B", "--date", "2025-03-09", "--set", "Deadlift (Barbell)=100x1"); err != nil {
		t.Fatal(err)
	}
	out, err = runCLI(t, "chart")
	if err != nil {
		t.Fatalf("chart failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 chart lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Mar 8") || !strings.Contains(lines[0], "100") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Mar 9") || !strings.Contains(lines[1], "200") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestHistoryCmd(t *testing.T) {
	setupTestCLI(t)

	out, err := runCLI(t, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "No previous workouts yet.") {
		t.Errorf("empty history output = %q", out)
	}

	if _, err := runCLI(t, "workout", "add", "Leg Day", "--set", "Squat (Barbell)=135x5"); err != nil {
		t.Fatal(err)
	}
	out, err = runCLI(t, "history", "--detailed")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "Workout: Leg Day") || !strings.Contains(out, "Current strength score:") {
		t.Errorf("history output = %q", out)
	}
}

func TestExportCmd(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "workout", "add", "Leg Day", "--date", "2025-03-09", "--set", "Squat (Barbell)=135x5"); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "export", "json")
	if err != nil {
		t.Fatalf("export json failed: %v", err)
	}
	if !strings.Contains(out, `"version": "1.0"`) || !strings.Contains(out, "Leg Day") {
		t.Errorf("json export = %q", out)
	}

	out, err = runCLI(t, "export", "markdown", "--since", "2025-01-01")
	if err != nil {
		t.Fatalf("export markdown failed: %v", err)
	}
	if !strings.Contains(out, "| Squat (Barbell) | 1 | 135 lbs | 5 |") {
		t.Errorf("markdown export = %q", out)
	}

	path := filepath.Join(t.TempDir(), "backup.yaml")
	if _, err := runCLI(t, "export", "yaml", "-o", path); err != nil {
		t.Fatalf("export yaml failed: %v", err)
	}
	if data, err := os.ReadFile(path); err != nil || !strings.Contains(string(data), "Leg Day") {
		t.Errorf("yaml export file = %q, %v", data, err)
	}
}

func TestExportInvalidFormat(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "export", "csv"); err == nil {
		t.Error("Expected error for unknown export format")
	}
	if _, err := runCLI(t, "export", "markdown", "--since", "March"); err == nil {
		t.Error("Expected error for malformed --since")
	}
}

func TestMigrateCmd(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "workout", "add", "Leg Day", "--set", "Squat (Barbell)=135x5", "--set", "Squat (Barbell)=155x5"); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "migrate", "--from", "sqlite", "--to", "kv", "--dry-run")
	if err != nil {
		t.Fatalf("migrate dry run failed: %v", err)
	}
	if !strings.Contains(out, "Would copy 1 workouts, 1 exercises, 2 sets") {
		t.Errorf("dry run output = %q", out)
	}

	out, err = runCLI(t, "migrate", "--from", "sqlite", "--to", "kv")
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out, "Sets:      2") {
		t.Errorf("migrate output = %q", out)
	}

	t.Setenv("SUPERLIFT_BACKEND", "kv")
	r := openTestRepo(t)
	if r.Backend().Kind() != storage.KindKV {
		t.Fatalf("Kind = %s, want kv", r.Backend().Kind())
	}
	workouts, _ := r.GetAllWorkouts(context.Background())
	if len(workouts) != 1 || workouts[0].SetCount() != 2 {
		t.Errorf("kv store holds %+v", workouts)
	}
}

func TestMigrateCmdInvalid(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "migrate", "--from", "sqlite", "--to", "sqlite"); err == nil {
		t.Error("Expected error when source equals destination")
	}
	if _, err := runCLI(t, "migrate", "--from", "auto", "--to", "kv"); err == nil {
		t.Error("Expected error for auto source")
	}
	if _, err := runCLI(t, "migrate", "--from", "postgres", "--to", "kv"); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

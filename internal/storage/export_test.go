// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON, YAML and Markdown output and import round trips.
package storage

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestExportJSON(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, setupTestDB(t))
	if err := repo.InsertWorkout(ctx, sampleWorkout("j1", time.Now())); err != nil {
		t.Fatalf("InsertWorkout failed: %v", err)
	}

	data, err := repo.ExportJSON(ctx)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if export.Version != ExportVersion || export.Tool != "superlift" {
		t.Errorf("unexpected header: %+v", export)
	}
	if len(export.Workouts) != 1 || len(export.Workouts[0].Exercises) != 2 {
		t.Fatalf("unexpected workouts: %+v", export.Workouts)
	}
	if !strings.Contains(string(data), `"setOrder"`) {
		t.Error("expected camelCase set fields in JSON export")
	}
}

func TestExportJSONEmpty(t *testing.T) {
	repo := newTestRepo(t, NewMemoryStore())
	data, err := repo.ExportJSON(context.Background())
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if len(export.Workouts) != 0 {
		t.Errorf("expected no workouts, got %d", len(export.Workouts))
	}
}

func TestImportJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestRepo(t, setupTestDB(t))
	date := time.Date(2025, 5, 6, 17, 0, 0, 0, time.UTC)
	if err := src.InsertWorkout(ctx, sampleWorkout("rt", date)); err != nil {
		t.Fatalf("InsertWorkout failed: %v", err)
	}
	raw, err := src.ExportJSON(ctx)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := newTestRepo(t, NewMemoryStore())
	n, err := dst.ImportJSON(ctx, raw)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if n != 1 {
		t.Errorf("imported %d workouts, want 1", n)
	}

	all, _ := dst.GetAllWorkouts(ctx)
	if len(all) != 1 || !all[0].Date.Equal(date) || all[0].SetCount() != 3 {
		t.Errorf("imported workout mismatch: %+v", all)
	}
}

func TestImportJSONInvalid(t *testing.T) {
	repo := newTestRepo(t, NewMemoryStore())
	if _, err := repo.ImportJSON(context.Background(), []byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestExportYAMLRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestRepo(t, NewMemoryStore())
	if err := src.InsertWorkout(ctx, sampleWorkout("y1", time.Now())); err != nil {
		t.Fatalf("InsertWorkout failed: %v", err)
	}

	raw, err := src.ExportYAML(ctx)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var generic map[string]any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	if generic["tool"] != "superlift" {
		t.Errorf("tool = %v, want superlift", generic["tool"])
	}

	dst := newTestRepo(t, NewMemoryStore())
	n, err := dst.ImportYAML(ctx, raw)
	if err != nil {
		t.Fatalf("ImportYAML failed: %v", err)
	}
	if n != 1 {
		t.Errorf("imported %d workouts, want 1", n)
	}
	w, err := dst.GetWorkout(ctx, "y1")
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if w.SetCount() != 3 {
		t.Errorf("SetCount = %d, want 3", w.SetCount())
	}
}

func TestExportMarkdown(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, NewMemoryStore())
	now := time.Now()
	if err := repo.InsertWorkout(ctx, sampleWorkout("recent", now)); err != nil {
		t.Fatalf("InsertWorkout failed: %v", err)
	}
	if err := repo.InsertWorkout(ctx, sampleWorkout("ancient", now.AddDate(-1, 0, 0))); err != nil {
		t.Fatalf("InsertWorkout failed: %v", err)
	}

	since := now.AddDate(0, 0, -7)
	md, err := repo.ExportMarkdown(ctx, &since)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	if !strings.Contains(md, "# Superlift Export") {
		t.Error("missing title")
	}
	if !strings.Contains(md, "Push recent") {
		t.Error("missing recent workout")
	}
	if strings.Contains(md, "Push ancient") {
		t.Error("workout before since should be excluded")
	}
	if !strings.Contains(md, "| Bench Press (Barbell) | 1 | 135 lbs | 5 |") {
		t.Errorf("missing set row:\n%s", md)
	}
}

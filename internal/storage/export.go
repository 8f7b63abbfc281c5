// ABOUTME: Export and import of the full workout history.
// ABOUTME: Supports JSON and YAML documents plus a Markdown log.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/superlift/internal/models"
)

// ExportVersion is the current export document version.
const ExportVersion = "1.0"

// ExportData is the full export format.
type ExportData struct {
	Version    string            `json:"version" yaml:"version"`
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Tool       string            `json:"tool" yaml:"tool"`
	Workouts   []*models.Workout `json:"workouts" yaml:"workouts"`
}

// GetAllData collects every workout for export.
func (r *Repository) GetAllData(ctx context.Context) (*ExportData, error) {
	workouts, err := r.GetAllWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: r.now().UTC(),
		Tool:       "superlift",
		Workouts:   workouts,
	}, nil
}

// ImportData inserts every workout in data. Workouts whose IDs already
// exist are replaced. It returns the number of workouts imported.
func (r *Repository) ImportData(ctx context.Context, data *ExportData) (int, error) {
	n := 0
	for _, w := range data.Workouts {
		if err := r.InsertWorkout(ctx, w); err != nil {
			return n, fmt.Errorf("import workout %s: %w", w.ID, err)
		}
		n++
	}
	return n, nil
}

// ExportJSON exports all data as indented JSON.
func (r *Repository) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := r.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML. The output can be read back with
// ImportYAML.
func (r *Repository) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := r.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ExportMarkdown renders the history as a Markdown log, newest first.
// A non-nil since drops workouts before that time.
func (r *Repository) ExportMarkdown(ctx context.Context, since *time.Time) (string, error) {
	workouts, err := r.GetAllWorkouts(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := r.now()
	sb.WriteString(fmt.Sprintf("# Superlift Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, w := range workouts {
		if since != nil && w.Date.Before(*since) {
			continue
		}
		sb.WriteString(fmt.Sprintf("## %s - %s\n\n", w.Date.Local().Format("2006-01-02 15:04"), w.Name))
		if w.Duration != "" {
			sb.WriteString(fmt.Sprintf("Duration: %s\n\n", w.Duration))
		}
		sb.WriteString("| Exercise | Set | Weight | Reps |\n")
		sb.WriteString("|----------|-----|--------|------|\n")
		for _, ex := range w.Exercises {
			for _, s := range ex.Sets {
				sb.WriteString(fmt.Sprintf("| %s | %d | %g lbs | %d |\n", ex.Name, s.SetOrder, s.Weight, s.Reps))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// ImportJSON imports data from JSON bytes.
func (r *Repository) ImportJSON(ctx context.Context, raw []byte) (int, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return 0, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return r.ImportData(ctx, &data)
}

// ImportYAML imports data from a YAML document in the ExportData shape.
func (r *Repository) ImportYAML(ctx context.Context, raw []byte) (int, error) {
	var data ExportData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return 0, fmt.Errorf("unmarshal YAML: %w", err)
	}
	return r.ImportData(ctx, &data)
}

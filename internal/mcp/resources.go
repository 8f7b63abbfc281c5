// ABOUTME: MCP resource implementations for the superlift workout log.
// ABOUTME: Provides superlift://history and superlift://score resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/superlift/internal/coach"
	"github.com/harperreed/superlift/internal/strength"
)

const (
	historyURI = "superlift://history"
	scoreURI   = "superlift://score"
)

func (s *Server) registerResources() {
	// superlift://history - detailed text of the last 10 workouts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         historyURI,
		Name:        "Workout History",
		Description: "Detailed log of the 10 most recent workouts",
		MIMEType:    "text/plain",
	}, s.handleHistoryResource)

	// superlift://score - current score, records and series
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         scoreURI,
		Name:        "Strength Score",
		Description: "Current strength score, personal records and score history",
		MIMEType:    "application/json",
	}, s.handleScoreResource)
}

// Resource handlers

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.GetAllWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      historyURI,
			MIMEType: "text/plain",
			Text:     coach.Summary(workouts, coach.Options{Limit: 10, Detailed: true}),
		}},
	}, nil
}

func (s *Server) handleScoreResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.GetAllWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	result := map[string]interface{}{
		"score":   strength.CurrentScore(workouts),
		"records": newRecordViews(strength.PersonalRecords(workouts)),
		"series":  newPointViews(strength.Series(workouts)),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      scoreURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// ABOUTME: Pipeline MCP tool handlers
// ABOUTME: Implements pipeline_tick, pipeline_health, contact_score, classify_tasks
package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"suivi/engine"
	"suivi/models"
)

type PipelineHandlers struct {
	engine *engine.Engine
}

func NewPipelineHandlers(eng *engine.Engine) *PipelineHandlers {
	return &PipelineHandlers{engine: eng}
}

type TickInput struct{}

type TickOutput struct {
	RunID         string `json:"run_id,omitempty"`
	ArchivedCount int    `json:"archived_count"`
	TasksCreated  int    `json:"tasks_created"`
	Dropped       bool   `json:"dropped"`
}

func (h *PipelineHandlers) Tick(_ context.Context, request *mcp.CallToolRequest, input TickInput) (*mcp.CallToolResult, TickOutput, error) {
	result, err := h.engine.Tick()
	if err != nil {
		return nil, TickOutput{}, fmt.Errorf("tick failed: %w", err)
	}

	return nil, TickOutput{
		RunID:         result.RunID,
		ArchivedCount: result.ArchivedCount,
		TasksCreated:  result.TasksCreated,
		Dropped:       result.Dropped,
	}, nil
}

type ScoreInput struct {
	ContactID string `json:"contact_id" jsonschema:"Contact ID (required)"`
	Persist   bool   `json:"persist,omitempty" jsonschema:"Persist the recomputed score on the contact"`
}

type ScoreOutput struct {
	ContactID string `json:"contact_id"`
	Score     int    `json:"score"`
}

func (h *PipelineHandlers) Score(_ context.Context, request *mcp.CallToolRequest, input ScoreInput) (*mcp.CallToolResult, ScoreOutput, error) {
	if input.ContactID == "" {
		return nil, ScoreOutput{}, fmt.Errorf("contact_id is required")
	}

	contactID, err := uuid.Parse(input.ContactID)
	if err != nil {
		return nil, ScoreOutput{}, fmt.Errorf("invalid contact_id: %w", err)
	}

	var score int
	if input.Persist {
		score, err = h.engine.Rescore(contactID)
	} else {
		score, err = h.engine.Score(contactID)
	}
	if err != nil {
		return nil, ScoreOutput{}, fmt.Errorf("failed to score contact: %w", err)
	}

	return nil, ScoreOutput{ContactID: contactID.String(), Score: score}, nil
}

type HealthInput struct {
	ExpiringSoonDays int `json:"expiring_soon_days,omitempty" jsonschema:"Window in days for the expiring-soon count (default 3)"`
}

type StageStatsOutput struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
	Value int64  `json:"value"`
}

type HealthOutput struct {
	ByStage          []StageStatsOutput `json:"by_stage"`
	ExpiringSoon     int                `json:"expiring_soon"`
	ActiveCount      int                `json:"active_count"`
	ActiveValue      int64              `json:"active_value"`
	WinRate          float64            `json:"win_rate"`
	ContactsByStatus map[string]int     `json:"contacts_by_status"`
	AvgLeadScore     float64            `json:"avg_lead_score"`
}

func (h *PipelineHandlers) Health(_ context.Context, request *mcp.CallToolRequest, input HealthInput) (*mcp.CallToolResult, HealthOutput, error) {
	summary, err := h.engine.Health(input.ExpiringSoonDays)
	if err != nil {
		return nil, HealthOutput{}, fmt.Errorf("failed to aggregate health: %w", err)
	}

	output := HealthOutput{
		ExpiringSoon:     summary.ExpiringSoon,
		ActiveCount:      summary.ActiveCount,
		ActiveValue:      summary.ActiveValue,
		WinRate:          summary.WinRate,
		ContactsByStatus: summary.ContactsByStatus,
		AvgLeadScore:     summary.AvgLeadScore,
	}

	// Stable stage order for output.
	for _, stage := range models.Stages {
		if stats, ok := summary.ByStage[stage]; ok {
			output.ByStage = append(output.ByStage, StageStatsOutput{
				Stage: stats.Stage,
				Count: stats.Count,
				Value: stats.Value,
			})
		}
	}

	return nil, output, nil
}

type ClassifyTasksInput struct{}

type ClassifyTasksOutput struct {
	Today    []TaskOutput `json:"today"`
	Overdue  []TaskOutput `json:"overdue"`
	Upcoming []TaskOutput `json:"upcoming"`
}

func (h *PipelineHandlers) ClassifyTasks(_ context.Context, request *mcp.CallToolRequest, input ClassifyTasksInput) (*mcp.CallToolResult, ClassifyTasksOutput, error) {
	buckets, err := h.engine.ClassifyTasks()
	if err != nil {
		return nil, ClassifyTasksOutput{}, fmt.Errorf("failed to classify tasks: %w", err)
	}

	return nil, ClassifyTasksOutput{
		Today:    tasksToOutput(buckets.Today),
		Overdue:  tasksToOutput(buckets.Overdue),
		Upcoming: tasksToOutput(buckets.Upcoming),
	}, nil
}

func tasksToOutput(tasks []models.Task) []TaskOutput {
	var output []TaskOutput
	for i := range tasks {
		output = append(output, taskToOutput(&tasks[i]))
	}
	return output
}

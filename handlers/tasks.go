// ABOUTME: Task MCP tool handlers
// ABOUTME: Implements add_task, complete_task, and snooze_task tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"suivi/db"
	"suivi/engine"
	"suivi/models"
)

type TaskHandlers struct {
	engine *engine.Engine
	db     *sql.DB
}

func NewTaskHandlers(eng *engine.Engine, database *sql.DB) *TaskHandlers {
	return &TaskHandlers{engine: eng, db: database}
}

type AddTaskInput struct {
	Title       string `json:"title" jsonschema:"Task title (required)"`
	Description string `json:"description,omitempty" jsonschema:"Task description"`
	ContactID   string `json:"contact_id,omitempty" jsonschema:"Related contact ID"`
	DealID      string `json:"deal_id,omitempty" jsonschema:"Related deal ID"`
	Type        string `json:"type,omitempty" jsonschema:"Task type: call, email, meeting, follow-up, other (default other)"`
	Priority    string `json:"priority,omitempty" jsonschema:"Priority: high, medium, low (default medium)"`
	DueDate     string `json:"due_date" jsonschema:"Due date in ISO 8601 format (required)"`
}

type TaskOutput struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	ContactID     *string `json:"contact_id,omitempty"`
	DealID        *string `json:"deal_id,omitempty"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	DueDate       string  `json:"due_date"`
	CompletedAt   *string `json:"completed_at,omitempty"`
	AutoGenerated bool    `json:"auto_generated"`
}

func (h *TaskHandlers) AddTask(_ context.Context, request *mcp.CallToolRequest, input AddTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	if input.Title == "" {
		return nil, TaskOutput{}, fmt.Errorf("title is required")
	}
	if input.DueDate == "" {
		return nil, TaskOutput{}, fmt.Errorf("due_date is required")
	}

	dueDate, err := time.Parse(time.RFC3339, input.DueDate)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("invalid due_date format (use ISO 8601/RFC3339): %w", err)
	}

	taskType := input.Type
	if taskType == "" {
		taskType = models.TaskTypeOther
	}
	if !models.IsValidTaskType(taskType) {
		return nil, TaskOutput{}, fmt.Errorf("invalid type: %s (valid: call, email, meeting, follow-up, other)", taskType)
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.IsValidPriority(priority) {
		return nil, TaskOutput{}, fmt.Errorf("invalid priority: %s (valid: high, medium, low)", priority)
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Type:        taskType,
		Status:      models.TaskStatusPending,
		Priority:    priority,
		DueDate:     dueDate,
	}

	if input.ContactID != "" {
		contactID, err := uuid.Parse(input.ContactID)
		if err != nil {
			return nil, TaskOutput{}, fmt.Errorf("invalid contact_id: %w", err)
		}
		task.ContactID = &contactID
	}
	if input.DealID != "" {
		dealID, err := uuid.Parse(input.DealID)
		if err != nil {
			return nil, TaskOutput{}, fmt.Errorf("invalid deal_id: %w", err)
		}
		task.DealID = &dealID
	}

	if err := db.CreateTask(h.db, task); err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to create task: %w", err)
	}

	return nil, taskToOutput(task), nil
}

type CompleteTaskInput struct {
	ID string `json:"id" jsonschema:"Task ID (required)"`
}

func (h *TaskHandlers) CompleteTask(_ context.Context, request *mcp.CallToolRequest, input CompleteTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	if input.ID == "" {
		return nil, TaskOutput{}, fmt.Errorf("id is required")
	}

	taskID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	task, err := db.GetTask(h.db, taskID)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to get task: %w", err)
	}

	task.Status = models.TaskStatusCompleted
	if err := db.UpdateTask(h.db, task); err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to complete task: %w", err)
	}

	return nil, taskToOutput(task), nil
}

type SnoozeTaskInput struct {
	ID    string `json:"id" jsonschema:"Task ID (required)"`
	Until string `json:"until" jsonschema:"New due date in ISO 8601 format (required)"`
}

func (h *TaskHandlers) SnoozeTask(_ context.Context, request *mcp.CallToolRequest, input SnoozeTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	if input.ID == "" {
		return nil, TaskOutput{}, fmt.Errorf("id is required")
	}
	if input.Until == "" {
		return nil, TaskOutput{}, fmt.Errorf("until is required")
	}

	taskID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	until, err := time.Parse(time.RFC3339, input.Until)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("invalid until format (use ISO 8601/RFC3339): %w", err)
	}

	task, err := h.engine.Snooze(taskID, until)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to snooze task: %w", err)
	}

	return nil, taskToOutput(task), nil
}

func taskToOutput(task *models.Task) TaskOutput {
	output := TaskOutput{
		ID:            task.ID.String(),
		Title:         task.Title,
		Description:   task.Description,
		Type:          task.Type,
		Status:        task.Status,
		Priority:      task.Priority,
		DueDate:       task.DueDate.Format(timeFormat),
		AutoGenerated: task.AutoGenerated,
	}

	if task.ContactID != nil {
		cid := task.ContactID.String()
		output.ContactID = &cid
	}
	if task.DealID != nil {
		did := task.DealID.String()
		output.DealID = &did
	}
	if task.CompletedAt != nil {
		ca := task.CompletedAt.Format(timeFormat)
		output.CompletedAt = &ca
	}

	return output
}

// ABOUTME: Deal MCP tool handlers
// ABOUTME: Implements create_deal, change_stage, and get_deal tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"suivi/db"
	"suivi/engine"
	"suivi/models"
)

type DealHandlers struct {
	engine *engine.Engine
	db     *sql.DB
}

func NewDealHandlers(eng *engine.Engine, database *sql.DB) *DealHandlers {
	return &DealHandlers{engine: eng, db: database}
}

type CreateDealInput struct {
	Title       string `json:"title" jsonschema:"Deal title (required)"`
	ContactID   string `json:"contact_id" jsonschema:"Contact ID the deal belongs to (required)"`
	Value       int64  `json:"value,omitempty" jsonschema:"Deal value in cents"`
	Stage       string `json:"stage,omitempty" jsonschema:"Deal stage: prospect, engaged, meeting, proposal, won, lost (default prospect)"`
	Probability int    `json:"probability,omitempty" jsonschema:"Win probability 0-100"`
	Description string `json:"description,omitempty" jsonschema:"Free-form description"`
}

type DealOutput struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	ContactID   string  `json:"contact_id"`
	Value       int64   `json:"value"`
	Stage       string  `json:"stage"`
	Probability int     `json:"probability"`
	Description string  `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Archived    bool    `json:"archived"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func (h *DealHandlers) CreateDeal(_ context.Context, request *mcp.CallToolRequest, input CreateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.Title == "" {
		return nil, DealOutput{}, fmt.Errorf("title is required")
	}
	if input.ContactID == "" {
		return nil, DealOutput{}, fmt.Errorf("contact_id is required")
	}

	contactID, err := uuid.Parse(input.ContactID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("invalid contact_id: %w", err)
	}

	deal, err := h.engine.CreateDeal(engine.DealInput{
		Title:       input.Title,
		ContactID:   contactID,
		Value:       input.Value,
		Stage:       input.Stage,
		Probability: input.Probability,
		Description: input.Description,
	})
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to create deal: %w", err)
	}

	return nil, dealToOutput(deal), nil
}

type ChangeStageInput struct {
	ID    string `json:"id" jsonschema:"Deal ID (required)"`
	Stage string `json:"stage" jsonschema:"New stage: prospect, engaged, meeting, proposal, won, lost (required)"`
}

func (h *DealHandlers) ChangeStage(_ context.Context, request *mcp.CallToolRequest, input ChangeStageInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.ID == "" {
		return nil, DealOutput{}, fmt.Errorf("id is required")
	}
	if input.Stage == "" {
		return nil, DealOutput{}, fmt.Errorf("stage is required")
	}

	dealID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	deal, err := h.engine.ChangeStage(dealID, input.Stage)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to change stage: %w", err)
	}

	return nil, dealToOutput(deal), nil
}

type GetDealInput struct {
	ID string `json:"id" jsonschema:"Deal ID (required)"`
}

func (h *DealHandlers) GetDeal(_ context.Context, request *mcp.CallToolRequest, input GetDealInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.ID == "" {
		return nil, DealOutput{}, fmt.Errorf("id is required")
	}

	dealID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	deal, err := db.GetDeal(h.db, dealID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to get deal: %w", err)
	}

	return nil, dealToOutput(deal), nil
}

func dealToOutput(deal *models.Deal) DealOutput {
	output := DealOutput{
		ID:          deal.ID.String(),
		Title:       deal.Title,
		ContactID:   deal.ContactID.String(),
		Value:       deal.Value,
		Stage:       deal.Stage,
		Probability: deal.Probability,
		Description: deal.Description,
		Archived:    deal.Archived,
		CreatedAt:   deal.CreatedAt.Format(timeFormat),
		UpdatedAt:   deal.UpdatedAt.Format(timeFormat),
	}

	if deal.DueDate != nil {
		due := deal.DueDate.Format(timeFormat)
		output.DueDate = &due
	}

	return output
}

// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements add_contact, find_contacts, and log_interaction tools
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

const timeFormat = "2006-01-02T15:04:05Z07:00"

type ContactHandlers struct {
	engine *engine.Engine
	db     *sql.DB
}

func NewContactHandlers(eng *engine.Engine, database *sql.DB) *ContactHandlers {
	return &ContactHandlers{engine: eng, db: database}
}

type AddContactInput struct {
	Name    string   `json:"name" jsonschema:"Contact name (required)"`
	Email   string   `json:"email" jsonschema:"Email address (required)"`
	Phone   string   `json:"phone,omitempty" jsonschema:"Phone number"`
	Company string   `json:"company,omitempty" jsonschema:"Company name"`
	Tags    []string `json:"tags,omitempty" jsonschema:"Free-form tags"`
	Status  string   `json:"status,omitempty" jsonschema:"Contact status: cold, warm, hot (default cold)"`
	Notes   string   `json:"notes,omitempty" jsonschema:"Notes about the contact"`
}

type ContactOutput struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone,omitempty"`
	Company         string   `json:"company,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Status          string   `json:"status"`
	Score           int      `json:"score"`
	LastInteraction *string  `json:"last_interaction,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

func (h *ContactHandlers) AddContact(_ context.Context, request *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.Name == "" {
		return nil, ContactOutput{}, fmt.Errorf("name is required")
	}
	if input.Email == "" {
		return nil, ContactOutput{}, fmt.Errorf("email is required")
	}

	status := input.Status
	if status == "" {
		status = models.StatusCold
	}
	if !models.IsValidContactStatus(status) {
		return nil, ContactOutput{}, fmt.Errorf("invalid status: %s (valid: cold, warm, hot)", status)
	}

	contact := &models.Contact{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Tags:    input.Tags,
		Status:  status,
		Notes:   input.Notes,
	}

	if err := db.CreateContact(h.db, contact); err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to create contact: %w", err)
	}

	return nil, contactToOutput(contact), nil
}

type FindContactsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search by name, email, or company"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 50)"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
	Count    int             `json:"count"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, request *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	contacts, err := db.FindContacts(h.db, input.Query, input.Limit)
	if err != nil {
		return nil, FindContactsOutput{}, fmt.Errorf("failed to find contacts: %w", err)
	}

	output := FindContactsOutput{Count: len(contacts)}
	for i := range contacts {
		output.Contacts = append(output.Contacts, contactToOutput(&contacts[i]))
	}

	return nil, output, nil
}

type LogInteractionInput struct {
	ContactID string `json:"contact_id" jsonschema:"Contact ID (required)"`
	Note      string `json:"note,omitempty" jsonschema:"Optional note appended to the contact"`
}

func (h *ContactHandlers) LogInteraction(_ context.Context, request *mcp.CallToolRequest, input LogInteractionInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ContactID == "" {
		return nil, ContactOutput{}, fmt.Errorf("contact_id is required")
	}

	contactID, err := uuid.Parse(input.ContactID)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("invalid contact_id: %w", err)
	}

	contact, err := h.engine.LogInteraction(contactID, input.Note)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to log interaction: %w", err)
	}

	return nil, contactToOutput(contact), nil
}

func contactToOutput(contact *models.Contact) ContactOutput {
	output := ContactOutput{
		ID:        contact.ID.String(),
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Company:   contact.Company,
		Tags:      contact.Tags,
		Status:    contact.Status,
		Score:     contact.Score,
		Notes:     contact.Notes,
		CreatedAt: contact.CreatedAt.Format(timeFormat),
		UpdatedAt: contact.UpdatedAt.Format(timeFormat),
	}

	if contact.LastInteraction != nil {
		li := contact.LastInteraction.Format(timeFormat)
		output.LastInteraction = &li
	}

	return output
}

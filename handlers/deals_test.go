// ABOUTME: Tests for deal MCP tool handlers
// ABOUTME: Validates deal creation, stage changes, and lookups over MCP
package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suivi/models"
)

func TestCreateDealHandler(t *testing.T) {
	f := setupTest(t)
	handler := NewDealHandlers(f.engine, f.db)
	contact := f.createContact(t, "marie")

	_, output, err := handler.CreateDeal(context.Background(), nil, CreateDealInput{
		Title:     "CRM rollout",
		ContactID: contact.ID.String(),
		Value:     2500000,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StageProspect, output.Stage)
	require.NotNil(t, output.DueDate)
	expected := f.clock.Time.Add(30 * 24 * time.Hour).Format(timeFormat)
	assert.Equal(t, expected, *output.DueDate)
}

func TestCreateDealHandlerValidation(t *testing.T) {
	f := setupTest(t)
	handler := NewDealHandlers(f.engine, f.db)
	contact := f.createContact(t, "marie")

	_, _, err := handler.CreateDeal(context.Background(), nil, CreateDealInput{ContactID: contact.ID.String()})
	assert.Error(t, err)

	_, _, err = handler.CreateDeal(context.Background(), nil, CreateDealInput{Title: "No Contact"})
	assert.Error(t, err)

	_, _, err = handler.CreateDeal(context.Background(), nil, CreateDealInput{
		Title: "Bad Contact", ContactID: "not-a-uuid",
	})
	assert.Error(t, err)

	_, _, err = handler.CreateDeal(context.Background(), nil, CreateDealInput{
		Title: "Bad Stage", ContactID: contact.ID.String(), Stage: "negotiation",
	})
	assert.Error(t, err)
}

func TestChangeStageHandler(t *testing.T) {
	f := setupTest(t)
	handler := NewDealHandlers(f.engine, f.db)
	contact := f.createContact(t, "marie")

	_, created, err := handler.CreateDeal(context.Background(), nil, CreateDealInput{
		Title:     "Moving",
		ContactID: contact.ID.String(),
	})
	require.NoError(t, err)

	_, moved, err := handler.ChangeStage(context.Background(), nil, ChangeStageInput{
		ID:    created.ID,
		Stage: models.StageMeeting,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StageMeeting, moved.Stage)
	require.NotNil(t, moved.DueDate)
	expected := f.clock.Time.Add(7 * 24 * time.Hour).Format(timeFormat)
	assert.Equal(t, expected, *moved.DueDate)
}

func TestGetDealHandler(t *testing.T) {
	f := setupTest(t)
	handler := NewDealHandlers(f.engine, f.db)
	contact := f.createContact(t, "marie")

	_, created, err := handler.CreateDeal(context.Background(), nil, CreateDealInput{
		Title:     "Lookup",
		ContactID: contact.ID.String(),
	})
	require.NoError(t, err)

	_, found, err := handler.GetDeal(context.Background(), nil, GetDealInput{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Lookup", found.Title)
}

func TestGetDealHandlerNotFound(t *testing.T) {
	f := setupTest(t)
	handler := NewDealHandlers(f.engine, f.db)

	_, _, err := handler.GetDeal(context.Background(), nil, GetDealInput{ID: "2b1f0df0-0000-4000-8000-000000000000"})
	assert.Error(t, err)
}

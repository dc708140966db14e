// ABOUTME: Tests for deal creation and stage changes
// ABOUTME: Verifies policy-driven deadlines with a fixed clock
package engine

import (
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suivi/db"
	"suivi/models"
)

func setupTestEngine(t *testing.T) (*Engine, *sql.DB, *FixedClock) {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.InitSchema(database))

	clock := &FixedClock{Time: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)}
	eng := New(database, clock, log.New(io.Discard))
	return eng, database, clock
}

func seedContact(t *testing.T, database *sql.DB) *models.Contact {
	t.Helper()
	contact := &models.Contact{Name: "Marie Dubois", Email: "marie@techstart.fr", Status: models.StatusWarm}
	require.NoError(t, db.CreateContact(database, contact))
	return contact
}

func TestCreateDealProspectDeadline(t *testing.T) {
	eng, database, clock := setupTestEngine(t)
	contact := seedContact(t, database)

	deal, err := eng.CreateDeal(DealInput{
		Title:     "CRM rollout",
		ContactID: contact.ID,
		Value:     2500000,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StageProspect, deal.Stage)
	require.NotNil(t, deal.DueDate)
	assert.Equal(t, clock.Time.Add(30*24*time.Hour), *deal.DueDate)
}

func TestCreateDealStageDeadlines(t *testing.T) {
	eng, database, clock := setupTestEngine(t)
	contact := seedContact(t, database)

	cases := []struct {
		stage string
		days  int
	}{
		{models.StageProspect, 30},
		{models.StageEngaged, 14},
		{models.StageMeeting, 7},
		{models.StageProposal, 21},
	}

	for _, tc := range cases {
		deal, err := eng.CreateDeal(DealInput{
			Title:     "Deal in " + tc.stage,
			ContactID: contact.ID,
			Stage:     tc.stage,
		})
		require.NoError(t, err)
		require.NotNil(t, deal.DueDate, "stage %s", tc.stage)
		assert.Equal(t, clock.Time.Add(time.Duration(tc.days)*24*time.Hour), *deal.DueDate, "stage %s", tc.stage)
	}
}

func TestCreateDealTerminalStageNoDeadline(t *testing.T) {
	eng, database, _ := setupTestEngine(t)
	contact := seedContact(t, database)

	for _, stage := range []string{models.StageWon, models.StageLost} {
		deal, err := eng.CreateDeal(DealInput{
			Title:     "Closed deal",
			ContactID: contact.ID,
			Stage:     stage,
		})
		require.NoError(t, err)
		assert.Nil(t, deal.DueDate, "stage %s", stage)
	}
}

func TestCreateDealValidation(t *testing.T) {
	eng, database, _ := setupTestEngine(t)
	contact := seedContact(t, database)

	var validationErr *models.ValidationError

	_, err := eng.CreateDeal(DealInput{ContactID: contact.ID})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title", validationErr.Field)

	_, err = eng.CreateDeal(DealInput{Title: "Negative", ContactID: contact.ID, Value: -1})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "value", validationErr.Field)

	_, err = eng.CreateDeal(DealInput{Title: "Over", ContactID: contact.ID, Probability: 101})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "probability", validationErr.Field)

	_, err = eng.CreateDeal(DealInput{Title: "Bad Stage", ContactID: contact.ID, Stage: "negotiation"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "stage", validationErr.Field)
}

func TestCreateDealUnknownContact(t *testing.T) {
	eng, _, _ := setupTestEngine(t)

	_, err := eng.CreateDeal(DealInput{Title: "Orphan", ContactID: uuid.New()})
	assert.True(t, errors.Is(err, db.ErrContactNotFound))
}

func TestChangeStageRestartsClock(t *testing.T) {
	eng, database, clock := setupTestEngine(t)
	contact := seedContact(t, database)

	deal, err := eng.CreateDeal(DealInput{Title: "Moving", ContactID: contact.ID})
	require.NoError(t, err)

	clock.Advance(5 * 24 * time.Hour)

	moved, err := eng.ChangeStage(deal.ID, models.StageMeeting)
	require.NoError(t, err)
	require.NotNil(t, moved.DueDate)
	assert.Equal(t, clock.Time.Add(7*24*time.Hour), *moved.DueDate)
}

func TestChangeStageSameStageNoOp(t *testing.T) {
	eng, database, clock := setupTestEngine(t)
	contact := seedContact(t, database)

	deal, err := eng.CreateDeal(DealInput{Title: "Stuck", ContactID: contact.ID})
	require.NoError(t, err)
	originalDue := *deal.DueDate

	clock.Advance(3 * 24 * time.Hour)

	same, err := eng.ChangeStage(deal.ID, models.StageProspect)
	require.NoError(t, err)
	require.NotNil(t, same.DueDate)
	assert.Equal(t, originalDue, *same.DueDate, "same-stage change must not restart the clock")
}

func TestChangeStageToTerminalKeepsDueDate(t *testing.T) {
	eng, database, clock := setupTestEngine(t)
	contact := seedContact(t, database)

	deal, err := eng.CreateDeal(DealInput{Title: "Closing", ContactID: contact.ID, Stage: models.StageProposal})
	require.NoError(t, err)
	originalDue := *deal.DueDate

	clock.Advance(2 * 24 * time.Hour)

	won, err := eng.ChangeStage(deal.ID, models.StageWon)
	require.NoError(t, err)
	assert.Equal(t, models.StageWon, won.Stage)
	require.NotNil(t, won.DueDate)
	assert.Equal(t, originalDue, *won.DueDate)
}

func TestChangeStageInvalidStage(t *testing.T) {
	eng, database, _ := setupTestEngine(t)
	contact := seedContact(t, database)

	deal, err := eng.CreateDeal(DealInput{Title: "Target", ContactID: contact.ID})
	require.NoError(t, err)

	var validationErr *models.ValidationError
	_, err = eng.ChangeStage(deal.ID, "bogus")
	require.ErrorAs(t, err, &validationErr)
}

func TestChangeStageUnknownDeal(t *testing.T) {
	eng, _, _ := setupTestEngine(t)

	_, err := eng.ChangeStage(uuid.New(), models.StageMeeting)
	assert.True(t, errors.Is(err, db.ErrDealNotFound))
}

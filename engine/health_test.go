// ABOUTME: Tests for the pipeline health rollup
// ABOUTME: Covers stage stats, expiring-soon windows, win rate, and averages
package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suivi/db"
	"suivi/models"
)

func TestHealthEmptyPipeline(t *testing.T) {
	eng, _, _ := setupTestEngine(t)

	summary, err := eng.Health(0)
	require.NoError(t, err)

	assert.Empty(t, summary.ByStage)
	assert.Equal(t, 0, summary.ActiveCount)
	assert.Equal(t, int64(0), summary.ActiveValue)
	assert.Equal(t, 0, summary.ExpiringSoon)
	assert.Equal(t, 0.0, summary.WinRate)
	assert.Equal(t, 0.0, summary.AvgLeadScore)
	assert.Empty(t, summary.ContactsByStatus)
}

func TestHealthStageRollup(t *testing.T) {
	eng, database, _ := setupTestEngine(t)
	contact := seedContact(t, database)

	for _, d := range []struct {
		title string
		stage string
		value int64
	}{
		{"P1", models.StageProspect, 100000},
		{"P2", models.StageProspect, 200000},
		{"M1", models.StageMeeting, 500000},
	} {
		_, err := eng.CreateDeal(DealInput{Title: d.title, ContactID: contact.ID, Stage: d.stage, Value: d.value})
		require.NoError(t, err)
	}

	summary, err := eng.Health(0)
	require.NoError(t, err)

	prospect := summary.ByStage[models.StageProspect]
	assert.Equal(t, 2, prospect.Count)
	assert.Equal(t, int64(300000), prospect.Value)

	meeting := summary.ByStage[models.StageMeeting]
	assert.Equal(t, 1, meeting.Count)
	assert.Equal(t, int64(500000), meeting.Value)

	assert.Equal(t, 3, summary.ActiveCount)
	assert.Equal(t, int64(800000), summary.ActiveValue)
}

func TestHealthExcludesArchivedFromStageRollup(t *testing.T) {
	eng, database, clock := setupTestEngine(t)
	contact := seedContact(t, database)

	_, err := eng.CreateDeal(DealInput{Title: "Will expire", ContactID: contact.ID, Stage: models.StageMeeting, Value: 700000})
	require.NoError(t, err)

	clock.Advance(8 * 24 * time.Hour)
	_, err = eng.Tick()
	require.NoError(t, err)

	summary, err := eng.Health(0)
	require.NoError(t, err)

	assert.Empty(t, summary.ByStage)
	assert.Equal(t, 0, summary.ActiveCount)
	assert.Equal(t, int64(0), summary.ActiveValue)
}

func TestHealthTerminalExcludedFromActive(t *testing.T) {
	eng, database, _ := setupTestEngine(t)
	contact := seedContact(t, database)

	_, err := eng.CreateDeal(DealInput{Title: "Won big", ContactID: contact.ID, Stage: models.StageWon, Value: 900000})
	require.NoError(t, err)
	_, err = eng.CreateDeal(DealInput{Title: "Open", ContactID: contact.ID, Stage: models.StageEngaged, Value: 100000})
	require.NoError(t, err)

	summary, err := eng.Health(0)
	require.NoError(t, err)

	// Won appears in the stage rollup but not in active totals.
	assert.Equal(t, 1, summary.ByStage[models.StageWon].Count)
	assert.Equal(t, 1, summary.ActiveCount)
	assert.Equal(t, int64(100000), summary.ActiveValue)
}

func TestHealthExpiringSoon(t *testing.T) {
	eng, database, clock := setupTestEngine(t)
	contact := seedContact(t, database)

	// Meeting deals expire in 7 days. Advance so one falls inside a 3-day
	// window and one stays outside it.
	_, err := eng.CreateDeal(DealInput{Title: "Soon", ContactID: contact.ID, Stage: models.StageMeeting})
	require.NoError(t, err)

	clock.Advance(5 * 24 * time.Hour)

	_, err = eng.CreateDeal(DealInput{Title: "Not soon", ContactID: contact.ID, Stage: models.StageProspect})
	require.NoError(t, err)

	summary, err := eng.Health(3)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ExpiringSoon)
}

func TestHealthWinRate(t *testing.T) {
	eng, database, _ := setupTestEngine(t)
	contact := seedContact(t, database)

	for _, stage := range []string{models.StageWon, models.StageWon, models.StageWon, models.StageLost} {
		_, err := eng.CreateDeal(DealInput{Title: "Closed", ContactID: contact.ID, Stage: stage})
		require.NoError(t, err)
	}

	summary, err := eng.Health(0)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, summary.WinRate, 1e-9)
}

func TestHealthContactRollup(t *testing.T) {
	eng, database, clock := setupTestEngine(t)

	now := clock.Time
	for _, c := range []*models.Contact{
		{Name: "Hot", Email: "hot@example.com", Status: models.StatusHot, LastInteraction: &now},
		{Name: "Warm", Email: "warm@example.com", Status: models.StatusWarm},
		{Name: "Cold", Email: "cold@example.com", Status: models.StatusCold},
	} {
		require.NoError(t, db.CreateContact(database, c))
	}

	summary, err := eng.Health(0)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ContactsByStatus[models.StatusHot])
	assert.Equal(t, 1, summary.ContactsByStatus[models.StatusWarm])
	assert.Equal(t, 1, summary.ContactsByStatus[models.StatusCold])

	// Hot contact with a fresh interaction scores 5, the others 1.
	assert.InDelta(t, 7.0/3.0, summary.AvgLeadScore, 1e-9)
}

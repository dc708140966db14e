// ABOUTME: Pipeline lifecycle engine over the persistence layer
// ABOUTME: Deal creation and stage changes with policy-driven deadlines
package engine

import (
	"database/sql"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"suivi/db"
	"suivi/models"
)

// Engine implements the pipeline lifecycle rules: stage deadlines, expiry
// and archival, follow-up derivation, contact scoring, and health rollups.
// It owns no timer; an external caller drives Tick.
type Engine struct {
	db     *sql.DB
	clock  Clock
	logger *log.Logger

	ticking atomic.Bool
}

func New(database *sql.DB, clock Clock, logger *log.Logger) *Engine {
	return &Engine{
		db:     database,
		clock:  clock,
		logger: logger,
	}
}

// DealInput carries the caller-supplied fields for a new deal.
type DealInput struct {
	Title       string
	ContactID   uuid.UUID
	Value       int64
	Stage       string
	Probability int
	Description string
}

// CreateDeal validates the input, stamps the stage deadline from the policy
// table, and persists the deal. Terminal stages get no deadline.
func (e *Engine) CreateDeal(input DealInput) (*models.Deal, error) {
	if input.Title == "" {
		return nil, models.Invalid("title", "must not be empty")
	}
	if input.Value < 0 {
		return nil, models.Invalid("value", "must not be negative")
	}
	if input.Probability < 0 || input.Probability > 100 {
		return nil, models.Invalid("probability", "must be between 0 and 100")
	}
	stage := input.Stage
	if stage == "" {
		stage = models.StageProspect
	}
	maxDays, err := models.MaxDays(stage)
	if err != nil {
		return nil, models.Invalid("stage", err.Error())
	}

	// Reject before mutating anything.
	if _, err := db.GetContact(e.db, input.ContactID); err != nil {
		return nil, err
	}

	now := e.clock.Now()
	deal := &models.Deal{
		ID:          uuid.New(),
		Title:       input.Title,
		ContactID:   input.ContactID,
		Value:       input.Value,
		Stage:       stage,
		Probability: input.Probability,
		Description: input.Description,
		DueDate:     stageDeadline(now, maxDays),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := db.CreateDeal(e.db, deal); err != nil {
		return nil, err
	}

	return deal, nil
}

// ChangeStage moves a deal to a new stage and restarts the SLA clock from
// now. Changing to the stage the deal is already in leaves it untouched.
func (e *Engine) ChangeStage(dealID uuid.UUID, newStage string) (*models.Deal, error) {
	maxDays, err := models.MaxDays(newStage)
	if err != nil {
		return nil, models.Invalid("stage", err.Error())
	}

	deal, err := db.GetDeal(e.db, dealID)
	if err != nil {
		return nil, err
	}

	if deal.Stage == newStage {
		return deal, nil
	}

	now := e.clock.Now()
	deal.Stage = newStage
	deal.UpdatedAt = now
	if maxDays > 0 {
		deal.DueDate = stageDeadline(now, maxDays)
	}
	// A terminal stage freezes the due date at its current value.

	if err := db.UpdateDeal(e.db, deal); err != nil {
		return nil, err
	}

	return deal, nil
}

// stageDeadline returns now + maxDays, or nil when the stage has no SLA.
func stageDeadline(now time.Time, maxDays int) *time.Time {
	if maxDays <= 0 {
		return nil
	}
	due := now.Add(time.Duration(maxDays) * 24 * time.Hour)
	return &due
}

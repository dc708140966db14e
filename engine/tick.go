// ABOUTME: Expiry scan that archives overdue deals and derives follow-ups
// ABOUTME: Reentrant-safe, idempotent, and tolerant of per-deal failures
package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"suivi/db"
	"suivi/models"
)

// TickResult summarizes one expiry scan.
type TickResult struct {
	RunID         string
	ArchivedCount int
	TasksCreated  int
	// Dropped is set when the trigger found a tick already running and
	// returned without scanning.
	Dropped bool
}

// Tick scans all non-archived deals and archives every non-terminal deal
// whose deadline has passed, creating one follow-up task per archived deal
// in the same transaction. Overlapping invocations are dropped, not queued.
// A failure on one deal is logged and the scan continues.
func (e *Engine) Tick() (TickResult, error) {
	if !e.ticking.CompareAndSwap(false, true) {
		return TickResult{Dropped: true}, nil
	}
	defer e.ticking.Store(false)

	now := e.clock.Now()
	result := TickResult{RunID: newRunID(now)}
	logger := e.logger.With("run", result.RunID)

	deals, err := db.ActiveDeals(e.db)
	if err != nil {
		return result, fmt.Errorf("failed to scan deals: %w", err)
	}

	for i := range deals {
		deal := &deals[i]

		if models.IsTerminalStage(deal.Stage) {
			continue
		}
		if deal.DueDate == nil || !deal.DueDate.Before(now) {
			continue
		}

		task := followUpTask(deal, now)
		archived, err := db.ArchiveDealWithFollowUp(e.db, deal.ID, now, task)
		if err != nil {
			logger.Error("failed to archive expired deal",
				"deal", deal.ID, "stage", deal.Stage, "err", err)
			continue
		}
		if !archived {
			// Raced with an earlier run; nothing to do.
			continue
		}

		result.ArchivedCount++
		result.TasksCreated++
		logger.Info("archived expired deal",
			"deal", deal.ID, "title", deal.Title, "stage", deal.Stage, "due", deal.DueDate)
	}

	return result, nil
}

// followUpTask builds the auto-generated task that accompanies an archived
// deal.
func followUpTask(deal *models.Deal, now time.Time) *models.Task {
	contactID := deal.ContactID
	dealID := deal.ID
	return &models.Task{
		ID:    uuid.New(),
		Title: fmt.Sprintf("Follow up: %s", deal.Title),
		Description: fmt.Sprintf("Deal %q expired in stage %s and was archived. Reconnect with the contact to revive or close it.",
			deal.Title, deal.Stage),
		ContactID:     &contactID,
		DealID:        &dealID,
		Type:          models.TaskTypeFollowUp,
		Status:        models.TaskStatusPending,
		Priority:      models.PriorityHigh,
		DueDate:       now,
		AutoGenerated: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// newRunID generates a sortable identifier for a tick run.
func newRunID(now time.Time) string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(now.UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}

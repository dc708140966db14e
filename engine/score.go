// ABOUTME: Contact lead scoring from recency, engagement, and status
// ABOUTME: Pure computation; persisted only on an explicit rescore
package engine

import (
	"math"
	"time"

	"github.com/google/uuid"
	"suivi/db"
	"suivi/models"
)

// Scoring terms. The blend is:
//
//	recency:    5.0 when the last interaction is within 2 days of now,
//	            decaying linearly to 1.0 at 14 days or more; 1.0 when the
//	            contact has no recorded interaction.
//	engagement: +1.0 per open (non-archived, non-terminal) deal, capped at +2.
//	status:     hot +1.0, warm 0, cold -1.0.
//
// The terms are summed, rounded to the nearest integer, and clamped to
// [1,5]. Recency and engagement are monotone by construction: a more recent
// interaction or an additional open deal never lowers the score.
const (
	recencyFullDays  = 2
	recencyFloorDays = 14
	engagementCap    = 2.0
)

// CalculateScore derives a 1-5 lead score for a contact given its related
// deals. Pure and deterministic: no reads, no writes, no ambient time.
func CalculateScore(contact *models.Contact, relatedDeals []models.Deal, now time.Time) int {
	score := recencyTerm(contact.LastInteraction, now)
	score += engagementTerm(relatedDeals)
	score += statusTerm(contact.Status)

	rounded := int(math.Round(score))
	if rounded < 1 {
		return 1
	}
	if rounded > 5 {
		return 5
	}
	return rounded
}

func recencyTerm(lastInteraction *time.Time, now time.Time) float64 {
	if lastInteraction == nil {
		return 1.0
	}

	days := now.Sub(*lastInteraction).Hours() / 24
	if days <= recencyFullDays {
		return 5.0
	}
	if days >= recencyFloorDays {
		return 1.0
	}
	span := float64(recencyFloorDays - recencyFullDays)
	return 5.0 - (days-recencyFullDays)*(4.0/span)
}

func engagementTerm(deals []models.Deal) float64 {
	open := 0.0
	for _, d := range deals {
		if d.Archived || models.IsTerminalStage(d.Stage) {
			continue
		}
		open++
	}
	if open > engagementCap {
		return engagementCap
	}
	return open
}

func statusTerm(status string) float64 {
	switch status {
	case models.StatusHot:
		return 1.0
	case models.StatusCold:
		return -1.0
	default:
		return 0.0
	}
}

// Score computes the current lead score for a contact on demand. The contact
// and its deals are read on the engine's single connection, so the snapshot
// cannot interleave with a partial archive.
func (e *Engine) Score(contactID uuid.UUID) (int, error) {
	contact, err := db.GetContact(e.db, contactID)
	if err != nil {
		return 0, err
	}

	deals, err := db.DealsByContact(e.db, contactID)
	if err != nil {
		return 0, err
	}

	return CalculateScore(contact, deals, e.clock.Now()), nil
}

// Rescore recomputes a contact's score and persists it. This is the only
// path that writes the score; nothing updates it as a side effect.
func (e *Engine) Rescore(contactID uuid.UUID) (int, error) {
	score, err := e.Score(contactID)
	if err != nil {
		return 0, err
	}

	if err := db.SetContactScore(e.db, contactID, score, e.clock.Now()); err != nil {
		return 0, err
	}
	return score, nil
}

// ABOUTME: Pipeline health aggregation over deals and contacts
// ABOUTME: Per-stage rollups, expiring-soon counts, win rate, lead scores
package engine

import (
	"time"

	"suivi/db"
	"suivi/models"
)

// DefaultExpiringSoonDays is the window for the expiring-soon count.
const DefaultExpiringSoonDays = 3

// StageStats holds the rollup for one pipeline stage.
type StageStats struct {
	Stage string
	Count int
	Value int64 // in cents
}

// HealthSummary is the on-demand portfolio rollup.
type HealthSummary struct {
	// ByStage covers non-archived deals, keyed by stage.
	ByStage map[string]StageStats
	// ExpiringSoon counts open deals whose deadline falls within
	// [now, now+threshold].
	ExpiringSoon int
	// ActiveValue sums the value of non-archived, non-terminal deals.
	ActiveValue int64
	// ActiveCount counts non-archived, non-terminal deals.
	ActiveCount int
	// WinRate is won/(won+lost) over closed deals, 0 when none are closed.
	WinRate float64
	// ContactsByStatus counts contacts per status.
	ContactsByStatus map[string]int
	// AvgLeadScore averages the freshly computed lead score over all
	// contacts, 0 when there are none.
	AvgLeadScore float64
}

// Health aggregates the portfolio. thresholdDays <= 0 selects the default
// expiring-soon window.
func (e *Engine) Health(thresholdDays int) (*HealthSummary, error) {
	if thresholdDays <= 0 {
		thresholdDays = DefaultExpiringSoonDays
	}

	now := e.clock.Now()
	horizon := now.Add(time.Duration(thresholdDays) * 24 * time.Hour)

	deals, err := db.AllDeals(e.db)
	if err != nil {
		return nil, err
	}

	summary := &HealthSummary{
		ByStage:          make(map[string]StageStats),
		ContactsByStatus: make(map[string]int),
	}

	var won, lost int
	for _, deal := range deals {
		if deal.Stage == models.StageWon {
			won++
		}
		if deal.Stage == models.StageLost {
			lost++
		}

		if deal.Archived {
			continue
		}

		stats := summary.ByStage[deal.Stage]
		stats.Stage = deal.Stage
		stats.Count++
		stats.Value += deal.Value
		summary.ByStage[deal.Stage] = stats

		if models.IsTerminalStage(deal.Stage) {
			continue
		}

		summary.ActiveCount++
		summary.ActiveValue += deal.Value

		if deal.DueDate != nil && !deal.DueDate.Before(now) && !deal.DueDate.After(horizon) {
			summary.ExpiringSoon++
		}
	}

	if won+lost > 0 {
		summary.WinRate = float64(won) / float64(won+lost)
	}

	contacts, err := db.FindContacts(e.db, "", 10000)
	if err != nil {
		return nil, err
	}

	var scoreSum int
	for i := range contacts {
		contact := &contacts[i]
		summary.ContactsByStatus[contact.Status]++

		related, err := db.DealsByContact(e.db, contact.ID)
		if err != nil {
			return nil, err
		}
		scoreSum += CalculateScore(contact, related, now)
	}
	if len(contacts) > 0 {
		summary.AvgLeadScore = float64(scoreSum) / float64(len(contacts))
	}

	return summary, nil
}

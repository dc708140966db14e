// ABOUTME: Demo data seeding command
// ABOUTME: Populates an empty database with sample contacts, deals, and tasks
package cli

import (
	"database/sql"
	"fmt"
	"time"

	"suivi/db"
	"suivi/engine"
	"suivi/models"
)

// SeedCommand loads demo data into an empty database.
func SeedCommand(eng *engine.Engine, database *sql.DB, args []string) error {
	existing, err := db.FindContacts(database, "", 1)
	if err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if len(existing) > 0 {
		return fmt.Errorf("database already contains contacts; refusing to seed")
	}

	now := time.Now()
	twoDaysAgo := now.Add(-2 * 24 * time.Hour)
	fiveDaysAgo := now.Add(-5 * 24 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)

	contacts := []*models.Contact{
		{
			Name:            "Marie Dubois",
			Email:           "marie.dubois@example.com",
			Phone:           "+33 6 12 34 56 78",
			Company:         "TechStart SAS",
			Tags:            []string{"startup", "tech"},
			Status:          models.StatusHot,
			LastInteraction: &twoDaysAgo,
			Notes:           "Very interested in the solution. Call back soon.",
		},
		{
			Name:            "Pierre Martin",
			Email:           "p.martin@grandecorp.fr",
			Phone:           "+33 1 23 45 67 89",
			Company:         "Grande Corp",
			Tags:            []string{"enterprise", "finance"},
			Status:          models.StatusWarm,
			LastInteraction: &fiveDaysAgo,
			Notes:           "IT director, final decision maker. Budget available Q1.",
		},
		{
			Name:    "Sophie Leclerc",
			Email:   "sophie@consulting-plus.com",
			Company: "Consulting Plus",
			Tags:    []string{"consulting", "pme"},
			Status:  models.StatusCold,
			Notes:   "First contact made. Needs further qualification.",
		},
		{
			Name:            "Thomas Rousseau",
			Email:           "thomas.rousseau@retail-chain.fr",
			Phone:           "+33 4 56 78 90 12",
			Company:         "Retail Chain",
			Tags:            []string{"retail", "commerce"},
			Status:          models.StatusWarm,
			LastInteraction: &yesterday,
			Notes:           "Digital manager, looking to modernize processes.",
		},
	}

	for _, contact := range contacts {
		if err := db.CreateContact(database, contact); err != nil {
			return fmt.Errorf("failed to seed contact %s: %w", contact.Name, err)
		}
	}

	deals := []engine.DealInput{
		{
			Title:       "CRM rollout TechStart",
			ContactID:   contacts[0].ID,
			Value:       2500000,
			Stage:       models.StageProposal,
			Probability: 75,
			Description: "Full CRM setup for the sales team.",
		},
		{
			Title:       "Digital transformation Grande Corp",
			ContactID:   contacts[1].ID,
			Value:       8000000,
			Stage:       models.StageMeeting,
			Probability: 50,
			Description: "Process automation across three departments.",
		},
		{
			Title:       "Audit Consulting Plus",
			ContactID:   contacts[2].ID,
			Value:       1200000,
			Stage:       models.StageProspect,
			Probability: 20,
		},
		{
			Title:       "Stores platform Retail Chain",
			ContactID:   contacts[3].ID,
			Value:       4500000,
			Stage:       models.StageEngaged,
			Probability: 40,
		},
	}

	for _, input := range deals {
		if _, err := eng.CreateDeal(input); err != nil {
			return fmt.Errorf("failed to seed deal %s: %w", input.Title, err)
		}
	}

	tasks := []*models.Task{
		{
			Title:     "Call Marie about the proposal",
			ContactID: &contacts[0].ID,
			Type:      models.TaskTypeCall,
			Priority:  models.PriorityHigh,
			DueDate:   now,
		},
		{
			Title:     "Send pricing sheet to Pierre",
			ContactID: &contacts[1].ID,
			Type:      models.TaskTypeEmail,
			Priority:  models.PriorityMedium,
			DueDate:   now.Add(2 * 24 * time.Hour),
		},
		{
			Title:     "Qualify Sophie's needs",
			ContactID: &contacts[2].ID,
			Type:      models.TaskTypeFollowUp,
			Priority:  models.PriorityLow,
			DueDate:   now.Add(-24 * time.Hour),
		},
	}

	for _, task := range tasks {
		if err := db.CreateTask(database, task); err != nil {
			return fmt.Errorf("failed to seed task %s: %w", task.Title, err)
		}
	}

	fmt.Printf("✓ Seeded %d contacts, %d deals, %d tasks\n", len(contacts), len(deals), len(tasks))
	return nil
}

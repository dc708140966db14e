// ABOUTME: Deal CLI commands
// ABOUTME: Human-friendly commands for managing deals and stages
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"suivi/db"
	"suivi/engine"
	"suivi/models"
)

// AddDealCommand adds a new deal through the lifecycle engine.
func AddDealCommand(eng *engine.Engine, args []string) error {
	fs := flag.NewFlagSet("add-deal", flag.ExitOnError)
	title := fs.String("title", "", "Deal title (required)")
	contact := fs.String("contact", "", "Contact ID (required)")
	value := fs.Int64("value", 0, "Deal value in cents")
	stage := fs.String("stage", "prospect", "Stage (prospect, engaged, meeting, proposal, won, lost)")
	probability := fs.Int("probability", 0, "Win probability 0-100")
	description := fs.String("description", "", "Deal description")
	_ = fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("--title is required")
	}
	if *contact == "" {
		return fmt.Errorf("--contact is required")
	}

	contactID, err := uuid.Parse(*contact)
	if err != nil {
		return fmt.Errorf("invalid contact ID: %w", err)
	}

	deal, err := eng.CreateDeal(engine.DealInput{
		Title:       *title,
		ContactID:   contactID,
		Value:       *value,
		Stage:       *stage,
		Probability: *probability,
		Description: *description,
	})
	if err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}

	fmt.Printf("✓ Deal created: %s (ID: %s)\n", deal.Title, deal.ID)
	fmt.Printf("  Value: €%.2f\n", float64(deal.Value)/100.0)
	fmt.Printf("  Stage: %s\n", deal.Stage)
	if deal.DueDate != nil {
		fmt.Printf("  Due: %s\n", deal.DueDate.Format("2006-01-02"))
	} else {
		fmt.Printf("  Due: none (terminal stage)\n")
	}

	return nil
}

// SetStageCommand moves a deal to a new stage, resetting its deadline.
func SetStageCommand(eng *engine.Engine, args []string) error {
	fs := flag.NewFlagSet("set-stage", flag.ExitOnError)
	stage := fs.String("stage", "", "New stage (required)")
	_ = fs.Parse(args)

	if *stage == "" {
		return fmt.Errorf("--stage is required")
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("deal ID is required")
	}

	dealID, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid deal ID: %w", err)
	}

	deal, err := eng.ChangeStage(dealID, *stage)
	if err != nil {
		return fmt.Errorf("failed to change stage: %w", err)
	}

	fmt.Printf("✓ Deal %s moved to %s\n", deal.Title, deal.Stage)
	if deal.DueDate != nil {
		fmt.Printf("  New deadline: %s\n", deal.DueDate.Format("2006-01-02"))
	}

	return nil
}

// ListDealsCommand lists deals.
func ListDealsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-deals", flag.ExitOnError)
	stage := fs.String("stage", "", "Filter by stage")
	archived := fs.Bool("archived", false, "Include archived deals")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	if *stage != "" && !models.IsValidStage(*stage) {
		return fmt.Errorf("invalid stage: %s", *stage)
	}

	deals, err := db.FindDeals(database, *stage, *archived, *limit)
	if err != nil {
		return fmt.Errorf("failed to list deals: %w", err)
	}

	if len(deals) == 0 {
		fmt.Println("No deals found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TITLE\tSTAGE\tVALUE\tDUE\tARCHIVED\tID")
	_, _ = fmt.Fprintln(w, "-----\t-----\t-----\t---\t--------\t--")

	for _, d := range deals {
		due := "-"
		if d.DueDate != nil {
			due = d.DueDate.Format("2006-01-02")
		}
		archivedMark := ""
		if d.Archived {
			archivedMark = "yes"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t€%.2f\t%s\t%s\t%s\n",
			d.Title, d.Stage, float64(d.Value)/100.0, due, archivedMark, d.ID)
	}

	_ = w.Flush()
	return nil
}

// DeleteDealCommand deletes a deal.
func DeleteDealCommand(database *sql.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("deal ID is required")
	}

	dealID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid deal ID: %w", err)
	}

	if err := db.DeleteDeal(database, dealID); err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}

	fmt.Printf("✓ Deal %s deleted\n", dealID)
	return nil
}

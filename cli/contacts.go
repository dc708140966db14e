// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for managing contacts
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"suivi/db"
	"suivi/engine"
	"suivi/models"
)

// AddContactCommand adds a new contact.
func AddContactCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	name := fs.String("name", "", "Contact name (required)")
	email := fs.String("email", "", "Email address (required)")
	phone := fs.String("phone", "", "Phone number")
	company := fs.String("company", "", "Company name")
	tags := fs.String("tags", "", "Comma-separated tags")
	status := fs.String("status", "cold", "Status (cold, warm, hot)")
	notes := fs.String("notes", "", "Notes about contact")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	if *email == "" {
		return fmt.Errorf("--email is required")
	}
	if !models.IsValidContactStatus(*status) {
		return fmt.Errorf("invalid status: %s (valid: cold, warm, hot)", *status)
	}

	contact := &models.Contact{
		Name:    *name,
		Email:   *email,
		Phone:   *phone,
		Company: *company,
		Tags:    splitTags(*tags),
		Status:  *status,
		Notes:   *notes,
	}

	if err := db.CreateContact(database, contact); err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	fmt.Printf("✓ Contact created: %s (ID: %s)\n", contact.Name, contact.ID)
	fmt.Printf("  Status: %s\n", contact.Status)
	if contact.Company != "" {
		fmt.Printf("  Company: %s\n", contact.Company)
	}

	return nil
}

// ListContactsCommand lists contacts.
func ListContactsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	query := fs.String("query", "", "Search by name, email, or company")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	contacts, err := db.FindContacts(database, *query, *limit)
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}

	if len(contacts) == 0 {
		fmt.Println("No contacts found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSTATUS\tSCORE\tCOMPANY\tEMAIL\tID")
	_, _ = fmt.Fprintln(w, "----\t------\t-----\t-------\t-----\t--")

	for _, c := range contacts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			c.Name, c.Status, c.Score, c.Company, c.Email, c.ID)
	}

	_ = w.Flush()
	return nil
}

// LogInteractionCommand records an interaction with a contact.
func LogInteractionCommand(eng *engine.Engine, args []string) error {
	fs := flag.NewFlagSet("log-interaction", flag.ExitOnError)
	note := fs.String("note", "", "Note to append to the contact")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("contact ID is required")
	}

	contactID, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid contact ID: %w", err)
	}

	contact, err := eng.LogInteraction(contactID, *note)
	if err != nil {
		return fmt.Errorf("failed to log interaction: %w", err)
	}

	fmt.Printf("✓ Interaction logged for %s\n", contact.Name)
	return nil
}

// DeleteContactCommand deletes a contact.
func DeleteContactCommand(database *sql.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("contact ID is required")
	}

	contactID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid contact ID: %w", err)
	}

	if err := db.DeleteContact(database, contactID); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	fmt.Printf("✓ Contact %s deleted\n", contactID)
	return nil
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}

	var tags []string
	for _, tag := range strings.Split(s, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ABOUTME: Contact-side engine operations
// ABOUTME: Interaction logging that feeds the recency scoring term
package engine

import (
	"github.com/google/uuid"
	"suivi/db"
	"suivi/models"
)

// LogInteraction stamps the contact's last-interaction instant and appends
// an optional note entry. Recency scoring reads the stamp; the score itself
// is not recomputed here.
func (e *Engine) LogInteraction(contactID uuid.UUID, note string) (*models.Contact, error) {
	contact, err := db.GetContact(e.db, contactID)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	contact.LastInteraction = &now
	if note != "" {
		if contact.Notes != "" {
			contact.Notes += "\n"
		}
		contact.Notes += note
	}

	if err := db.UpdateContact(e.db, contact); err != nil {
		return nil, err
	}

	return contact, nil
}

// ABOUTME: Contact database operations
// ABOUTME: Handles CRUD operations, contact lookups, and interaction tracking
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"suivi/models"
)

func CreateContact(db *sql.DB, contact *models.Contact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	if contact.CreatedAt.IsZero() {
		now := time.Now()
		contact.CreatedAt = now
		contact.UpdatedAt = now
	}
	if contact.Status == "" {
		contact.Status = models.StatusCold
	}
	if contact.Score == 0 {
		contact.Score = 1
	}

	tags, err := json.Marshal(contact.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO contacts (id, name, email, phone, company, tags, status, score, last_interaction, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, contact.ID.String(), contact.Name, contact.Email, contact.Phone, contact.Company, string(tags),
		contact.Status, contact.Score, contact.LastInteraction, contact.Notes, contact.CreatedAt, contact.UpdatedAt)

	return err
}

func GetContact(db *sql.DB, id uuid.UUID) (*models.Contact, error) {
	contact := &models.Contact{}
	var tags string

	err := db.QueryRow(`
		SELECT id, name, email, phone, company, tags, status, score, last_interaction, notes, created_at, updated_at
		FROM contacts WHERE id = ?
	`, id.String()).Scan(
		&contact.ID,
		&contact.Name,
		&contact.Email,
		&contact.Phone,
		&contact.Company,
		&tags,
		&contact.Status,
		&contact.Score,
		&contact.LastInteraction,
		&contact.Notes,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &contact.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}

	return contact, nil
}

func UpdateContact(db *sql.DB, contact *models.Contact) error {
	contact.UpdatedAt = time.Now()

	tags, err := json.Marshal(contact.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	result, err := db.Exec(`
		UPDATE contacts
		SET name = ?, email = ?, phone = ?, company = ?, tags = ?, status = ?, score = ?, last_interaction = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, contact.Name, contact.Email, contact.Phone, contact.Company, string(tags), contact.Status,
		contact.Score, contact.LastInteraction, contact.Notes, contact.UpdatedAt, contact.ID.String())
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrContactNotFound
	}
	return nil
}

// SetContactScore persists an explicitly requested rescore.
func SetContactScore(db *sql.DB, id uuid.UUID, score int, now time.Time) error {
	result, err := db.Exec(`
		UPDATE contacts SET score = ?, updated_at = ? WHERE id = ?
	`, score, now, id.String())
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrContactNotFound
	}
	return nil
}

func DeleteContact(db *sql.DB, id uuid.UUID) error {
	result, err := db.Exec(`DELETE FROM contacts WHERE id = ?`, id.String())
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrContactNotFound
	}
	return nil
}

// FindContacts searches contacts by name, email, or company, most recently
// updated first. An empty query matches everything.
func FindContacts(db *sql.DB, query string, limit int) ([]models.Contact, error) {
	if limit <= 0 {
		limit = 50
	}

	pattern := "%" + query + "%"
	rows, err := db.Query(`
		SELECT id, name, email, phone, company, tags, status, score, last_interaction, notes, created_at, updated_at
		FROM contacts
		WHERE name LIKE ? OR email LIKE ? OR company LIKE ?
		ORDER BY updated_at DESC
		LIMIT ?
	`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContacts(rows)
}

// ContactsByStatus returns all contacts with the given status.
func ContactsByStatus(db *sql.DB, status string) ([]models.Contact, error) {
	rows, err := db.Query(`
		SELECT id, name, email, phone, company, tags, status, score, last_interaction, notes, created_at, updated_at
		FROM contacts
		WHERE status = ?
		ORDER BY updated_at DESC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContacts(rows)
}

func scanContacts(rows *sql.Rows) ([]models.Contact, error) {
	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		var tags string

		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &tags, &c.Status,
			&c.Score, &c.LastInteraction, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}

		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

// ABOUTME: Deal database operations
// ABOUTME: Handles deal lifecycle, stage filters, and the archive transaction
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"suivi/models"
)

func CreateDeal(db *sql.DB, deal *models.Deal) error {
	if deal.ID == uuid.Nil {
		deal.ID = uuid.New()
	}
	if deal.CreatedAt.IsZero() {
		now := time.Now()
		deal.CreatedAt = now
		deal.UpdatedAt = now
	}

	_, err := db.Exec(`
		INSERT INTO deals (id, title, contact_id, value, stage, probability, description, due_date, archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, deal.ID.String(), deal.Title, deal.ContactID.String(), deal.Value, deal.Stage, deal.Probability,
		deal.Description, deal.DueDate, deal.Archived, deal.CreatedAt, deal.UpdatedAt)

	return err
}

func GetDeal(db *sql.DB, id uuid.UUID) (*models.Deal, error) {
	deal := &models.Deal{}

	err := db.QueryRow(`
		SELECT id, title, contact_id, value, stage, probability, description, due_date, archived, created_at, updated_at
		FROM deals WHERE id = ?
	`, id.String()).Scan(
		&deal.ID,
		&deal.Title,
		&deal.ContactID,
		&deal.Value,
		&deal.Stage,
		&deal.Probability,
		&deal.Description,
		&deal.DueDate,
		&deal.Archived,
		&deal.CreatedAt,
		&deal.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrDealNotFound
	}
	if err != nil {
		return nil, err
	}

	return deal, nil
}

func UpdateDeal(db *sql.DB, deal *models.Deal) error {
	result, err := db.Exec(`
		UPDATE deals
		SET title = ?, contact_id = ?, value = ?, stage = ?, probability = ?, description = ?, due_date = ?, archived = ?, updated_at = ?
		WHERE id = ?
	`, deal.Title, deal.ContactID.String(), deal.Value, deal.Stage, deal.Probability, deal.Description,
		deal.DueDate, deal.Archived, deal.UpdatedAt, deal.ID.String())
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDealNotFound
	}
	return nil
}

func DeleteDeal(db *sql.DB, id uuid.UUID) error {
	result, err := db.Exec(`DELETE FROM deals WHERE id = ?`, id.String())
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDealNotFound
	}
	return nil
}

// ActiveDeals returns all non-archived deals ordered by due date, deals
// without a deadline last.
func ActiveDeals(db *sql.DB) ([]models.Deal, error) {
	rows, err := db.Query(`
		SELECT id, title, contact_id, value, stage, probability, description, due_date, archived, created_at, updated_at
		FROM deals
		WHERE archived = 0
		ORDER BY due_date IS NULL, due_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeals(rows)
}

// AllDeals returns every deal, archived included, most recently updated
// first.
func AllDeals(db *sql.DB) ([]models.Deal, error) {
	rows, err := db.Query(`
		SELECT id, title, contact_id, value, stage, probability, description, due_date, archived, created_at, updated_at
		FROM deals
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeals(rows)
}

// FindDeals lists deals, optionally filtered by stage, most recently updated
// first. Archived deals are included only when requested.
func FindDeals(db *sql.DB, stage string, includeArchived bool, limit int) ([]models.Deal, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error

	switch {
	case stage != "" && includeArchived:
		rows, err = db.Query(`
			SELECT id, title, contact_id, value, stage, probability, description, due_date, archived, created_at, updated_at
			FROM deals WHERE stage = ?
			ORDER BY updated_at DESC LIMIT ?
		`, stage, limit)
	case stage != "":
		rows, err = db.Query(`
			SELECT id, title, contact_id, value, stage, probability, description, due_date, archived, created_at, updated_at
			FROM deals WHERE stage = ? AND archived = 0
			ORDER BY updated_at DESC LIMIT ?
		`, stage, limit)
	case includeArchived:
		rows, err = db.Query(`
			SELECT id, title, contact_id, value, stage, probability, description, due_date, archived, created_at, updated_at
			FROM deals
			ORDER BY updated_at DESC LIMIT ?
		`, limit)
	default:
		rows, err = db.Query(`
			SELECT id, title, contact_id, value, stage, probability, description, due_date, archived, created_at, updated_at
			FROM deals WHERE archived = 0
			ORDER BY updated_at DESC LIMIT ?
		`, limit)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeals(rows)
}

// DealsByContact returns every deal referencing the contact, including
// archived ones, most recently updated first.
func DealsByContact(db *sql.DB, contactID uuid.UUID) ([]models.Deal, error) {
	rows, err := db.Query(`
		SELECT id, title, contact_id, value, stage, probability, description, due_date, archived, created_at, updated_at
		FROM deals
		WHERE contact_id = ?
		ORDER BY updated_at DESC
	`, contactID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeals(rows)
}

// ArchiveDealWithFollowUp marks a deal archived and inserts its follow-up
// task in one transaction, so a crash leaves either both visible or neither.
// An already-archived deal is left untouched and reported, which keeps the
// sequence idempotent across retries.
func ArchiveDealWithFollowUp(db *sql.DB, dealID uuid.UUID, now time.Time, task *models.Task) (archived bool, err error) {
	tx, err := db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE deals SET archived = 1, updated_at = ? WHERE id = ? AND archived = 0
	`, now, dealID.String())
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows == 0 {
		// Archived by an earlier run; no second follow-up task.
		return false, nil
	}

	var contactID, taskDealID *string
	if task.ContactID != nil {
		s := task.ContactID.String()
		contactID = &s
	}
	if task.DealID != nil {
		s := task.DealID.String()
		taskDealID = &s
	}

	_, err = tx.Exec(`
		INSERT INTO tasks (id, title, description, contact_id, deal_id, type, status, priority, due_date, completed_at, auto_generated, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID.String(), task.Title, task.Description, contactID, taskDealID, task.Type, task.Status,
		task.Priority, task.DueDate, task.CompletedAt, task.AutoGenerated, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func scanDeals(rows *sql.Rows) ([]models.Deal, error) {
	var deals []models.Deal
	for rows.Next() {
		var d models.Deal

		if err := rows.Scan(&d.ID, &d.Title, &d.ContactID, &d.Value, &d.Stage, &d.Probability,
			&d.Description, &d.DueDate, &d.Archived, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}

		deals = append(deals, d)
	}

	return deals, rows.Err()
}

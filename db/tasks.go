// ABOUTME: Task database operations
// ABOUTME: Handles task CRUD, completion stamps, and open-task queries
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"suivi/models"
)

func CreateTask(db *sql.DB, task *models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.CreatedAt.IsZero() {
		now := time.Now()
		task.CreatedAt = now
		task.UpdatedAt = now
	}
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Type == "" {
		task.Type = models.TaskTypeOther
	}

	var contactID, dealID *string
	if task.ContactID != nil {
		s := task.ContactID.String()
		contactID = &s
	}
	if task.DealID != nil {
		s := task.DealID.String()
		dealID = &s
	}

	_, err := db.Exec(`
		INSERT INTO tasks (id, title, description, contact_id, deal_id, type, status, priority, due_date, completed_at, auto_generated, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID.String(), task.Title, task.Description, contactID, dealID, task.Type, task.Status,
		task.Priority, task.DueDate, task.CompletedAt, task.AutoGenerated, task.CreatedAt, task.UpdatedAt)

	return err
}

func GetTask(db *sql.DB, id uuid.UUID) (*models.Task, error) {
	task := &models.Task{}
	var contactID, dealID sql.NullString

	err := db.QueryRow(`
		SELECT id, title, description, contact_id, deal_id, type, status, priority, due_date, completed_at, auto_generated, created_at, updated_at
		FROM tasks WHERE id = ?
	`, id.String()).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&contactID,
		&dealID,
		&task.Type,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.CompletedAt,
		&task.AutoGenerated,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	if contactID.Valid {
		cid, err := uuid.Parse(contactID.String)
		if err == nil {
			task.ContactID = &cid
		}
	}
	if dealID.Valid {
		did, err := uuid.Parse(dealID.String)
		if err == nil {
			task.DealID = &did
		}
	}

	return task, nil
}

func UpdateTask(db *sql.DB, task *models.Task) error {
	task.UpdatedAt = time.Now()

	// Completing a task stamps completed_at; reopening clears it.
	if task.Status == models.TaskStatusCompleted && task.CompletedAt == nil {
		task.CompletedAt = &task.UpdatedAt
	} else if task.Status != models.TaskStatusCompleted {
		task.CompletedAt = nil
	}

	var contactID, dealID *string
	if task.ContactID != nil {
		s := task.ContactID.String()
		contactID = &s
	}
	if task.DealID != nil {
		s := task.DealID.String()
		dealID = &s
	}

	result, err := db.Exec(`
		UPDATE tasks
		SET title = ?, description = ?, contact_id = ?, deal_id = ?, type = ?, status = ?, priority = ?, due_date = ?, completed_at = ?, updated_at = ?
		WHERE id = ?
	`, task.Title, task.Description, contactID, dealID, task.Type, task.Status, task.Priority,
		task.DueDate, task.CompletedAt, task.UpdatedAt, task.ID.String())
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func DeleteTask(db *sql.DB, id uuid.UUID) error {
	result, err := db.Exec(`DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// OpenTasks returns all tasks that are not completed, ordered by due date.
func OpenTasks(db *sql.DB) ([]models.Task, error) {
	rows, err := db.Query(`
		SELECT id, title, description, contact_id, deal_id, type, status, priority, due_date, completed_at, auto_generated, created_at, updated_at
		FROM tasks
		WHERE status != ?
		ORDER BY due_date
	`, models.TaskStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// TasksByDeal returns all tasks referencing a deal, ordered by due date.
func TasksByDeal(db *sql.DB, dealID uuid.UUID) ([]models.Task, error) {
	rows, err := db.Query(`
		SELECT id, title, description, contact_id, deal_id, type, status, priority, due_date, completed_at, auto_generated, created_at, updated_at
		FROM tasks
		WHERE deal_id = ?
		ORDER BY due_date
	`, dealID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

func scanTasks(rows *sql.Rows) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var contactID, dealID sql.NullString

		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &contactID, &dealID, &t.Type, &t.Status,
			&t.Priority, &t.DueDate, &t.CompletedAt, &t.AutoGenerated, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}

		if contactID.Valid {
			cid, err := uuid.Parse(contactID.String)
			if err == nil {
				t.ContactID = &cid
			}
		}
		if dealID.Valid {
			did, err := uuid.Parse(dealID.String)
			if err == nil {
				t.DealID = &did
			}
		}

		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

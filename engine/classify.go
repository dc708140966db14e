// ABOUTME: Task classifier bucketing open tasks by calendar day
// ABOUTME: Splits pending and snoozed tasks into today, overdue, upcoming
package engine

import (
	"time"

	"github.com/google/uuid"
	"suivi/db"
	"suivi/models"
)

// TaskBuckets groups open tasks by the local calendar day containing now.
type TaskBuckets struct {
	Today    []models.Task
	Overdue  []models.Task
	Upcoming []models.Task
}

// Classify buckets tasks relative to the calendar day containing now.
// Completed tasks never appear in any bucket; snoozed tasks re-bucket by
// their new due date like any other open task.
//
//	overdue:  dueDate < startOfToday
//	today:    startOfToday <= dueDate < startOfTomorrow
//	upcoming: dueDate >= startOfTomorrow
func Classify(tasks []models.Task, now time.Time) TaskBuckets {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfTomorrow := startOfToday.Add(24 * time.Hour)

	var buckets TaskBuckets
	for _, task := range tasks {
		if task.Status == models.TaskStatusCompleted {
			continue
		}

		switch {
		case task.DueDate.Before(startOfToday):
			buckets.Overdue = append(buckets.Overdue, task)
		case task.DueDate.Before(startOfTomorrow):
			buckets.Today = append(buckets.Today, task)
		default:
			buckets.Upcoming = append(buckets.Upcoming, task)
		}
	}

	return buckets
}

// ClassifyTasks loads all open tasks and buckets them against the clock.
func (e *Engine) ClassifyTasks() (TaskBuckets, error) {
	tasks, err := db.OpenTasks(e.db)
	if err != nil {
		return TaskBuckets{}, err
	}

	return Classify(tasks, e.clock.Now()), nil
}

// Snooze pushes a task's due date out and marks it snoozed; the next
// classification re-buckets it.
func (e *Engine) Snooze(taskID uuid.UUID, until time.Time) (*models.Task, error) {
	task, err := db.GetTask(e.db, taskID)
	if err != nil {
		return nil, err
	}

	task.DueDate = until
	task.Status = models.TaskStatusSnoozed
	if err := db.UpdateTask(e.db, task); err != nil {
		return nil, err
	}

	return task, nil
}

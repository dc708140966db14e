// ABOUTME: Task CLI commands
// ABOUTME: Classified task views, completion, and snoozing
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"suivi/db"
	"suivi/engine"
	"suivi/models"
)

// AddTaskCommand adds a new task.
func AddTaskCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-task", flag.ExitOnError)
	title := fs.String("title", "", "Task title (required)")
	description := fs.String("description", "", "Task description")
	contact := fs.String("contact", "", "Related contact ID")
	deal := fs.String("deal", "", "Related deal ID")
	taskType := fs.String("type", "other", "Type (call, email, meeting, follow-up, other)")
	priority := fs.String("priority", "medium", "Priority (high, medium, low)")
	due := fs.String("due", "", "Due date, YYYY-MM-DD or RFC3339 (required)")
	_ = fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("--title is required")
	}
	if *due == "" {
		return fmt.Errorf("--due is required")
	}
	if !models.IsValidTaskType(*taskType) {
		return fmt.Errorf("invalid type: %s", *taskType)
	}
	if !models.IsValidPriority(*priority) {
		return fmt.Errorf("invalid priority: %s", *priority)
	}

	dueDate, err := parseDueDate(*due)
	if err != nil {
		return err
	}

	task := &models.Task{
		Title:       *title,
		Description: *description,
		Type:        *taskType,
		Status:      models.TaskStatusPending,
		Priority:    *priority,
		DueDate:     dueDate,
	}

	if *contact != "" {
		contactID, err := uuid.Parse(*contact)
		if err != nil {
			return fmt.Errorf("invalid contact ID: %w", err)
		}
		task.ContactID = &contactID
	}
	if *deal != "" {
		dealID, err := uuid.Parse(*deal)
		if err != nil {
			return fmt.Errorf("invalid deal ID: %w", err)
		}
		task.DealID = &dealID
	}

	if err := db.CreateTask(database, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	fmt.Printf("✓ Task created: %s (ID: %s)\n", task.Title, task.ID)
	fmt.Printf("  Due: %s\n", task.DueDate.Format("2006-01-02"))

	return nil
}

// ListTasksCommand shows open tasks bucketed into overdue/today/upcoming.
func ListTasksCommand(eng *engine.Engine, args []string) error {
	buckets, err := eng.ClassifyTasks()
	if err != nil {
		return fmt.Errorf("failed to classify tasks: %w", err)
	}

	printBucket("OVERDUE", buckets.Overdue)
	printBucket("TODAY", buckets.Today)
	printBucket("UPCOMING", buckets.Upcoming)

	return nil
}

func printBucket(label string, tasks []models.Task) {
	fmt.Printf("%s (%d)\n", label, len(tasks))
	if len(tasks) == 0 {
		fmt.Println()
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, t := range tasks {
		auto := ""
		if t.AutoGenerated {
			auto = "auto"
		}
		_, _ = fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\n",
			t.Title, t.Type, t.Priority, t.DueDate.Format("2006-01-02"), auto, t.ID)
	}
	_ = w.Flush()
	fmt.Println()
}

// CompleteTaskCommand marks a task completed.
func CompleteTaskCommand(database *sql.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("task ID is required")
	}

	taskID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid task ID: %w", err)
	}

	task, err := db.GetTask(database, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	task.Status = models.TaskStatusCompleted
	if err := db.UpdateTask(database, task); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	fmt.Printf("✓ Task completed: %s\n", task.Title)
	return nil
}

// SnoozeTaskCommand pushes a task's due date out.
func SnoozeTaskCommand(eng *engine.Engine, args []string) error {
	fs := flag.NewFlagSet("snooze-task", flag.ExitOnError)
	until := fs.String("until", "", "New due date, YYYY-MM-DD or RFC3339 (required)")
	_ = fs.Parse(args)

	if *until == "" {
		return fmt.Errorf("--until is required")
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("task ID is required")
	}

	taskID, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid task ID: %w", err)
	}

	untilDate, err := parseDueDate(*until)
	if err != nil {
		return err
	}

	task, err := eng.Snooze(taskID, untilDate)
	if err != nil {
		return fmt.Errorf("failed to snooze task: %w", err)
	}

	fmt.Printf("✓ Task snoozed until %s: %s\n", task.DueDate.Format("2006-01-02"), task.Title)
	return nil
}

func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD or RFC3339)", s)
}

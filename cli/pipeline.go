// ABOUTME: Pipeline CLI commands
// ABOUTME: Tick, watch daemon, health rollup, and contact scoring
package cli

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"suivi/engine"
	"suivi/models"
)

// minWatchInterval guards against busy-looping the expiry scan.
const minWatchInterval = 10 * time.Second

// TickCommand runs one expiry scan.
func TickCommand(eng *engine.Engine, args []string) error {
	result, err := eng.Tick()
	if err != nil {
		return fmt.Errorf("tick failed: %w", err)
	}

	if result.Dropped {
		fmt.Println("Tick already running, trigger dropped")
		return nil
	}

	fmt.Printf("✓ Tick %s: %d deal(s) archived, %d follow-up task(s) created\n",
		result.RunID, result.ArchivedCount, result.TasksCreated)
	return nil
}

// WatchCommand runs the expiry scan once at startup and then on an interval
// until interrupted. The engine owns no timer; cadence lives here.
func WatchCommand(eng *engine.Engine, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	interval := fs.Duration("interval", time.Hour, "Scan interval (minimum 10s)")
	_ = fs.Parse(args)

	if err := validateInterval(*interval); err != nil {
		return err
	}

	fmt.Printf("Watching pipeline (interval %s). Ctrl+C to stop.\n", *interval)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	runTick := func() {
		result, err := eng.Tick()
		if err != nil {
			fmt.Fprintf(os.Stderr, "tick failed: %v\n", err)
			return
		}
		if result.ArchivedCount > 0 {
			fmt.Printf("[%s] archived %d deal(s), created %d task(s)\n",
				time.Now().Format("15:04:05"), result.ArchivedCount, result.TasksCreated)
		}
	}

	runTick()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			runTick()
		case <-sigs:
			fmt.Println("\nStopping watch")
			return nil
		}
	}
}

func validateInterval(interval time.Duration) error {
	if interval < minWatchInterval {
		return fmt.Errorf("interval %s is below the minimum %s", interval, minWatchInterval)
	}
	return nil
}

// HealthCommand prints the pipeline health rollup.
func HealthCommand(eng *engine.Engine, args []string) error {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	window := fs.Int("expiring-days", engine.DefaultExpiringSoonDays, "Expiring-soon window in days")
	_ = fs.Parse(args)

	summary, err := eng.Health(*window)
	if err != nil {
		return fmt.Errorf("failed to aggregate health: %w", err)
	}

	fmt.Println("PIPELINE HEALTH")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STAGE\tCOUNT\tVALUE")
	for _, stage := range models.Stages {
		stats, ok := summary.ByStage[stage]
		if !ok {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t€%.2f\n", stats.Stage, stats.Count, float64(stats.Value)/100.0)
	}
	_ = w.Flush()

	fmt.Printf("\nActive deals: %d (€%.2f)\n", summary.ActiveCount, float64(summary.ActiveValue)/100.0)
	fmt.Printf("Expiring within %dd: %d\n", *window, summary.ExpiringSoon)
	fmt.Printf("Win rate: %.0f%%\n", summary.WinRate*100)

	fmt.Printf("\nContacts: %d cold / %d warm / %d hot, avg score %.1f\n",
		summary.ContactsByStatus[models.StatusCold],
		summary.ContactsByStatus[models.StatusWarm],
		summary.ContactsByStatus[models.StatusHot],
		summary.AvgLeadScore)

	return nil
}

// ScoreCommand computes a contact's lead score on demand.
func ScoreCommand(eng *engine.Engine, args []string) error {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	persist := fs.Bool("persist", false, "Persist the recomputed score on the contact")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("contact ID is required")
	}

	contactID, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid contact ID: %w", err)
	}

	var score int
	if *persist {
		score, err = eng.Rescore(contactID)
	} else {
		score, err = eng.Score(contactID)
	}
	if err != nil {
		return fmt.Errorf("failed to score contact: %w", err)
	}

	fmt.Printf("Lead score: %d/5\n", score)
	if *persist {
		fmt.Println("Score persisted")
	}
	return nil
}

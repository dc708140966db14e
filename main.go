// ABOUTME: Entry point for the suivi pipeline CLI and MCP server
// ABOUTME: Routes to crm, pipeline, seed, or mcp commands based on arguments
package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"

	"suivi/cli"
	"suivi/db"
	"suivi/engine"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/suivi/suivi.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("suivi version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	finalDBPath := getDatabasePath(*dbPath)
	database, err := db.OpenDatabase(finalDBPath)
	if err != nil {
		stdlog.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	eng := engine.New(database, engine.SystemClock(), log.New(os.Stderr))

	switch command {
	case "mcp":
		if err := cli.MCPCommand(eng, database); err != nil {
			stdlog.Fatalf("MCP server failed: %v", err)
		}

	case "crm":
		stdlog.Printf("Database: %s", finalDBPath)

		if *initOnly {
			stdlog.Println("Database initialized successfully")
			os.Exit(0)
		}

		if len(commandArgs) == 0 {
			fmt.Println("Error: crm requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		crmCommand := commandArgs[0]
		crmArgs := commandArgs[1:]

		switch crmCommand {
		// Contact commands
		case "add-contact":
			if err := cli.AddContactCommand(database, crmArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}
		case "list-contacts":
			if err := cli.ListContactsCommand(database, crmArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}
		case "log-interaction":
			if err := cli.LogInteractionCommand(eng, crmArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}
		case "delete-contact":
			if err := cli.DeleteContactCommand(database, crmArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}

		// Deal commands
		case "add-deal":
			if err := cli.AddDealCommand(eng, crmArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}
		case "set-stage":
			if err := cli.SetStageCommand(eng, crmArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}
		case "list-deals":
			if err := cli.ListDealsCommand(database, crmArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}
		case "delete-deal":
			if err := cli.DeleteDealCommand(database, crmArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}

		// Task commands
		case "add-task":
			if err := cli.AddTaskCommand(database, crmArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}
		case "list-tasks":
			if err := cli.ListTasksCommand(eng, crmArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}
		case "complete-task":
			if err := cli.CompleteTaskCommand(database, crmArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}
		case "snooze-task":
			if err := cli.SnoozeTaskCommand(eng, crmArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}

		default:
			fmt.Printf("Unknown crm command: %s\n\n", crmCommand)
			printUsage()
			os.Exit(1)
		}

	case "pipeline":
		if len(commandArgs) == 0 {
			fmt.Println("Error: pipeline requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		pipelineCommand := commandArgs[0]
		pipelineArgs := commandArgs[1:]

		switch pipelineCommand {
		case "tick":
			if err := cli.TickCommand(eng, pipelineArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}
		case "watch":
			if err := cli.WatchCommand(eng, pipelineArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}
		case "health":
			if err := cli.HealthCommand(eng, pipelineArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}
		case "score":
			if err := cli.ScoreCommand(eng, pipelineArgs); err != nil {
				stdlog.Fatalf("Error: %v", err)
			}

		default:
			fmt.Printf("Unknown pipeline command: %s\n\n", pipelineCommand)
			printUsage()
			os.Exit(1)
		}

	case "seed":
		if err := cli.SeedCommand(eng, database, commandArgs); err != nil {
			stdlog.Fatalf("Error: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func getDatabasePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	return filepath.Join(xdg.DataHome, "suivi", "suivi.db")
}

func printUsage() {
	fmt.Printf(`suivi v%s - Sales pipeline tracker

USAGE:
  suivi [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/suivi/suivi.db)
  --init                 Initialize database and exit (use with 'crm')

COMMANDS:
  mcp                    Start MCP server for Claude Desktop
  crm                    Contact, deal, and task management
  pipeline               Pipeline lifecycle commands
  seed                   Load demo data into an empty database

CRM COMMANDS:
  suivi crm add-contact     Add a new contact
    --name <name>             Contact name (required)
    --email <email>           Email address
    --phone <phone>           Phone number
    --company <company>       Company name
    --status <status>         cold, warm, or hot (default: cold)
    --tags <a,b>              Comma-separated tags
    --notes <notes>           Notes about contact

  suivi crm list-contacts   List contacts
    --query <text>            Search by name, email, or company
    --status <status>         Filter by status
    --limit <n>               Max results (default: 50)

  suivi crm log-interaction <id>  Record an interaction with a contact
    --note <text>             Optional note to append

  suivi crm delete-contact <id>  Delete a contact

  suivi crm add-deal        Add a new deal
    --title <title>           Deal title (required)
    --contact <id>            Contact ID (required)
    --value <cents>           Deal value in euro cents
    --stage <stage>           Stage (default: prospect)
    --probability <n>         Win probability 0-100
    --description <text>      Description

  suivi crm set-stage <id> <stage>  Move a deal to a new stage

  suivi crm list-deals      List deals
    --stage <stage>           Filter by stage
    --archived                Include archived deals
    --limit <n>               Max results (default: 50)

  suivi crm delete-deal <id>   Delete a deal

  suivi crm add-task        Add a new task
    --title <title>           Task title (required)
    --due <date>              Due date (RFC3339 or YYYY-MM-DD, required)
    --type <type>             call, email, meeting, follow-up, other
    --priority <p>            high, medium, low (default: medium)
    --contact <id>            Linked contact ID
    --deal <id>               Linked deal ID

  suivi crm list-tasks      List open tasks grouped by overdue/today/upcoming

  suivi crm complete-task <id>  Mark a task completed

  suivi crm snooze-task <id> <date>  Push a task's due date

PIPELINE COMMANDS:
  suivi pipeline tick       Run one expiry pass over active deals
  suivi pipeline watch      Run expiry passes on an interval
    --interval <dur>          Interval between passes (default: 1h, min: 10s)
  suivi pipeline health     Show pipeline health summary
  suivi pipeline score <id> Compute a contact's lead score
    --persist                 Store the computed score

EXAMPLES:
  # Start MCP server for Claude Desktop
  suivi mcp

  # Add a contact and a deal
  suivi crm add-contact --name "Marie Dubois" --email "marie@techstart.fr" --status hot
  suivi crm add-deal --title "CRM rollout" --contact <id> --value 2500000 --stage proposal

  # Run the pipeline expiry loop
  suivi pipeline watch --interval 30m

`, version)
}

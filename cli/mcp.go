// ABOUTME: MCP server subcommand
// ABOUTME: Exposes the engine surface as tools over stdio
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"suivi/engine"
	"suivi/handlers"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(eng *engine.Engine, database *sql.DB) error {
	log.Println("Starting suivi MCP Server...")

	// Create handlers
	contactHandlers := handlers.NewContactHandlers(eng, database)
	dealHandlers := handlers.NewDealHandlers(eng, database)
	taskHandlers := handlers.NewTaskHandlers(eng, database)
	pipelineHandlers := handlers.NewPipelineHandlers(eng)

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "suivi",
		Version: "0.1.0",
	}, nil)

	// Register tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search for contacts by name, email, or company",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_interaction",
		Description: "Log an interaction with a contact and update the last-interaction timestamp",
	}, contactHandlers.LogInteraction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_deal",
		Description: "Create a new deal; the stage policy sets its deadline",
	}, dealHandlers.CreateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "change_stage",
		Description: "Move a deal to a new stage, resetting its SLA deadline",
	}, dealHandlers.ChangeStage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_deal",
		Description: "Get a deal by ID",
	}, dealHandlers.GetDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_task",
		Description: "Add a new task with optional contact and deal links",
	}, taskHandlers.AddTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task completed",
	}, taskHandlers.CompleteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "snooze_task",
		Description: "Push a task's due date out and mark it snoozed",
	}, taskHandlers.SnoozeTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pipeline_tick",
		Description: "Run one expiry scan: archive overdue deals and create follow-up tasks",
	}, pipelineHandlers.Tick)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pipeline_health",
		Description: "Aggregate pipeline health: per-stage rollups, expiring-soon, win rate",
	}, pipelineHandlers.Health)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "contact_score",
		Description: "Compute a contact's 1-5 lead score on demand",
	}, pipelineHandlers.Score)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify_tasks",
		Description: "Bucket open tasks into today, overdue, and upcoming",
	}, pipelineHandlers.ClassifyTasks)

	// Run server on stdio transport
	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}

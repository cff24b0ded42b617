// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to search and manage documents via stdio
package commands

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/gugugu/docrag/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Run docrag as an MCP (Model Context Protocol) server over stdio,
exposing document processing, search, and grounded question answering
as agent tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by the agent host)
  docrag mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "docrag": {
  #       "command": "docrag",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - embedding and chat tools will not work")
	}

	c, err := openCore(true)
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer(
		"docrag",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, c.cfg, c.manager, c.orch)

	log.Println("docrag MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		return err
	}

	// Flush store state on orderly shutdown
	return c.store.Persist()
}

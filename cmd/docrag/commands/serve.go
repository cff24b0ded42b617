// ABOUTME: Serve command runs the HTTP API server
// ABOUTME: Exposes processing, search, and grounded chat over REST with SSE
package commands

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/gugugu/docrag/internal/httpapi"
	"github.com/joho/godotenv"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Run the docrag HTTP API: document processing, retrieval-only search,
and grounded chat with SSE streaming.

Examples:
  docrag serve
  docrag serve --addr :9000`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides DOCRAG_SERVER_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - embedding and chat endpoints will not work")
	}

	c, err := openCore(true)
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = c.cfg.ServerAddr
	}

	server := httpapi.NewServer(c.cfg, c.manager, c.orch, c.client)
	log.Printf("docrag HTTP server listening on %s", addr)
	return server.Router().Run(addr)
}

// ABOUTME: Main entry point for the standalone HTTP API server
// ABOUTME: Initializes the store, RAG pipeline, and gin router
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/gugugu/docrag/internal/chunker"
	"github.com/gugugu/docrag/internal/config"
	"github.com/gugugu/docrag/internal/httpapi"
	"github.com/gugugu/docrag/internal/llm"
	"github.com/gugugu/docrag/internal/rag"
	"github.com/gugugu/docrag/internal/search"
	"github.com/gugugu/docrag/internal/store"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - embedding and chat endpoints will not work")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	st, err := store.Open(cfg.StorageDir)
	if err != nil {
		log.Fatalf("Failed to open vector store: %v", err)
	}

	client, err := llm.NewClient(llm.ConfigFromApp(cfg))
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	manager := rag.NewManager(st, chunker.New(cfg.ChunkSize, cfg.ChunkOverlap), client, cfg.DocumentDir)
	orch := rag.NewOrchestrator(client, client, search.NewEngine(st), cfg.CandidateMultiplier)

	server := httpapi.NewServer(cfg, manager, orch, client)
	log.Printf("docrag HTTP server listening on %s", cfg.ServerAddr)
	if err := server.Router().Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

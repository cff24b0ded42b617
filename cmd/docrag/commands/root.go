// ABOUTME: Root command and shared bootstrap for the docrag CLI
// ABOUTME: Builds the store, manager, and orchestrator for subcommands
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gugugu/docrag/internal/chunker"
	"github.com/gugugu/docrag/internal/config"
	"github.com/gugugu/docrag/internal/llm"
	"github.com/gugugu/docrag/internal/rag"
	"github.com/gugugu/docrag/internal/search"
	"github.com/gugugu/docrag/internal/store"
)

var (
	outputFormat string
	quiet        bool
	verbose      bool
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docrag",
		Short: "Document RAG: chunk, embed, search, and chat over your documents",
		Long: `docrag indexes text and markdown documents into a local vector store
and answers questions grounded in the most relevant chunks.

Documents are chunked, embedded via OpenAI, and persisted locally.
Retrieval is cosine similarity, optionally re-ranked with keyword
overlap (advanced mode).`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format: table or json")
	cmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress non-essential output")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")

	cmd.AddCommand(
		NewProcessCmd(),
		NewSearchCmd(),
		NewChatCmd(),
		NewListCmd(),
		NewRmCmd(),
		NewStatsCmd(),
		NewServeCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

// core bundles the initialized retrieval components
type core struct {
	cfg     *config.Config
	store   *store.Store
	manager *rag.Manager
	orch    *rag.Orchestrator
	client  *llm.Client
}

// openCore initializes config and the vector store. When withLLM is set an
// OpenAI client is required and the manager/orchestrator can embed and
// complete; without it only store-local operations (list, rm, stats) work.
func openCore(withLLM bool) (*core, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	st, err := store.Open(cfg.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("opening vector store: %w", err)
	}

	c := &core{cfg: cfg, store: st}

	var embedder rag.Embedder
	if withLLM {
		if os.Getenv("OPENAI_API_KEY") == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		client, err := llm.NewClient(llm.ConfigFromApp(cfg))
		if err != nil {
			return nil, fmt.Errorf("initializing OpenAI client: %w", err)
		}
		c.client = client
		embedder = client
	}

	c.manager = rag.NewManager(st, chunker.New(cfg.ChunkSize, cfg.ChunkOverlap), embedder, cfg.DocumentDir)
	if c.client != nil {
		c.orch = rag.NewOrchestrator(c.client, c.client, search.NewEngine(st), cfg.CandidateMultiplier)
	}
	return c, nil
}

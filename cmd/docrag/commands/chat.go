// ABOUTME: CLI command for grounded chat over indexed documents
// ABOUTME: Streams the answer to the terminal, then prints sources
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gugugu/docrag/internal/models"
	"github.com/gugugu/docrag/internal/rag"
	"github.com/joho/godotenv"
)

var (
	chatTopK      int
	chatFile      string
	chatMode      string
	chatMaxTokens int
	chatNoStream  bool
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <question>",
		Short: "Ask a question grounded in your documents",
		Long: `Answer a question using the most relevant indexed chunks as context.

Mode "standard" ranks by cosine similarity; "advanced" re-ranks the
semantic candidates with keyword overlap.

Examples:
  docrag chat "how does scoring work?"
  docrag chat --mode advanced "victory conditions"
  docrag chat --file rules.md --no-stream "how many players?"`,
		Args: cobra.ExactArgs(1),
		RunE: runChat,
	}

	cmd.Flags().IntVar(&chatTopK, "top-k", 5, "Number of chunks to ground the answer on")
	cmd.Flags().StringVar(&chatFile, "file", "", "Restrict retrieval to one document")
	cmd.Flags().StringVar(&chatMode, "mode", "standard", "Retrieval mode: standard or advanced")
	cmd.Flags().IntVar(&chatMaxTokens, "max-tokens", 1000, "Maximum completion tokens")
	cmd.Flags().BoolVar(&chatNoStream, "no-stream", false, "Wait for the full answer instead of streaming")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(chatTopK, "top-k"); err != nil {
		return err
	}

	c, err := openCore(true)
	if err != nil {
		return err
	}

	scope := ""
	if chatFile != "" {
		scope, err = c.manager.Resolve(chatFile)
		if err != nil {
			return err
		}
	}

	req := rag.AnswerRequest{
		Query:       args[0],
		Scope:       scope,
		TopK:        chatTopK,
		MinScore:    c.cfg.DefaultMinScore,
		Mode:        rag.Mode(chatMode),
		MaxTokens:   chatMaxTokens,
		Temperature: 0.7,
	}

	if chatNoStream {
		resp, err := c.orch.Answer(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Response)
		printSources(cmd, resp.Sources)
		return nil
	}

	events, err := c.orch.AnswerStream(cmd.Context(), req)
	if err != nil {
		return err
	}

	var sources []models.Citation
	for ev := range events {
		switch ev.Type {
		case models.StreamEventContent:
			fmt.Fprint(cmd.OutOrStdout(), ev.Content)
		case models.StreamEventDone:
			sources = ev.Sources
		case models.StreamEventError:
			fmt.Fprintln(cmd.OutOrStdout())
			return fmt.Errorf("stream failed: %s", ev.Error)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout())
	printSources(cmd, sources)
	return nil
}

func printSources(cmd *cobra.Command, sources []models.Citation) {
	if quiet {
		return
	}
	if len(sources) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\n(no sources found)")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nSources:")
	for _, s := range sources {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s (score %.3f)\n", models.ChunkID(s.DocumentID, s.ChunkIndex), s.Score)
	}
}

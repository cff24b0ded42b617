// ABOUTME: CLI command for retrieval-only search over indexed chunks
// ABOUTME: Prints ranked chunk excerpts with similarity scores
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gugugu/docrag/internal/rag"
	"github.com/joho/godotenv"
)

var (
	searchTopK   int
	searchFile   string
	searchMinSim float64
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search indexed document chunks",
		Long: `Search indexed chunks by semantic similarity, without calling the
completion service.

Examples:
  docrag search "victory conditions"
  docrag search --top-k 10 "setup phase"
  docrag search --file rules.md --format json "scoring"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchTopK, "top-k", 5, "Maximum results to return")
	cmd.Flags().StringVar(&searchFile, "file", "", "Restrict search to one document")
	cmd.Flags().Float64Var(&searchMinSim, "min-similarity", 0, "Minimum similarity score")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(searchTopK, "top-k"); err != nil {
		return err
	}

	c, err := openCore(true)
	if err != nil {
		return err
	}

	scope := ""
	if searchFile != "" {
		scope, err = c.manager.Resolve(searchFile)
		if err != nil {
			return err
		}
	}

	results, err := c.orch.Search(cmd.Context(), rag.SearchRequest{
		Query:    args[0],
		Scope:    scope,
		TopK:     searchTopK,
		MinScore: searchMinSim,
	})
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No chunks found for query: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "SCORE\tSOURCE\tEXCERPT\n")
		fmt.Fprintf(w, "-----\t------\t-------\n")
		for _, r := range results {
			fmt.Fprintf(w, "%.3f\t%s#%d\t%s\n",
				r.Score,
				truncate(r.DocumentID, 40),
				r.ChunkIndex,
				truncate(r.Content, 60))
		}
		w.Flush()

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
		}
	}

	return nil
}

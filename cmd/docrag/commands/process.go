// ABOUTME: CLI command to process documents into the vector store
// ABOUTME: Chunks, embeds, and indexes one or more files
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

var (
	processForce bool
)

// NewProcessCmd creates the process command
func NewProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <file>...",
		Short: "Process documents into the vector store",
		Long: `Process one or more documents: chunk, embed, and index them.

A file may be a path or a bare name resolved under the configured
document root. Unchanged documents are skipped unless --force is set.
Multiple files are processed independently: one failure does not stop
the rest.

Examples:
  docrag process rules.md
  docrag process --force rules.md notes.txt
  docrag process --format json doc/guide.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: runProcess,
	}

	cmd.Flags().BoolVar(&processForce, "force", false, "Reprocess even if content is unchanged")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	c, err := openCore(true)
	if err != nil {
		return err
	}

	results := c.manager.ProcessBatch(cmd.Context(), args, processForce)

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "FILE\tCHUNKS\tSTATUS\n")
		fmt.Fprintf(w, "----\t------\t------\n")
		for _, r := range results {
			status := "processed"
			switch {
			case r.Error != "":
				status = "error: " + r.Error
			case !r.Processed:
				status = "unchanged"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\n", r.Input, r.ChunkCount, truncate(status, 70))
		}
		w.Flush()
	}

	failures := 0
	for _, r := range results {
		if r.Error != "" {
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d documents failed", failures, len(results))
	}
	return nil
}

// ABOUTME: CLI command to show vector store statistics
// ABOUTME: Document and chunk counts plus on-disk size
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show vector store statistics",
		Long: `Show document count, chunk count, average chunks per document, and
the approximate on-disk size of the vector store.

Examples:
  docrag stats
  docrag stats --format json`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	c, err := openCore(false)
	if err != nil {
		return err
	}

	stats := c.manager.Stats()

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Documents:          %d\n", stats.DocumentCount)
	fmt.Fprintf(cmd.OutOrStdout(), "Chunks:             %d\n", stats.ChunkCount)
	fmt.Fprintf(cmd.OutOrStdout(), "Avg chunks per doc: %.1f\n", stats.AvgChunksPerDoc)
	fmt.Fprintf(cmd.OutOrStdout(), "On-disk size:       %.2f MB\n", stats.StorageSizeMB)
	return nil
}

// ABOUTME: CLI command to list indexed documents
// ABOUTME: Shows chunk counts, processing time, and source file liveness
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed documents",
		Long: `List all documents in the vector store with their chunk counts and
when they were processed.

Examples:
  docrag list
  docrag list --format json`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	c, err := openCore(false)
	if err != nil {
		return err
	}

	docs := c.manager.List()
	if len(docs) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No documents indexed")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "FILE\tCHUNKS\tPROCESSED\tON DISK\n")
		fmt.Fprintf(w, "----\t------\t---------\t-------\n")
		for _, d := range docs {
			onDisk := "yes"
			if !d.Exists {
				onDisk = "missing"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
				truncate(d.DocumentID, 50),
				d.ChunkCount,
				formatTime(d.ProcessedAt),
				onDisk)
		}
		w.Flush()

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d document(s)\n", len(docs))
		}
	}

	return nil
}

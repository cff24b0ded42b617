// ABOUTME: CLI command to remove documents from the vector store
// ABOUTME: Removing an unknown document succeeds as a no-op
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRmCmd creates the rm command
func NewRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <file>...",
		Short: "Remove documents from the vector store",
		Long: `Remove documents and their chunks from the vector store. The source
files are untouched. Removing a document that is not indexed is a
successful no-op.

Examples:
  docrag rm rules.md
  docrag rm /abs/path/notes.txt old.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRm,
	}

	return cmd
}

func runRm(cmd *cobra.Command, args []string) error {
	c, err := openCore(false)
	if err != nil {
		return err
	}

	for _, arg := range args {
		removed, err := c.manager.Delete(arg)
		if err != nil {
			return fmt.Errorf("removing %s: %w", arg, err)
		}
		if quiet {
			continue
		}
		if removed {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", arg)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Not indexed: %s (nothing to remove)\n", arg)
		}
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"cornerpeek/internal/journal"
)

var pruneOpts struct {
	olderThan time.Duration
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old transitions from the journal",
	Long: `Remove journal entries older than a duration.

Examples:
  # Keep only the last week
  cornerpeek prune --older-than 168h`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().DurationVar(&pruneOpts.olderThan, "older-than", 0,
		"Remove transitions older than this duration (e.g. 48h)")
}

func runPrune(cmd *cobra.Command, args []string) error {
	if pruneOpts.olderThan <= 0 {
		return fmt.Errorf("specify a positive --older-than")
	}

	path, err := journalPath()
	if err != nil {
		return err
	}
	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	n, err := j.Prune(ctx, time.Now().Add(-pruneOpts.olderThan))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s transitions\n", humanize.Comma(n))
	return nil
}

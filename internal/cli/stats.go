package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"cornerpeek/internal/journal"
	"cornerpeek/internal/peek"
)

var statsOpts struct {
	recent int
	since  time.Duration
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded peek transitions",
	Long: `Show how often each peek state was entered, read from the journal.

Examples:
  # Totals for all time
  cornerpeek stats

  # Last day, with the 20 most recent transitions
  cornerpeek stats --since 24h --recent 20`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().IntVar(&statsOpts.recent, "recent", 10,
		"Number of recent transitions to list (0 to skip)")
	statsCmd.Flags().DurationVar(&statsOpts.since, "since", 0,
		"Only count transitions from the last duration (e.g. 24h)")
}

func runStats(cmd *cobra.Command, args []string) error {
	path, err := journalPath()
	if err != nil {
		return err
	}
	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	var since time.Time
	if statsOpts.since > 0 {
		since = now.Add(-statsOpts.since)
	}

	summary, err := j.Summary(ctx, since)
	if err != nil {
		return err
	}

	var recent []journal.Transition
	if statsOpts.recent > 0 {
		if recent, err = j.Recent(ctx, statsOpts.recent); err != nil {
			return err
		}
	}

	writeStats(cmd.OutOrStdout(), summary, recent, now)
	return nil
}

// writeStats prints per-state counts followed by recent transitions
func writeStats(w io.Writer, s journal.Summary, recent []journal.Transition, now time.Time) {
	if s.Total == 0 {
		fmt.Fprintln(w, "No transitions recorded")
		return
	}

	for _, st := range []peek.State{peek.Hidden, peek.Peeking, peek.Expanded} {
		fmt.Fprintf(w, "%-9s %s\n", st, humanize.Comma(int64(s.Counts[st.String()])))
	}
	fmt.Fprintf(w, "%-9s %s\n", "total", humanize.Comma(int64(s.Total)))
	fmt.Fprintf(w, "last      %s\n", humanize.RelTime(s.Last, now, "ago", "from now"))

	if len(recent) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent:")
	for _, t := range recent {
		fmt.Fprintf(w, "  %-9s %s\n", t.State, humanize.RelTime(t.At, now, "ago", "from now"))
	}
}

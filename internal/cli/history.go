package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khanglvm/portfolio-mcp/internal/storage"
)

var errHistoryDisabled = errors.New("call history is disabled\n\n💡 Set history.enabled: true in portfolio-mcp.yaml or PORTFOLIO_MCP_HISTORY_ENABLED=true")

type historyOutput struct {
	Counts []storage.ToolCount  `json:"counts"`
	Recent []storage.CallRecord `json:"recent"`
}

// NewHistoryCmd creates the 'history' command.
func NewHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		limit      int
		since      time.Duration
		prune      bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or prune the tool call history",
		Long: `Show per-tool call counts and the most recent calls recorded by the
server, or delete records older than history.retention with --prune.

History is recorded only when history.enabled is true.`,
		Example: `  portfolio-mcp history
  portfolio-mcp history --since 24h --limit 5
  portfolio-mcp history --prune`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if prune {
				return runHistoryPrune(cmd, opts)
			}
			return runHistory(cmd, opts, limit, since, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of recent calls to show")
	cmd.Flags().DurationVar(&since, "since", 0, "Only count calls newer than this (e.g. 24h); 0 counts everything")
	cmd.Flags().BoolVar(&prune, "prune", false, "Delete records older than the configured retention")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *rootOptions, limit int, since time.Duration, jsonOutput bool) error {
	a, err := opts.newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.history.Enabled() {
		return errHistoryDisabled
	}

	ctx := commandContext(cmd)

	var cutoff time.Time
	if since > 0 {
		cutoff = time.Now().Add(-since)
	}
	counts, err := a.history.ToolCounts(ctx, cutoff)
	if err != nil {
		return err
	}
	recent, err := a.history.RecentCalls(ctx, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, historyOutput{Counts: counts, Recent: recent})
	}

	if len(counts) == 0 {
		fmt.Fprintln(out, "No calls recorded.")
		return nil
	}

	renderTitle(out, "Calls per tool")
	for _, c := range counts {
		line := fmt.Sprintf("  %-20s %5d calls  avg %s", c.Tool, c.Calls, c.AvgDuration.Round(time.Microsecond))
		if c.Failures > 0 {
			line += "  " + errorStyle.Render(fmt.Sprintf("%d failed", c.Failures))
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out)

	renderTitle(out, "Recent calls")
	for _, rec := range recent {
		status := tagStyle.Render("ok")
		if !rec.OK {
			status = errorStyle.Render("failed: " + rec.Error)
		}
		fmt.Fprintf(out, "  %s  %-20s %-6s %s  %s\n",
			dimStyle.Render(rec.Timestamp.Local().Format(time.DateTime)),
			rec.Tool, rec.Transport, rec.Duration.Round(time.Microsecond), status)
	}

	return nil
}

func runHistoryPrune(cmd *cobra.Command, opts *rootOptions) error {
	a, err := opts.newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.history.Enabled() {
		return errHistoryDisabled
	}

	deleted, err := a.history.Cleanup(commandContext(cmd), a.cfg.History.Retention)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d records older than %s.\n", deleted, a.cfg.History.Retention)
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

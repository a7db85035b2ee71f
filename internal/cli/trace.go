package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/euclid/internal/journal"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Session  string
}

// TraceRow is one journaled action in trace output.
type TraceRow struct {
	Seq      int64  `json:"seq"`
	Kind     string `json:"kind"`
	Accepted bool   `json:"accepted"`
	ActionID string `json:"action_id"`
}

// TraceOutput is the trace command's output payload.
type TraceOutput struct {
	Session     string     `json:"session"`
	Proposition string     `json:"proposition"`
	CreatedAt   string     `json:"created_at"`
	Actions     []TraceRow `json:"actions"`
	Digest      string     `json:"digest"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show a journaled session's action timeline",
		Long: `Show the journaled actions of one session in sequence order, with
their content-addressed IDs and the digest over the whole trace. Two
sessions with the same digest performed the identical construction.

Examples:
  euclid trace --db euclid.db --session scenario-i1-complete
  euclid trace --db euclid.db --session scenario-i1-complete --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraceCmd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session token to trace (required)")
	_ = cmd.MarkFlagRequired("session")
	return cmd
}

func runTraceCmd(opts *TraceOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := context.Background()

	store, err := journal.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open journal", err)
	}
	defer store.Close()

	rec, err := store.Session(ctx, opts.Session)
	if err != nil {
		return WrapExitError(ExitCommandError, "read session", err)
	}
	records, err := store.Actions(ctx, opts.Session)
	if err != nil {
		return WrapExitError(ExitCommandError, "read actions", err)
	}

	out := TraceOutput{
		Session:     rec.Token,
		Proposition: rec.PropID,
		CreatedAt:   rec.CreatedAt,
	}
	ids := make([]string, 0, len(records))
	for _, record := range records {
		out.Actions = append(out.Actions, TraceRow{
			Seq:      record.Seq,
			Kind:     record.Kind,
			Accepted: record.Accepted,
			ActionID: record.ID,
		})
		ids = append(ids, record.ID)
	}
	out.Digest, err = journal.TraceDigest(ids)
	if err != nil {
		return WrapExitError(ExitCommandError, "compute digest", err)
	}

	if opts.Format == "json" {
		return formatter.JSON(CLIResponse{Status: "ok", Data: out})
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Session %s (%s), created %s\n\n", out.Session, out.Proposition, out.CreatedAt)
	if len(out.Actions) == 0 {
		fmt.Fprintln(w, "  (no actions)")
	}
	for _, row := range out.Actions {
		status := "ok"
		if !row.Accepted {
			status = "rejected"
		}
		fmt.Fprintf(w, "  [%d] %-8s %-8s %s\n", row.Seq, row.Kind, status, truncateID(row.ActionID))
	}
	fmt.Fprintf(w, "\nDigest: %s\n", out.Digest)
	return nil
}

// truncateID shortens a content hash for display.
func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "..." + id[len(id)-8:]
}

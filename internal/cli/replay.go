package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/euclid/internal/journal"
	"github.com/roach88/euclid/internal/stepper"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Specs    []string
	Database string
	Session  string
}

// ReplayDivergence is one mismatch between the journal and the replay.
type ReplayDivergence struct {
	Seq      int64  `json:"seq"`
	ActionID string `json:"action_id"`
	Journal  bool   `json:"journal_accepted"`
	Replay   bool   `json:"replay_accepted"`
	Reason   string `json:"reason,omitempty"`
}

// ReplayResult is the replay command's output payload.
type ReplayResult struct {
	Session     string             `json:"session"`
	Proposition string             `json:"proposition"`
	Actions     int                `json:"actions"`
	Complete    bool               `json:"complete"`
	StepIndex   int                `json:"step_index"`
	Divergences []ReplayDivergence `json:"divergences,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a journaled session and verify determinism",
		Long: `Replay a journaled session's actions through a fresh session and
verify every dispatch resolves the same way it did originally. A
divergence means the journal and the engine disagree, which should
never happen for an unmodified database.

Examples:
  euclid replay --db euclid.db --session scenario-i1-complete
  euclid replay --db euclid.db --session scenario-i1-complete --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Specs, "spec", nil, "CUE spec file with extra propositions (repeatable)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session token to replay (required)")
	_ = cmd.MarkFlagRequired("session")
	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)
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

	reg, err := buildRegistry(opts.Specs)
	if err != nil {
		return WrapExitError(ExitCommandError, "compilation failed", err)
	}
	session, err := stepper.NewSession(reg, rec.PropID, stepper.Options{
		TokenGen: stepper.NewFixedGenerator(rec.Token),
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "start session", err)
	}

	result := ReplayResult{
		Session:     rec.Token,
		Proposition: rec.PropID,
		Actions:     len(records),
	}
	for _, record := range records {
		out := session.Dispatch(record.Action)
		slog.Debug("action replayed",
			"seq", record.Seq,
			"kind", record.Kind,
			"accepted", out.Accepted)
		if out.Accepted != record.Accepted {
			slog.Warn("replay divergence",
				"seq", record.Seq,
				"id", record.ID,
				"journal", record.Accepted,
				"replay", out.Accepted)
			result.Divergences = append(result.Divergences, ReplayDivergence{
				Seq:      record.Seq,
				ActionID: record.ID,
				Journal:  record.Accepted,
				Replay:   out.Accepted,
				Reason:   out.Reason,
			})
		}
	}
	result.Complete = session.Complete
	result.StepIndex = session.StepIndex

	if opts.Format == "json" {
		status := "ok"
		if len(result.Divergences) > 0 {
			status = "error"
		}
		if err := formatter.JSON(CLIResponse{Status: status, Data: result}); err != nil {
			return err
		}
	} else {
		outputReplayText(formatter, result)
	}

	if len(result.Divergences) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("replay diverged on %d action(s)", len(result.Divergences)))
	}
	return nil
}

func outputReplayText(formatter *OutputFormatter, result ReplayResult) {
	w := formatter.Writer
	fmt.Fprintf(w, "Replayed %d action(s) of %s (%s)\n", result.Actions, result.Session, result.Proposition)
	if result.Complete {
		fmt.Fprintln(w, "Proposition complete.")
	} else {
		fmt.Fprintf(w, "Stalled at step %d.\n", result.StepIndex)
	}
	if len(result.Divergences) == 0 {
		fmt.Fprintln(w, "✓ Replay is deterministic")
		return
	}
	for _, d := range result.Divergences {
		fmt.Fprintf(w, "✗ seq %d: journal accepted=%t, replay accepted=%t (%s)\n",
			d.Seq, d.Journal, d.Replay, d.Reason)
	}
}

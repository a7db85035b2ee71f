package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/euclid/internal/harness"
	"github.com/roach88/euclid/internal/journal"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Specs    []string
	Database string
}

// RunTraceEvent is one dispatch in run output.
type RunTraceEvent struct {
	Seq       int64    `json:"seq"`
	Tool      string   `json:"tool"`
	Accepted  bool     `json:"accepted"`
	Reason    string   `json:"reason,omitempty"`
	StepIndex int      `json:"step_index"`
	Added     []string `json:"added,omitempty"`
	Facts     []string `json:"facts,omitempty"`
}

// RunResult is the run command's output payload.
type RunResult struct {
	Scenario  string          `json:"scenario"`
	Session   string          `json:"session"`
	Complete  bool            `json:"complete"`
	StepIndex int             `json:"step_index"`
	Trace     []RunTraceEvent `json:"trace"`
	Failures  []string        `json:"failures,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scripted scenario",
		Long: `Run a YAML scenario through a real proposition session and evaluate
its assertions. With --db the accepted actions are journaled so the
session can be replayed and traced later.

Examples:
  euclid run scenario.yaml
  euclid run scenario.yaml --db euclid.db
  euclid run scenario.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Specs, "spec", nil, "CUE spec file with extra propositions (repeatable)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "journal the session to this SQLite database")
	return cmd
}

func runRun(opts *RunOptions, scenarioPath string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)
	formatter := newFormatter(opts.RootOptions, cmd)

	scenario, err := harness.LoadScenario(scenarioPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load scenario", err)
	}
	reg, err := buildRegistry(opts.Specs)
	if err != nil {
		return WrapExitError(ExitCommandError, "compilation failed", err)
	}
	slog.Debug("scenario loaded",
		"name", scenario.Name,
		"proposition", scenario.Proposition,
		"actions", len(scenario.Actions))

	result, err := harness.Run(reg, scenario)
	if err != nil {
		return WrapExitError(ExitCommandError, "run scenario", err)
	}
	for _, ev := range result.Trace {
		if !ev.Accepted {
			slog.Debug("action rejected",
				"tool", ev.Tool,
				"step", ev.StepIndex,
				"reason", ev.Reason)
		}
	}

	if opts.Database != "" {
		if err := journalSession(opts.Database, result); err != nil {
			return WrapExitError(ExitCommandError, "journal session", err)
		}
		formatter.VerboseLog("Journaled %d accepted action(s) to %s", len(result.Session.Accepted), opts.Database)
	}

	out := RunResult{
		Scenario:  scenario.Name,
		Session:   scenario.SessionToken,
		Complete:  result.Session.Complete,
		StepIndex: result.Session.StepIndex,
		Failures:  result.Failures,
	}
	for _, ev := range result.Trace {
		out.Trace = append(out.Trace, RunTraceEvent{
			Seq:       ev.Seq,
			Tool:      ev.Tool,
			Accepted:  ev.Accepted,
			Reason:    ev.Reason,
			StepIndex: ev.StepIndex,
			Added:     ev.AddedIDs,
			Facts:     ev.FactKeys,
		})
	}

	if opts.Format == "json" {
		status := "ok"
		if !result.Passed() {
			status = "error"
		}
		if err := formatter.JSON(CLIResponse{Status: status, Data: out}); err != nil {
			return err
		}
	} else {
		outputRunText(formatter, out)
	}

	if !result.Passed() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d assertion(s) failed", len(result.Failures)))
	}
	return nil
}

// journalSession persists the session and its accepted action log. The
// logical clock stamps accepted actions 1..n in order, so the journal
// sequence is reconstructible from the log alone.
func journalSession(dbPath string, result *harness.Result) error {
	ctx := context.Background()

	store, err := journal.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	session := result.Session
	if err := store.CreateSession(ctx, session.Token, session.Def.ID); err != nil {
		return err
	}
	for i, action := range session.Accepted {
		res, err := store.AppendAction(ctx, session.Token, int64(i+1), action, true)
		if err != nil {
			return err
		}
		slog.Debug("action journaled",
			"session", session.Token,
			"seq", i+1,
			"id", res.ID,
			"inserted", res.Inserted)
	}
	slog.Info("session journaled",
		"session", session.Token,
		"proposition", session.Def.ID,
		"actions", len(session.Accepted))
	return nil
}

func outputRunText(formatter *OutputFormatter, out RunResult) {
	w := formatter.Writer
	fmt.Fprintf(w, "Scenario: %s (session %s)\n\n", out.Scenario, out.Session)
	for _, ev := range out.Trace {
		if ev.Accepted {
			fmt.Fprintf(w, "  [%d] %-12s ok   step=%d added=%v", ev.Seq, ev.Tool, ev.StepIndex, ev.Added)
			if len(ev.Facts) > 0 {
				fmt.Fprintf(w, " facts=%v", ev.Facts)
			}
			fmt.Fprintln(w)
		} else {
			fmt.Fprintf(w, "  [-] %-12s rejected: %s\n", ev.Tool, ev.Reason)
		}
	}
	fmt.Fprintln(w)
	if out.Complete {
		fmt.Fprintln(w, "Proposition complete.")
	} else {
		fmt.Fprintf(w, "Stalled at step %d.\n", out.StepIndex)
	}
	for _, failure := range out.Failures {
		fmt.Fprintf(w, "✗ %s\n", failure)
	}
	if len(out.Failures) == 0 {
		fmt.Fprintln(w, "✓ All assertions passed")
	}
}

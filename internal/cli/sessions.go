package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/euclid/internal/journal"
)

// SessionsOptions holds flags for the sessions command.
type SessionsOptions struct {
	*RootOptions
	Database string
}

// SessionRow is one journaled session in list output.
type SessionRow struct {
	Token       string `json:"token"`
	Proposition string `json:"proposition"`
	CreatedAt   string `json:"created_at"`
}

// NewSessionsCommand creates the sessions command.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List journaled sessions",
		Long: `List every session in a journal database, oldest first.

Examples:
  euclid sessions --db euclid.db
  euclid sessions --db euclid.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}

func runSessions(opts *SessionsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := context.Background()

	store, err := journal.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open journal", err)
	}
	defer store.Close()

	records, err := store.ListSessions(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "list sessions", err)
	}

	var rows []SessionRow
	for _, rec := range records {
		rows = append(rows, SessionRow{
			Token:       rec.Token,
			Proposition: rec.PropID,
			CreatedAt:   rec.CreatedAt,
		})
	}

	if opts.Format == "json" {
		return formatter.JSON(CLIResponse{Status: "ok", Data: rows})
	}
	if len(rows) == 0 {
		fmt.Fprintln(formatter.Writer, "(no sessions)")
		return nil
	}
	for _, row := range rows {
		fmt.Fprintf(formatter.Writer, "%-40s %-6s %s\n", row.Token, row.Proposition, row.CreatedAt)
	}
	return nil
}

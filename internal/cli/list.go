package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Specs []string
}

// PropositionSummary is one row of list output.
type PropositionSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Steps     int    `json:"steps"`
	Draggable bool   `json:"draggable"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available propositions",
		Long: `List the built-in propositions plus any compiled from spec files.

Examples:
  euclid list
  euclid list --spec ./props.cue --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Specs, "spec", nil, "CUE spec file with extra propositions (repeatable)")
	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	reg, err := buildRegistry(opts.Specs)
	if err != nil {
		return WrapExitError(ExitCommandError, "compilation failed", err)
	}

	var rows []PropositionSummary
	for _, id := range reg.IDs() {
		def, _ := reg.Get(id)
		rows = append(rows, PropositionSummary{
			ID:        def.ID,
			Title:     def.Title,
			Steps:     len(def.Steps),
			Draggable: len(def.DraggablePointIDs) > 0,
		})
	}

	if opts.Format == "json" {
		return formatter.JSON(CLIResponse{Status: "ok", Data: rows})
	}
	for _, row := range rows {
		marker := " "
		if row.Draggable {
			marker = "~"
		}
		fmt.Fprintf(formatter.Writer, "%s %-6s %2d steps  %s\n", marker, row.ID, row.Steps, row.Title)
	}
	return nil
}

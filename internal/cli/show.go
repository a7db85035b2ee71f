package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/euclid/internal/prop"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Specs    []string
	Tutorial bool
	Touch    bool
}

// StepView is one step of show output.
type StepView struct {
	Index       int      `json:"index"`
	Tool        string   `json:"tool"`
	Instruction string   `json:"instruction"`
	Citation    string   `json:"citation,omitempty"`
	Guidance    []string `json:"guidance,omitempty"`
}

// PropositionView is the full show output for one proposition.
type PropositionView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	GivenPoints []string   `json:"given_points"`
	Steps       []StepView `json:"steps"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <proposition-id>",
		Short: "Show a proposition's givens and steps",
		Long: `Show one proposition: its given points, each construction step with
its citation, and optionally the fine-grained tutorial guidance.

Examples:
  euclid show I.1
  euclid show I.2 --tutorial
  euclid show I.2 --tutorial --touch`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Specs, "spec", nil, "CUE spec file with extra propositions (repeatable)")
	cmd.Flags().BoolVar(&opts.Tutorial, "tutorial", false, "include per-step tutorial guidance")
	cmd.Flags().BoolVar(&opts.Touch, "touch", false, "use touch-screen wording in guidance")
	return cmd
}

func runShow(opts *ShowOptions, propID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	reg, err := buildRegistry(opts.Specs)
	if err != nil {
		return WrapExitError(ExitCommandError, "compilation failed", err)
	}
	def, ok := reg.Get(propID)
	if !ok {
		_ = formatter.Error("unknown", fmt.Sprintf("unknown proposition %q", propID), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown proposition %q", propID))
	}

	var guidance [][]prop.SubStep
	if opts.Tutorial {
		guidance = prop.Tutorial(def, opts.Touch)
	}

	view := PropositionView{ID: def.ID, Title: def.Title}
	for _, p := range def.GivenPoints() {
		view.GivenPoints = append(view.GivenPoints, p.ID)
	}
	for i, step := range def.Steps {
		sv := StepView{
			Index:       i,
			Tool:        string(step.Tool),
			Instruction: step.Instruction,
			Citation:    step.Citation,
		}
		if guidance != nil {
			for _, sub := range guidance[i] {
				sv.Guidance = append(sv.Guidance, sub.Text)
			}
		}
		view.Steps = append(view.Steps, sv)
	}

	if opts.Format == "json" {
		return formatter.JSON(CLIResponse{Status: "ok", Data: view})
	}

	w := formatter.Writer
	fmt.Fprintf(w, "%s  %s\n", view.ID, view.Title)
	fmt.Fprintf(w, "Given points: %v\n\n", view.GivenPoints)
	for _, sv := range view.Steps {
		cite := ""
		if sv.Citation != "" {
			cite = "  [" + sv.Citation + "]"
		}
		fmt.Fprintf(w, "%2d. (%s) %s%s\n", sv.Index+1, sv.Tool, sv.Instruction, cite)
		for _, g := range sv.Guidance {
			fmt.Fprintf(w, "      - %s\n", g)
		}
	}
	return nil
}

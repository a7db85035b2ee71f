package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/euclid/internal/prop"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                   `json:"valid"`
	Errors []prop.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [spec.cue ...]",
		Short: "Validate proposition definitions",
		Long: `Validate proposition definitions without running them.

Compiles any given CUE spec files, merges them with the built-in
propositions, and checks the combined registry: reference order,
highlight and result resolution, and macro reachability. With no
arguments only the built-ins are checked.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, specPaths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	reg, err := buildRegistry(specPaths)
	if err != nil {
		_ = formatter.Error("compile", err.Error(), nil)
		return WrapExitError(ExitCommandError, "compilation failed", err)
	}
	formatter.VerboseLog("Validating %d proposition(s)", len(reg.IDs()))

	errs := prop.ValidateRegistry(reg)
	if len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}
	return outputValidateSuccess(formatter, len(reg.IDs()))
}

func outputValidateSuccess(formatter *OutputFormatter, count int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}
	fmt.Fprintf(formatter.Writer, "✓ %d proposition(s) valid\n", count)
	return nil
}

func outputValidationErrors(formatter *OutputFormatter, errs []prop.ValidationError) error {
	if formatter.Format == "json" {
		if err := formatter.JSON(CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		fmt.Fprintf(formatter.Writer, "  %s\n", e.Error())
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}

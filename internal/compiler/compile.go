// Package compiler turns CUE proposition sources into prop.Definition
// values.
//
// Propositions are authored as CUE so step scripts can be reviewed and
// validated without touching Go. The compiler uses the CUE SDK's Go API
// directly, never a CLI subprocess, and reports source positions on every
// error. Compiled definitions carry givens, steps, and result metadata;
// conclusion derivation stays in Go and is attached registry-side.
package compiler

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/euclid/internal/prop"
)

// CompileError is a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CompileFile compiles every proposition in a CUE file, in declaration
// order.
func CompileFile(path string) ([]*prop.Definition, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read proposition source: %w", err)
	}
	return CompileBytes(path, src)
}

// CompileBytes compiles every proposition in a CUE source buffer. Each entry
// under the top-level "proposition" struct becomes one definition.
func CompileBytes(filename string, src []byte) ([]*prop.Definition, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	root := v.LookupPath(cue.ParsePath("proposition"))
	if !root.Exists() {
		return nil, &CompileError{
			Field:   "proposition",
			Message: "no top-level proposition struct",
			Pos:     v.Pos(),
		}
	}

	iter, err := root.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var defs []*prop.Definition
	for iter.Next() {
		def, err := CompileProposition(iter.Value())
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	if len(defs) == 0 {
		return nil, &CompileError{
			Field:   "proposition",
			Message: "proposition struct is empty",
			Pos:     root.Pos(),
		}
	}
	return defs, nil
}

// CompileProposition parses one CUE proposition struct into a definition.
// The value is the proposition body itself, e.g. the value of
// proposition."I.1".
func CompileProposition(v cue.Value) (*prop.Definition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	def := &prop.Definition{}

	id, err := requiredString(v, "id")
	if err != nil {
		return nil, err
	}
	def.ID = id

	title, err := requiredString(v, "title")
	if err != nil {
		return nil, err
	}
	def.Title = title

	def.GivenElements, def.GivenFacts, err = parseGiven(v.LookupPath(cue.ParsePath("given")))
	if err != nil {
		return nil, err
	}

	def.Steps, err = parseSteps(v.LookupPath(cue.ParsePath("steps")))
	if err != nil {
		return nil, err
	}
	if len(def.Steps) == 0 {
		return nil, &CompileError{
			Field:   "steps",
			Message: "at least one step is required",
			Pos:     v.Pos(),
		}
	}

	def.ResultSegments, err = parsePairList(v.LookupPath(cue.ParsePath("results")), "results")
	if err != nil {
		return nil, err
	}
	def.InputLabels, err = optionalStringList(v, "inputs")
	if err != nil {
		return nil, err
	}
	def.DraggablePointIDs, err = optionalStringList(v, "draggable")
	if err != nil {
		return nil, err
	}

	return def, nil
}

// requiredString reads a mandatory string field.
func requiredString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", &CompileError{
			Field:   field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return err
}

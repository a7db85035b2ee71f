package prop

import (
	"fmt"
	"sort"
)

// Registry is the single lookup table propositions are resolved through, by
// the macro engine, the stepper, and any proposition-browsing UI.
type Registry struct {
	defs  map[string]*Definition
	order []string
}

// NewRegistry builds a registry from definitions in declaration order.
// Duplicate IDs keep the first definition.
func NewRegistry(defs ...*Definition) *Registry {
	r := &Registry{defs: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		if _, exists := r.defs[d.ID]; exists {
			continue
		}
		r.defs[d.ID] = d
		r.order = append(r.order, d.ID)
	}
	return r
}

// Get returns the definition with the given ID.
func (r *Registry) Get(id string) (*Definition, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// IDs returns the registered proposition IDs in declaration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ValidateRegistry validates every definition plus the registry-level
// constraints no single definition can see: macro steps must reference
// registered propositions, and macro references must be acyclic.
func ValidateRegistry(r *Registry) []ValidationError {
	var errs []ValidationError
	for _, id := range r.order {
		def := r.defs[id]
		errs = append(errs, ValidateDefinition(def)...)
		errs = append(errs, validateMacroRefs(r, def)...)
	}
	return errs
}

// validateMacroRefs checks that every macro step resolves and that following
// macro references from def never reaches def again.
func validateMacroRefs(r *Registry, def *Definition) []ValidationError {
	var errs []ValidationError
	for i, step := range def.Steps {
		m, ok := step.Expected.(MacroAction)
		if !ok {
			continue
		}
		target, exists := r.defs[m.PropID]
		if !exists {
			errs = append(errs, ValidationError{
				StepIndex: i,
				Field:     "expected.propId",
				Code:      ErrUnknownMacroProp,
				Message:   fmt.Sprintf("macro step references unknown proposition %q", m.PropID),
			})
			continue
		}
		if reaches(r, target, def.ID, map[string]bool{}) {
			errs = append(errs, ValidationError{
				StepIndex: i,
				Field:     "expected.propId",
				Code:      ErrMacroCycle,
				Message:   fmt.Sprintf("macro step creates a reference cycle through %q", m.PropID),
			})
		}
	}
	return errs
}

// reaches reports whether following macro references from def arrives at
// targetID. Unregistered references terminate the walk; they are reported
// separately.
func reaches(r *Registry, def *Definition, targetID string, seen map[string]bool) bool {
	if def.ID == targetID {
		return true
	}
	if seen[def.ID] {
		return false
	}
	seen[def.ID] = true
	for _, step := range def.Steps {
		m, ok := step.Expected.(MacroAction)
		if !ok {
			continue
		}
		next, exists := r.defs[m.PropID]
		if !exists {
			continue
		}
		if reaches(r, next, targetID, seen) {
			return true
		}
	}
	return false
}

// sortedValues returns a map's values ordered by key, for deterministic
// iteration.
func sortedValues(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

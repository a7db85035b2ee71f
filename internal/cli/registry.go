package cli

import (
	"github.com/roach88/euclid/internal/compiler"
	"github.com/roach88/euclid/internal/prop"
)

// buildRegistry returns the built-in propositions extended with any compiled
// from the given CUE files. Built-ins win on ID collision, so a spec file
// cannot shadow a proven proposition.
func buildRegistry(specPaths []string) (*prop.Registry, error) {
	defs := []*prop.Definition{prop.PropI1(), prop.PropI2(), prop.PropI3()}
	for _, path := range specPaths {
		compiled, err := compiler.CompileFile(path)
		if err != nil {
			return nil, err
		}
		defs = append(defs, compiled...)
	}
	return prop.NewRegistry(defs...), nil
}

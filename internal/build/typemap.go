package build

import (
	"github.com/HobanGames/Reckless/internal/asset"
	"github.com/HobanGames/Reckless/internal/errors"
)

// TypeMap is the file the external builder writes at Scripts/.build/types.yaml.
// It is the builder's whole contract with the pipeline: the behavior types it
// produced, and whether the build succeeded.
type TypeMap struct {
	SchemaVersion string   `yaml:"schema_version"`
	OK            bool     `yaml:"ok"`
	Types         []string `yaml:"types"`
	Errors        []string `yaml:"errors,omitempty"`
}

// Registry resolves behavior type names against the last build's output.
type Registry struct {
	ok    bool
	types map[string]bool
}

// LoadRegistry reads the type map from the workspace.
// A missing or unreadable type map is E_STORAGE: the barrier fired, so the
// builder claims to have written it.
func LoadRegistry(store *asset.Store) (*Registry, error) {
	var tm TypeMap
	if err := store.LoadYAML(store.Layout.TypeMapPath(), &tm); err != nil {
		return nil, err
	}
	r := &Registry{ok: tm.OK, types: make(map[string]bool, len(tm.Types))}
	for _, t := range tm.Types {
		r.types[t] = true
	}
	return r, nil
}

// BuildOK reports whether the last build succeeded.
func (r *Registry) BuildOK() bool {
	return r.ok
}

// Resolve checks that a behavior type is available. Built-in component types
// always resolve; artifact-derived types must appear in the build output.
// Returns E_TYPE_RESOLUTION otherwise - the fail-fast point after a failed
// build.
func (r *Registry) Resolve(typ string) error {
	if asset.IsBuiltinType(typ) {
		return nil
	}
	if r.types[typ] {
		return nil
	}
	msg := "behavior type not available: " + typ
	if !r.ok {
		msg += " (build failed)"
	}
	return errors.NewWithDetails(errors.ETypeResolution, msg, map[string]string{"type": typ})
}

package ops

import (
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"
)

// FactoryArgs carries everything a factory needs to build a concrete op:
// the contract keys and mode plus op-specific parameters (e.g. a reshape
// target or a binarize threshold) decoded from configuration.
type FactoryArgs struct {
	Inputs  []string
	Outputs []string
	Mode    Mode
	Params  map[string]any
}

// Factory builds a concrete op from decoded configuration.
type Factory func(args FactoryArgs) (Op, error)

type registration struct {
	version *semver.Version
	factory Factory
}

// Registry stores named, versioned op factories and resolves them by name and
// semver constraint. It allows pipelines to be assembled from configuration
// files instead of code.
type Registry struct {
	mu      sync.RWMutex
	entries map[string][]registration
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: map[string][]registration{}}
}

// Register adds a factory under name and version. Version must parse as
// semver; registering the same name and version twice is an error.
func (r *Registry) Register(name, version string, f Factory) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("op %q: invalid version %q: %w", name, version, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reg := range r.entries[name] {
		if reg.version.Equal(v) {
			return fmt.Errorf("op %q version %s already registered", name, v)
		}
	}
	r.entries[name] = append(r.entries[name], registration{version: v, factory: f})

	return nil
}

// Resolve returns the factory registered under name whose version satisfies
// constraint, preferring the highest matching version. An empty constraint
// matches any version. Returns ErrOpNotFound when nothing matches.
func (r *Registry) Resolve(name, constraint string) (Factory, error) {
	if constraint == "" {
		constraint = "*"
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, fmt.Errorf("op %q: invalid version constraint %q: %w", name, constraint, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *registration
	for i := range r.entries[name] {
		reg := &r.entries[name][i]
		if !c.Check(reg.version) {
			continue
		}
		if best == nil || reg.version.GreaterThan(best.version) {
			best = reg
		}
	}
	if best == nil {
		return nil, fmt.Errorf("op %q (%s): %w", name, constraint, ErrOpNotFound)
	}

	return best.factory, nil
}

// Names returns the registered op names. Intended for diagnostics.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}

	return names
}

package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/staticpipe/internal/recon"
)

// Module is the interface that all step modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// DeclareFunc adds the nodes of one description step to g and returns the
// step's output columns keyed by output attribute name.
type DeclareFunc func(ctx context.Context, g *recon.Graph, args *Arguments) (map[string]recon.Column, error)

// ArgumentSpec describes one attribute a step block accepts.
type ArgumentSpec struct {
	Name     string
	Required bool
	// Many marks an argument holding a list of columns rather than one.
	Many bool
}

// StepKind is a registered step kind.
type StepKind struct {
	Name        string
	Description string
	Arguments   []ArgumentSpec
	// Outputs lists the attribute names under which the step's columns are
	// exposed, e.g. `step.ffm.ctr.score`.
	Outputs []string
	Declare DeclareFunc
}

// Argument returns the named argument spec.
func (k *StepKind) Argument(name string) (ArgumentSpec, bool) {
	for _, a := range k.Arguments {
		if a.Name == name {
			return a, true
		}
	}
	return ArgumentSpec{}, false
}

// Registry holds the step kinds of a single application instance.
type Registry struct {
	kinds map[string]*StepKind
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		kinds: make(map[string]*StepKind),
	}
}

// RegisterStep registers a step kind. Registering the same name twice is a
// programming error and panics.
func (r *Registry) RegisterStep(kind *StepKind) {
	if _, exists := r.kinds[kind.Name]; exists {
		panic(fmt.Sprintf("step kind with name '%s' already registered", kind.Name))
	}
	slog.Debug("Registering step kind.", "kind", kind.Name)
	r.kinds[kind.Name] = kind
}

// Lookup returns the step kind registered under name.
func (r *Registry) Lookup(name string) (*StepKind, bool) {
	k, ok := r.kinds[name]
	return k, ok
}

// Kinds returns every registered kind sorted by name.
func (r *Registry) Kinds() []*StepKind {
	out := make([]*StepKind, 0, len(r.kinds))
	for _, k := range r.kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

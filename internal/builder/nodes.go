package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/staticpipe/internal/config"
	"github.com/specialistvlad/staticpipe/internal/ctxlog"
	"github.com/specialistvlad/staticpipe/internal/dag"
	"github.com/specialistvlad/staticpipe/internal/nodeid"
	"github.com/specialistvlad/staticpipe/internal/recon"
	"github.com/specialistvlad/staticpipe/internal/registry"
)

// indexModel performs the first pass: every block is keyed by address and
// every step becomes a dag node, in declaration order.
func indexModel(ctx context.Context, model *config.Model, r *registry.Registry, d *dag.Graph) (*index, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting indexing pass.")

	idx := &index{
		inputs:  make(map[string]*config.Input, len(model.Inputs)),
		steps:   make(map[string]*stepEntry, len(model.Steps)),
		outputs: model.Outputs,
	}

	for _, in := range model.Inputs {
		if _, exists := idx.inputs[in.Name]; exists {
			return nil, fmt.Errorf("%w: input %q is declared more than once", recon.ErrDuplicateName, in.Name)
		}
		idx.inputs[in.Name] = in
	}

	for _, s := range model.Steps {
		id := s.Address().String()
		if err := nodeid.ValidateName(s.Name); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", recon.ErrConfiguration, id, err)
		}
		if d.Has(id) {
			return nil, fmt.Errorf("%w: %s is declared more than once", recon.ErrDuplicateName, id)
		}
		kind, ok := r.Lookup(s.Kind)
		if !ok {
			return nil, fmt.Errorf("%w: %s: unknown step kind %q", recon.ErrConfiguration, id, s.Kind)
		}
		if err := checkArguments(id, s, kind); err != nil {
			return nil, err
		}
		logger.Debug("Indexed step.", "id", id)
		idx.steps[id] = &stepEntry{id: id, config: s, kind: kind}
		d.AddNode(id)
	}

	seen := make(map[string]struct{}, len(model.Outputs))
	for _, out := range model.Outputs {
		if _, exists := seen[out.Name]; exists {
			return nil, fmt.Errorf("%w: output %q is declared more than once", recon.ErrDuplicateName, out.Name)
		}
		seen[out.Name] = struct{}{}
	}
	if len(model.Outputs) == 0 {
		return nil, fmt.Errorf("%w: the description declares no outputs", recon.ErrConfiguration)
	}

	logger.Debug("Finished indexing pass.", "inputs", len(idx.inputs), "steps", len(idx.steps), "outputs", len(idx.outputs))
	return idx, nil
}

// checkArguments matches a step's attributes against its kind.
func checkArguments(id string, s *config.Step, kind *registry.StepKind) error {
	for name := range s.Arguments {
		if _, ok := kind.Argument(name); !ok {
			return fmt.Errorf("%w: %s: unsupported argument %q", recon.ErrConfiguration, id, name)
		}
	}
	for _, spec := range kind.Arguments {
		if _, ok := s.Arguments[spec.Name]; spec.Required && !ok {
			return fmt.Errorf("%w: %s: missing required argument %q", recon.ErrConfiguration, id, spec.Name)
		}
	}
	return nil
}

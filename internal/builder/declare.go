package builder

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/staticpipe/internal/config"
	"github.com/specialistvlad/staticpipe/internal/ctxlog"
	"github.com/specialistvlad/staticpipe/internal/dag"
	"github.com/specialistvlad/staticpipe/internal/recon"
	"github.com/specialistvlad/staticpipe/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// scope holds the columns declared so far and renders them as HCL variables.
type scope struct {
	inputs map[string]cty.Value
	// steps is keyed by kind, then step name, then output name.
	steps map[string]map[string]map[string]cty.Value
}

func newScope() *scope {
	return &scope{
		inputs: make(map[string]cty.Value),
		steps:  make(map[string]map[string]map[string]cty.Value),
	}
}

func (s *scope) addStep(kind, name string, outputs map[string]recon.Column) {
	if s.steps[kind] == nil {
		s.steps[kind] = make(map[string]map[string]cty.Value)
	}
	vals := make(map[string]cty.Value, len(outputs))
	for out, c := range outputs {
		vals[out] = registry.ColumnVal(c)
	}
	s.steps[kind][name] = vals
}

func (s *scope) evalContext() *hcl.EvalContext {
	kinds := make(map[string]cty.Value, len(s.steps))
	for kind, steps := range s.steps {
		named := make(map[string]cty.Value, len(steps))
		for name, outputs := range steps {
			named[name] = cty.ObjectVal(outputs)
		}
		kinds[kind] = cty.ObjectVal(named)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"input": cty.ObjectVal(s.inputs),
			"step":  cty.ObjectVal(kinds),
		},
	}
}

// declareInputs adds a root column per input block.
func declareInputs(model *config.Model, g *recon.Graph, sc *scope, columns map[string]recon.Column) error {
	for _, in := range model.Inputs {
		c, err := g.Input(in.Name, in.Type)
		if err != nil {
			return fmt.Errorf("%s: %w", in.Address(), err)
		}
		sc.inputs[in.Name] = registry.ColumnVal(c)
		columns[in.Address().String()] = c
	}
	return nil
}

// declareSteps performs the third pass: each step, in dependency order, has
// its arguments evaluated and its kind's Declare function called.
func declareSteps(ctx context.Context, d *dag.Graph, order []string, idx *index, g *recon.Graph, sc *scope, columns map[string]recon.Column) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting declaration pass.", "steps", len(order))

	for _, id := range order {
		entry := idx.steps[id]
		deps, err := d.Dependencies(id)
		if err != nil {
			return err
		}
		logger.Debug("Declaring step.", "id", id, "after", deps)
		evalCtx := sc.evalContext()

		values := make(map[string]cty.Value, len(entry.config.Arguments))
		for name, expr := range entry.config.Arguments {
			v, diags := expr.Value(evalCtx)
			if diags.HasErrors() {
				return fmt.Errorf("%w: %s: argument %q: %w", recon.ErrConfiguration, id, name, diags)
			}
			values[name] = v
		}

		outputs, err := entry.kind.Declare(ctx, g, registry.NewArguments(id, values, entry.config.Options))
		if err != nil {
			return err
		}
		for _, name := range entry.kind.Outputs {
			c, ok := outputs[name]
			if !ok || !c.Valid() {
				return fmt.Errorf("%w: %s: kind %q did not declare its %q output", recon.ErrConfiguration, id, entry.kind.Name, name)
			}
			columns[id+"."+name] = c
		}
		entry.outputs = outputs
		sc.addStep(entry.config.Kind, entry.config.Name, outputs)
		logger.Debug("Declared step.", "id", id, "graph_nodes", len(g.Nodes()))
	}

	logger.Debug("Finished declaration pass.")
	return nil
}

// collectTargets performs the last pass: every output value must evaluate to
// a single column.
func collectTargets(idx *index, sc *scope) ([]recon.Target, error) {
	evalCtx := sc.evalContext()
	targets := make([]recon.Target, 0, len(idx.outputs))
	for _, out := range idx.outputs {
		v, diags := out.Value.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: output %q: %w", recon.ErrConfiguration, out.Name, diags)
		}
		c, ok := registry.ColumnFromVal(v)
		if !ok {
			return nil, fmt.Errorf("%w: output %q must reference a single column, got %s", recon.ErrConfiguration, out.Name, v.Type().FriendlyName())
		}
		targets = append(targets, recon.WantAs(c, out.Name))
	}
	return targets, nil
}

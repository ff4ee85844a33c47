package testutil

import (
	"context"
	"fmt"

	"github.com/specialistvlad/staticpipe/internal/estimator"
	"github.com/specialistvlad/staticpipe/internal/recon"
	"github.com/specialistvlad/staticpipe/internal/registry"
)

// SimpleModule registers a one-in one-out step kind whose output is a copy
// of its input column. The output role and attribute are both Output.
type SimpleModule struct {
	Kind   string
	Output string
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	r.RegisterStep(&registry.StepKind{
		Name:        m.Kind,
		Description: "Copies its input column.",
		Arguments:   []registry.ArgumentSpec{{Name: "in", Required: true}},
		Outputs:     []string{m.Output},
		Declare:     m.declare,
	})
}

func (m *SimpleModule) declare(_ context.Context, g *recon.Graph, args *registry.Arguments) (map[string]recon.Column, error) {
	in, err := args.Column("in")
	if err != nil {
		return nil, err
	}
	rec := recon.ReconcilerFunc(func(_ context.Context, inputs, outputs []string) (estimator.Estimator, error) {
		return copyStep{from: inputs[0], to: outputs[0]}, nil
	})
	n, err := g.AddNode(m.Kind, rec, []recon.Column{in}, []recon.OutputSpec{{Role: m.Output, Type: in.Type()}})
	if err != nil {
		return nil, err
	}
	out, _ := n.Output(m.Output)
	return map[string]recon.Column{m.Output: out}, nil
}

type copyStep struct {
	from, to string
}

func (s copyStep) Fit(context.Context, estimator.Dataset) (estimator.Transformer, error) {
	return s, nil
}

func (s copyStep) Transform(_ context.Context, data estimator.Dataset) (estimator.Dataset, error) {
	t, err := estimator.FromDataset(data)
	if err != nil {
		return nil, err
	}
	v, ok := t.Column(s.from)
	if !ok {
		return nil, fmt.Errorf("missing column %q", s.from)
	}
	return t.With(s.to, v)
}

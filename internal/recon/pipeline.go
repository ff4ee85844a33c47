package recon

import (
	"context"

	"github.com/specialistvlad/staticpipe/internal/estimator"
)

// ResolvedStep is one materialized node bound to concrete column names.
type ResolvedStep struct {
	// Address is the producing node's arena address, e.g. `ffm[0]`.
	Address string
	Kind    string
	// Inputs holds the concrete input names, positionally matching the
	// node's declared inputs.
	Inputs []string
	// Outputs holds the concrete output names in declaration order.
	Outputs   []string
	Estimator estimator.Estimator
}

// Pipeline is the result of resolving a graph: its steps in dependency
// order and the name given to every reachable column.
type Pipeline struct {
	Steps []ResolvedStep
	// Outputs holds the names of the requested targets, in request order.
	Outputs []string

	names map[Column]string
}

// NameOf returns the concrete name bound to c.
func (p *Pipeline) NameOf(c Column) (string, bool) {
	name, ok := p.names[c]
	return name, ok
}

// Fit implements estimator.Estimator by fitting every step in order.
func (p *Pipeline) Fit(ctx context.Context, data estimator.Dataset) (estimator.Transformer, error) {
	chain := make(estimator.Chain, len(p.Steps))
	for i, s := range p.Steps {
		chain[i] = s.Estimator
	}
	return chain.Fit(ctx, data)
}

// Plan is a data-only description of a resolved pipeline.
type Plan struct {
	Steps   []PlanStep `json:"steps" yaml:"steps"`
	Outputs []string   `json:"outputs" yaml:"outputs"`
}

// PlanStep describes one resolved step.
type PlanStep struct {
	Address string   `json:"address" yaml:"address"`
	Kind    string   `json:"kind" yaml:"kind"`
	Inputs  []string `json:"inputs" yaml:"inputs"`
	Outputs []string `json:"outputs" yaml:"outputs"`
}

// Plan returns the data-only description of p.
func (p *Pipeline) Plan() Plan {
	plan := Plan{
		Steps:   make([]PlanStep, len(p.Steps)),
		Outputs: append([]string(nil), p.Outputs...),
	}
	for i, s := range p.Steps {
		plan.Steps[i] = PlanStep{
			Address: s.Address,
			Kind:    s.Kind,
			Inputs:  append([]string(nil), s.Inputs...),
			Outputs: append([]string(nil), s.Outputs...),
		}
	}
	return plan
}

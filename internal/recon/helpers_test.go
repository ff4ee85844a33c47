package recon

import (
	"context"
	"fmt"
	"testing"

	"github.com/specialistvlad/staticpipe/internal/estimator"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// materializeLog records reconcile calls across every node of a test graph.
type materializeLog struct {
	calls []reconcileCall
}

type reconcileCall struct {
	kind    string
	inputs  []string
	outputs []string
}

// recorder is a Reconciler that logs its calls and returns a constStep.
type recorder struct {
	kind string
	log  *materializeLog
	err  error
}

func (r *recorder) Reconcile(_ context.Context, inputNames, outputNames []string) (estimator.Estimator, error) {
	r.log.calls = append(r.log.calls, reconcileCall{kind: r.kind, inputs: inputNames, outputs: outputNames})
	if r.err != nil {
		return nil, r.err
	}
	return constStep{inputs: inputNames, outputs: outputNames}, nil
}

// constStep requires its inputs to be present and adds each output as a
// column of ones.
type constStep struct {
	inputs  []string
	outputs []string
}

func (s constStep) Fit(_ context.Context, data estimator.Dataset) (estimator.Transformer, error) {
	for _, in := range s.inputs {
		if _, ok := data.Column(in); !ok {
			return nil, fmt.Errorf("missing input column %q", in)
		}
	}
	return s, nil
}

func (s constStep) Transform(_ context.Context, data estimator.Dataset) (estimator.Dataset, error) {
	t, err := estimator.FromDataset(data)
	if err != nil {
		return nil, err
	}
	for _, out := range s.outputs {
		if t, err = t.With(out, ones(t.Rows())); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func ones(n int) cty.Value {
	if n == 0 {
		return cty.ListValEmpty(cty.Number)
	}
	vals := make([]cty.Value, n)
	for i := range vals {
		vals[i] = cty.NumberIntVal(1)
	}
	return cty.ListVal(vals)
}

func scalarSpec(role string) OutputSpec {
	return OutputSpec{Role: role, Type: ScalarType}
}

// addNode declares a node whose outputs are scalar columns with the given roles.
func addNode(t *testing.T, g *Graph, log *materializeLog, kind string, inputs []Column, roles ...string) *Node {
	t.Helper()
	specs := make([]OutputSpec, len(roles))
	for i, r := range roles {
		specs[i] = scalarSpec(r)
	}
	n, err := g.AddNode(kind, &recorder{kind: kind, log: log}, inputs, specs)
	require.NoError(t, err)
	return n
}

func mustInput(t *testing.T, g *Graph, name string) Column {
	t.Helper()
	c, err := g.Input(name, ScalarType)
	require.NoError(t, err)
	return c
}

func output(t *testing.T, n *Node, role string) Column {
	t.Helper()
	c, ok := n.Output(role)
	require.True(t, ok, "node %s has no output %q", n.Address(), role)
	return c
}

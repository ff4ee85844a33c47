package recon

import (
	"context"
	"fmt"

	"github.com/specialistvlad/staticpipe/internal/ctxlog"
	"github.com/specialistvlad/staticpipe/internal/estimator"
	"github.com/specialistvlad/staticpipe/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Reconciler turns a producer node into an executable step once concrete
// column names are known.
type Reconciler interface {
	// Reconcile builds the step. inputNames matches the node's inputs
	// position by position, and outputNames matches its outputs.
	Reconcile(ctx context.Context, inputNames, outputNames []string) (estimator.Estimator, error)
}

// ReconcilerFunc adapts a plain function to the Reconciler interface.
type ReconcilerFunc func(ctx context.Context, inputNames, outputNames []string) (estimator.Estimator, error)

// Reconcile implements Reconciler.
func (f ReconcilerFunc) Reconcile(ctx context.Context, inputNames, outputNames []string) (estimator.Estimator, error) {
	return f(ctx, inputNames, outputNames)
}

// OutputSpec declares one output of a producer node.
type OutputSpec struct {
	// Role names the output within its node and is the default concrete
	// name of the derived column.
	Role string
	Type cty.Type
}

// Node is a producer node: it consumes symbolic columns and declares the
// symbolic columns it will produce. Its inputs and outputs never change after
// construction.
type Node struct {
	g     *Graph
	index int
	kind  string
	addr  *nodeid.Address
	rec   Reconciler

	inputs  []Column
	outputs []Column

	materialized bool
}

// Address returns the node's arena address, e.g. `ffm[0]`.
func (n *Node) Address() *nodeid.Address {
	return n.addr
}

// Kind returns the kind the node was declared with.
func (n *Node) Kind() string {
	return n.kind
}

// Index returns the node's position in its graph.
func (n *Node) Index() int {
	return n.index
}

// Inputs returns the consumed columns in declaration order.
func (n *Node) Inputs() []Column {
	out := make([]Column, len(n.inputs))
	copy(out, n.inputs)
	return out
}

// Outputs returns the produced columns in declaration order.
func (n *Node) Outputs() []Column {
	out := make([]Column, len(n.outputs))
	copy(out, n.outputs)
	return out
}

// Output returns the produced column with the given role.
func (n *Node) Output(role string) (Column, bool) {
	for _, c := range n.outputs {
		if c.Role() == role {
			return c, true
		}
	}
	return Column{}, false
}

// Materialized reports whether Materialize has been called.
func (n *Node) Materialized() bool {
	return n.materialized
}

// Materialize binds the node to concrete names and returns its executable
// step. It may be called once; later calls fail with ErrInvalidState. The
// node counts as materialized even when its reconciler fails, since the
// reconciler may already have had side effects.
func (n *Node) Materialize(ctx context.Context, inputNames, outputNames []string) (estimator.Estimator, error) {
	if len(inputNames) != len(n.inputs) {
		return nil, fmt.Errorf("%w: %s declares %d inputs but %d names were supplied", ErrConfiguration, n.addr, len(n.inputs), len(inputNames))
	}
	if len(outputNames) != len(n.outputs) {
		return nil, fmt.Errorf("%w: %s declares %d outputs but %d names were supplied", ErrConfiguration, n.addr, len(n.outputs), len(outputNames))
	}
	if n.materialized {
		return nil, fmt.Errorf("%w: %s was already materialized", ErrInvalidState, n.addr)
	}
	n.materialized = true

	ctxlog.FromContext(ctx).Debug("Materializing node.", "node", n.addr.String(), "inputs", inputNames, "outputs", outputNames)
	step, err := n.rec.Reconcile(ctx, append([]string(nil), inputNames...), append([]string(nil), outputNames...))
	if err != nil {
		return nil, fmt.Errorf("materializing %s: %w", n.addr, err)
	}
	if step == nil {
		return nil, fmt.Errorf("%w: %s reconciler returned no step", ErrConfiguration, n.addr)
	}
	return step, nil
}

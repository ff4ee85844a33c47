package recon

import (
	"fmt"

	"github.com/specialistvlad/staticpipe/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Graph is the arena holding every column and producer node of one pipeline
// under construction.
type Graph struct {
	columns []columnEntry
	nodes   []*Node
}

// NewGraph creates and returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Input declares a root column: one that already exists in the data the
// pipeline will be fitted on, under the given name.
func (g *Graph) Input(name string, typ cty.Type) (Column, error) {
	if name == "" {
		return Column{}, fmt.Errorf("%w: input column name cannot be empty", ErrInvalidArgument)
	}
	if typ == cty.NilType {
		return Column{}, fmt.Errorf("%w: input column %q has no type", ErrInvalidArgument, name)
	}
	g.columns = append(g.columns, columnEntry{typ: typ, name: name, producer: noProducer})
	return Column{g: g, id: len(g.columns) - 1}, nil
}

// ScalarInput declares a scalar root column.
func (g *Graph) ScalarInput(name string) (Scalar, error) {
	c, err := g.Input(name, ScalarType)
	return Scalar{c}, err
}

// VectorInput declares a vector root column.
func (g *Graph) VectorInput(name string) (Vector, error) {
	c, err := g.Input(name, VectorType)
	return Vector{c}, err
}

// BoolInput declares a boolean root column.
func (g *Graph) BoolInput(name string) (Bool, error) {
	c, err := g.Input(name, BoolType)
	return Bool{c}, err
}

// Nodes returns every node added to the graph, in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// AddNode declares a producer node. The node consumes inputs in the given
// order, which is preserved through resolution, and produces one derived
// column per output spec, returned by Node.Outputs in the same order.
//
// A malformed declaration fails with ErrInvalidArgument and leaves the graph
// unchanged.
func (g *Graph) AddNode(kind string, rec Reconciler, inputs []Column, outputs []OutputSpec) (*Node, error) {
	if err := nodeid.ValidateName(kind); err != nil {
		return nil, fmt.Errorf("%w: node kind: %v", ErrInvalidArgument, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s node has no reconciler", ErrInvalidArgument, kind)
	}
	if err := g.checkInputs(kind, inputs); err != nil {
		return nil, err
	}
	if err := checkOutputs(kind, outputs); err != nil {
		return nil, err
	}

	n := &Node{
		g:      g,
		index:  len(g.nodes),
		kind:   kind,
		rec:    rec,
		inputs: append([]Column(nil), inputs...),
	}
	n.addr = nodeid.Indexed(kind, n.index)
	g.nodes = append(g.nodes, n)

	n.outputs = make([]Column, len(outputs))
	for slot, spec := range outputs {
		g.columns = append(g.columns, columnEntry{typ: spec.Type, producer: n.index, slot: slot, role: spec.Role})
		n.outputs[slot] = Column{g: g, id: len(g.columns) - 1}
	}
	return n, nil
}

func (g *Graph) checkInputs(kind string, inputs []Column) error {
	if len(inputs) == 0 {
		return fmt.Errorf("%w: %s node needs at least one input column", ErrInvalidArgument, kind)
	}
	seen := make(map[int]int, len(inputs))
	for i, in := range inputs {
		if !in.Valid() {
			return fmt.Errorf("%w: %s node input %d is a null column", ErrInvalidArgument, kind, i)
		}
		if in.g != g {
			return fmt.Errorf("%w: %s node input %d (%s) belongs to another graph", ErrInvalidArgument, kind, i, in)
		}
		if prev, dup := seen[in.id]; dup {
			return fmt.Errorf("%w: %s node uses %s as both input %d and input %d", ErrInvalidArgument, kind, in, prev, i)
		}
		seen[in.id] = i
	}
	return nil
}

func checkOutputs(kind string, outputs []OutputSpec) error {
	if len(outputs) == 0 {
		return fmt.Errorf("%w: %s node declares no outputs", ErrInvalidArgument, kind)
	}
	roles := make(map[string]struct{}, len(outputs))
	for i, spec := range outputs {
		if spec.Role == "" {
			return fmt.Errorf("%w: %s node output %d has no role", ErrInvalidArgument, kind, i)
		}
		if spec.Type == cty.NilType {
			return fmt.Errorf("%w: %s node output %q has no type", ErrInvalidArgument, kind, spec.Role)
		}
		if _, dup := roles[spec.Role]; dup {
			return fmt.Errorf("%w: %s node declares output %q twice", ErrInvalidArgument, kind, spec.Role)
		}
		roles[spec.Role] = struct{}{}
	}
	return nil
}

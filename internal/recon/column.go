package recon

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Value types of the columns the built-in adapters produce and consume.
var (
	// ScalarType is a single float per row.
	ScalarType = cty.Number
	// VectorType is a vector of floats per row.
	VectorType = cty.List(cty.Number)
	// BoolType is a single boolean per row.
	BoolType = cty.Bool
)

// noProducer marks a root column in the column table.
const noProducer = -1

// columnEntry is one row of a graph's column table. Entries are never
// modified after they are appended.
type columnEntry struct {
	typ cty.Type
	// name is the caller-assigned name of a root column.
	name string
	// producer is the index of the producing node, or noProducer.
	producer int
	// slot is the position of a derived column in its producer's outputs.
	slot int
	// role is the declared output role of a derived column.
	role string
}

// Column is a symbolic handle to a column that will exist once the pipeline
// runs. It carries a static value type and no data. The zero Column is the
// null column and is rejected wherever a column is required.
type Column struct {
	g  *Graph
	id int
}

func (c Column) entry() *columnEntry {
	return &c.g.columns[c.id]
}

// Valid reports whether c refers to a column of some graph.
func (c Column) Valid() bool {
	return c.g != nil && c.id >= 0 && c.id < len(c.g.columns)
}

// Graph returns the graph c belongs to, or nil for the null column.
func (c Column) Graph() *Graph {
	return c.g
}

// Type returns the static value type, or cty.NilType for the null column.
func (c Column) Type() cty.Type {
	if !c.Valid() {
		return cty.NilType
	}
	return c.entry().typ
}

// IsRoot reports whether c was supplied by the caller rather than produced
// by a node.
func (c Column) IsRoot() bool {
	return c.Valid() && c.entry().producer == noProducer
}

// Name returns the caller-assigned name of a root column and "" for derived
// columns, whose names are only known after resolution.
func (c Column) Name() string {
	if !c.IsRoot() {
		return ""
	}
	return c.entry().name
}

// Role returns the output role a derived column was declared with.
func (c Column) Role() string {
	if !c.Valid() {
		return ""
	}
	return c.entry().role
}

// Producer looks up the node producing c. It returns false for root columns
// and for the null column.
func (c Column) Producer() (*Node, bool) {
	if !c.Valid() || c.IsRoot() {
		return nil, false
	}
	return c.g.nodes[c.entry().producer], true
}

// String describes the column for logs and error messages.
func (c Column) String() string {
	switch {
	case !c.Valid():
		return "<null column>"
	case c.IsRoot():
		return fmt.Sprintf("input %q", c.entry().name)
	default:
		e := c.entry()
		return fmt.Sprintf("%s.%s", c.g.nodes[e.producer].Address(), e.role)
	}
}

// Scalar is a column holding one float per row.
type Scalar struct{ Column }

// Vector is a column holding a vector of floats per row.
type Vector struct{ Column }

// Bool is a column holding one boolean per row.
type Bool struct{ Column }

// AsScalar checks that c is a scalar column.
func AsScalar(c Column) (Scalar, error) {
	if err := checkType(c, ScalarType); err != nil {
		return Scalar{}, err
	}
	return Scalar{c}, nil
}

// AsVector checks that c is a vector column.
func AsVector(c Column) (Vector, error) {
	if err := checkType(c, VectorType); err != nil {
		return Vector{}, err
	}
	return Vector{c}, nil
}

// AsBool checks that c is a boolean column.
func AsBool(c Column) (Bool, error) {
	if err := checkType(c, BoolType); err != nil {
		return Bool{}, err
	}
	return Bool{c}, nil
}

func checkType(c Column, want cty.Type) error {
	if !c.Valid() {
		return fmt.Errorf("%w: null column where %s was expected", ErrInvalidArgument, want.FriendlyName())
	}
	if !c.Type().Equals(want) {
		return fmt.Errorf("%w: %s has type %s, expected %s", ErrInvalidArgument, c, c.Type().FriendlyName(), want.FriendlyName())
	}
	return nil
}

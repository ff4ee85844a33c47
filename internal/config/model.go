package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/staticpipe/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a pipeline
// description. Blocks keep their declaration order.
type Model struct {
	Inputs  []*Input
	Steps   []*Step
	Outputs []*Output
}

// Input is the format-agnostic representation of an `input` block: a root
// column supplied by the data.
type Input struct {
	Name        string
	Type        cty.Type
	Description string
	DeclRange   hcl.Range
}

// Address returns the reference address of the input, e.g. `input.Label`.
func (i *Input) Address() *nodeid.Address {
	return nodeid.Named("input", i.Name)
}

// Step is the format-agnostic representation of a `step` block.
type Step struct {
	Kind      string
	Name      string
	Arguments map[string]hcl.Expression
	// Options is the body of the nested `options` block, or nil.
	Options   hcl.Body
	DeclRange hcl.Range
}

// Address returns the reference address of the step, e.g. `step.ffm.ctr`.
func (s *Step) Address() *nodeid.Address {
	return nodeid.Named("step", s.Kind, s.Name)
}

// Output is the format-agnostic representation of an `output` block: a column
// to resolve and the concrete name to give it.
type Output struct {
	Name        string
	Value       hcl.Expression
	Description string
	DeclRange   hcl.Range
}

package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes all top-level blocks of one description file. Unknown
// blocks are rejected.
type fileRoot struct {
	Inputs  []*inputBlock  `hcl:"input,block"`
	Steps   []*stepBlock   `hcl:"step,block"`
	Outputs []*outputBlock `hcl:"output,block"`
}

type inputBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
}

type stepBlock struct {
	Kind    string        `hcl:"kind,label"`
	Name    string        `hcl:"name,label"`
	Options *optionsBlock `hcl:"options,block"`
	// Arguments holds every attribute of the block; they are extracted with
	// JustAttributes so each kind can accept its own set.
	Arguments hcl.Body `hcl:",remain"`
}

type optionsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type outputBlock struct {
	Name        string         `hcl:"name,label"`
	Value       hcl.Expression `hcl:"value"`
	Description string         `hcl:"description,optional"`
}

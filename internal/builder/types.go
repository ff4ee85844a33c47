package builder

import (
	"github.com/specialistvlad/staticpipe/internal/config"
	"github.com/specialistvlad/staticpipe/internal/recon"
	"github.com/specialistvlad/staticpipe/internal/registry"
)

// Result is a declared graph together with the targets its description asks
// for.
type Result struct {
	Graph   *recon.Graph
	Targets []recon.Target
	// Columns maps `input.X` and `step.<kind>.<name>.<output>` addresses to
	// the declared columns.
	Columns map[string]recon.Column
}

// stepEntry is an indexed description step.
type stepEntry struct {
	id      string
	config  *config.Step
	kind    *registry.StepKind
	outputs map[string]recon.Column
}

// index holds the description blocks keyed by address.
type index struct {
	inputs  map[string]*config.Input
	steps   map[string]*stepEntry
	outputs []*config.Output
}

package builder

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/staticpipe/internal/ctxlog"
	"github.com/specialistvlad/staticpipe/internal/dag"
	"github.com/specialistvlad/staticpipe/internal/nodeid"
	"github.com/specialistvlad/staticpipe/internal/recon"
)

// reference is a column reference found in an expression.
type reference struct {
	// step is the referenced step's id, or "" for an input reference.
	step string
}

// traversalAddress collects the leading attribute names of a traversal,
// e.g. step.ffm.ctr.score. The second result is false when a non-attribute
// step, such as an index, cut the address short.
func traversalAddress(traversal hcl.Traversal) (*nodeid.Address, bool) {
	names := []string{traversal.RootName()}
	for _, step := range traversal[1:] {
		attr, ok := step.(hcl.TraverseAttr)
		if !ok {
			return nodeid.Named(names...), false
		}
		names = append(names, attr.Name)
	}
	return nodeid.Named(names...), true
}

// parseReference checks one traversal against the index.
func parseReference(idx *index, traversal hcl.Traversal) (reference, error) {
	at := traversal.SourceRange().String()
	addr, plain := traversalAddress(traversal)

	switch addr.Root() {
	case "input":
		if addr.Len() < 2 {
			if !plain {
				return reference{}, fmt.Errorf("%w: %s: input must be referenced by attribute, like input.Label", recon.ErrConfiguration, at)
			}
			return reference{}, fmt.Errorf("%w: %s: reference to input needs a name, like input.Label", recon.ErrConfiguration, at)
		}
		name := addr.Path[1].Name
		if _, known := idx.inputs[name]; !known {
			return reference{}, fmt.Errorf("%w: %s: reference to undeclared input %q", recon.ErrConfiguration, at, name)
		}
		return reference{}, nil

	case "step":
		if addr.Len() < 3 {
			if !plain {
				return reference{}, fmt.Errorf("%w: %s: step must be referenced by attributes, like step.ffm.ctr", recon.ErrConfiguration, at)
			}
			return reference{}, fmt.Errorf("%w: %s: reference to step needs a kind and a name, like step.ffm.ctr", recon.ErrConfiguration, at)
		}
		id := addr.Prefix(3).String()
		entry, known := idx.steps[id]
		if !known {
			return reference{}, fmt.Errorf("%w: %s: reference to undeclared step %s", recon.ErrConfiguration, at, id)
		}
		if addr.Len() > 3 {
			if out := addr.Path[3].Name; !slices.Contains(entry.kind.Outputs, out) {
				return reference{}, fmt.Errorf("%w: %s: %s has no output %q (outputs: %v)", recon.ErrConfiguration, at, id, out, entry.kind.Outputs)
			}
		}
		return reference{step: id}, nil

	default:
		return reference{}, fmt.Errorf("%w: %s: unsupported reference %q, only input and step can be referenced", recon.ErrConfiguration, at, addr.Root())
	}
}

// linkSteps performs the second pass: it validates every reference in step
// arguments and output values and adds a dag edge from each referenced step
// to the step referencing it.
func linkSteps(ctx context.Context, idx *index, d *dag.Graph) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting linking pass.")

	for _, id := range d.Nodes() {
		entry := idx.steps[id]
		for _, name := range argumentNames(entry) {
			for _, traversal := range entry.config.Arguments[name].Variables() {
				ref, err := parseReference(idx, traversal)
				if err != nil {
					return fmt.Errorf("%s: argument %q: %w", id, name, err)
				}
				if ref.step == "" {
					continue
				}
				logger.Debug("Linking step dependency.", "from", ref.step, "to", id)
				if err := d.AddEdge(ref.step, id); err != nil {
					return wrapCycle(err)
				}
			}
		}
	}

	for _, out := range idx.outputs {
		for _, traversal := range out.Value.Variables() {
			if _, err := parseReference(idx, traversal); err != nil {
				return fmt.Errorf("output %q: %w", out.Name, err)
			}
		}
	}

	if err := d.DetectCycles(); err != nil {
		return wrapCycle(err)
	}
	logger.Debug("Finished linking pass.")
	return nil
}

func wrapCycle(err error) error {
	if errors.Is(err, dag.ErrCycle) {
		return fmt.Errorf("%w: between steps: %w", recon.ErrCycleDetected, err)
	}
	return err
}

// argumentNames returns the step's argument names in sorted order.
func argumentNames(entry *stepEntry) []string {
	names := make([]string, 0, len(entry.config.Arguments))
	for name := range entry.config.Arguments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

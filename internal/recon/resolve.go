package recon

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/staticpipe/internal/ctxlog"
)

// Target is a column the caller wants in the resolved pipeline's output.
type Target struct {
	Column Column
	// Name is the concrete name to give the column. Empty keeps the
	// default: the root name for roots, the role name for derived columns.
	Name string
}

// Want requests c under its default name.
func Want(c Column) Target {
	return Target{Column: c}
}

// WantAs requests c under the given name.
func WantAs(c Column, name string) Target {
	return Target{Column: c, Name: name}
}

// Options tunes name assignment.
type Options struct {
	// Reserved names are never chosen for columns that were not given an
	// explicit name, e.g. because the data already holds columns so named.
	Reserved []string
}

// Resolve resolves the graph with default options.
func (g *Graph) Resolve(ctx context.Context, targets ...Target) (*Pipeline, error) {
	return g.ResolveWith(ctx, Options{}, targets...)
}

// ResolveWith discovers every node reachable from targets, names every
// reachable column, materializes the nodes in dependency order and returns
// the assembled pipeline. On error no pipeline is returned.
func (g *Graph) ResolveWith(ctx context.Context, opts Options, targets ...Target) (*Pipeline, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolve: Starting resolution.", "targets", len(targets), "graph_nodes", len(g.nodes))

	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: nothing requested for resolution", ErrConfiguration)
	}
	for i, t := range targets {
		if !t.Column.Valid() {
			return nil, fmt.Errorf("%w: target %d is a null column", ErrInvalidArgument, i)
		}
		if t.Column.g != g {
			return nil, fmt.Errorf("%w: target %d (%s) belongs to another graph", ErrInvalidArgument, i, t.Column)
		}
	}

	order, err := g.discover(targets)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resolve: Discovery complete.", "reachable_nodes", len(order))

	for _, idx := range order {
		if n := g.nodes[idx]; n.materialized {
			return nil, fmt.Errorf("%w: %s was already materialized by an earlier resolution", ErrInvalidState, n.addr)
		}
	}

	names, err := g.assignNames(order, targets, opts.Reserved)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resolve: Name assignment complete.", "named_columns", len(names))

	p := &Pipeline{
		Steps: make([]ResolvedStep, 0, len(order)),
		names: names,
	}
	for _, idx := range order {
		// Cancellation is only honoured between nodes.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := g.nodes[idx]
		inputNames := namesOf(n.inputs, names)
		outputNames := namesOf(n.outputs, names)

		step, err := n.Materialize(ctx, inputNames, outputNames)
		if err != nil {
			return nil, err
		}
		p.Steps = append(p.Steps, ResolvedStep{
			Address:   n.addr.String(),
			Kind:      n.kind,
			Inputs:    inputNames,
			Outputs:   outputNames,
			Estimator: step,
		})
	}
	for _, t := range targets {
		p.Outputs = append(p.Outputs, names[t.Column])
	}

	logger.Info("Resolve: Pipeline resolved.", "steps", len(p.Steps), "outputs", p.Outputs)
	return p, nil
}

type visitState uint8

const (
	unvisited visitState = iota
	onStack
	finished
)

// discover walks producers depth first from the targets, following inputs in
// declaration order. It returns the node indexes in post-order, so every node
// comes after the producers of its inputs. Reaching a node that is still on
// the walk stack means the node depends on itself.
func (g *Graph) discover(targets []Target) ([]int, error) {
	state := make([]visitState, len(g.nodes))
	var stack, order []int

	var visit func(idx int) error
	visit = func(idx int) error {
		switch state[idx] {
		case finished:
			return nil
		case onStack:
			return g.cycleError(stack, idx)
		}

		state[idx] = onStack
		stack = append(stack, idx)
		for _, in := range g.nodes[idx].inputs {
			if p := in.entry().producer; p != noProducer {
				if err := visit(p); err != nil {
					return err
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[idx] = finished
		order = append(order, idx)
		return nil
	}

	for _, t := range targets {
		if p := t.Column.entry().producer; p != noProducer {
			if err := visit(p); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}

func (g *Graph) cycleError(stack []int, repeated int) error {
	start := 0
	for i, idx := range stack {
		if idx == repeated {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, idx := range stack[start:] {
		path = append(path, g.nodes[idx].addr.String())
	}
	path = append(path, g.nodes[repeated].addr.String())
	return fmt.Errorf("%w: %s", ErrCycleDetected, strings.Join(path, " -> "))
}

// assignNames binds every column reachable through order to a concrete name.
// Explicit names (roots and named targets) are bound first and must be
// unique. Every root of the graph blocks its name, reachable or not. Remaining derived columns take their role name, suffixed with _1,
// _2, ... when that name is taken or reserved.
func (g *Graph) assignNames(order []int, targets []Target, reserved []string) (map[Column]string, error) {
	names := make(map[Column]string)
	owners := make(map[string]Column)

	claim := func(c Column, name string) error {
		if owner, taken := owners[name]; taken && owner != c {
			return fmt.Errorf("%w: %q is bound to both %s and %s", ErrDuplicateName, name, owner, c)
		}
		owners[name] = c
		names[c] = name
		return nil
	}

	// Roots, in discovery order.
	claimRoot := func(c Column) error {
		if !c.IsRoot() {
			return nil
		}
		return claim(c, c.Name())
	}
	for _, t := range targets {
		if err := claimRoot(t.Column); err != nil {
			return nil, err
		}
	}
	for _, idx := range order {
		for _, in := range g.nodes[idx].inputs {
			if err := claimRoot(in); err != nil {
				return nil, err
			}
		}
	}

	// Roots no target reaches still occupy their names in the data.
	for id, e := range g.columns {
		if e.producer != noProducer {
			continue
		}
		c := Column{g: g, id: id}
		if owner, taken := owners[e.name]; taken && owner != c {
			return nil, fmt.Errorf("%w: %q is bound to both %s and %s", ErrDuplicateName, e.name, owner, c)
		}
		owners[e.name] = c
	}

	// Explicitly named targets.
	for _, t := range targets {
		if t.Name == "" {
			continue
		}
		if t.Column.IsRoot() {
			if t.Name != t.Column.Name() {
				return nil, fmt.Errorf("%w: cannot rename %s to %q", ErrConfiguration, t.Column, t.Name)
			}
			continue
		}
		if prev, named := names[t.Column]; named && prev != t.Name {
			return nil, fmt.Errorf("%w: %s is requested as both %q and %q", ErrConfiguration, t.Column, prev, t.Name)
		}
		if err := claim(t.Column, t.Name); err != nil {
			return nil, err
		}
	}

	// Everything else gets a generated name.
	blocked := make(map[string]struct{}, len(reserved))
	for _, r := range reserved {
		blocked[r] = struct{}{}
	}
	free := func(name string) bool {
		_, taken := owners[name]
		_, isReserved := blocked[name]
		return !taken && !isReserved
	}
	for _, idx := range order {
		for _, out := range g.nodes[idx].outputs {
			if _, named := names[out]; named {
				continue
			}
			base := out.Role()
			name := base
			for i := 1; !free(name); i++ {
				name = fmt.Sprintf("%s_%d", base, i)
			}
			if err := claim(out, name); err != nil {
				return nil, err
			}
		}
	}
	return names, nil
}

func namesOf(cols []Column, names map[Column]string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = names[c]
	}
	return out
}

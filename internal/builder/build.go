package builder

import (
	"context"

	"github.com/specialistvlad/staticpipe/internal/config"
	"github.com/specialistvlad/staticpipe/internal/ctxlog"
	"github.com/specialistvlad/staticpipe/internal/dag"
	"github.com/specialistvlad/staticpipe/internal/recon"
	"github.com/specialistvlad/staticpipe/internal/registry"
)

// Build declares every input and step of model on a fresh graph and collects
// the description's outputs as resolution targets.
func Build(ctx context.Context, model *config.Model, r *registry.Registry) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")

	d := dag.New()
	idx, err := indexModel(ctx, model, r, d)
	if err != nil {
		return nil, err
	}

	if err := linkSteps(ctx, idx, d); err != nil {
		return nil, err
	}
	order, err := d.TopologicalSort()
	if err != nil {
		return nil, wrapCycle(err)
	}
	logger.Debug("Build: Step order computed.", "order", order)

	res := &Result{
		Graph:   recon.NewGraph(),
		Columns: make(map[string]recon.Column),
	}
	sc := newScope()
	if err := declareInputs(model, res.Graph, sc, res.Columns); err != nil {
		return nil, err
	}
	if err := declareSteps(ctx, d, order, idx, res.Graph, sc, res.Columns); err != nil {
		return nil, err
	}
	if res.Targets, err = collectTargets(idx, sc); err != nil {
		return nil, err
	}

	logger.Info("Build: Graph construction successful.", "nodes", len(res.Graph.Nodes()), "targets", len(res.Targets))
	return res, nil
}

// Plan builds model and resolves its outputs.
func Plan(ctx context.Context, model *config.Model, r *registry.Registry, opts recon.Options) (*recon.Pipeline, error) {
	res, err := Build(ctx, model, r)
	if err != nil {
		return nil, err
	}
	return res.Graph.ResolveWith(ctx, opts, res.Targets...)
}

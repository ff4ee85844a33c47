package ffm

import (
	"context"
	"fmt"

	"github.com/specialistvlad/staticpipe/internal/recon"
	"github.com/specialistvlad/staticpipe/internal/registry"
)

// Output attribute names of an ffm step in descriptions.
const (
	OutputScore          = "score"
	OutputPredictedLabel = "predicted_label"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Trainer is used by every ffm step declared from a description.
	Trainer Trainer
	// Observer, when set, is attached to every such step.
	Observer Observer
}

// Register registers the ffm step kind.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStep(&registry.StepKind{
		Name:        Kind,
		Description: "field-aware factorization machine binary classifier",
		Arguments: []registry.ArgumentSpec{
			{Name: "label", Required: true},
			{Name: "features", Required: true, Many: true},
		},
		Outputs: []string{OutputScore, OutputPredictedLabel},
		Declare: m.declare,
	})
}

func (m *Module) declare(_ context.Context, g *recon.Graph, args *registry.Arguments) (map[string]recon.Column, error) {
	labelCol, err := args.Column("label")
	if err != nil {
		return nil, err
	}
	label, err := recon.AsBool(labelCol)
	if err != nil {
		return nil, fmt.Errorf("%s: label: %w", args.Step, err)
	}

	featureCols, err := args.Columns("features")
	if err != nil {
		return nil, err
	}
	features := make([]recon.Vector, len(featureCols))
	for i, c := range featureCols {
		if features[i], err = recon.AsVector(c); err != nil {
			return nil, fmt.Errorf("%s: features[%d]: %w", args.Step, i, err)
		}
	}

	opts := DefaultOptions()
	if err := args.DecodeOptions(&opts); err != nil {
		return nil, err
	}

	score, predicted, err := Train(g, label, features,
		WithOptions(opts),
		WithTrainer(m.Trainer),
		WithObserver(m.Observer),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", args.Step, err)
	}
	return map[string]recon.Column{
		OutputScore:          score.Column,
		OutputPredictedLabel: predicted.Column,
	}, nil
}

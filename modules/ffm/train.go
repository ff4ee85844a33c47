package ffm

import (
	"context"
	"fmt"

	"github.com/specialistvlad/staticpipe/internal/estimator"
	"github.com/specialistvlad/staticpipe/internal/recon"
)

// Kind is the node kind, and the step kind in descriptions.
const Kind = "ffm"

// Output roles, in the order the node declares them.
const (
	RoleScore          = "Score"
	RolePredictedLabel = "PredictedLabel"
)

// Observer receives a copy of the fitted parameters after every Fit.
type Observer func(*ModelParameters)

type settings struct {
	options  Options
	observer Observer
	trainer  Trainer
}

// Option customizes a Train call.
type Option func(*settings)

// WithOptions replaces the default trainer settings.
func WithOptions(o Options) Option {
	return func(s *settings) { s.options = o }
}

// WithObserver attaches a post-fit observer.
func WithObserver(fn Observer) Option {
	return func(s *settings) { s.observer = fn }
}

// WithTrainer sets the trainer the materialized step fits with.
func WithTrainer(t Trainer) Option {
	return func(s *settings) { s.trainer = t }
}

// Train declares an FFM node on g that learns label from features and returns
// its Score and PredictedLabel columns. Malformed columns are rejected here,
// before the node enters the graph; malformed options are reported when the
// node is materialized.
func Train(g *recon.Graph, label recon.Bool, features []recon.Vector, opts ...Option) (recon.Scalar, recon.Bool, error) {
	if g == nil {
		return recon.Scalar{}, recon.Bool{}, fmt.Errorf("%w: ffm: nil graph", recon.ErrInvalidArgument)
	}
	if !label.Valid() {
		return recon.Scalar{}, recon.Bool{}, fmt.Errorf("%w: ffm: label column is null", recon.ErrInvalidArgument)
	}
	if _, err := recon.AsBool(label.Column); err != nil {
		return recon.Scalar{}, recon.Bool{}, fmt.Errorf("ffm: label: %w", err)
	}
	if len(features) == 0 {
		return recon.Scalar{}, recon.Bool{}, fmt.Errorf("%w: ffm: at least one feature column is required", recon.ErrInvalidArgument)
	}
	for i, f := range features {
		if _, err := recon.AsVector(f.Column); err != nil {
			return recon.Scalar{}, recon.Bool{}, fmt.Errorf("ffm: features[%d]: %w", i, err)
		}
	}

	s := settings{options: DefaultOptions()}
	for _, opt := range opts {
		opt(&s)
	}

	inputs := make([]recon.Column, 0, 1+len(features))
	inputs = append(inputs, label.Column)
	for _, f := range features {
		inputs = append(inputs, f.Column)
	}
	n, err := g.AddNode(Kind, &reconciler{settings: s}, inputs, []recon.OutputSpec{
		{Role: RoleScore, Type: recon.ScalarType},
		{Role: RolePredictedLabel, Type: recon.BoolType},
	})
	if err != nil {
		return recon.Scalar{}, recon.Bool{}, err
	}

	scoreCol, _ := n.Output(RoleScore)
	labelCol, _ := n.Output(RolePredictedLabel)
	score, err := recon.AsScalar(scoreCol)
	if err != nil {
		return recon.Scalar{}, recon.Bool{}, err
	}
	predicted, err := recon.AsBool(labelCol)
	if err != nil {
		return recon.Scalar{}, recon.Bool{}, err
	}
	return score, predicted, nil
}

// reconciler builds the executable step once the column names are known.
type reconciler struct {
	settings settings
}

func (r *reconciler) Reconcile(_ context.Context, inputNames, outputNames []string) (estimator.Estimator, error) {
	if len(inputNames) < 2 {
		return nil, fmt.Errorf("%w: ffm needs a label and at least one feature, got %d inputs", recon.ErrConfiguration, len(inputNames))
	}
	if len(outputNames) != 2 {
		return nil, fmt.Errorf("%w: ffm produces 2 outputs, got %d names", recon.ErrConfiguration, len(outputNames))
	}
	if err := r.settings.options.Validate(); err != nil {
		return nil, err
	}
	return &Step{
		LabelColumn:          inputNames[0],
		FeatureColumns:       append([]string(nil), inputNames[1:]...),
		ScoreColumn:          outputNames[0],
		PredictedLabelColumn: outputNames[1],
		Options:              r.settings.options,
		trainer:              r.settings.trainer,
		observer:             r.settings.observer,
	}, nil
}

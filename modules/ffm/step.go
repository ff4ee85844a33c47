package ffm

import (
	"context"
	"fmt"

	"github.com/specialistvlad/staticpipe/internal/ctxlog"
	"github.com/specialistvlad/staticpipe/internal/estimator"
	"github.com/specialistvlad/staticpipe/internal/recon"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Step is a materialized FFM node bound to concrete column names.
type Step struct {
	LabelColumn          string
	FeatureColumns       []string
	ScoreColumn          string
	PredictedLabelColumn string
	Options              Options

	trainer  Trainer
	observer Observer
}

// Fit implements estimator.Estimator.
func (s *Step) Fit(ctx context.Context, data estimator.Dataset) (estimator.Transformer, error) {
	logger := ctxlog.FromContext(ctx)
	if s.trainer == nil {
		return nil, fmt.Errorf("%w: ffm: no trainer configured", recon.ErrConfiguration)
	}

	var labels []bool
	if err := readColumn(data, s.LabelColumn, &labels); err != nil {
		return nil, err
	}
	fields, err := readFields(data, s.FeatureColumns)
	if err != nil {
		return nil, err
	}

	logger.Debug("FFM: Training.", "label", s.LabelColumn, "features", s.FeatureColumns, "rows", data.Rows())
	pred, err := s.trainer.Train(ctx, TrainingSet{Labels: labels, Fields: fields}, s.Options)
	if err != nil {
		return nil, fmt.Errorf("ffm: training: %w", err)
	}
	if pred == nil {
		return nil, fmt.Errorf("%w: ffm: trainer returned no model", recon.ErrConfiguration)
	}

	if s.observer != nil {
		s.observer(pred.Parameters().Clone())
	}
	return &Model{step: s, predictor: pred}, nil
}

// Model is a fitted Step.
type Model struct {
	step      *Step
	predictor Predictor
}

// Parameters returns a copy of the fitted parameters.
func (m *Model) Parameters() *ModelParameters {
	return m.predictor.Parameters().Clone()
}

// Transform implements estimator.Transformer. It appends the score and
// predicted label columns.
func (m *Model) Transform(ctx context.Context, data estimator.Dataset) (estimator.Dataset, error) {
	fields, err := readFields(data, m.step.FeatureColumns)
	if err != nil {
		return nil, err
	}
	scores, labels, err := m.predictor.Predict(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("ffm: predicting: %w", err)
	}
	if len(scores) != data.Rows() || len(labels) != data.Rows() {
		return nil, fmt.Errorf("ffm: predictor returned %d scores and %d labels for %d rows", len(scores), len(labels), data.Rows())
	}

	// gocty encodes a nil slice as a null list.
	if scores == nil {
		scores, labels = []float64{}, []bool{}
	}
	scoreVal, err := gocty.ToCtyValue(scores, cty.List(recon.ScalarType))
	if err != nil {
		return nil, fmt.Errorf("ffm: encoding scores: %w", err)
	}
	labelVal, err := gocty.ToCtyValue(labels, cty.List(recon.BoolType))
	if err != nil {
		return nil, fmt.Errorf("ffm: encoding labels: %w", err)
	}

	out, err := estimator.FromDataset(data)
	if err != nil {
		return nil, err
	}
	if out, err = out.With(m.step.ScoreColumn, scoreVal); err != nil {
		return nil, err
	}
	return out.With(m.step.PredictedLabelColumn, labelVal)
}

func readFields(data estimator.Dataset, names []string) ([][][]float64, error) {
	fields := make([][][]float64, len(names))
	for i, name := range names {
		if err := readColumn(data, name, &fields[i]); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

func readColumn(data estimator.Dataset, name string, target any) error {
	v, ok := data.Column(name)
	if !ok {
		return fmt.Errorf("ffm: dataset has no column %q", name)
	}
	if err := gocty.FromCtyValue(v, target); err != nil {
		return fmt.Errorf("ffm: column %q: %w", name, err)
	}
	return nil
}

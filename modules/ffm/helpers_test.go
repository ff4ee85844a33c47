package ffm

import (
	"context"
	"testing"

	"github.com/specialistvlad/staticpipe/internal/estimator"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// stubTrainer records its calls and returns a stubPredictor.
type stubTrainer struct {
	calls   int
	lastSet TrainingSet
	lastOpt Options
}

func (s *stubTrainer) Train(_ context.Context, set TrainingSet, opts Options) (Predictor, error) {
	s.calls++
	s.lastSet = set
	s.lastOpt = opts
	return &stubPredictor{params: &ModelParameters{
		FieldCount:        len(set.Fields),
		FeatureCount:      2,
		LatentDimension:   opts.LatentDimension,
		NormalizeFeatures: opts.NormalizeFeatures,
		LinearWeights:     []float64{0.25, -0.5},
		LatentWeights:     []float64{1, 2, 3, 4},
	}}, nil
}

// stubPredictor scores a row as the sum of the first element of every
// field's vector and labels it positive above zero.
type stubPredictor struct {
	params *ModelParameters
}

func (p *stubPredictor) Parameters() *ModelParameters {
	return p.params
}

func (p *stubPredictor) Predict(_ context.Context, fields [][][]float64) ([]float64, []bool, error) {
	rows := 0
	if len(fields) > 0 {
		rows = len(fields[0])
	}
	scores := make([]float64, rows)
	labels := make([]bool, rows)
	for _, field := range fields {
		for row, vec := range field {
			if len(vec) > 0 {
				scores[row] += vec[0]
			}
		}
	}
	for row, s := range scores {
		labels[row] = s > 0
	}
	return scores, labels, nil
}

func vectors(rows ...[]float64) cty.Value {
	vals := make([]cty.Value, len(rows))
	for i, row := range rows {
		elems := make([]cty.Value, len(row))
		for j, f := range row {
			elems[j] = cty.NumberFloatVal(f)
		}
		vals[i] = cty.ListVal(elems)
	}
	return cty.ListVal(vals)
}

// trainingTable has the columns Label, F1 and F2 with three rows.
func trainingTable(t *testing.T) *estimator.Table {
	t.Helper()
	tbl, err := estimator.NewTable(
		[]string{"Label", "F1", "F2"},
		[]cty.Value{
			cty.ListVal([]cty.Value{cty.True, cty.False, cty.True}),
			vectors([]float64{1, 0}, []float64{-2, 1}, []float64{0.5, 0.5}),
			vectors([]float64{0.5}, []float64{0.5}, []float64{-1}),
		},
	)
	require.NoError(t, err)
	return tbl
}

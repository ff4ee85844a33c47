package integrationtests

import (
	"context"

	"github.com/specialistvlad/staticpipe/internal/registry"
	"github.com/specialistvlad/staticpipe/internal/testutil"
	"github.com/specialistvlad/staticpipe/modules/ffm"
)

// firstElementPredictor scores a row as the sum of the first element of every
// field's vector and labels it positive above zero.
type firstElementPredictor struct{}

func (firstElementPredictor) Parameters() *ffm.ModelParameters {
	return &ffm.ModelParameters{}
}

func (firstElementPredictor) Predict(_ context.Context, fields [][][]float64) ([]float64, []bool, error) {
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

var firstElementTrainer = ffm.TrainerFunc(func(context.Context, ffm.TrainingSet, ffm.Options) (ffm.Predictor, error) {
	return firstElementPredictor{}, nil
})

// testModules registers ffm with a deterministic trainer and a "copy" kind
// whose output attribute is "copied".
func testModules(observer ffm.Observer) []registry.Module {
	return []registry.Module{
		&ffm.Module{Trainer: firstElementTrainer, Observer: observer},
		&testutil.SimpleModule{Kind: "copy", Output: "copied"},
	}
}

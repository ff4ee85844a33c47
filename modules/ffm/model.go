package ffm

import "context"

// TrainingSet is the data handed to a Trainer.
type TrainingSet struct {
	Labels []bool
	// Fields holds one entry per feature column: Fields[f][row] is the
	// feature vector of field f for that row.
	Fields [][][]float64
}

// Rows returns the number of examples.
func (s TrainingSet) Rows() int {
	return len(s.Labels)
}

// Trainer fits a field-aware factorization machine.
type Trainer interface {
	Train(ctx context.Context, set TrainingSet, opts Options) (Predictor, error)
}

// TrainerFunc adapts a function to the Trainer interface.
type TrainerFunc func(ctx context.Context, set TrainingSet, opts Options) (Predictor, error)

// Train implements Trainer.
func (f TrainerFunc) Train(ctx context.Context, set TrainingSet, opts Options) (Predictor, error) {
	return f(ctx, set, opts)
}

// Predictor is a trained model.
type Predictor interface {
	// Parameters returns the fitted parameters. Callers must not modify them.
	Parameters() *ModelParameters
	// Predict scores every row of fields, laid out as in TrainingSet.Fields.
	Predict(ctx context.Context, fields [][][]float64) (scores []float64, labels []bool, err error)
}

// ModelParameters are the fitted weights of a model.
type ModelParameters struct {
	FieldCount        int       `json:"field_count" yaml:"field_count"`
	FeatureCount      int       `json:"feature_count" yaml:"feature_count"`
	LatentDimension   int       `json:"latent_dimension" yaml:"latent_dimension"`
	NormalizeFeatures bool      `json:"normalize_features" yaml:"normalize_features"`
	LinearWeights     []float64 `json:"linear_weights" yaml:"linear_weights"`
	// LatentWeights is laid out feature-major, then field, then latent
	// dimension.
	LatentWeights []float64 `json:"latent_weights" yaml:"latent_weights"`
}

// Clone returns a deep copy of p.
func (p *ModelParameters) Clone() *ModelParameters {
	if p == nil {
		return nil
	}
	c := *p
	c.LinearWeights = append([]float64(nil), p.LinearWeights...)
	c.LatentWeights = append([]float64(nil), p.LatentWeights...)
	return &c
}

package ffm

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/staticpipe/internal/recon"
)

// Options are the trainer settings. They are passed to the Trainer unchanged.
type Options struct {
	LearningRate      float64 `hcl:"learning_rate,optional" json:"learning_rate" yaml:"learning_rate"`
	Iterations        int     `hcl:"iterations,optional" json:"iterations" yaml:"iterations"`
	LatentDimension   int     `hcl:"latent_dimension,optional" json:"latent_dimension" yaml:"latent_dimension"`
	LambdaLinear      float64 `hcl:"lambda_linear,optional" json:"lambda_linear" yaml:"lambda_linear"`
	LambdaLatent      float64 `hcl:"lambda_latent,optional" json:"lambda_latent" yaml:"lambda_latent"`
	NormalizeFeatures bool    `hcl:"normalize_features,optional" json:"normalize_features" yaml:"normalize_features"`
	Shuffle           bool    `hcl:"shuffle,optional" json:"shuffle" yaml:"shuffle"`
	// Threshold is the score above which the trained Predictor labels a row
	// positive. The step does not apply it; PredictedLabel is whatever
	// Predictor.Predict returns.
	Threshold float64 `hcl:"threshold,optional" json:"threshold" yaml:"threshold"`
}

// DefaultOptions returns the settings used when none are given.
func DefaultOptions() Options {
	return Options{
		LearningRate:      0.1,
		Iterations:        5,
		LatentDimension:   20,
		LambdaLinear:      0.0001,
		LambdaLatent:      0.0001,
		NormalizeFeatures: true,
		Shuffle:           true,
		Threshold:         0,
	}
}

// Validate reports every malformed setting at once. The error wraps
// recon.ErrConfiguration.
func (o Options) Validate() error {
	var problems []string
	if o.LearningRate <= 0 {
		problems = append(problems, fmt.Sprintf("learning_rate must be positive, got %g", o.LearningRate))
	}
	if o.Iterations < 1 {
		problems = append(problems, fmt.Sprintf("iterations must be at least 1, got %d", o.Iterations))
	}
	if o.LatentDimension < 1 {
		problems = append(problems, fmt.Sprintf("latent_dimension must be at least 1, got %d", o.LatentDimension))
	}
	if o.LambdaLinear < 0 {
		problems = append(problems, fmt.Sprintf("lambda_linear cannot be negative, got %g", o.LambdaLinear))
	}
	if o.LambdaLatent < 0 {
		problems = append(problems, fmt.Sprintf("lambda_latent cannot be negative, got %g", o.LambdaLatent))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: ffm options: %s", recon.ErrConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

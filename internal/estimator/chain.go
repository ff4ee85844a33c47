package estimator

import (
	"context"
	"fmt"
)

// Chain is an Estimator that fits its steps in order, feeding each step the
// data transformed by every step before it.
type Chain []Estimator

// Fit implements Estimator.
func (c Chain) Fit(ctx context.Context, data Dataset) (Transformer, error) {
	fitted := make(ChainTransformer, 0, len(c))
	current := data
	for i, step := range c {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := step.Fit(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("fitting step %d: %w", i, err)
		}
		fitted = append(fitted, t)

		// The last step's output is not needed to fit anything else.
		if i == len(c)-1 {
			break
		}
		current, err = t.Transform(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("transforming through step %d: %w", i, err)
		}
	}
	return fitted, nil
}

// ChainTransformer applies fitted transformers in order.
type ChainTransformer []Transformer

// Transform implements Transformer.
func (c ChainTransformer) Transform(ctx context.Context, data Dataset) (Dataset, error) {
	current := data
	for i, t := range c {
		next, err := t.Transform(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("transforming through step %d: %w", i, err)
		}
		current = next
	}
	return current, nil
}

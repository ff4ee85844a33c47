package estimator

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Dataset is a read-only, column-oriented view of tabular data.
type Dataset interface {
	// Columns returns the column names in schema order.
	Columns() []string
	// Column returns the data of the named column as a cty list.
	Column(name string) (cty.Value, bool)
	// Rows returns the number of rows shared by every column.
	Rows() int
}

// Estimator is an unfitted pipeline step.
type Estimator interface {
	// Fit trains the step on data and returns the fitted transformer.
	Fit(ctx context.Context, data Dataset) (Transformer, error)
}

// Transformer is a fitted pipeline step.
type Transformer interface {
	// Transform returns a new Dataset holding the input columns plus the
	// columns this transformer produces. The input is never modified.
	Transform(ctx context.Context, data Dataset) (Dataset, error)
}

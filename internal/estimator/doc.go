// Package estimator defines the executable step contract produced by
// resolving a pipeline: an Estimator is fitted on a Dataset and yields a
// Transformer that appends its output columns to any compatible Dataset.
//
// Column data is carried as cty values. Every column of a Dataset is a known,
// non-null cty list whose length is the row count. Scalar columns are lists of
// numbers or bools; vector columns are lists of lists of numbers.
package estimator

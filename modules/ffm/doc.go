// Package ffm adapts a field-aware factorization machine binary classifier to
// the symbolic column model.
//
// Train declares the producer node from a boolean label column and one or
// more vector feature columns and hands back the node's Score and
// PredictedLabel columns. The numerical work is delegated to a Trainer; this
// package only wires names, options and data between the pipeline and it.
package ffm

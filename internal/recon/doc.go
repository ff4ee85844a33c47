// Package recon implements symbolic column reconciliation: composing a
// pipeline from typed placeholder columns before any concrete column name
// exists, then resolving the placeholders into a name-bound, ordered chain of
// executable estimator steps.
//
// # Model
//
// A Graph is an arena holding every column and producer node of one pipeline
// under construction.
//
//   - Root columns are created by the caller with Graph.Input. They carry the
//     concrete name the data will have.
//   - Producer nodes are added with Graph.AddNode. A node consumes an ordered
//     list of existing columns and declares an ordered list of typed output
//     roles. The derived output columns are created by AddNode and cannot be
//     created any other way, so a node always exists before its outputs.
//   - A Column is a small value: a graph pointer plus an index into the
//     graph's column table. Derived columns find their producer by index
//     lookup, never through an owning pointer.
//
// # Resolution
//
// Graph.Resolve takes the columns the caller wants in the final data and:
//
//  1. discovers every reachable producer by walking inputs depth first,
//     rejecting cycles found on the walk stack (ErrCycleDetected);
//  2. assigns a concrete name to every reachable column: roots keep their
//     own names, requested outputs may be given explicit names and every
//     other derived column takes its role name, suffixed when taken;
//  3. materializes each node exactly once, dependencies first;
//  4. returns the steps, in that order, as a Pipeline.
//
// Any failure aborts resolution and no Pipeline is returned. Nodes are
// single-use: a graph is resolved once.
//
// A Graph is not safe for concurrent use.
package recon

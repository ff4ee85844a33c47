// Package dag holds a small string-keyed directed graph used to order the
// steps of a pipeline description before any column is declared. Edges point
// from a dependency to its dependent. Iteration follows node insertion order,
// so cycle reports and topological orders are stable across runs.
package dag

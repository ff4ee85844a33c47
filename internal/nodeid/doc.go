/*
Package nodeid provides structured identifiers for everything a pipeline
refers to by name: producer nodes inside a reconciliation graph (`ffm[0]`)
and the blocks of a pipeline description (`input.Label`, `step.ffm.ctr`).

An identifier is a dot-separated sequence of segments, each an optional
`[index]`-suffixed name, e.g. `step.ffm.ctr` or `ffm[2]`.
*/
package nodeid

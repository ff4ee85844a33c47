/*
Package builder turns a format-agnostic pipeline description (config.Model)
into a recon.Graph and resolves it.

Construction runs in passes:

 1. Indexing: inputs, steps and outputs are indexed by address and checked
    for duplicates and unknown step kinds.

 2. Linking: variable references in step arguments (`input.X`,
    `step.<kind>.<name>.<output>`) are checked against the index and turned
    into dag edges. Cycles between steps are reported here, before anything
    is declared.

 3. Declaration: steps are visited in topological order. Each step's
    arguments are evaluated against an hcl.EvalContext in which every known
    column is a capsule value, and the step kind's Declare function adds the
    producer nodes to the graph.

 4. Targets: output values are evaluated the same way and become resolution
    targets named after their output block.

Plan runs the passes and hands the targets to the resolver.
*/
package builder

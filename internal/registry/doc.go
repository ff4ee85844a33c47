// Package registry maps the step kinds used in pipeline descriptions (e.g.
// `step "ffm" "ctr" {}`) to the Go code that declares their producer nodes.
//
// Modules populate a Registry at startup through the Module interface. The
// builder then looks kinds up by name, validates the arguments of each step
// against the kind's declared argument list and calls the kind's Declare
// function with the evaluated arguments.
//
// Columns travel through HCL evaluation as cty capsule values. ColumnVal and
// ColumnFromVal convert between the two representations.
package registry

// Package config defines the format-agnostic model of a pipeline description
// and the Loader interface that produces it.
//
// A description declares root columns (inputs), producer steps and the output
// columns to resolve. Step arguments and output values stay unevaluated HCL
// expressions; the builder evaluates them once the columns they reference
// exist. Concrete loaders, such as the HCL one, live in separate packages.
package config

// Package hcl provides the HCL implementation of config.Loader. It parses
// pipeline description files, translates their blocks into the
// format-agnostic config model and turns type expressions such as
// `list(number)` into cty types.
package hcl

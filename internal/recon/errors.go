package recon

import "errors"

var (
	// ErrInvalidArgument reports a malformed declaration: a null, foreign or
	// repeated input column, an empty input list or a bad output list.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConfiguration reports a mismatch found while binding names, such as
	// an arity mismatch or invalid producer options.
	ErrConfiguration = errors.New("configuration error")

	// ErrCycleDetected reports a producer that depends on its own output.
	ErrCycleDetected = errors.New("cycle detected")

	// ErrDuplicateName reports two distinct columns bound to the same name.
	ErrDuplicateName = errors.New("duplicate column name")

	// ErrInvalidState reports an operation on a node that was already
	// materialized.
	ErrInvalidState = errors.New("invalid state")
)

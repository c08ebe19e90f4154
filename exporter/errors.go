package exporter

import (
	"errors"

	"value-exporter/value"
)

// Sentinel errors for exports. Failures are returned as *Error, which unwraps
// to one of these.
var (
	// ErrUnexportable is returned for values without a textual form, such as
	// channels, functions and other live resources.
	ErrUnexportable = errors.New("unexportable value")

	// ErrFieldMismatch is returned when a record holds a field its shape does
	// not declare.
	ErrFieldMismatch = value.ErrFieldMismatch

	// ErrNameSpaceExhausted completes the taxonomy. Binding names exist for
	// every non-negative index, so it is never returned.
	ErrNameSpaceExhausted = errors.New("binding name space exhausted")
)

// Error locates a failure inside the exported graph.
type Error struct {
	// Path is the location of the offending node, e.g. `$[1].Next{"id"}`.
	Path string
	// Err is the cause.
	Err error
}

// Error returns the message with its path.
func (e *Error) Error() string {
	return "export " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.Err }

// Package pipeline wires every generation stage together into the single
// entry point cmd/terrain calls, and defines the two error classes used at
// the CLI boundary.
package pipeline

import "fmt"

// UserError signals a recoverable problem with CLI input: an invalid seed,
// non-positive dimensions, or an output-directory conflict. cmd/terrain
// exits 2 on this class.
type UserError struct {
	Reason string
}

func (e *UserError) Error() string { return e.Reason }

// NewUserError formats a UserError as a single-line message naming the
// cause.
func NewUserError(format string, args ...any) *UserError {
	return &UserError{Reason: fmt.Sprintf(format, args...)}
}

// InvariantError signals a stage-boundary assertion failure: a bug, not a
// user input problem. cmd/terrain exits with a nonzero non-2 code on this
// class and the error propagates with no recovery attempt.
type InvariantError struct {
	Stage  string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated in %s: %s", e.Stage, e.Reason)
}

// NewInvariantError constructs an InvariantError for the named stage.
func NewInvariantError(stage, format string, args ...any) *InvariantError {
	return &InvariantError{Stage: stage, Reason: fmt.Sprintf(format, args...)}
}

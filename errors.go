package gp

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the last error recorded by a Context.
type ErrorCode uint8

const (
	// ErrorCodeNone means no error is set.
	ErrorCodeNone ErrorCode = iota
	// ErrorCodeInvalidBackend means the backend failed during setup.
	ErrorCodeInvalidBackend
	// ErrorCodeVerticesFull means the vertex arena is exhausted.
	ErrorCodeVerticesFull
	// ErrorCodeUniformsFull means the uniform arena is exhausted.
	ErrorCodeUniformsFull
	// ErrorCodeCommandsFull means the command arena is exhausted.
	ErrorCodeCommandsFull
	// ErrorCodeTransformStackOverflow means PushTransform went past the maximum depth.
	ErrorCodeTransformStackOverflow
	// ErrorCodeTransformStackUnderflow means PopTransform was called on an empty stack.
	ErrorCodeTransformStackUnderflow
	// ErrorCodeStateStackOverflow means Begin went past the maximum nesting depth.
	ErrorCodeStateStackOverflow
	// ErrorCodeStateStackUnderflow means End was called without a matching Begin.
	ErrorCodeStateStackUnderflow
	// ErrorCodeBackendFailure means the backend rejected an operation during flush.
	ErrorCodeBackendFailure
)

// Sentinel errors, one per error code. Context.Err wraps these so callers can
// use errors.Is.
var (
	// ErrInvalidBackend is returned when the backend is nil or fails during setup.
	ErrInvalidBackend = errors.New("gp: invalid backend")

	// ErrVerticesFull is reported when the vertex arena has no room left.
	ErrVerticesFull = errors.New("gp: vertex buffer full")

	// ErrUniformsFull is reported when the uniform arena has no room left.
	ErrUniformsFull = errors.New("gp: uniform buffer full")

	// ErrCommandsFull is reported when the command arena has no room left.
	ErrCommandsFull = errors.New("gp: command buffer full")

	// ErrTransformStackOverflow is reported by PushTransform at maximum depth.
	ErrTransformStackOverflow = errors.New("gp: transform stack overflow")

	// ErrTransformStackUnderflow is reported by PopTransform on an empty stack.
	ErrTransformStackUnderflow = errors.New("gp: transform stack underflow")

	// ErrStateStackOverflow is reported by Begin at maximum depth.
	ErrStateStackOverflow = errors.New("gp: state stack overflow")

	// ErrStateStackUnderflow is reported by End without a matching Begin.
	ErrStateStackUnderflow = errors.New("gp: state stack underflow")

	// ErrBackendFailure is reported when the backend fails during flush.
	ErrBackendFailure = errors.New("gp: backend failure")
)

var errorCodeNames = [...]string{
	ErrorCodeNone:                    "None",
	ErrorCodeInvalidBackend:          "InvalidBackend",
	ErrorCodeVerticesFull:            "VerticesFull",
	ErrorCodeUniformsFull:            "UniformsFull",
	ErrorCodeCommandsFull:            "CommandsFull",
	ErrorCodeTransformStackOverflow:  "TransformStackOverflow",
	ErrorCodeTransformStackUnderflow: "TransformStackUnderflow",
	ErrorCodeStateStackOverflow:      "StateStackOverflow",
	ErrorCodeStateStackUnderflow:     "StateStackUnderflow",
	ErrorCodeBackendFailure:          "BackendFailure",
}

var errorCodeErrs = [...]error{
	ErrorCodeNone:                    nil,
	ErrorCodeInvalidBackend:          ErrInvalidBackend,
	ErrorCodeVerticesFull:            ErrVerticesFull,
	ErrorCodeUniformsFull:            ErrUniformsFull,
	ErrorCodeCommandsFull:            ErrCommandsFull,
	ErrorCodeTransformStackOverflow:  ErrTransformStackOverflow,
	ErrorCodeTransformStackUnderflow: ErrTransformStackUnderflow,
	ErrorCodeStateStackOverflow:      ErrStateStackOverflow,
	ErrorCodeStateStackUnderflow:     ErrStateStackUnderflow,
	ErrorCodeBackendFailure:          ErrBackendFailure,
}

// String returns the string representation of an ErrorCode.
func (c ErrorCode) String() string {
	if int(c) < len(errorCodeNames) {
		return errorCodeNames[c]
	}
	return "Unknown"
}

// Err returns the sentinel error for the code, or nil for ErrorCodeNone.
func (c ErrorCode) Err() error {
	if int(c) < len(errorCodeErrs) {
		return errorCodeErrs[c]
	}
	return fmt.Errorf("gp: unknown error code %d", uint8(c))
}

// setError records code as the last error. Last write wins.
func (c *Context) setError(code ErrorCode, msg string) {
	c.errCode = code
	c.errMsg = msg
	Logger().Warn("gp: error", "code", code.String(), "msg", msg)
}

// ErrorCode returns the last error code recorded by the context.
func (c *Context) ErrorCode() ErrorCode {
	return c.errCode
}

// ErrorMessage returns a human readable message for the last error, or an
// empty string when no error is set.
func (c *Context) ErrorMessage() string {
	return c.errMsg
}

// Err returns the last error as a Go error wrapping the matching sentinel,
// or nil when no error is set.
func (c *Context) Err() error {
	if c.errCode == ErrorCodeNone {
		return nil
	}
	return fmt.Errorf("%w: %s", c.errCode.Err(), c.errMsg)
}

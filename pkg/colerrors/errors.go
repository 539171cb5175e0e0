// Package colerrors provides the structured error type raised by the
// colmap and groupsort packages, and by their storage-engine collaborators.
//
// Every error is classified by an ErrorType matching the kinds the
// planner's factory (colmap.Make) is specified to raise: Invalid,
// NotImplemented, IndexError and ExecutionError. Construction always
// captures a call stack, so a failed Make can be traced back to the
// column and dimension that triggered it without re-running under a
// debugger.
package colerrors

import (
	"errors"
	"runtime"

	"github.com/ratt-ru/casa-arrow/pkg/strpool"
)

// ErrorType categorizes an Error for handling and logging.
type ErrorType string

const (
	// TypeInvalid marks bad input: a selection index outside a column's
	// declared extent, or a request for an output shape that does not
	// exist.
	TypeInvalid ErrorType = "invalid"
	// TypeNotImplemented marks a recognized but unsupported column
	// shape: an undefined row, or per-row dimensionality that varies.
	TypeNotImplemented ErrorType = "not_implemented"
	// TypeIndexError marks a dimension size that cannot be resolved
	// outside of active row-iteration context.
	TypeIndexError ErrorType = "index_error"
	// TypeExecutionError marks an internal invariant break that should
	// be unreachable, such as zero ranges being generated.
	TypeExecutionError ErrorType = "execution_error"
	// TypeInternal is reserved for assertion failures promoted to
	// errors at API boundaries that must not panic.
	TypeInternal ErrorType = "internal"
)

// StackFrame captures a single call-stack entry.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error is the structured error type used throughout this module.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return strpool.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return strpool.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap enables errors.Is/errors.As chain inspection.
func (e *Error) Unwrap() error { return e.Cause }

// WithDetail attaches a key-value detail and returns the receiver for
// chaining.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func captureStack(skip int) []StackFrame {
	const maxFrames = 16
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(skip+1, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	stack := make([]StackFrame, 0, n)
	for {
		frame, more := frames.Next()
		stack = append(stack, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}
	return stack
}

// New creates an Error of the given type, capturing the current call
// stack.
func New(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message, Stack: captureStack(2)}
}

// Newf is New with fmt-style formatting.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: errType, Message: strpool.Sprintf(format, args...), Stack: captureStack(2)}
}

// Wrap attaches errType and message to an existing error, preserving it
// as Cause. Returns nil if err is nil. If err is already an *Error, its
// stack trace is preserved rather than recaptured.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Type: errType, Message: message, Cause: err, Stack: existing.Stack}
	}

	return &Error{Type: errType, Message: message, Cause: err, Stack: captureStack(2)}
}

// Wrapf is Wrap with fmt-style formatting for the message.
func Wrapf(err error, errType ErrorType, format string, args ...interface{}) *Error {
	return Wrap(err, errType, strpool.Sprintf(format, args...))
}

// IsType reports whether err is an *Error of the given type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

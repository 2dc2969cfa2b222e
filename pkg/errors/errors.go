// Package errors provides structured error types for the anchor layout engine.
//
// Every failure the engine can report is identified by a [Code]. Constraint
// specification errors are programmer errors: they are returned synchronously
// at the call that triggers them, never retried, and never leave partial
// state behind.
//
// # Error Codes
//
// Codes fall into three groups:
//   - Constraint algebra: INCOMPATIBLE_*, MISSING_*, DIVIDE_BY_ZERO, UNSUPPORTED_OPERAND
//   - Priorities: INVALID_PRIORITY_*
//   - Layout recipes and inputs: INSUFFICIENT_GRID_CAPACITY, INVALID_*, NO_SUPERVIEW, NOT_FOUND
//
// # Usage
//
//	err := errors.New(errors.ErrCodeIncompatibleAxis, "cannot relate horizontal and vertical attributes")
//	if errors.Is(err, errors.ErrCodeIncompatibleAxis) {
//	    // Handle the rejected constraint
//	}
//
//	// Attach the rendered constraint for diagnostics
//	err = errors.New(code, "...").WithConstraint("a.top == b.leading")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Constraint algebra errors
	ErrCodeIncompatibleKind      Code = "INCOMPATIBLE_ATTRIBUTE_KIND"
	ErrCodeIncompatibleAxis      Code = "INCOMPATIBLE_AXIS"
	ErrCodeIncompatibleEdge      Code = "INCOMPATIBLE_EDGE_CLASS"
	ErrCodeMissingPosition       Code = "MISSING_POSITION_REFERENCE"
	ErrCodeMissingAttribute      Code = "MISSING_ATTRIBUTE"
	ErrCodeDivideByZero          Code = "DIVIDE_BY_ZERO"
	ErrCodeUnsupportedOperand    Code = "UNSUPPORTED_OPERAND"
	ErrCodeGuideAttribute        Code = "ATTRIBUTE_NOT_SUPPORTED_FOR_GUIDE"
	ErrCodeInvalidPriority       Code = "INVALID_PRIORITY_VALUE"
	ErrCodeInvalidPriorityChange Code = "INVALID_PRIORITY_TRANSITION"
	ErrCodeInsufficientGrid      Code = "INSUFFICIENT_GRID_CAPACITY"
	ErrCodeNoSuperview           Code = "NO_SUPERVIEW"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPacking Code = "INVALID_PACKING"
	ErrCodeInvalidScene   Code = "INVALID_SCENE"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code       Code   // Machine-readable error code
	Message    string // Human-readable message
	Constraint string // Rendered constraint that triggered the error (optional)
	Cause      error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Constraint != "" {
		msg += ": " + e.Constraint
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithConstraint returns e with the rendered constraint attached.
func (e *Error) WithConstraint(rendered string) *Error {
	e.Constraint = rendered
	return e
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ConstraintText returns the rendered constraint carried by err, if any.
func ConstraintText(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Constraint
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Constraint != "" {
			return e.Message + ": " + e.Constraint
		}
		return e.Message
	}
	return err.Error()
}

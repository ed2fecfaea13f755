// Package errors provides structured error types for the conceptmap application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *NOT_FOUND: Unknown ids or missing files
//   - STORE_*: Persistence backend problems
//   - INTERNAL_*: Unexpected internal errors
//
// [Code.Class] keys on this convention; the CLI exit status and the HTTP
// response status are both derived from the class.
//
// The layout engine itself never fails on degraded input (empty hierarchies,
// empty subtopics, duplicate ids). Codes are produced at the edges: decoding a
// hierarchy file, parsing a view name, or addressing a node id that does not
// exist in the loaded hierarchy.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidView, "unknown view %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidView) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidHierarchy, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidView      Code = "INVALID_VIEW"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidHierarchy Code = "INVALID_HIERARCHY"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidID        Code = "INVALID_ID"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Persistence errors
	ErrCodeStoreUnavailable Code = "STORE_UNAVAILABLE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Class groups codes by who has to act on them. The CLI derives its exit
// status and the HTTP API its response status from the class.
type Class int

const (
	ClassInternal    Class = iota // a bug or an unexpected failure
	ClassInvalid                  // the caller sent bad input
	ClassMissing                  // the addressed id or file does not exist
	ClassUnavailable              // a backend is down; retrying may help
	ClassUnsupported              // valid, but not implemented here
)

// Class returns the class of c. Unknown codes are internal.
func (c Code) Class() Class {
	switch {
	case strings.HasPrefix(string(c), "INVALID_"):
		return ClassInvalid
	case strings.HasSuffix(string(c), "NOT_FOUND"):
		return ClassMissing
	case c == ErrCodeStoreUnavailable:
		return ClassUnavailable
	case c == ErrCodeUnsupported:
		return ClassUnsupported
	default:
		return ClassInternal
	}
}

// ClassOf returns the class of err's code, or ClassInternal for plain errors.
func ClassOf(err error) Class {
	return GetCode(err).Class()
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

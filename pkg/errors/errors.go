// Package errors provides structured error types for boxflow.
//
// Every error that crosses the CLI or the HTTP API carries a machine-readable
// [Code]. The HTTP server maps codes to status codes with [IsValidation] and
// [IsNotFound], and shows [UserMessage] to clients.
//
// The layout engine itself never returns errors; these codes cover
// everything around it (documents, styles, rendering, caches, storage).
//
// # Error Codes
//
// Codes are grouped by prefix and suffix: INVALID_* for rejected input,
// *NOT_FOUND for missing resources, and the rest for failures of the
// machinery (network, timeouts, internal errors, unsupported features).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDimension, "invalid dimension %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidDimension) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDocument, origErr, "failed to decode %s", path)
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
	ErrCodeInvalidDocument  Code = "INVALID_DOCUMENT"
	ErrCodeInvalidDimension Code = "INVALID_DIMENSION"
	ErrCodeInvalidStyle     Code = "INVALID_STYLE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidViewport  Code = "INVALID_VIEWPORT"
	ErrCodeInvalidNodeID    Code = "INVALID_NODE_ID"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeLayoutNotFound Code = "LAYOUT_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

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

// Is reports whether any *Error in the chain of err carries code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in the chain of err, or
// "" when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err was caused by bad input: a malformed
// document, style, dimension, viewport, format, node ID or path.
func IsValidation(err error) bool {
	return strings.HasPrefix(string(GetCode(err)), "INVALID_")
}

// IsNotFound reports whether err names a missing file, layout or resource.
func IsNotFound(err error) bool {
	return strings.HasSuffix(string(GetCode(err)), "NOT_FOUND")
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() for other errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

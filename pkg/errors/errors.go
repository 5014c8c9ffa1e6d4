// Package errors provides structured error types for netchart.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Drawing errors are raised synchronously and are never retried:
//   - ATTRIBUTE_COLLISION: graph attributes shadow reserved row columns
//   - INVALID_TYPE: a styling parameter has a kind the property does not accept
//   - UNRESOLVED_REFERENCE: a string parameter names no row column
//   - EMPTY_GRAPH: nothing to draw
//   - MISSING_CONTEXT: no graph, chart or layer to draw from
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidType, "%s must be a number or a string", param)
//	if errors.Is(err, errors.ErrCodeInvalidType) {
//	    // Handle type error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Drawing errors
	ErrCodeAttributeCollision  Code = "ATTRIBUTE_COLLISION"
	ErrCodeInvalidType         Code = "INVALID_TYPE"
	ErrCodeUnresolvedReference Code = "UNRESOLVED_REFERENCE"
	ErrCodeEmptyGraph          Code = "EMPTY_GRAPH"
	ErrCodeMissingContext      Code = "MISSING_CONTEXT"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidLayout Code = "INVALID_LAYOUT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// IsUserError reports whether err was caused by the caller's input rather than
// by an internal failure. Used to pick between 4xx and 5xx responses.
func IsUserError(err error) bool {
	switch GetCode(err) {
	case ErrCodeAttributeCollision, ErrCodeInvalidType, ErrCodeUnresolvedReference,
		ErrCodeEmptyGraph, ErrCodeMissingContext, ErrCodeInvalidInput,
		ErrCodeInvalidFormat, ErrCodeInvalidLayout, ErrCodeInvalidPath:
		return true
	}
	return false
}

// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, missing data, type mismatches
//   - Auth/session errors (200-299): Login, registration, and token errors
//   - API errors (300-399): Transport failures and server-side rejections
//   - Account errors (400-499): Trading account listing and creation errors
//   - Wallet errors (500-599): Wallet listing errors
//   - Ticket errors (600-699): Ticket listing and creation errors
//   - Market data errors (700-799): Market data fetching and parsing errors
//   - Reference data errors (800-899): Country/language lookup errors
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeAccountListFailed, "failed to list accounts for %s", userID)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeAPITransport, "request failed", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeAPIRejected) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// ServerMessage extracts the server-supplied message from an API rejection
// error. The exchange API returns a human-readable message alongside
// success:false responses and callers display it verbatim when present.
// Returns an empty string for nil errors, transport errors, and every other
// error type, signalling that the caller should fall back to its own text.
func ServerMessage(err error) string {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == ErrCodeAPIRejected {
			return e.Message
		}

		err = errors.Unwrap(err)
	}

	return ""
}

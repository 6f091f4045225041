// Package errors provides coded domain errors shared across caseflow modules.
// Codes drive retry classification and event reporting; wrap underlying causes
// so callers can still unwrap with the standard library.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error for propagation and retry decisions.
type Code string

const (
	// CodeParse marks a payload that is not well-formed. Fatal for the message.
	CodeParse Code = "parse_error"

	// CodeValidation marks a well-formed payload with missing or invalid
	// required fields. Fatal for the message. Carries every violation.
	CodeValidation Code = "validation_error"

	// CodeNotFound is a normal outcome for lookups (new case, no prior
	// probation status). Not a failure.
	CodeNotFound Code = "not_found"

	// CodeTerminal marks an HTTP failure that must not be retried
	// (401, 403, unexpected 404, 429).
	CodeTerminal Code = "terminal"

	// CodeTransient marks a retryable failure (5xx, timeout, connection).
	CodeTransient Code = "transient"

	// CodeRetriesExhausted marks a transient failure that outlived the
	// configured retry budget.
	CodeRetriesExhausted Code = "retries_exhausted"

	// CodeInternal covers everything else.
	CodeInternal Code = "internal"
)

func (c Code) String() string { return string(c) }

// Error is the coded error type used across the service.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the code from an error chain, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// Is reports whether any error in the chain carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// Retryable reports whether the error should be retried by the
// synchronization client. Only transient failures qualify.
func Retryable(err error) bool {
	return Is(err, CodeTransient)
}

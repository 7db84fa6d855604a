// Package errors provides structured error types for licensetool.
//
// Every failure the tool can report carries a [Code]. Codes let the CLI map
// failures to exit behavior and let tests assert on the failure category
// without matching message text.
//
// # Error Codes
//
//   - CONFIG_ERROR: malformed override configuration (fatal)
//   - MISSING_LICENSE, MISSING_ORIGIN: per-package resolution failures
//   - RESOLUTION_FAILED: aggregate of per-package failures
//   - PARSE_ERROR: malformed report file (fatal)
//   - IO_ERROR: unreadable or unwritable report or manifest (fatal)
//   - METADATA_ERROR: dependency graph could not be obtained
//   - REPORT_OUTDATED: check found a difference
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingLicense, "package %s is missing a license", id)
//	if errors.Is(err, errors.ErrCodeMissingLicense) {
//	    // Handle missing license
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "could not read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeConfig Code = "CONFIG_ERROR"

	// Per-package resolution errors
	ErrCodeMissingLicense   Code = "MISSING_LICENSE"
	ErrCodeMissingOrigin    Code = "MISSING_ORIGIN"
	ErrCodeResolutionFailed Code = "RESOLUTION_FAILED"

	// Report errors
	ErrCodeParse          Code = "PARSE_ERROR"
	ErrCodeReportOutdated Code = "REPORT_OUTDATED"

	// Environment errors
	ErrCodeIO       Code = "IO_ERROR"
	ErrCodeMetadata Code = "METADATA_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code     Code    // Machine-readable error code
	Message  string  // Human-readable message
	Cause    error   // Underlying error (optional)
	problems []error // Aggregated failures (see Aggregate)
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

// Problems returns the individual failures of an aggregate error.
// It is nil for errors not created by Aggregate.
func (e *Error) Problems() []error {
	return e.problems
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

// Aggregate creates an Error that collects several independent failures.
// Returns nil if problems is empty.
func Aggregate(code Code, problems []error, format string, args ...any) *Error {
	if len(problems) == 0 {
		return nil
	}
	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Cause:    errors.Join(problems...),
		problems: problems,
	}
}

// Is reports whether err, or any error it wraps or aggregates, has the given
// error code.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	if e, ok := err.(*Error); ok {
		return e.Code == code || Is(e.Cause, code)
	}
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return Is(u.Unwrap(), code)
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			if Is(inner, code) {
				return true
			}
		}
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
// For *Error types, the codes are dropped and the messages of wrapped causes
// are appended. The problems of an aggregate are not included; print them
// separately via Problems. Other errors are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil || e.problems != nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}

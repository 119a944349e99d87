// Package apperr maps the engine's sentinel errors onto the CLI's exit
// codes, grounded on perf-analysis/pkg/errors.AppError.
package apperr

import (
	"errors"
	"fmt"
)

// Exit codes, per spec.md §6: 0 success, 1 usage/validation error, 2
// internal/processing failure.
const (
	ExitOK       = 0
	ExitUsage    = 1
	ExitInternal = 2
)

// Error codes classify what went wrong independent of the exit code it
// maps to.
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeMergeForbidden  = "MERGE_FORBIDDEN"
	CodeFeatureContract = "FEATURE_CONTRACT_VIOLATION"
	CodeConvergence     = "CONVERGENCE_FAILURE"
	CodeExternalIO      = "EXTERNAL_IO_ERROR"
	CodeConfigError     = "CONFIG_ERROR"
	CodeUnknown         = "UNKNOWN_ERROR"
)

// AppError is an error carrying a stable code and the exit status the CLI
// should use when it escapes to main.
type AppError struct {
	Code    string
	Exit    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped error to errors.Is / errors.As.
func (e *AppError) Unwrap() error { return e.Err }

// Is compares by code, so callers can test with errors.Is(err, &AppError{Code: CodeX}).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New builds an AppError with no wrapped cause.
func New(code string, exit int, message string) *AppError {
	return &AppError{Code: code, Exit: exit, Message: message}
}

// Wrap builds an AppError around an existing error.
func Wrap(code string, exit int, message string, err error) *AppError {
	return &AppError{Code: code, Exit: exit, Message: message, Err: err}
}

// ExitCode inspects err and returns the exit status the CLI should use:
// an AppError's own Exit field if present, ExitInternal for any other
// non-nil error, ExitOK for nil.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Exit
	}
	return ExitInternal
}

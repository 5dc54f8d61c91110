// Package errors defines the stable error code system for reckless.
package errors

import (
	"errors"
	"fmt"
	"io"
)

// Code is a stable error code string.
type Code string

// Error codes. Stable public contract: scripts may match on these.
const (
	EUsage    Code = "E_USAGE"
	EInternal Code = "E_INTERNAL"

	// Config error codes
	ENoConfig             Code = "E_NO_CONFIG"
	EInvalidConfig        Code = "E_INVALID_CONFIG"
	EConfigExists         Code = "E_CONFIG_EXISTS"
	EBuilderNotConfigured Code = "E_BUILDER_NOT_CONFIGURED"

	// Generation pipeline error codes
	EStorage        Code = "E_STORAGE"
	ETypeResolution Code = "E_TYPE_RESOLUTION"
	EBuilderFailed  Code = "E_BUILDER_FAILED"
	EBuildTimeout   Code = "E_BUILD_TIMEOUT"
	ELocked         Code = "E_LOCKED"

	// Prerequisite error codes
	EBuilderNotInstalled  Code = "E_BUILDER_NOT_INSTALLED"
	EWorkspaceNotWritable Code = "E_WORKSPACE_NOT_WRITABLE"
)

// RecklessError is the standard error type for reckless errors.
type RecklessError struct {
	Code    Code
	Msg     string
	Cause   error
	Details map[string]string // optional structured context
}

// Error returns the stable error format: "CODE: message".
func (e *RecklessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *RecklessError) Unwrap() error {
	return e.Cause
}

// New creates a new RecklessError with the given code and message.
func New(code Code, msg string) error {
	return &RecklessError{Code: code, Msg: msg}
}

// NewWithDetails creates a new RecklessError with code, message, and details.
// Details map is defensively copied (nil if empty).
func NewWithDetails(code Code, msg string, details map[string]string) error {
	return &RecklessError{Code: code, Msg: msg, Details: copyDetails(details)}
}

// Wrap creates a new RecklessError wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &RecklessError{Code: code, Msg: msg, Cause: err}
}

// WrapWithDetails creates a new RecklessError wrapping an underlying error with details.
// Details map is defensively copied (nil if empty).
func WrapWithDetails(code Code, msg string, err error, details map[string]string) error {
	return &RecklessError{Code: code, Msg: msg, Cause: err, Details: copyDetails(details)}
}

// GetCode extracts the error code from an error, or empty string if not a RecklessError.
func GetCode(err error) Code {
	var re *RecklessError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// AsRecklessError returns (*RecklessError, true) if err is or wraps a RecklessError.
func AsRecklessError(err error) (*RecklessError, bool) {
	var re *RecklessError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// copyDetails returns a defensive copy of the details map, or nil if empty/nil.
func copyDetails(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}
	cp := make(map[string]string, len(details))
	for k, v := range details {
		cp[k] = v
	}
	return cp
}

// ExitCode returns the appropriate exit code for an error.
// Returns 0 if err is nil, 2 for E_USAGE, 1 for all other errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if GetCode(err) == EUsage {
		return 2
	}
	return 1
}

// Print writes the error to w in the stable stderr format:
//
//	error_code: <CODE>
//	<message>
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	var re *RecklessError
	if errors.As(err, &re) {
		fmt.Fprintf(w, "error_code: %s\n", re.Code)
		fmt.Fprintln(w, re.Msg)
	} else {
		fmt.Fprintln(w, err.Error())
	}
}

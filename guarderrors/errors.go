// Package guarderrors provides structured error types for oasguard.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between a broken contract
// (fatal at startup) and the individual request validation failures.
//
// # Error Categories
//
//   - SpecError: the OpenAPI document itself is malformed or incomplete;
//     the hosting service should refuse to start
//   - RequestError: one request failed one validation phase; the request
//     must be rejected, re-sending it yields the identical failure
//
// # Usage with errors.Is
//
//	err := v.ValidateRequest(facts)
//	if errors.Is(err, guarderrors.ErrPathNotFound) {
//	    // 404 rather than 400, if the caller prefers
//	}
package guarderrors

import (
	"errors"
	"fmt"
)

// Phase identifies the validation phase that produced a RequestError.
type Phase string

// Validation phases, in pipeline order.
const (
	PhaseMethod Phase = "Method"
	PhasePath   Phase = "Path"
	PhaseQuery  Phase = "Query"
	PhaseBody   Phase = "Body"
)

// Kind classifies a RequestError for machine consumption.
type Kind string

// Request error kinds.
const (
	KindPathNotFound             Kind = "path_not_found"
	KindMethodNotAllowed         Kind = "method_not_allowed"
	KindMissingRequiredParameter Kind = "missing_required_parameter"
	KindTypeMismatch             Kind = "type_mismatch"
	KindFormatViolation          Kind = "format_violation"
	KindPatternViolation         Kind = "pattern_violation"
	KindPatternCompileError      Kind = "pattern_compile_error"
	KindEnumViolation            Kind = "enum_violation"
	KindRangeViolation           Kind = "range_violation"
	KindMalformedBody            Kind = "malformed_body"
	KindRequiredBodyMissing      Kind = "required_body_missing"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrSpec indicates the OpenAPI document is malformed or incomplete.
	ErrSpec = errors.New("spec error")

	// ErrRequest indicates a request failed validation.
	ErrRequest = errors.New("request validation error")

	// ErrPathNotFound indicates the request path template is not declared.
	ErrPathNotFound = errors.New("path not found")

	// ErrMethodNotAllowed indicates the method is not declared for the path.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrMissingRequiredParameter indicates a required parameter is absent or blank.
	ErrMissingRequiredParameter = errors.New("missing required parameter")

	// ErrTypeMismatch indicates a value does not satisfy its declared type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrFormatViolation indicates a value does not satisfy its declared
	// format, or the format is not one the engine can check.
	ErrFormatViolation = errors.New("format violation")

	// ErrPatternViolation indicates a string does not match its declared pattern.
	ErrPatternViolation = errors.New("pattern violation")

	// ErrPatternCompileError indicates a declared pattern is not a valid
	// regular expression. This is a defect in the contract, not the request.
	ErrPatternCompileError = errors.New("pattern compile error")

	// ErrEnumViolation indicates a value is outside its declared enum.
	ErrEnumViolation = errors.New("enum violation")

	// ErrRangeViolation indicates a length, range, or array-size bound failed.
	ErrRangeViolation = errors.New("range violation")

	// ErrMalformedBody indicates the request body is not valid JSON.
	ErrMalformedBody = errors.New("malformed body")

	// ErrRequiredBodyMissing indicates a required request body is absent.
	ErrRequiredBodyMissing = errors.New("required body missing")
)

// kindSentinels maps each Kind to its sentinel for RequestError.Is.
var kindSentinels = map[Kind]error{
	KindPathNotFound:             ErrPathNotFound,
	KindMethodNotAllowed:         ErrMethodNotAllowed,
	KindMissingRequiredParameter: ErrMissingRequiredParameter,
	KindTypeMismatch:             ErrTypeMismatch,
	KindFormatViolation:          ErrFormatViolation,
	KindPatternViolation:         ErrPatternViolation,
	KindPatternCompileError:      ErrPatternCompileError,
	KindEnumViolation:            ErrEnumViolation,
	KindRangeViolation:           ErrRangeViolation,
	KindMalformedBody:            ErrMalformedBody,
	KindRequiredBodyMissing:      ErrRequiredBodyMissing,
}

// SpecError represents a malformed or incomplete OpenAPI document.
// It is produced once, at parse or validator construction time, and is
// fatal at the process level: a broken contract makes all subsequent
// request validation meaningless.
type SpecError struct {
	// Source is the file path or source identifier of the document
	Source string
	// Field is the document field at fault (e.g. "info.title")
	Field string
	// Message describes the problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SpecError) Error() string {
	msg := "spec error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Field != "" {
		msg += ": field " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SpecError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SpecError) Is(target error) bool {
	return target == ErrSpec
}

// RequestError represents a single request's validation failure.
// Every checker returns one rather than panicking, and the pipeline stops
// at the first failing phase, so a RequestError is always the complete,
// final result for its request.
type RequestError struct {
	// Phase is the pipeline phase that failed
	Phase Phase
	// Kind classifies the failure
	Kind Kind
	// Field is the parameter or body field at fault, when known
	Field string
	// Message describes the violation
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error renders the phase-tagged message contract:
// "<Phase> validation failed: <detail>".
func (e *RequestError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Phase, e.Message)
}

// Unwrap returns the underlying cause for error chaining.
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrRequest, and the per-kind sentinel for this error's Kind.
func (e *RequestError) Is(target error) bool {
	if target == ErrRequest {
		return true
	}
	return kindSentinels[e.Kind] == target
}

// NewRequestError builds a RequestError with a formatted message.
func NewRequestError(phase Phase, kind Kind, field, format string, args ...any) *RequestError {
	return &RequestError{
		Phase:   phase,
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

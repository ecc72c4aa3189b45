// File: error.go
// Title: Core Error Implementation
// Description: Implements the Error type with code, severity, details and a
//              localisation key. Compatible with errors.Is / errors.As through
//              Unwrap.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors
// - 2026-10-14 v0.2.0: Removed stack traces, user/request context and pooling

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Error represents a structured error with context, codes, and metadata
type Error struct {
	message   string
	cause     error
	code      Code
	severity  Severity
	timestamp time.Time

	details   map[string]interface{}
	operation string

	// Localization
	messageKey  string
	messageArgs map[string]interface{}
}

// New creates a new Error with the given message
func New(message string) *Error {
	return &Error{
		message:   message,
		code:      CodeUnknown,
		severity:  SeverityMedium,
		timestamp: time.Now(),
		details:   make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with additional context. Code, severity,
// message key and details of a wrapped *Error are inherited.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{
		message:   message,
		cause:     err,
		code:      CodeUnknown,
		severity:  SeverityMedium,
		timestamp: time.Now(),
		details:   make(map[string]interface{}),
	}

	var inner *Error
	if errors.As(err, &inner) {
		wrapped.code = inner.code
		wrapped.severity = inner.severity
		wrapped.messageKey = inner.messageKey
		wrapped.messageArgs = inner.messageArgs
		for k, v := range inner.details {
			wrapped.details[k] = v
		}
	}

	return wrapped
}

// Error implements the standard error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	}
	return e.message
}

// Unwrap returns the underlying cause for error unwrapping
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCode sets the error code and derives the severity from it
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	e.severity = GetSeverityFromCode(code)
	return e
}

// WithSeverity overrides the severity derived from the code
func (e *Error) WithSeverity(severity Severity) *Error {
	e.severity = severity
	return e
}

// WithDetail adds a single detail
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.details[key] = value
	return e
}

// WithDetails adds several details at once
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	for k, v := range details {
		e.details[k] = v
	}
	return e
}

// WithOperation records the operation that failed
func (e *Error) WithOperation(operation string) *Error {
	e.operation = operation
	return e
}

// WithMessage sets the localisation key and its template arguments
func (e *Error) WithMessage(key string, args map[string]interface{}) *Error {
	e.messageKey = key
	e.messageArgs = args
	return e
}

// Code returns the error code
func (e *Error) Code() Code {
	return e.code
}

// Severity returns the severity
func (e *Error) Severity() Severity {
	return e.severity
}

// Timestamp returns when the error was created
func (e *Error) Timestamp() time.Time {
	return e.timestamp
}

// Details returns a copy of the details map
func (e *Error) Details() map[string]interface{} {
	out := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		out[k] = v
	}
	return out
}

// Operation returns the failed operation
func (e *Error) Operation() string {
	return e.operation
}

// MessageKey returns the localisation key
func (e *Error) MessageKey() string {
	return e.messageKey
}

// MessageArgs returns the localisation arguments
func (e *Error) MessageArgs() map[string]interface{} {
	return e.messageArgs
}

// RootCause returns the innermost error of the chain
func (e *Error) RootCause() error {
	var last error = e
	for current := error(e); current != nil; current = errors.Unwrap(current) {
		last = current
	}
	return last
}

// MarshalJSON renders the error for structured logs and API responses
func (e *Error) MarshalJSON() ([]byte, error) {
	out := struct {
		Message     string                 `json:"message"`
		Code        Code                   `json:"code"`
		Severity    string                 `json:"severity"`
		Timestamp   time.Time              `json:"timestamp"`
		Operation   string                 `json:"operation,omitempty"`
		MessageKey  string                 `json:"message_key,omitempty"`
		MessageArgs map[string]interface{} `json:"message_args,omitempty"`
		Details     map[string]interface{} `json:"details,omitempty"`
		Cause       string                 `json:"cause,omitempty"`
	}{
		Message:     e.message,
		Code:        e.code,
		Severity:    e.severity.String(),
		Timestamp:   e.timestamp,
		Operation:   e.operation,
		MessageKey:  e.messageKey,
		MessageArgs: e.messageArgs,
		Details:     e.details,
	}
	if e.cause != nil {
		out.Cause = e.cause.Error()
	}
	return json.Marshal(out)
}

// HasCode reports whether any *Error in the chain carries the code
func HasCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in the chain
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return CodeUnknown
}

// GetSeverity returns the severity of the outermost *Error in the chain
func GetSeverity(err error) Severity {
	var e *Error
	if errors.As(err, &e) {
		return e.severity
	}
	return SeverityMedium
}

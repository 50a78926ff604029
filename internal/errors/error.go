package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryTable  Category = "table"
	CategoryConfig Category = "config"
	CategoryCLI    Category = "cli"
)

// LinkError is a structured error with a registered code and a fix suggestion.
type LinkError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (table, config, cli).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *LinkError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *LinkError) Unwrap() error {
	return e.Wrapped
}

// Is matches another LinkError by code, so callers can test
// errors.Is(err, errors.New("E101")).
func (e *LinkError) Is(target error) bool {
	t, ok := target.(*LinkError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *LinkError) WithSuggestion(s string) *LinkError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *LinkError) WithDetail(d string) *LinkError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detail to the error.
func (e *LinkError) WithDetailf(format string, args ...any) *LinkError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *LinkError) Wrap(err error) *LinkError {
	e.Wrapped = err
	return e
}

// New creates a LinkError from a registered error code.
func New(code string) *LinkError {
	template, ok := registry[code]
	if !ok {
		return &LinkError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &LinkError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new LinkError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *LinkError {
	return &LinkError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a LinkError.
func FromError(err error, code string) *LinkError {
	if err == nil {
		return nil
	}
	if le, ok := err.(*LinkError); ok {
		return le
	}
	return New(code).Wrap(err)
}

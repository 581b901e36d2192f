package types

import "fmt"

// ErrorCode represents a unified error code across the module.
type ErrorCode string

// Execution error codes
const (
	ErrWorkerNotFound ErrorCode = "WORKER_NOT_FOUND"
	ErrNoValidWorkers ErrorCode = "NO_VALID_WORKERS"
	ErrHandoffFailed  ErrorCode = "HANDOFF_FAILED"
	ErrInternalError  ErrorCode = "INTERNAL_ERROR"
)

// Error represents a structured error with code, message, and metadata.
type Error struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	Strategy string    `json:"strategy,omitempty"`
	Cause    error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithStrategy sets the strategy name that raised the error.
func (e *Error) WithStrategy(strategy string) *Error {
	e.Strategy = strategy
	return e
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}

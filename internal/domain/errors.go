// Package domain defines core types, interfaces, and errors for the realm backend.
package domain

import "fmt"

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AccessDeniedError indicates insufficient permissions.
type AccessDeniedError struct {
	Message string
}

func (e *AccessDeniedError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError indicates a conflict (e.g., duplicate resource).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// CredentialsError indicates a failed authentication attempt: unknown
// username, wrong password, or a token that does not verify.
type CredentialsError struct {
	Message string
}

func (e *CredentialsError) Error() string { return e.Message }

// BackendError indicates a failure in an external backend (provisioning or
// compute termination) or an unexpected response shape from one.
type BackendError struct {
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BackendError) Unwrap() error { return e.Err }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrAccessDenied creates an AccessDeniedError with a formatted message.
func ErrAccessDenied(format string, args ...interface{}) *AccessDeniedError {
	return &AccessDeniedError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ErrCredentials creates a CredentialsError with a formatted message.
func ErrCredentials(format string, args ...interface{}) *CredentialsError {
	return &CredentialsError{Message: fmt.Sprintf(format, args...)}
}

// ErrBackend wraps an underlying backend failure with a message.
func ErrBackend(err error, format string, args ...interface{}) *BackendError {
	return &BackendError{Message: fmt.Sprintf(format, args...), Err: err}
}

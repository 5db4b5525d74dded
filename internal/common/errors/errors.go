// Package errors provides standardized error handling for the console API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeContactNotFound      ErrorCode = "CONTACT_NOT_FOUND"
	ErrCodeProviderFailure      ErrorCode = "PROVIDER_FAILURE"
	ErrCodePersistenceFailure   ErrorCode = "PERSISTENCE_FAILURE"
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeAuthFailed           ErrorCode = "AUTH_FAILED"
	ErrCodeCommandNotRecognized ErrorCode = "COMMAND_NOT_RECOGNIZED"
	ErrCodeQueryExecutionFailed ErrorCode = "QUERY_EXECUTION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// HTTPStatus maps an error code to the status the API layer should return.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeContactNotFound:
		return http.StatusNotFound
	case ErrCodeValidationFailed, ErrCodeCommandNotRecognized:
		return http.StatusBadRequest
	case ErrCodeAuthFailed:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// NewContactNotFoundError creates a non-retryable lookup error.
func NewContactNotFoundError(identifier string) *StandardError {
	return &StandardError{
		Code:      ErrCodeContactNotFound,
		Message:   "Contact not found",
		Details:   fmt.Sprintf("identifier: %s", identifier),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderFailureError wraps a delivery provider error. The dispatch path
// records these into the touch log instead of surfacing them.
func NewProviderFailureError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderFailure,
		Message:   "Delivery provider error",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersistenceFailureError creates a hard error for a failed system-of-record
// write. An un-logged send is worse than a failed send, so these always surface.
func NewPersistenceFailureError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePersistenceFailure,
		Message:   "Dispatch may have succeeded but the touch log write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable request validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthFailedError creates a non-retryable authorization error.
func NewAuthFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthFailed,
		Message:   "Authorization failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCommandNotRecognizedError creates a non-retryable console command error.
func NewCommandNotRecognizedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCommandNotRecognized,
		Message:   "Command not recognized",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable database read error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeValidation indicates the submitted credentials failed the
	// client-side syntax check before any network call was made.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeConflict indicates a sign-in attempt was rejected because
	// another attempt is already in flight.
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeTransport indicates the identity service was unreachable or
	// returned a response the client could not interpret.
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeCredentialRejected indicates the identity service explicitly
	// denied the submitted credentials.
	ErrCodeCredentialRejected ErrorCode = "credential_rejected"
	// ErrCodeAuthorizationDenied indicates the credentials were accepted but
	// the principal does not carry the admin role.
	ErrCodeAuthorizationDenied ErrorCode = "authorization_denied"
	// ErrCodeInternal indicates an unexpected local failure, such as session
	// persistence breaking after admission.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError is a structured application error with a code, message, and
// optional cause. It supports errors.Is and errors.As via Unwrap.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field names the credential field that failed validation (optional)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
	}
}

// Transport creates a new Transport error.
func Transport(message string) *AppError {
	return &AppError{
		Code:    ErrCodeTransport,
		Message: message,
	}
}

// TransportWrap creates a new Transport error wrapping a cause.
func TransportWrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeTransport,
		Message: message,
		Cause:   err,
	}
}

// CredentialRejected creates a new CredentialRejected error carrying the
// server-provided reason.
func CredentialRejected(message string) *AppError {
	return &AppError{
		Code:    ErrCodeCredentialRejected,
		Message: message,
	}
}

// AuthorizationDenied creates a new AuthorizationDenied error.
func AuthorizationDenied(message string) *AppError {
	return &AppError{
		Code:    ErrCodeAuthorizationDenied,
		Message: message,
	}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool {
	return isCode(err, ErrCodeConflict)
}

// IsTransport checks if an error is a Transport error.
func IsTransport(err error) bool {
	return isCode(err, ErrCodeTransport)
}

// IsCredentialRejected checks if an error is a CredentialRejected error.
func IsCredentialRejected(err error) bool {
	return isCode(err, ErrCodeCredentialRejected)
}

// IsAuthorizationDenied checks if an error is an AuthorizationDenied error.
func IsAuthorizationDenied(err error) bool {
	return isCode(err, ErrCodeAuthorizationDenied)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// UserMessage normalizes any error into a single human-readable failure
// message suitable for display. Causes are never included; they may carry
// transport details the operator should not see.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code == ErrCodeInternal {
			return "internal error"
		}
		return appErr.Message
	}
	return "sign-in failed"
}

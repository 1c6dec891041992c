package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a user-facing error category. Every failure surfaced by
// an HTTP handler maps to exactly one of these; internals stay in the logs.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates empty or missing required fields.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeNotConfigured indicates missing provider or relay configuration.
	ErrCodeNotConfigured ErrorCode = "NOT_CONFIGURED"
	// ErrCodeProviderUnavailable indicates the LLM provider failed.
	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
	// ErrCodeModelNotFound indicates the configured model does not exist.
	ErrCodeModelNotFound ErrorCode = "MODEL_NOT_FOUND"
	// ErrCodePermissionDenied indicates the provider rejected the API key.
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	// ErrCodeStoreUnavailable indicates a store write failed.
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// ErrCodeRelayAuthFailed indicates SMTP authentication failed.
	ErrCodeRelayAuthFailed ErrorCode = "RELAY_AUTH_FAILED"
	// ErrCodeRelaySendFailed indicates the SMTP delivery attempt failed.
	ErrCodeRelaySendFailed ErrorCode = "RELAY_SEND_FAILED"
	// ErrCodeInternal indicates an unexpected server failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// ServiceError represents a structured error carrying a user-facing code and
// message. The Cause stays server-side.
type ServiceError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// WithContext adds context to the error. Context values may be echoed to the
// caller (e.g. available models), so keep secrets out.
func (e *ServiceError) WithContext(key string, value any) *ServiceError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error code to an HTTP status.
func (e *ServiceError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case ErrCodePermissionDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Convenience constructors for common error types.

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *ServiceError {
	return &ServiceError{Code: ErrCodeInvalidArgument, Message: msg}
}

// NotConfigured creates a missing-configuration error.
func NotConfigured(msg string) *ServiceError {
	return &ServiceError{Code: ErrCodeNotConfigured, Message: msg}
}

// ProviderUnavailable creates a provider failure error.
func ProviderUnavailable(msg string, cause error) *ServiceError {
	return &ServiceError{Code: ErrCodeProviderUnavailable, Message: msg, Cause: cause}
}

// ModelNotFound creates a model-not-found error.
func ModelNotFound(model string, cause error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeModelNotFound,
		Message: fmt.Sprintf("Model %s not available", model),
		Cause:   cause,
	}
}

// PermissionDenied creates a permission denied error.
func PermissionDenied(msg string, cause error) *ServiceError {
	return &ServiceError{Code: ErrCodePermissionDenied, Message: msg, Cause: cause}
}

// StoreUnavailable creates a store failure error.
func StoreUnavailable(msg string, cause error) *ServiceError {
	return &ServiceError{Code: ErrCodeStoreUnavailable, Message: msg, Cause: cause}
}

// RelayAuthFailed creates an SMTP authentication error.
func RelayAuthFailed(cause error) *ServiceError {
	return &ServiceError{Code: ErrCodeRelayAuthFailed, Message: "Email authentication failed on server.", Cause: cause}
}

// RelaySendFailed creates a generic SMTP delivery error.
func RelaySendFailed(cause error) *ServiceError {
	return &ServiceError{Code: ErrCodeRelaySendFailed, Message: "Failed to send email; try again later.", Cause: cause}
}

// Internal creates an unexpected-failure error.
func Internal(cause error) *ServiceError {
	return &ServiceError{Code: ErrCodeInternal, Message: "Internal server error", Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr.Code == code
	}
	return false
}

// FromError returns the ServiceError behind err, or wraps it as internal.
func FromError(err error) *ServiceError {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr
	}
	return Internal(err)
}

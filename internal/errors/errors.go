package errors

import (
	"errors"
	"fmt"
	"strings"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewAuthError creates a new authentication error. Auth failures are fatal to
// any operation and are always surfaced to the user.
func NewAuthError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeAuth,
		Message: message,
		Code:    "AUTH_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewRemoteError creates a new remote error for a single failed API call.
// The HTTP status and the operation are recorded as context.
func NewRemoteError(status int, operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeRemote,
		Message: fmt.Sprintf("remote call failed: %s (status %d)", operation, status),
		Code:    "REMOTE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"status":    status,
			"operation": operation,
		},
	}
}

// NewAggregationError creates a new aggregation error. A refresh that cannot
// proceed keeps the previous task list displayed.
func NewAggregationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeAggregation,
		Message: fmt.Sprintf("refresh failed: %s", message),
		Code:    "AGGREGATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewCreationError creates a new creation error carrying every failed
// attempt. The message includes each underlying failure so the caller can
// report why creation failed, not just that it did.
func NewCreationError(attempts ...error) *AppError {
	messages := make([]string, 0, len(attempts))
	for _, attempt := range attempts {
		if attempt != nil {
			messages = append(messages, attempt.Error())
		}
	}
	return &AppError{
		Type:    ErrorTypeCreation,
		Message: fmt.Sprintf("all creation attempts failed: %s", strings.Join(messages, "; ")),
		Code:    "CREATION_FAILED",
		Context: map[string]interface{}{
			"attempts": attempts,
		},
	}
}

// NewParseError creates a new parse error for a malformed record or
// timestamp. Parse errors are swallowed per record, never surfaced.
func NewParseError(field string, value interface{}, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Message: fmt.Sprintf("failed to parse %s", field),
		Code:    "PARSE_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"field": field,
			"value": value,
		},
	}
}

// NewConfigError creates a new configuration error
func NewConfigError(field string, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: fmt.Sprintf("invalid configuration for %s: %s", field, message),
		Code:    "CONFIG_INVALID",
		Context: map[string]interface{}{
			"field": field,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation:
			return appErr.Message
		case ErrorTypeAuth:
			return "Canvas rejected the configured token. Check canvas_token in your config."
		case ErrorTypeRemote:
			return appErr.Message
		case ErrorTypeAggregation:
			return appErr.Message
		case ErrorTypeCreation:
			return appErr.Message
		case ErrorTypeConfig:
			return appErr.Message
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeConfig:
			return false // User errors, surfaced directly instead
		case ErrorTypeParse:
			return true // Logged at debug level only, never surfaced per record
		default:
			return true
		}
	}
	return true
}

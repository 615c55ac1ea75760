// internal/core/errors.go
package core

import (
	"errors"
	"fmt"
)

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// NewError creates an error with the code of base and a specific message.
// The message is what the user sees for validation and application errors.
func NewError(base *Error, message string) *Error {
	return &Error{
		Code:    base.Code,
		Message: message,
	}
}

// Predefined errors
var (
	// Fetch errors
	ErrTransport   = &Error{Code: "TRANSPORT_ERROR", Message: "Failed to fetch stock data"}
	ErrApplication = &Error{Code: "APPLICATION_ERROR", Message: "Failed to fetch data. Please try again."}
	ErrDecode      = &Error{Code: "DECODE_ERROR", Message: "Failed to read stock data"}

	// UI errors
	ErrValidation = &Error{Code: "VALIDATION_ERROR", Message: "invalid input"}
	ErrRender     = &Error{Code: "RENDER_ERROR", Message: "Failed to render dashboard"}

	// Session errors
	ErrSessionNotFound = &Error{Code: "SESSION_NOT_FOUND", Message: "session not found"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)

// UserMessage returns the single message shown to the user for err.
// Coded errors surface their own message; anything else gets the
// generic fetch failure text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var coreErr *Error
	if errors.As(err, &coreErr) && coreErr.Message != "" {
		return coreErr.Message
	}
	return ErrApplication.Message
}

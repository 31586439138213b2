package lists

import (
	"errors"
	"fmt"
)

// Error represents an error from the Lists web service client.
type Error struct {
	// Type categorizes the error
	Type string

	// Operation is the SOAP operation, e.g. GetList
	Operation string

	// Message is a human-readable error message
	Message string

	// Code is the HTTP status code (if applicable)
	Code int

	// Err is the underlying error
	Err error
}

// Error types.
const (
	ErrorTypeNetwork = "network"
	ErrorTypeAPI     = "api"
	ErrorTypeFault   = "fault"
	ErrorTypeTimeout = "timeout"
	ErrorTypeParse   = "parse"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("lists %s %s error (code %d): %s", e.Operation, e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("lists %s %s error: %s", e.Operation, e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the request may succeed if sent again.
func (e *Error) Retryable() bool {
	return e.Type == ErrorTypeNetwork
}

// NewNetworkError creates a network error.
func NewNetworkError(op string, err error) *Error {
	return &Error{
		Type:      ErrorTypeNetwork,
		Operation: op,
		Message:   "Failed to reach the Lists web service. Check the site URL and network connection.",
		Err:       err,
	}
}

// NewAPIError creates an API error with status code.
func NewAPIError(op string, code int, message string) *Error {
	return &Error{
		Type:      ErrorTypeAPI,
		Operation: op,
		Code:      code,
		Message:   message,
	}
}

// NewFaultError creates an error from a SOAP fault returned by the server.
func NewFaultError(op string, code int, fault *Fault) *Error {
	return &Error{
		Type:      ErrorTypeFault,
		Operation: op,
		Code:      code,
		Message:   fault.String(),
	}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(op string, err error) *Error {
	return &Error{
		Type:      ErrorTypeTimeout,
		Operation: op,
		Message:   "Request timed out.",
		Err:       err,
	}
}

// NewParseError creates a parse error.
func NewParseError(op string, message string, err error) *Error {
	return &Error{
		Type:      ErrorTypeParse,
		Operation: op,
		Message:   message,
		Err:       err,
	}
}

// IsFault reports whether err is a SOAP fault from the server.
func IsFault(err error) bool {
	var lErr *Error
	return errors.As(err, &lErr) && lErr.Type == ErrorTypeFault
}

package verify

import (
	"errors"
	"fmt"
)

// Error kinds. A mismatch between expected and actual metadata is never an
// Error; it is reported as a false result.
const (
	KindInvalidArgument = "invalid_argument"
	KindStructure       = "structure"
	KindSchema          = "schema"
)

// Error is a structural failure of a verification call.
type Error struct {
	// Kind categorizes the error
	Kind string

	// Message is a human-readable error message
	Message string

	// Diagnostics carries the validator output for schema errors
	Diagnostics []string

	// Err is the underlying error
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("verify %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewInvalidArgumentError reports a misuse of the verifier by its caller.
func NewInvalidArgumentError(message string, err error) *Error {
	return &Error{
		Kind:    KindInvalidArgument,
		Message: message,
		Err:     err,
	}
}

// NewStructureError reports a response whose shape violates the protocol,
// such as an element count or list length that does not match.
func NewStructureError(format string, args ...any) *Error {
	return &Error{
		Kind:    KindStructure,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewSchemaError reports a fragment that failed schema validation.
func NewSchemaError(element string, diagnostics []string) *Error {
	return &Error{
		Kind:        KindSchema,
		Message:     fmt.Sprintf("%s fragment failed schema validation: %v", element, diagnostics),
		Diagnostics: diagnostics,
	}
}

func isKind(err error, kind string) bool {
	var vErr *Error
	return errors.As(err, &vErr) && vErr.Kind == kind
}

// IsInvalidArgument reports whether err is an invalid-argument error.
func IsInvalidArgument(err error) bool { return isKind(err, KindInvalidArgument) }

// IsStructure reports whether err is a structure error.
func IsStructure(err error) bool { return isKind(err, KindStructure) }

// IsSchema reports whether err is a schema validation error.
func IsSchema(err error) bool { return isKind(err, KindSchema) }

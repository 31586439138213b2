// Package verify checks list field metadata returned by GetList against expected
// identifiers, types and CHOICES/MAPPINGS structure.
//
// Every check is a pure function of its inputs. Mismatches are reported as a
// false result so that a caller can record each requirement independently;
// structural problems with the response and misuse of the API are errors.
package verify

import (
	"errors"
	"strings"

	"outsps/internal/xmlschema"
	"outsps/pkg/schema"

	"github.com/google/uuid"
)

// Logger receives one diagnostic record per check.
type Logger interface {
	Debug(msg string, fields ...any)
	Warn(msg string, fields ...any)
}

// SchemaValidator validates a serialized XML fragment.
type SchemaValidator interface {
	Validate(fragment string) xmlschema.Outcome
}

// Verifier runs field checks. It holds no per-call state.
type Verifier struct {
	logger    Logger
	validator SchemaValidator
}

// New creates a Verifier. A nil logger discards diagnostics; a nil validator
// uses the CHOICES/MAPPINGS declarations from xmlschema.
func New(logger Logger, validator SchemaValidator) *Verifier {
	if logger == nil {
		logger = nopLogger{}
	}
	if validator == nil {
		validator = xmlschema.NewListFieldValidator()
	}
	return &Verifier{
		logger:    logger,
		validator: validator,
	}
}

// VerifyFieldTypeAndID reports whether the field named fieldName has the expected
// ID and Type. An empty expectedID or expectedType skips that check.
//
// Types compare exactly. IDs compare as GUIDs, so braces and letter case are
// ignored. A missing or duplicated field is a structure error.
func (v *Verifier) VerifyFieldTypeAndID(fields *schema.FieldCollection, fieldName, expectedID, expectedType string) (bool, error) {
	field, err := LookupField(fields, fieldName)
	if err != nil {
		return false, err
	}

	typeChecked := expectedType != ""
	typeMatches := !typeChecked || field.Type == expectedType

	idChecked := expectedID != ""
	idMatches := !idChecked || SameGUID(field.ID, expectedID)

	v.logger.Debug("field type and id check",
		"field", fieldName,
		"type_checked", typeChecked,
		"expected_type", expectedType,
		"actual_type", field.Type,
		"type_matches", typeMatches,
		"id_checked", idChecked,
		"expected_id", expectedID,
		"actual_id", field.ID,
		"id_matches", idMatches,
	)

	return typeMatches && idMatches, nil
}

// LookupField returns the single field named fieldName. A missing or
// duplicated field is a structure error wrapping the lookup error.
func LookupField(fields *schema.FieldCollection, fieldName string) (*schema.FieldDefinition, error) {
	if fieldName == "" {
		return nil, NewInvalidArgumentError("field name is required", schema.ErrEmptyFieldName)
	}
	if fields == nil {
		return nil, NewInvalidArgumentError("field collection is required", nil)
	}

	field, err := fields.Lookup(fieldName)
	if err != nil {
		var notFound *schema.FieldNotFoundError
		var dup *schema.DuplicateFieldError
		if errors.As(err, &notFound) || errors.As(err, &dup) {
			sErr := NewStructureError("%v", err)
			sErr.Err = err
			return nil, sErr
		}
		return nil, err
	}
	return field, nil
}

// SameGUID compares two identifiers as GUIDs. Strings that do not parse as
// GUIDs fall back to a case-insensitive comparison without braces.
func SameGUID(a, b string) bool {
	ua, errA := uuid.Parse(strings.TrimSpace(a))
	ub, errB := uuid.Parse(strings.TrimSpace(b))
	if errA == nil && errB == nil {
		return ua == ub
	}
	return strings.EqualFold(trimBraces(a), trimBraces(b))
}

func trimBraces(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	return strings.TrimSuffix(s, "}")
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

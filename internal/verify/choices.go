package verify

import (
	"fmt"
	"strings"

	"outsps/pkg/schema"
)

// VerifyChoicesAndMappingsRelationship reports whether every CHOICE of field is
// covered by a MAPPING with the same text, compared case-insensitively.
//
// Both lists must be present; an absent list is an invalid argument. If either
// list is empty the check passes. Lists of different non-zero lengths are a
// structure error. Matching is by existence, not position.
func (v *Verifier) VerifyChoicesAndMappingsRelationship(field *schema.FieldDefinition) (bool, error) {
	if field == nil {
		return false, NewInvalidArgumentError("field is required", nil)
	}
	if field.Choices == nil {
		return false, NewInvalidArgumentError(fmt.Sprintf("CHOICES of field %q is absent", field.Name), nil)
	}
	if field.Mappings == nil {
		return false, NewInvalidArgumentError(fmt.Sprintf("MAPPINGS of field %q is absent", field.Name), nil)
	}

	choices := field.Choices.Items
	mappings := field.Mappings.Items

	if len(choices) == 0 || len(mappings) == 0 {
		v.logger.Debug("choices and mappings check skipped",
			"field", field.Name,
			"choices", len(choices),
			"mappings", len(mappings),
		)
		return true, nil
	}

	if len(choices) != len(mappings) {
		return false, NewStructureError("field %q has %d CHOICES but %d MAPPINGS", field.Name, len(choices), len(mappings))
	}

	for _, c := range choices {
		if !hasMapping(mappings, c.Text) {
			v.logger.Debug("choice has no mapping",
				"field", field.Name,
				"choice", c.Text,
			)
			return false, nil
		}
	}

	v.logger.Debug("choices and mappings check passed",
		"field", field.Name,
		"count", len(choices),
	)
	return true, nil
}

func hasMapping(mappings []schema.MappingItem, text string) bool {
	for _, m := range mappings {
		if strings.EqualFold(m.Text, text) {
			return true
		}
	}
	return false
}

package verify

import (
	"github.com/beevik/etree"
)

// VerifyChoicesAndMappingsSchema validates the CHOICES and MAPPINGS fragments of
// fieldName in the raw GetList response. It returns true only if both validate;
// a failing fragment is a schema error carrying the validator's diagnostics.
func (v *Verifier) VerifyChoicesAndMappingsSchema(raw []byte, fieldName string) (bool, error) {
	choices, mappings, err := ExtractChoicesAndMappingsXML(raw, fieldName)
	if err != nil {
		return false, err
	}

	fragments := []struct {
		element string
		xml     string
	}{
		{"CHOICES", choices},
		{"MAPPINGS", mappings},
	}

	for _, f := range fragments {
		outcome := v.validator.Validate(f.xml)
		if !outcome.Valid() {
			v.logger.Warn("fragment failed schema validation",
				"field", fieldName,
				"element", f.element,
				"diagnostics", outcome.String(),
			)
			return false, NewSchemaError(f.element, outcome.Errors)
		}
	}

	v.logger.Debug("choices and mappings schema check passed", "field", fieldName)
	return true, nil
}

// ExtractChoicesAndMappingsXML returns the serialized CHOICES and MAPPINGS
// elements of the field named fieldName.
//
// The document must hold exactly one GetListResult element, which must hold
// exactly one Field with that name, which must hold exactly one CHOICES and one
// MAPPINGS child. Any other count is a structure error.
func ExtractChoicesAndMappingsXML(raw []byte, fieldName string) (choices, mappings string, err error) {
	if len(raw) == 0 {
		return "", "", NewInvalidArgumentError("response document is required", nil)
	}
	if fieldName == "" {
		return "", "", NewInvalidArgumentError("field name is required", nil)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		sErr := NewStructureError("response is not well-formed XML: %v", err)
		sErr.Err = err
		return "", "", sErr
	}

	results := doc.FindElements("//GetListResult")
	if len(results) != 1 {
		return "", "", NewStructureError("expected exactly one GetListResult element, found %d", len(results))
	}

	var matches []*etree.Element
	for _, f := range results[0].FindElements(".//Field") {
		if f.SelectAttrValue("Name", "") == fieldName {
			matches = append(matches, f)
		}
	}
	if len(matches) != 1 {
		return "", "", NewStructureError("expected exactly one Field named %q, found %d", fieldName, len(matches))
	}
	field := matches[0]

	choiceEls := field.SelectElements("CHOICES")
	if len(choiceEls) != 1 {
		return "", "", NewStructureError("field %q: expected exactly one CHOICES element, found %d", fieldName, len(choiceEls))
	}
	mappingEls := field.SelectElements("MAPPINGS")
	if len(mappingEls) != 1 {
		return "", "", NewStructureError("field %q: expected exactly one MAPPINGS element, found %d", fieldName, len(mappingEls))
	}

	if choices, err = serialize(choiceEls[0]); err != nil {
		return "", "", err
	}
	if mappings, err = serialize(mappingEls[0]); err != nil {
		return "", "", err
	}
	return choices, mappings, nil
}

func serialize(el *etree.Element) (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	return doc.WriteToString()
}

package schema

import (
	"errors"
	"fmt"
)

// ErrEmptyFieldName is returned by Lookup when no field name is given.
var ErrEmptyFieldName = errors.New("field name is required")

// FieldNotFoundError is returned when no field carries the requested name.
type FieldNotFoundError struct {
	Name string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q not found", e.Name)
}

// DuplicateFieldError is returned when more than one field carries the requested name.
type DuplicateFieldError struct {
	Name  string
	Count int
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("field %q appears %d times, expected exactly one", e.Name, e.Count)
}

// FieldCollection is the ordered set of fields of one list, indexed by name.
type FieldCollection struct {
	fields []FieldDefinition
	index  map[string][]int
}

// NewFieldCollection indexes fields by name. Duplicate names are kept so that
// Lookup can report them.
func NewFieldCollection(fields []FieldDefinition) *FieldCollection {
	c := &FieldCollection{
		fields: make([]FieldDefinition, len(fields)),
		index:  make(map[string][]int, len(fields)),
	}
	copy(c.fields, fields)
	for i, f := range c.fields {
		c.index[f.Name] = append(c.index[f.Name], i)
	}
	return c
}

// Lookup returns the single field whose Name equals name (case-sensitive).
func (c *FieldCollection) Lookup(name string) (*FieldDefinition, error) {
	if name == "" {
		return nil, ErrEmptyFieldName
	}
	if c == nil {
		return nil, &FieldNotFoundError{Name: name}
	}
	positions := c.index[name]
	switch len(positions) {
	case 0:
		return nil, &FieldNotFoundError{Name: name}
	case 1:
		f := c.fields[positions[0]]
		return &f, nil
	default:
		return nil, &DuplicateFieldError{Name: name, Count: len(positions)}
	}
}

// Len returns the number of fields.
func (c *FieldCollection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.fields)
}

// Fields returns a copy of the fields in response order.
func (c *FieldCollection) Fields() []FieldDefinition {
	if c == nil {
		return nil
	}
	out := make([]FieldDefinition, len(c.fields))
	copy(out, c.fields)
	return out
}

// ListSchema is a parsed GetList result. Raw keeps the full response document
// for checks that work on the XML itself.
type ListSchema struct {
	ID       string
	Title    string
	Template ListTemplate
	Fields   *FieldCollection
	Raw      []byte
}

// Package catalog holds the expected field schema of each list template as a
// set of named cases, tied to the requirement each check claims to verify.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"outsps/pkg/schema"
)

//go:embed expectations.yaml
var expectations []byte

// FieldCheck expects Field to exist with the given ID and Type. An empty ID or
// Type is not checked.
type FieldCheck struct {
	Requirement string `yaml:"requirement"`
	Clause      string `yaml:"clause"`
	Section     string `yaml:"section,omitempty"`
	Field       string `yaml:"field"`
	ID          string `yaml:"id,omitempty"`
	Type        string `yaml:"type,omitempty"`
}

// Ref returns the requirement the check verifies.
func (c FieldCheck) Ref() schema.Requirement {
	return schema.Requirement{ID: c.Requirement, Clause: c.Clause, Section: c.Section}
}

// ChoiceCheck expects the CHOICES and MAPPINGS of Field to correspond. When
// SchemaRequirement is set, both fragments are also schema-validated.
type ChoiceCheck struct {
	Requirement       string `yaml:"requirement"`
	Clause            string `yaml:"clause"`
	Section           string `yaml:"section,omitempty"`
	Field             string `yaml:"field"`
	SchemaRequirement string `yaml:"schema_requirement,omitempty"`
	SchemaClause      string `yaml:"schema_clause,omitempty"`
}

// Ref returns the requirement the relationship check verifies.
func (c ChoiceCheck) Ref() schema.Requirement {
	return schema.Requirement{ID: c.Requirement, Clause: c.Clause, Section: c.Section}
}

// SchemaRef returns the requirement the schema check verifies.
func (c ChoiceCheck) SchemaRef() schema.Requirement {
	return schema.Requirement{ID: c.SchemaRequirement, Clause: c.SchemaClause, Section: c.Section}
}

// Case is one provisioned list and the checks run against its schema.
type Case struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description,omitempty"`
	Template    schema.ListTemplate `yaml:"template"`
	Fields      []FieldCheck        `yaml:"fields"`
	Choices     []ChoiceCheck       `yaml:"choices,omitempty"`
}

// Catalog is the ordered set of cases.
type Catalog struct {
	Cases []Case `yaml:"cases"`
}

// Load parses the embedded expectations.
func Load() (*Catalog, error) {
	return Parse(expectations)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks case names, templates, and every check's field name and requirement.
func (c *Catalog) Validate() error {
	if len(c.Cases) == 0 {
		return fmt.Errorf("catalog has no cases")
	}

	seen := make(map[string]bool, len(c.Cases))
	for i, tc := range c.Cases {
		if err := schema.ValidateCaseName(tc.Name); err != nil {
			return fmt.Errorf("case %d: %w", i, err)
		}
		if seen[tc.Name] {
			return fmt.Errorf("duplicate case name: %s", tc.Name)
		}
		seen[tc.Name] = true

		if err := schema.ValidateListTemplate(tc.Template); err != nil {
			return fmt.Errorf("case %s: %w", tc.Name, err)
		}
		if len(tc.Fields) == 0 && len(tc.Choices) == 0 {
			return fmt.Errorf("case %s: no checks", tc.Name)
		}

		for j, fc := range tc.Fields {
			if fc.Field == "" {
				return fmt.Errorf("case %s: field check %d: field name is required", tc.Name, j)
			}
			ref := fc.Ref()
			if err := schema.ValidateRequirement(&ref); err != nil {
				return fmt.Errorf("case %s: field %s: %w", tc.Name, fc.Field, err)
			}
		}

		for j, cc := range tc.Choices {
			if cc.Field == "" {
				return fmt.Errorf("case %s: choice check %d: field name is required", tc.Name, j)
			}
			ref := cc.Ref()
			if err := schema.ValidateRequirement(&ref); err != nil {
				return fmt.Errorf("case %s: choices %s: %w", tc.Name, cc.Field, err)
			}
			if cc.SchemaRequirement != "" {
				sref := cc.SchemaRef()
				if err := schema.ValidateRequirement(&sref); err != nil {
					return fmt.Errorf("case %s: choices %s schema: %w", tc.Name, cc.Field, err)
				}
			}
		}
	}
	return nil
}

// Names returns the case names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Cases))
	for _, tc := range c.Cases {
		names = append(names, tc.Name)
	}
	return names
}

// Filter returns the named cases in catalog order. No names selects every case.
func (c *Catalog) Filter(names ...string) ([]Case, error) {
	if len(names) == 0 {
		return append([]Case(nil), c.Cases...), nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var out []Case
	for _, tc := range c.Cases {
		if want[tc.Name] {
			out = append(out, tc)
			delete(want, tc.Name)
		}
	}

	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for n := range want {
			unknown = append(unknown, n)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown case(s): %s", strings.Join(unknown, ", "))
	}
	return out, nil
}

// Requirements returns every requirement the case verifies, in check order.
func (tc Case) Requirements() []schema.Requirement {
	var reqs []schema.Requirement
	for _, fc := range tc.Fields {
		reqs = append(reqs, fc.Ref())
	}
	for _, cc := range tc.Choices {
		reqs = append(reqs, cc.Ref())
		if cc.SchemaRequirement != "" {
			reqs = append(reqs, cc.SchemaRef())
		}
	}
	return reqs
}

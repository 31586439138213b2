package schema

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FieldType is a field type token as it appears in the Type attribute of a Field element.
type FieldType string

const (
	FieldTypeText        FieldType = "Text"
	FieldTypeNote        FieldType = "Note"
	FieldTypeUser        FieldType = "User"
	FieldTypeDateTime    FieldType = "DateTime"
	FieldTypeInteger     FieldType = "Integer"
	FieldTypeNumber      FieldType = "Number"
	FieldTypeChoice      FieldType = "Choice"
	FieldTypeComputed    FieldType = "Computed"
	FieldTypeLookup      FieldType = "Lookup"
	FieldTypeCounter     FieldType = "Counter"
	FieldTypeURL         FieldType = "URL"
	FieldTypeBoolean     FieldType = "Boolean"
	FieldTypeAttachments FieldType = "Attachments"
	FieldTypeAllDayEvent FieldType = "AllDayEvent"
	FieldTypeRecurrence  FieldType = "Recurrence"
)

// ListTemplate is the server template identifier passed to AddList.
type ListTemplate int

const (
	TemplateGenericList     ListTemplate = 100
	TemplateDocumentLibrary ListTemplate = 101
	TemplateSurvey          ListTemplate = 102
	TemplateLinks           ListTemplate = 103
	TemplateAnnouncements   ListTemplate = 104
	TemplateContacts        ListTemplate = 105
	TemplateEvents          ListTemplate = 106
	TemplateTasks           ListTemplate = 107
	TemplateDiscussionBoard ListTemplate = 108
	TemplatePictureLibrary  ListTemplate = 109
	TemplateIssueTracking   ListTemplate = 1100
)

var templateNames = map[ListTemplate]string{
	TemplateGenericList:     "GenericList",
	TemplateDocumentLibrary: "DocumentLibrary",
	TemplateSurvey:          "Survey",
	TemplateLinks:           "Links",
	TemplateAnnouncements:   "Announcements",
	TemplateContacts:        "Contacts",
	TemplateEvents:          "Events",
	TemplateTasks:           "Tasks",
	TemplateDiscussionBoard: "DiscussionBoard",
	TemplatePictureLibrary:  "PictureLibrary",
	TemplateIssueTracking:   "IssueTracking",
}

// String returns the template name, or the numeric id for unknown templates.
func (t ListTemplate) String() string {
	if name, ok := templateNames[t]; ok {
		return name
	}
	return strconv.Itoa(int(t))
}

// Known reports whether t is one of the named templates.
func (t ListTemplate) Known() bool {
	_, ok := templateNames[t]
	return ok
}

// ParseListTemplate accepts either a template name ("Tasks") or its numeric id ("107").
func ParseListTemplate(s string) (ListTemplate, error) {
	for t, name := range templateNames {
		if name == s {
			return t, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && ListTemplate(n).Known() {
		return ListTemplate(n), nil
	}
	return 0, fmt.Errorf("unknown list template: %q", s)
}

// MarshalYAML writes the template by name.
func (t ListTemplate) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML reads a template by name or numeric id.
func (t *ListTemplate) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseListTemplate(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Catalog limits.
const (
	CaseNameMin          = 1
	CaseNameMax          = 64
	RequirementIDMax     = 64
	RequirementClauseMax = 500
)

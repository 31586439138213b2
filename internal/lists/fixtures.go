package lists

import (
	"fmt"
	"os"
	"path/filepath"

	"outsps/pkg/schema"
)

// Field IDs of the built-in site columns used by the default templates.
const (
	FieldIDTitle           = "{fa564e0f-0c70-4ab9-b863-0177e6ddd247}"
	FieldIDID              = "{1d22ea11-1e32-424e-89ab-9fedbadb6ce1}"
	FieldIDModified        = "{28cf69c5-fa48-462a-b5cd-27b6f9d2bd5f}"
	FieldIDCreated         = "{8c06beca-0777-48f7-91c7-6da68bc07b69}"
	FieldIDAuthor          = "{1df5e554-ec7e-46a6-901d-d85a3881cb18}"
	FieldIDEditor          = "{d31655d1-1d5b-4511-95a1-7a09e9b75bf2}"
	FieldIDAttachments     = "{67df98f4-9dec-48ff-a553-29bece9c5bf4}"
	FieldIDPriority        = "{a8eb573e-9e11-481a-a8c9-1104a54b2fbd}"
	FieldIDStatus          = "{c15b34c3-ce7d-490a-b133-3f4de8801b76}"
	FieldIDPercentComplete = "{d2311440-1ed6-46ea-b46d-daa643dc3886}"
	FieldIDAssignedTo      = "{53101f38-dd2e-458c-b245-0c236cc13d1a}"
	FieldIDBody            = "{7662cd2c-f069-4dba-9e35-082cf976e170}"
	FieldIDStartDate       = "{64cd368d-2f95-4bfc-a1f9-8d4324ecb007}"
	FieldIDDueDate         = "{cd21b4c2-6841-4f9e-a23a-738a65f99889}"
	FieldIDExpires         = "{6a09e75b-8d17-4698-94a8-371eda1af1ac}"
	FieldIDURL             = "{c29e077d-f466-4d8e-8bbe-72b66c5f205c}"
	FieldIDComments        = "{9da97a8a-1da5-4a77-98d3-4bc10456e700}"
	FieldIDFirstName       = "{4a722dd4-d406-4356-93f9-2550b8f50dd0}"
	FieldIDCompany         = "{038d1503-4629-40f6-adaf-b47d1ab2d4fe}"
	FieldIDEmail           = "{fce16b4c-fe53-4793-aaab-b4892e736d15}"
	FieldIDWorkPhone       = "{fd630629-c165-4513-b43c-fdb16b86a14d}"
	FieldIDEventDate       = "{64cd368d-2f95-4bfc-a1f9-8d4324ecb007}"
	FieldIDEndDate         = "{2684f9f2-54be-429f-ba06-76754fc056bf}"
	FieldIDLocation        = "{288f5f32-8462-4175-8f09-dd7ba29359a9}"
	FieldIDIssueStatus     = "{3f277a5c-c7ae-4bbe-9d44-0456fb548f94}"
	FieldIDCategory        = "{6df9bd52-550e-4a30-bc31-a4366832a87f}"
)

// Choice sets of the default Tasks and IssueTracking columns.
var (
	PriorityChoices    = []string{"(1) High", "(2) Normal", "(3) Low"}
	TaskStatusChoices  = []string{"Not Started", "In Progress", "Completed", "Deferred", "Waiting on someone else"}
	IssueStatusChoices = []string{"Active", "Resolved", "Closed"}
	CategoryChoices    = []string{"(1) Category1", "(2) Category2", "(3) Category3"}
)

func field(name, id string, typ schema.FieldType) schema.FieldDefinition {
	return schema.FieldDefinition{Name: name, ID: id, Type: string(typ), DisplayName: name}
}

func choiceField(name, id string, choices []string) schema.FieldDefinition {
	f := field(name, id, schema.FieldTypeChoice)
	f.Choices = schema.NewChoiceList(choices...)
	f.Mappings = schema.NewMappingList(choices...)
	return f
}

func baseFields() []schema.FieldDefinition {
	return []schema.FieldDefinition{
		field("ID", FieldIDID, schema.FieldTypeCounter),
		field("Title", FieldIDTitle, schema.FieldTypeText),
		field("Modified", FieldIDModified, schema.FieldTypeDateTime),
		field("Created", FieldIDCreated, schema.FieldTypeDateTime),
		field("Author", FieldIDAuthor, schema.FieldTypeUser),
		field("Editor", FieldIDEditor, schema.FieldTypeUser),
		field("Attachments", FieldIDAttachments, schema.FieldTypeAttachments),
	}
}

// DefaultTemplateFields returns the field sets a conforming server reports for
// freshly created lists, keyed by template.
func DefaultTemplateFields() map[schema.ListTemplate][]schema.FieldDefinition {
	with := func(extra ...schema.FieldDefinition) []schema.FieldDefinition {
		return append(baseFields(), extra...)
	}

	return map[schema.ListTemplate][]schema.FieldDefinition{
		schema.TemplateGenericList: with(),

		schema.TemplateAnnouncements: with(
			field("Body", FieldIDBody, schema.FieldTypeNote),
			field("Expires", FieldIDExpires, schema.FieldTypeDateTime),
		),
		schema.TemplateLinks: with(
			field("URL", FieldIDURL, schema.FieldTypeURL),
			field("Comments", FieldIDComments, schema.FieldTypeNote),
		),
		schema.TemplateContacts: with(
			field("FirstName", FieldIDFirstName, schema.FieldTypeText),
			field("Company", FieldIDCompany, schema.FieldTypeText),
			field("Email", FieldIDEmail, schema.FieldTypeText),
			field("WorkPhone", FieldIDWorkPhone, schema.FieldTypeText),
		),
		schema.TemplateEvents: with(
			field("EventDate", FieldIDEventDate, schema.FieldTypeDateTime),
			field("EndDate", FieldIDEndDate, schema.FieldTypeDateTime),
			field("Location", FieldIDLocation, schema.FieldTypeText),
			field("fAllDayEvent", "{7d95d1f4-f5fd-4a70-90cd-b35abc9b5bc8}", schema.FieldTypeAllDayEvent),
			field("fRecurrence", "{f2e63656-135e-4f1c-8fc2-ccbe74071901}", schema.FieldTypeRecurrence),
		),
		schema.TemplateTasks: with(
			choiceField("Priority", FieldIDPriority, PriorityChoices),
			choiceField("Status", FieldIDStatus, TaskStatusChoices),
			field("PercentComplete", FieldIDPercentComplete, schema.FieldTypeNumber),
			field("AssignedTo", FieldIDAssignedTo, schema.FieldTypeUser),
			field("Body", FieldIDBody, schema.FieldTypeNote),
			field("StartDate", FieldIDStartDate, schema.FieldTypeDateTime),
			field("DueDate", FieldIDDueDate, schema.FieldTypeDateTime),
		),
		schema.TemplateDiscussionBoard: with(
			field("Body", FieldIDBody, schema.FieldTypeNote),
		),
		schema.TemplateIssueTracking: with(
			field("AssignedTo", FieldIDAssignedTo, schema.FieldTypeUser),
			choiceField("Status", FieldIDIssueStatus, IssueStatusChoices),
			choiceField("Priority", FieldIDPriority, PriorityChoices),
			choiceField("Category", FieldIDCategory, CategoryChoices),
			field("Comment", FieldIDComments, schema.FieldTypeNote),
			field("DueDate", FieldIDDueDate, schema.FieldTypeDateTime),
		),
	}
}

// LoadFixture reads a recorded SOAP response from dir.
func LoadFixture(dir, name string) ([]byte, error) {
	path := filepath.Join(dir, name+".xml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("fixture not found: %s", path)
		}
		return nil, fmt.Errorf("read fixture %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("fixture %s is empty", name)
	}

	return data, nil
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outsps/pkg/schema"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Contains(t, c.Names(), "tasks")
	assert.Contains(t, c.Names(), "generic-list")

	cases, err := c.Filter("tasks")
	require.NoError(t, err)
	require.Len(t, cases, 1)

	tasks := cases[0]
	assert.Equal(t, schema.TemplateTasks, tasks.Template)
	require.NotEmpty(t, tasks.Choices)
	assert.Equal(t, "Priority", tasks.Choices[0].Field)
	assert.Equal(t, "TSK-011", tasks.Choices[0].SchemaRequirement)
}

func TestEmbeddedRequirementIDsAreUnique(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	seen := map[string]string{}
	for _, tc := range c.Cases {
		for _, r := range tc.Requirements() {
			if prev, ok := seen[r.ID]; ok {
				t.Errorf("requirement %s used by %s and %s", r.ID, prev, tc.Name)
			}
			seen[r.ID] = tc.Name
		}
	}
}

func TestParseTemplateByNumber(t *testing.T) {
	c, err := Parse([]byte(`
cases:
  - name: numbered
    template: "107"
    fields:
      - requirement: R-1
        clause: c
        field: Priority
`))
	require.NoError(t, err)
	assert.Equal(t, schema.TemplateTasks, c.Cases[0].Template)
	assert.Empty(t, c.Cases[0].Fields[0].ID)
	assert.Empty(t, c.Cases[0].Fields[0].Type)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "no cases",
			doc:     `cases: []`,
			wantErr: "no cases",
		},
		{
			name: "bad case name",
			doc: `
cases:
  - name: Tasks List
    template: Tasks
    fields: [{requirement: R-1, field: Priority}]
`,
			wantErr: "case name",
		},
		{
			name: "duplicate case",
			doc: `
cases:
  - name: tasks
    template: Tasks
    fields: [{requirement: R-1, field: Priority}]
  - name: tasks
    template: Tasks
    fields: [{requirement: R-2, field: Status}]
`,
			wantErr: "duplicate case name",
		},
		{
			name: "unknown template",
			doc: `
cases:
  - name: tasks
    template: Spreadsheet
    fields: [{requirement: R-1, field: Priority}]
`,
			wantErr: "unknown list template",
		},
		{
			name: "no checks",
			doc: `
cases:
  - name: tasks
    template: Tasks
`,
			wantErr: "no checks",
		},
		{
			name: "empty field name",
			doc: `
cases:
  - name: tasks
    template: Tasks
    fields: [{requirement: R-1}]
`,
			wantErr: "field name is required",
		},
		{
			name: "missing requirement",
			doc: `
cases:
  - name: tasks
    template: Tasks
    choices: [{field: Priority}]
`,
			wantErr: "requirement id is required",
		},
		{
			name:    "not YAML",
			doc:     "cases: [",
			wantErr: "parse catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFilter(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	t.Run("all", func(t *testing.T) {
		cases, err := c.Filter()
		require.NoError(t, err)
		assert.Len(t, cases, len(c.Cases))
	})

	t.Run("keeps catalog order", func(t *testing.T) {
		cases, err := c.Filter("tasks", "generic-list")
		require.NoError(t, err)
		require.Len(t, cases, 2)
		assert.Equal(t, "generic-list", cases[0].Name)
		assert.Equal(t, "tasks", cases[1].Name)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := c.Filter("tasks", "wiki", "blog")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "blog, wiki")
	})
}

func TestCaseRequirements(t *testing.T) {
	tc := Case{
		Fields: []FieldCheck{{Requirement: "F-1", Field: "Priority"}},
		Choices: []ChoiceCheck{
			{Requirement: "C-1", Field: "Priority", SchemaRequirement: "S-1"},
			{Requirement: "C-2", Field: "Status"},
		},
	}

	var ids []string
	for _, r := range tc.Requirements() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"F-1", "C-1", "S-1", "C-2"}, ids)
}

package lists

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outsps/internal/verify"
	"outsps/pkg/schema"
)

func TestParseGetListResponse(t *testing.T) {
	raw, err := LoadFixture("testdata", "getlist_tasks")
	require.NoError(t, err)

	list, err := ParseGetListResponse(raw)
	require.NoError(t, err)

	assert.Equal(t, "{4C2A7E0B-9D51-4F3A-8E6B-2D7C1F0A9B34}", list.ID)
	assert.Equal(t, "Tasks_k3v9x0qa", list.Title)
	assert.Equal(t, schema.TemplateTasks, list.Template)
	var names []string
	for _, f := range list.Fields.Fields() {
		names = append(names, f.Name)
	}
	wantNames := []string{"ID", "Title", "Priority", "Status", "PercentComplete", "AssignedTo", "DueDate"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Errorf("field names mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, len(wantNames), list.Fields.Len())
	assert.Equal(t, raw, list.Raw)

	status, err := list.Fields.Lookup("Status")
	require.NoError(t, err)
	assert.Equal(t, FieldIDStatus, status.ID)
	assert.Equal(t, TaskStatusChoices[4], status.Choices.Items[4].Text)
	assert.Equal(t, "5", status.Mappings.Items[4].Value)

	percent, err := list.Fields.Lookup("PercentComplete")
	require.NoError(t, err)
	assert.Equal(t, "% Complete", percent.DisplayName)
	assert.Nil(t, percent.Choices)
	assert.Nil(t, percent.Mappings)
}

func TestParseGetListResponseErrors(t *testing.T) {
	fault, err := RenderFault(Fault{Code: "soap:Server", ErrorString: "List does not exist."})
	require.NoError(t, err)

	tests := []struct {
		name     string
		raw      string
		wantType string
	}{
		{
			name:     "not XML",
			raw:      "Service Unavailable",
			wantType: ErrorTypeParse,
		},
		{
			name:     "missing GetListResult",
			raw:      `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body><GetListResponse xmlns="http://schemas.microsoft.com/sharepoint/soap/" /></soap:Body></soap:Envelope>`,
			wantType: ErrorTypeParse,
		},
		{
			name:     "missing List",
			raw:      `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body><GetListResponse xmlns="http://schemas.microsoft.com/sharepoint/soap/"><GetListResult /></GetListResponse></soap:Body></soap:Envelope>`,
			wantType: ErrorTypeParse,
		},
		{
			name:     "SOAP fault",
			raw:      string(fault),
			wantType: ErrorTypeFault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGetListResponse([]byte(tt.raw))
			require.Error(t, err)

			var lErr *Error
			require.True(t, errors.As(err, &lErr))
			assert.Equal(t, tt.wantType, lErr.Type)
			assert.Equal(t, OpGetList, lErr.Operation)
		})
	}
}

func TestParseKeepsDuplicateFields(t *testing.T) {
	fields := []schema.FieldDefinition{
		field("Title", FieldIDTitle, schema.FieldTypeText),
		choiceField("Priority", FieldIDPriority, PriorityChoices),
		choiceField("Priority", FieldIDPriority, PriorityChoices),
	}
	raw, err := RenderGetListResponse("{00000000-0000-0000-0000-000000000001}", "dup", schema.TemplateTasks, fields)
	require.NoError(t, err)

	list, err := ParseGetListResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Fields.Len())

	_, err = list.Fields.Lookup("Priority")
	var dup *schema.DuplicateFieldError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 2, dup.Count)
}

func TestRenderedResponseSatisfiesVerifier(t *testing.T) {
	fields := DefaultTemplateFields()[schema.TemplateTasks]
	raw, err := RenderGetListResponse("{00000000-0000-0000-0000-000000000002}", "Tasks_render", schema.TemplateTasks, fields)
	require.NoError(t, err)

	list, err := ParseGetListResponse(raw)
	require.NoError(t, err)

	v := verify.New(nil, nil)

	ok, err := v.VerifyFieldTypeAndID(list.Fields, "Priority", FieldIDPriority, "Choice")
	require.NoError(t, err)
	assert.True(t, ok)

	priority, err := list.Fields.Lookup("Priority")
	require.NoError(t, err)
	ok, err = v.VerifyChoicesAndMappingsRelationship(priority)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.VerifyChoicesAndMappingsSchema(list.Raw, "Priority")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRenderedTemplatesParseBack(t *testing.T) {
	for template, fields := range DefaultTemplateFields() {
		t.Run(template.String(), func(t *testing.T) {
			raw, err := RenderGetListResponse("{00000000-0000-0000-0000-000000000003}", "render", template, fields)
			require.NoError(t, err)

			list, err := ParseGetListResponse(raw)
			require.NoError(t, err)
			assert.Equal(t, template, list.Template)

			if diff := cmp.Diff(fields, list.Fields.Fields(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("parsed fields mismatch (-rendered +parsed):\n%s", diff)
			}
		})
	}
}

func TestRecordedFixtureSatisfiesVerifier(t *testing.T) {
	raw, err := LoadFixture("testdata", "getlist_tasks")
	require.NoError(t, err)

	v := verify.New(nil, nil)
	for _, name := range []string{"Priority", "Status"} {
		ok, err := v.VerifyChoicesAndMappingsSchema(raw, name)
		require.NoError(t, err, name)
		assert.True(t, ok, name)
	}
}

func TestLoadFixtureMissing(t *testing.T) {
	_, err := LoadFixture("testdata", "does_not_exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fixture not found")
}

func TestFaultString(t *testing.T) {
	tests := []struct {
		name  string
		fault Fault
		want  string
	}{
		{"detail with code", Fault{Reason: "Exception", ErrorString: "List does not exist.", ErrorCode: "0x82000006"}, "List does not exist. (0x82000006)"},
		{"reason only", Fault{Reason: "Server was unable to process request."}, "Server was unable to process request."},
		{"empty", Fault{Code: "soap:Client"}, "SOAP fault soap:Client"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fault.String())
		})
	}
}

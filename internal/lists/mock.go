package lists

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"outsps/pkg/schema"
)

// MockService is an in-memory Lists service for testing and offline runs.
// Lists are created from Templates and answered through the same SOAP
// encoding and parsing path the real client uses.
type MockService struct {
	// Templates maps a template to the fields reported for new lists
	Templates map[schema.ListTemplate][]schema.FieldDefinition

	// Errors to return from each operation (if any)
	AddListErr    error
	GetListErr    error
	DeleteListErr error

	mu      sync.Mutex
	lists   map[string]*mockList
	deleted []string
}

type mockList struct {
	id       string
	title    string
	template schema.ListTemplate
	fields   []schema.FieldDefinition
}

// NewMockService returns a mock that serves DefaultTemplateFields.
func NewMockService() *MockService {
	return &MockService{
		Templates: DefaultTemplateFields(),
		lists:     make(map[string]*mockList),
	}
}

// AddList creates a list and returns its braced GUID.
func (m *MockService) AddList(ctx context.Context, title, description string, template schema.ListTemplate) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", NewTimeoutError(OpAddList, err)
	}
	if m.AddListErr != nil {
		return "", m.AddListErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	fields, ok := m.Templates[template]
	if !ok {
		return "", NewFaultError(OpAddList, 500, &Fault{
			Code:        "soap:Server",
			ErrorString: "Invalid list template " + template.String() + ".",
		})
	}
	if m.find(title) != nil {
		return "", NewFaultError(OpAddList, 500, &Fault{
			Code:        "soap:Server",
			ErrorString: "A list, survey, discussion board, or document library with the specified title already exists.",
		})
	}
	if m.lists == nil {
		m.lists = make(map[string]*mockList)
	}

	list := &mockList{
		id:       "{" + strings.ToUpper(uuid.NewString()) + "}",
		title:    title,
		template: template,
		fields:   append([]schema.FieldDefinition(nil), fields...),
	}
	m.lists[list.id] = list

	return list.id, nil
}

// GetList renders the list as a GetList response and parses it back.
func (m *MockService) GetList(ctx context.Context, listName string) (*schema.ListSchema, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewTimeoutError(OpGetList, err)
	}
	if m.GetListErr != nil {
		return nil, m.GetListErr
	}

	m.mu.Lock()
	list := m.find(listName)
	m.mu.Unlock()

	if list == nil {
		return nil, listNotFound(OpGetList)
	}

	raw, err := RenderGetListResponse(list.id, list.title, list.template, list.fields)
	if err != nil {
		return nil, err
	}
	return ParseGetListResponse(raw)
}

// DeleteList removes the list identified by title or GUID.
func (m *MockService) DeleteList(ctx context.Context, listName string) error {
	if err := ctx.Err(); err != nil {
		return NewTimeoutError(OpDeleteList, err)
	}
	if m.DeleteListErr != nil {
		return m.DeleteListErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.find(listName)
	if list == nil {
		return listNotFound(OpDeleteList)
	}
	delete(m.lists, list.id)
	m.deleted = append(m.deleted, list.title)

	return nil
}

// Lists returns the titles of the lists that currently exist.
func (m *MockService) Lists() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	titles := make([]string, 0, len(m.lists))
	for _, l := range m.lists {
		titles = append(titles, l.title)
	}
	return titles
}

// Deleted returns the titles of deleted lists in deletion order.
func (m *MockService) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.deleted...)
}

// find matches a list by GUID (braces and case ignored) or exact title.
// Callers must hold mu.
func (m *MockService) find(listName string) *mockList {
	if l, ok := m.lists[listName]; ok {
		return l
	}
	want := strings.Trim(listName, "{}")
	for _, l := range m.lists {
		if strings.EqualFold(strings.Trim(l.id, "{}"), want) || l.title == listName {
			return l
		}
	}
	return nil
}

func listNotFound(op string) *Error {
	return NewFaultError(op, 500, &Fault{
		Code:        "soap:Server",
		ErrorString: "List does not exist.",
		ErrorCode:   "0x82000006",
	})
}

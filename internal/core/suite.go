package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"outsps/pkg/schema"
)

// ListService is the part of the Lists web service a suite run needs.
// Both lists.Client and lists.MockService implement it.
type ListService interface {
	AddList(ctx context.Context, title, description string, template schema.ListTemplate) (string, error)
	GetList(ctx context.Context, listName string) (*schema.ListSchema, error)
	DeleteList(ctx context.Context, listName string) error
}

// ProvisionedList is a list created during a run.
type ProvisionedList struct {
	ID       string
	Title    string
	Template schema.ListTemplate
}

// SuiteContext owns the resources of one run. It is created once, shared by
// every case, and closed once when the run ends.
type SuiteContext struct {
	RunID  string
	Lists  ListService
	Logger Logger

	mu          sync.Mutex
	provisioned []ProvisionedList
	closed      bool
}

// NewSuiteContext creates the shared context for runID.
func NewSuiteContext(runID string, lists ListService, logger Logger) *SuiteContext {
	if logger == nil {
		logger = NopLogger()
	}
	return &SuiteContext{
		RunID:  runID,
		Lists:  lists,
		Logger: logger,
	}
}

// ProvisionList creates a uniquely titled list from template and remembers it
// for teardown.
func (s *SuiteContext) ProvisionList(ctx context.Context, template schema.ListTemplate) (*ProvisionedList, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("suite %s is closed", s.RunID)
	}

	title, err := schema.NewListTitle(template)
	if err != nil {
		return nil, fmt.Errorf("generate list title: %w", err)
	}

	id, err := s.Lists.AddList(ctx, title, "Created by outsps run "+s.RunID, template)
	if err != nil {
		return nil, fmt.Errorf("add %s list: %w", template, err)
	}

	list := ProvisionedList{ID: id, Title: title, Template: template}

	s.mu.Lock()
	s.provisioned = append(s.provisioned, list)
	s.mu.Unlock()

	s.Logger.Info("List provisioned",
		"run_id", s.RunID,
		"list_id", id,
		"title", title,
		"template", template.String(),
	)

	return &list, nil
}

// Provisioned returns the lists created so far, oldest first.
func (s *SuiteContext) Provisioned() []ProvisionedList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ProvisionedList(nil), s.provisioned...)
}

// Close deletes every provisioned list, newest first. Every list is attempted;
// the failures are joined. Close is idempotent.
func (s *SuiteContext) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	lists := s.provisioned
	s.provisioned = nil
	s.mu.Unlock()

	var errs []error
	for i := len(lists) - 1; i >= 0; i-- {
		l := lists[i]
		if err := s.Lists.DeleteList(ctx, l.ID); err != nil {
			s.Logger.Warn("List teardown failed",
				"run_id", s.RunID,
				"list_id", l.ID,
				"title", l.Title,
				"error", err.Error(),
			)
			errs = append(errs, fmt.Errorf("delete list %s: %w", l.Title, err))
			continue
		}
		s.Logger.Debug("List deleted", "run_id", s.RunID, "title", l.Title)
	}

	return errors.Join(errs...)
}

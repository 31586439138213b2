package core

import "fmt"

// ValidationError reports a bad configuration value. Field names the
// environment variable or flag it came from.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid configuration: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LockError reports that the report directory could not be locked for a run.
type LockError struct {
	Path  string
	RunID string
	Err   error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("run %s cannot lock %s: %v", e.RunID, e.Path, e.Err)
}

func (e *LockError) Unwrap() error {
	return e.Err
}

// CaseError ends one case of a run. Requirement is the check that was
// running, empty before verification starts.
type CaseError struct {
	Case        string
	Stage       string
	Requirement string
	Err         error
}

func (e *CaseError) Error() string {
	if e.Requirement != "" {
		return fmt.Sprintf("case %s aborted during %s at %s: %v", e.Case, e.Stage, e.Requirement, e.Err)
	}
	return fmt.Sprintf("case %s aborted during %s: %v", e.Case, e.Stage, e.Err)
}

func (e *CaseError) Unwrap() error {
	return e.Err
}

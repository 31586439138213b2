package schema

import (
	"fmt"
	"regexp"
)

var caseNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateCaseName validates a catalog case name.
func ValidateCaseName(name string) error {
	if len(name) < CaseNameMin || len(name) > CaseNameMax {
		return fmt.Errorf("case name must be %d-%d characters", CaseNameMin, CaseNameMax)
	}
	if !caseNamePattern.MatchString(name) {
		return fmt.Errorf("case name %q must be lowercase letters, digits, '-' or '_'", name)
	}
	return nil
}

// ValidateRequirement validates a requirement reference.
func ValidateRequirement(r *Requirement) error {
	if r.ID == "" {
		return fmt.Errorf("requirement id is required")
	}
	if len(r.ID) > RequirementIDMax {
		return fmt.Errorf("requirement id must be at most %d characters", RequirementIDMax)
	}
	if len(r.Clause) > RequirementClauseMax {
		return fmt.Errorf("requirement %s: clause must be at most %d characters", r.ID, RequirementClauseMax)
	}
	return nil
}

// ValidateListTemplate rejects templates without a known name.
func ValidateListTemplate(t ListTemplate) error {
	if !t.Known() {
		return fmt.Errorf("unknown list template: %d", int(t))
	}
	return nil
}

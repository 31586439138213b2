package schema

import "time"

// Requirement is a numbered protocol clause that a check claims to verify.
type Requirement struct {
	ID      string `json:"id" yaml:"id"`
	Clause  string `json:"clause" yaml:"clause"`
	Section string `json:"section,omitempty" yaml:"section,omitempty"`
}

// Outcome is the recorded pass/fail state of one requirement in one case.
type Outcome struct {
	EventID       string    `json:"event_id" yaml:"event_id"`
	Case          string    `json:"case" yaml:"case"`
	RequirementID string    `json:"requirement_id,omitempty" yaml:"requirement_id,omitempty"`
	Passed        bool      `json:"passed" yaml:"passed"`
	Aborted       bool      `json:"aborted,omitempty" yaml:"aborted,omitempty"`
	Description   string    `json:"description" yaml:"description"`
	Error         string    `json:"error,omitempty" yaml:"error,omitempty"`
	Timestamp     time.Time `json:"timestamp" yaml:"timestamp"`
}

// RunReport collects every outcome of one suite run.
type RunReport struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	SiteURL    string    `json:"site_url" yaml:"site_url"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	Cases      []string  `json:"cases" yaml:"cases"`
	Outcomes   []Outcome `json:"outcomes" yaml:"outcomes"`
}

// RunSummary is the per-run line kept in the history file.
type RunSummary struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Passed     int       `json:"passed" yaml:"passed"`
	Failed     int       `json:"failed" yaml:"failed"`
	Aborted    int       `json:"aborted" yaml:"aborted"`
}

// Summary counts passed, failed and aborted outcomes.
func (r *RunReport) Summary() RunSummary {
	s := RunSummary{
		RunID:      r.RunID,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
	for _, o := range r.Outcomes {
		switch {
		case o.Aborted:
			s.Aborted++
		case o.Passed:
			s.Passed++
		default:
			s.Failed++
		}
	}
	return s
}

// OK reports whether the run had no failed or aborted outcomes.
func (s RunSummary) OK() bool {
	return s.Failed == 0 && s.Aborted == 0
}

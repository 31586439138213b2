package core

import (
	"sync"
	"time"

	"outsps/pkg/schema"
)

// Recorder collects requirement outcomes into a run report.
type Recorder struct {
	logger Logger
	now    func() time.Time

	mu     sync.Mutex
	report schema.RunReport
}

// NewRecorder starts a report for runID against siteURL.
func NewRecorder(runID, siteURL string, logger Logger) *Recorder {
	if logger == nil {
		logger = NopLogger()
	}
	r := &Recorder{logger: logger, now: time.Now}
	r.report = schema.RunReport{
		RunID:     runID,
		SiteURL:   siteURL,
		StartedAt: r.now(),
		Cases:     []string{},
		Outcomes:  []schema.Outcome{},
	}
	return r
}

// CaseRecorder records outcomes for one case.
type CaseRecorder struct {
	r    *Recorder
	name string
}

// Case registers caseName in the report and returns its recorder.
func (r *Recorder) Case(caseName string) *CaseRecorder {
	r.mu.Lock()
	r.report.Cases = append(r.report.Cases, caseName)
	r.mu.Unlock()
	return &CaseRecorder{r: r, name: caseName}
}

// Record stores the pass/fail state of requirementID.
func (c *CaseRecorder) Record(requirementID string, passed bool, description string) {
	c.r.Record(c.name, requirementID, passed, description)
}

// Abort stores an aborted outcome for the case.
func (c *CaseRecorder) Abort(requirementID string, err error) {
	c.r.Abort(c.name, requirementID, err)
}

// Record stores the pass/fail state of requirementID in caseName.
func (r *Recorder) Record(caseName, requirementID string, passed bool, description string) {
	r.append(schema.Outcome{
		Case:          caseName,
		RequirementID: requirementID,
		Passed:        passed,
		Description:   description,
	})

	fields := []any{"case", caseName, "requirement", requirementID, "description", description}
	if passed {
		r.logger.Info("Requirement passed", fields...)
	} else {
		r.logger.Warn("Requirement failed", fields...)
	}
}

// Abort stores that caseName stopped early because of err. requirementID
// names the check that was running, if any.
func (r *Recorder) Abort(caseName, requirementID string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	r.append(schema.Outcome{
		Case:          caseName,
		RequirementID: requirementID,
		Aborted:       true,
		Description:   "case aborted",
		Error:         msg,
	})

	r.logger.Error("Case aborted",
		"case", caseName,
		"requirement", requirementID,
		"error", msg,
	)
}

func (r *Recorder) append(o schema.Outcome) {
	id, err := schema.NewOutcomeID()
	if err != nil {
		r.logger.Warn("Failed to generate outcome id", "error", err)
	}
	o.EventID = id
	o.Timestamp = r.now()

	r.mu.Lock()
	r.report.Outcomes = append(r.report.Outcomes, o)
	r.mu.Unlock()
}

// Report returns a copy of the report so far.
func (r *Recorder) Report() *schema.RunReport {
	r.mu.Lock()
	defer r.mu.Unlock()

	report := r.report
	report.Cases = append([]string(nil), r.report.Cases...)
	report.Outcomes = append([]schema.Outcome(nil), r.report.Outcomes...)
	return &report
}

// Finish stamps the finish time and returns the final report.
func (r *Recorder) Finish() *schema.RunReport {
	r.mu.Lock()
	r.report.FinishedAt = r.now()
	r.mu.Unlock()
	return r.Report()
}

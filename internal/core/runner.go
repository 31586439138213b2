package core

import (
	"context"
	"errors"
	"fmt"

	"outsps/internal/catalog"
	"outsps/internal/verify"
	"outsps/pkg/schema"
)

// Case stages reported in CaseError.
const (
	StageProvision = "provision"
	StageFetch     = "fetch"
	StageVerify    = "verify"
)

// Runner executes catalog cases against a suite.
type Runner struct {
	suite    *SuiteContext
	verifier *verify.Verifier
	recorder *Recorder
	logger   Logger
}

// NewRunner creates a runner. The suite is not closed by the runner.
func NewRunner(suite *SuiteContext, verifier *verify.Verifier, recorder *Recorder, logger Logger) *Runner {
	if logger == nil {
		logger = NopLogger()
	}
	if verifier == nil {
		verifier = verify.New(logger, nil)
	}
	return &Runner{
		suite:    suite,
		verifier: verifier,
		recorder: recorder,
		logger:   logger,
	}
}

// Run executes cases one after another and returns the report.
//
// Field and choice mismatches are recorded as failed outcomes and the case
// goes on. Provisioning, fetch, structure and schema errors abort only the
// current case. An invalid-argument error means the case itself is wrong and
// stops the run; so does context cancellation.
func (r *Runner) Run(ctx context.Context, cases []catalog.Case) (*schema.RunReport, error) {
	for _, tc := range cases {
		if err := ctx.Err(); err != nil {
			return r.recorder.Finish(), fmt.Errorf("run canceled: %w", err)
		}

		r.logger.Info("Case started", "case", tc.Name, "template", tc.Template.String())

		rec := r.recorder.Case(tc.Name)
		err := r.runCase(ctx, tc, rec)
		if err == nil {
			r.logger.Info("Case finished", "case", tc.Name)
			continue
		}

		if verify.IsInvalidArgument(err) {
			rec.Abort("", err)
			return r.recorder.Finish(), fmt.Errorf("case %s: %w", tc.Name, err)
		}

		var caseErr *CaseError
		if !errors.As(err, &caseErr) {
			return r.recorder.Finish(), err
		}
		if ctx.Err() != nil {
			return r.recorder.Finish(), fmt.Errorf("run canceled: %w", ctx.Err())
		}
	}

	return r.recorder.Finish(), nil
}

// runCase returns a *CaseError for failures that end the case, or an
// invalid-argument error that ends the run.
func (r *Runner) runCase(ctx context.Context, tc catalog.Case, rec *CaseRecorder) error {
	list, err := r.suite.ProvisionList(ctx, tc.Template)
	if err != nil {
		return r.abort(rec, tc.Name, StageProvision, "", err)
	}

	listSchema, err := r.suite.Lists.GetList(ctx, list.ID)
	if err != nil {
		return r.abort(rec, tc.Name, StageFetch, "", err)
	}

	for _, fc := range tc.Fields {
		ok, err := r.verifier.VerifyFieldTypeAndID(listSchema.Fields, fc.Field, fc.ID, fc.Type)
		if err != nil {
			return r.abort(rec, tc.Name, StageVerify, fc.Requirement, err)
		}
		rec.Record(fc.Requirement, ok, describeFieldCheck(fc))
	}

	for _, cc := range tc.Choices {
		field, err := verify.LookupField(listSchema.Fields, cc.Field)
		if err != nil {
			return r.abort(rec, tc.Name, StageVerify, cc.Requirement, err)
		}

		if field.Choices == nil || field.Mappings == nil {
			err := verify.NewStructureError("field %q lacks a CHOICES or MAPPINGS element", cc.Field)
			return r.abort(rec, tc.Name, StageVerify, cc.Requirement, err)
		}

		ok, err := r.verifier.VerifyChoicesAndMappingsRelationship(field)
		if err != nil {
			return r.abort(rec, tc.Name, StageVerify, cc.Requirement, err)
		}
		rec.Record(cc.Requirement, ok, fmt.Sprintf("every CHOICE of %s has a matching MAPPING", cc.Field))

		if cc.SchemaRequirement == "" {
			continue
		}
		ok, err = r.verifier.VerifyChoicesAndMappingsSchema(listSchema.Raw, cc.Field)
		if err != nil {
			return r.abort(rec, tc.Name, StageVerify, cc.SchemaRequirement, err)
		}
		rec.Record(cc.SchemaRequirement, ok, fmt.Sprintf("CHOICES and MAPPINGS of %s conform to their schema", cc.Field))
	}

	return nil
}

// abort records the failure and classifies it. Invalid arguments pass through
// unwrapped so Run can stop.
func (r *Runner) abort(rec *CaseRecorder, caseName, stage, requirementID string, err error) error {
	if verify.IsInvalidArgument(err) {
		return err
	}
	caseErr := &CaseError{Case: caseName, Stage: stage, Requirement: requirementID, Err: err}
	rec.Abort(requirementID, caseErr)
	return caseErr
}

func describeFieldCheck(fc catalog.FieldCheck) string {
	switch {
	case fc.ID != "" && fc.Type != "":
		return fmt.Sprintf("%s has ID %s and type %s", fc.Field, fc.ID, fc.Type)
	case fc.ID != "":
		return fmt.Sprintf("%s has ID %s", fc.Field, fc.ID)
	case fc.Type != "":
		return fmt.Sprintf("%s has type %s", fc.Field, fc.Type)
	default:
		return fmt.Sprintf("%s exists", fc.Field)
	}
}

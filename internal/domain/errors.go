package domain

import (
	"fmt"
	"strings"

	"authoring_console_backend/internal/model"
)

// Violation codes carried by ValidationError.Code.
const (
	CodeUnknownType = "unknown_type"
	CodeRequired    = "required"
	CodeInvalid     = "invalid"
	CodeOutOfRange  = "out_of_range"
	CodeDuplicate   = "duplicate"
	CodeNotAllowed  = "not_allowed"
	CodeNotFound    = "not_found"
)

// ValidationError is a single structural defect. Validators collect every
// defect they find instead of stopping at the first one.
type ValidationError struct {
	Field  string `json:"field"`
	Code   string `json:"type"`
	Reason string `json:"reason"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Reason, e.Code)
}

// JoinReasons renders a violation list as one human-readable line.
func JoinReasons(errs []ValidationError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Field + ": " + e.Reason
	}
	return strings.Join(parts, "; ")
}

// EmptyAssessmentError rejects publishing an assessment with no questions.
type EmptyAssessmentError struct {
	AssessmentID string
}

func (e *EmptyAssessmentError) Error() string {
	return "assessment has no questions and cannot be published"
}

// QuestionFailure pairs a referenced question id with its violations.
type QuestionFailure struct {
	QuestionID string            `json:"questionId"`
	Errors     []ValidationError `json:"errors"`
}

// InvalidQuestionsError rejects publishing when any referenced question fails
// validation. Failures keep the assessment's question order.
type InvalidQuestionsError struct {
	Failures []QuestionFailure
}

func (e *InvalidQuestionsError) Error() string {
	ids := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		ids[i] = f.QuestionID
	}
	return fmt.Sprintf("%d question(s) failed validation: %s", len(e.Failures), strings.Join(ids, ", "))
}

// InvalidSettingsError rejects publishing with inconsistent settings.
type InvalidSettingsError struct {
	Reasons []string
}

func (e *InvalidSettingsError) Error() string {
	return "invalid assessment settings: " + strings.Join(e.Reasons, "; ")
}

// IllegalTransitionError rejects a transition outside the lifecycle graph.
type IllegalTransitionError struct {
	From model.AssessmentStatus
	To   model.AssessmentStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition from %s to %s", e.From, e.To)
}

// AlreadyTerminalError rejects any transition requested on an archived
// assessment.
type AlreadyTerminalError struct {
	Status model.AssessmentStatus
}

func (e *AlreadyTerminalError) Error() string {
	return fmt.Sprintf("assessment is %s, a terminal state", e.Status)
}

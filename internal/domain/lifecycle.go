package domain

import (
	"fmt"
	"time"

	"authoring_console_backend/internal/model"
)

// QuestionResolver fetches a referenced question by id. A nil question or an
// error both count as a validation failure for that reference; the lifecycle
// itself never touches a store.
type QuestionResolver func(id string) (*model.Question, error)

// Publish moves a draft assessment to published. The guards run in order:
// empty question list, per-question validation, settings consistency. The
// input is not mutated; the published copy is returned.
func Publish(a model.Assessment, resolve QuestionResolver) (model.Assessment, error) {
	if a.Status == model.StatusArchived {
		return a, &IllegalTransitionError{From: a.Status, To: model.StatusPublished}
	}
	if a.Status != model.StatusDraft {
		return a, &IllegalTransitionError{From: a.Status, To: model.StatusPublished}
	}

	if len(a.Questions) == 0 {
		return a, &EmptyAssessmentError{AssessmentID: a.ID}
	}

	var failures []QuestionFailure
	for _, ref := range a.Questions {
		q, err := resolve(ref.QuestionID)
		if err != nil || q == nil {
			failures = append(failures, QuestionFailure{
				QuestionID: ref.QuestionID,
				Errors: []ValidationError{{
					Field:  "questionId",
					Code:   CodeNotFound,
					Reason: fmt.Sprintf("referenced question %q could not be resolved", ref.QuestionID),
				}},
			})
			continue
		}
		if errs := Validate(q); len(errs) > 0 {
			failures = append(failures, QuestionFailure{QuestionID: ref.QuestionID, Errors: errs})
		}
	}
	if len(failures) > 0 {
		return a, &InvalidQuestionsError{Failures: failures}
	}

	if reasons := settingsViolations(a.Settings); len(reasons) > 0 {
		return a, &InvalidSettingsError{Reasons: reasons}
	}

	now := time.Now()
	a.Status = model.StatusPublished
	a.PublishedAt = &now
	return a, nil
}

// Archive is allowed from draft and published; archived is terminal.
func Archive(a model.Assessment) (model.Assessment, error) {
	if a.Status == model.StatusArchived {
		return a, &AlreadyTerminalError{Status: a.Status}
	}
	a.Status = model.StatusArchived
	return a, nil
}

// Transition dispatches a requested status change through the lifecycle
// graph. Anything not on the graph fails with IllegalTransitionError.
func Transition(a model.Assessment, to model.AssessmentStatus, resolve QuestionResolver) (model.Assessment, error) {
	switch to {
	case model.StatusPublished:
		return Publish(a, resolve)
	case model.StatusArchived:
		return Archive(a)
	}
	return a, &IllegalTransitionError{From: a.Status, To: to}
}

func settingsViolations(s model.AssessmentSettings) []string {
	var reasons []string
	if s.PassingScore != nil && (*s.PassingScore < 0 || *s.PassingScore > 100) {
		reasons = append(reasons, fmt.Sprintf("passingScore %d is outside [0,100]", *s.PassingScore))
	}
	if s.AllowRetakes && s.MaxAttempts < 1 {
		reasons = append(reasons, "allowRetakes requires maxAttempts of at least 1")
	}
	return reasons
}

// CanDeleteQuestion is the referential predicate the external store consults
// before deleting: a question is deletable only when no non-archived
// assessment references it.
func CanDeleteQuestion(questionID string, assessments []model.Assessment) bool {
	for i := range assessments {
		if assessments[i].Status == model.StatusArchived {
			continue
		}
		if assessments[i].References(questionID) {
			return false
		}
	}
	return true
}

// DuplicateAssessment builds a fresh draft from an existing assessment:
// settings are deep-copied, the question list is a reference copy, lifecycle
// state and publish timestamp reset.
func DuplicateAssessment(a model.Assessment, newID string) model.Assessment {
	dup := a
	dup.UUIDBase = model.UUIDBase{ID: newID}
	dup.Status = model.StatusDraft
	dup.PublishedAt = nil

	dup.Questions = append([]model.QuestionRef(nil), a.Questions...)
	dup.Tags = append([]string(nil), a.Tags...)

	dup.Settings = a.Settings
	if a.Settings.AvailableFrom != nil {
		from := *a.Settings.AvailableFrom
		dup.Settings.AvailableFrom = &from
	}
	if a.Settings.AvailableUntil != nil {
		until := *a.Settings.AvailableUntil
		dup.Settings.AvailableUntil = &until
	}
	if a.Settings.PassingScore != nil {
		score := *a.Settings.PassingScore
		dup.Settings.PassingScore = &score
	}
	return dup
}

// Draft updates replace whole subtrees rather than patching field-by-field,
// so a question is never observable in a half-updated state.

func WithContent(q model.Question, content model.QuestionContent) model.Question {
	q.Content = content
	return q
}

func WithOptions(q model.Question, options []model.Option) model.Question {
	q.Options = append([]model.Option(nil), options...)
	return q
}

func WithMetadata(q model.Question, metadata map[string]any) model.Question {
	if metadata == nil {
		q.Metadata = nil
		return q
	}
	md := make(map[string]any, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}
	q.Metadata = md
	return q
}

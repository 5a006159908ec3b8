package util

import "errors"

var (
	ErrBankNotFound          = errors.New("question bank not found")
	ErrQuestionNotFound      = errors.New("question not found")
	ErrAssessmentNotFound    = errors.New("assessment not found")
	ErrRubricNotFound        = errors.New("rubric not found")
	ErrQuestionReferenced    = errors.New("question is referenced by a non-archived assessment")
	ErrExportArtifactMissing = errors.New("export artifact not found")
	ErrDraftRejected         = errors.New("AI draft failed validation")
)

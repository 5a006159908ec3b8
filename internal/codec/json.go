package codec

import (
	"encoding/json"

	"authoring_console_backend/internal/model"
)

// JSON is the full-fidelity format: every field, including metadata and
// hints, round-trips exactly as the in-memory entity serializes.

func parseQuestionCandidatesJSON(data []byte) ([]candidate, []FormatError, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, nil, &ContainerParseError{Format: FormatJSON, Err: err}
	}

	cands := make([]candidate, 0, len(raws))
	var errs []FormatError
	for i, raw := range raws {
		var q model.Question
		if err := json.Unmarshal(raw, &q); err != nil {
			errs = append(errs, FormatError{RecordIndex: i, Reason: err.Error(), Err: err})
			continue
		}
		cands = append(cands, candidate{index: i, question: q})
	}
	return cands, errs, nil
}

func parseAssessmentsJSON(data []byte) (AssessmentBatch, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return AssessmentBatch{}, &ContainerParseError{Format: FormatJSON, Err: err}
	}

	var batch AssessmentBatch
	for i, raw := range raws {
		var a model.Assessment
		if err := json.Unmarshal(raw, &a); err != nil {
			batch.Errors = append(batch.Errors, FormatError{RecordIndex: i, Reason: err.Error(), Err: err})
			continue
		}
		if a.Status == "" {
			a.Status = model.StatusDraft
		}
		batch.Assessments = append(batch.Assessments, a)
	}
	return batch, nil
}

func exportQuestionsJSON(questions []model.Question) ([]byte, error) {
	if questions == nil {
		questions = []model.Question{}
	}
	return json.MarshalIndent(questions, "", "  ")
}

func exportAssessmentsJSON(assessments []model.Assessment) ([]byte, error) {
	if assessments == nil {
		assessments = []model.Assessment{}
	}
	return json.MarshalIndent(assessments, "", "  ")
}

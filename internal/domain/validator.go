package domain

import (
	"fmt"
	"strings"

	"authoring_console_backend/internal/model"
)

// Validate applies the registry contract plus the per-type rules to a
// candidate question. It returns every violation found; an empty result means
// the question is structurally valid. Side-effect free.
func Validate(q *model.Question) []ValidationError {
	var errs []ValidationError

	if q.Points <= 0 {
		errs = append(errs, ValidationError{Field: "points", Code: CodeOutOfRange, Reason: "points must be a positive integer"})
	}
	if strings.TrimSpace(q.Content.Text) == "" {
		errs = append(errs, ValidationError{Field: "content.text", Code: CodeRequired, Reason: "question text is required"})
	}

	contract, ok := ContractFor(q.Type)
	if !ok {
		errs = append(errs, ValidationError{Field: "type", Code: CodeUnknownType, Reason: fmt.Sprintf("unknown question type %q", q.Type)})
		return errs
	}

	switch contract.Options {
	case OptionsRequired:
		if len(q.Options) < contract.MinOptions {
			errs = append(errs, ValidationError{
				Field:  "options",
				Code:   CodeOutOfRange,
				Reason: fmt.Sprintf("at least %d options required, got %d", contract.MinOptions, len(q.Options)),
			})
		}
	case OptionsForbidden:
		if len(q.Options) > 0 {
			errs = append(errs, ValidationError{Field: "options", Code: CodeNotAllowed, Reason: fmt.Sprintf("%s questions do not take options", q.Type)})
		}
	}

	switch contract.Answer {
	case AnswerBoolean:
		if q.CorrectAnswer == nil || q.CorrectAnswer.Kind != model.AnswerBool {
			errs = append(errs, ValidationError{Field: "correctAnswer", Code: CodeInvalid, Reason: "correctAnswer must be a boolean"})
		}
	case AnswerTextList:
		if q.CorrectAnswer == nil || q.CorrectAnswer.Kind != model.AnswerTextList || len(q.CorrectAnswer.Texts) == 0 {
			errs = append(errs, ValidationError{Field: "correctAnswer", Code: CodeInvalid, Reason: "correctAnswer must be a non-empty array of accepted answers"})
		}
	}

	errs = append(errs, validateTypeRules(q)...)
	return errs
}

func validateTypeRules(q *model.Question) []ValidationError {
	var errs []ValidationError

	switch q.Type {
	case model.MultipleChoice:
		correct := 0
		seen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
			if opt.ID != "" && seen[opt.ID] {
				errs = append(errs, ValidationError{Field: "options", Code: CodeDuplicate, Reason: fmt.Sprintf("duplicate option id %q", opt.ID)})
			}
			seen[opt.ID] = true
		}
		if correct == 0 {
			errs = append(errs, ValidationError{Field: "options", Code: CodeInvalid, Reason: "at least one option must be marked correct"})
		}

	case model.Essay:
		if limit, present, isNum := metadataNumber(q.Metadata, "wordLimit"); present {
			if !isNum || limit <= 0 {
				errs = append(errs, ValidationError{Field: "metadata.wordLimit", Code: CodeOutOfRange, Reason: "wordLimit must be a positive number"})
			}
		}

	case model.CodeSubmission:
		if lang, _ := q.Metadata["language"].(string); strings.TrimSpace(lang) == "" {
			errs = append(errs, ValidationError{Field: "metadata.language", Code: CodeRequired, Reason: "code submission questions require a language"})
		}

	case model.FileUpload:
		if raw, present := q.Metadata["allowedFileTypes"]; present {
			if metadataListLen(raw) == 0 {
				errs = append(errs, ValidationError{Field: "metadata.allowedFileTypes", Code: CodeInvalid, Reason: "allowedFileTypes must be non-empty when present"})
			}
		}
		if max, present, isNum := metadataNumber(q.Metadata, "maxFiles"); present {
			if !isNum || max < 1 {
				errs = append(errs, ValidationError{Field: "metadata.maxFiles", Code: CodeOutOfRange, Reason: "maxFiles must be at least 1"})
			}
		}

	case model.Matching:
		if len(q.Options)%2 != 0 {
			errs = append(errs, ValidationError{Field: "options", Code: CodeInvalid, Reason: "matching questions need an even number of options"})
		}
		ids := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			ids[opt.ID] = true
		}
		for _, opt := range q.Options {
			if opt.MatchID == "" || !ids[opt.MatchID] {
				errs = append(errs, ValidationError{Field: "options", Code: CodeInvalid, Reason: fmt.Sprintf("option %q is not linked to a counterpart", opt.ID)})
			}
		}

	case model.Ordering:
		positions := make(map[int]bool, len(q.Options))
		for _, opt := range q.Options {
			if positions[opt.Position] {
				errs = append(errs, ValidationError{Field: "options", Code: CodeDuplicate, Reason: fmt.Sprintf("duplicate target position %d", opt.Position)})
			}
			positions[opt.Position] = true
		}
	}

	return errs
}

// metadataNumber reads a numeric metadata value. JSON decoding yields
// float64, hand-built questions may carry int.
func metadataNumber(md map[string]any, key string) (val float64, present bool, isNumber bool) {
	raw, ok := md[key]
	if !ok {
		return 0, false, false
	}
	switch n := raw.(type) {
	case float64:
		return n, true, true
	case int:
		return float64(n), true, true
	}
	return 0, true, false
}

func metadataListLen(raw any) int {
	switch l := raw.(type) {
	case []any:
		return len(l)
	case []string:
		return len(l)
	}
	return 0
}

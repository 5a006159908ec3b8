package codec

import (
	"bytes"
	"errors"
	"testing"

	"authoring_console_backend/internal/model"
)

func sampleQuestions() []model.Question {
	mcq := model.Question{
		Type: model.MultipleChoice,
		Content: model.QuestionContent{
			Text:  "Which planet is largest?",
			Hints: []string{"It is a gas giant."},
		},
		Options: []model.Option{
			{ID: "a", Text: "Jupiter", IsCorrect: true},
			{ID: "b", Text: "Mars"},
		},
		Points:     5,
		Difficulty: model.Beginner,
		Tags:       []string{"astronomy"},
		Metadata:   map[string]any{"source": "unit 3"},
	}
	mcq.ID = "q1"

	tf := model.Question{
		Type:          model.TrueFalse,
		Content:       model.QuestionContent{Text: "The sky is green."},
		CorrectAnswer: model.BoolAnswer(false),
		Points:        1,
	}
	tf.ID = "q2"

	essay := model.Question{
		Type:     model.Essay,
		Content:  model.QuestionContent{Text: "Discuss entropy."},
		Points:   10,
		Metadata: map[string]any{"wordLimit": float64(500)},
	}
	essay.ID = "q3"

	return []model.Question{mcq, tf, essay}
}

func TestJSONRoundTripIdempotent(t *testing.T) {
	first, _, err := ExportQuestions(sampleQuestions(), FormatJSON)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	batch, err := ParseQuestions(FormatJSON, first)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(batch.Errors) != 0 {
		t.Fatalf("unexpected record errors: %v", batch.Errors)
	}
	if batch.Imported() != 3 {
		t.Fatalf("imported = %d, want 3", batch.Imported())
	}

	second, _, err := ExportQuestions(batch.Questions, FormatJSON)
	if err != nil {
		t.Fatalf("re-export: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("round trip is not byte-stable:\n%s\n---\n%s", first, second)
	}
}

func TestJSONContainerError(t *testing.T) {
	_, err := ParseQuestions(FormatJSON, []byte(`{"not": "an array"}`))
	var container *ContainerParseError
	if !errors.As(err, &container) {
		t.Fatalf("expected ContainerParseError, got %v", err)
	}
}

func TestJSONPerRecordIsolation(t *testing.T) {
	payload := []byte(`[
		{"id": "q1", "type": "true_false", "content": {"text": "1+1=2"}, "correctAnswer": true, "points": 1},
		{"id": "q2", "type": "true_false", "content": {"text": "bad answer"}, "correctAnswer": 42, "points": 1},
		{"id": "q3", "type": "essay", "content": {"text": "Discuss."}, "points": 5}
	]`)

	batch, err := ParseQuestions(FormatJSON, payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if batch.Imported() != 2 {
		t.Fatalf("imported = %d, want 2", batch.Imported())
	}
	if len(batch.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(batch.Errors))
	}
	if batch.Errors[0].RecordIndex != 1 {
		t.Errorf("error index = %d, want 1 (0-based)", batch.Errors[0].RecordIndex)
	}
}

func TestJSONValidationFoldedIntoErrors(t *testing.T) {
	payload := []byte(`[
		{"id": "q1", "type": "multiple_choice", "content": {"text": "Pick one"}, "points": 2,
		 "options": [{"id": "a", "text": "A"}, {"id": "b", "text": "B"}]}
	]`)

	batch, err := ParseQuestions(FormatJSON, payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if batch.Imported() != 0 || len(batch.Errors) != 1 {
		t.Fatalf("no-correct-option record must fail validation: %+v", batch)
	}
}

func TestAssessmentsJSONOnly(t *testing.T) {
	for _, format := range []Format{FormatCSV, FormatQTI} {
		_, err := ParseAssessments(format, []byte("whatever"))
		var unsupported *UnsupportedFormatError
		if !errors.As(err, &unsupported) {
			t.Fatalf("%s: expected UnsupportedFormatError, got %v", format, err)
		}

		_, err = ExportAssessments(nil, format)
		if !errors.As(err, &unsupported) {
			t.Fatalf("%s export: expected UnsupportedFormatError, got %v", format, err)
		}
	}
}

func TestAssessmentsRoundTrip(t *testing.T) {
	a := model.Assessment{
		Title:     "Midterm",
		Questions: []model.QuestionRef{{QuestionID: "q1", Position: 1}},
		Status:    model.StatusPublished,
	}
	a.ID = "a1"

	data, err := ExportAssessments([]model.Assessment{a}, FormatJSON)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	batch, err := ParseAssessments(FormatJSON, data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if batch.Imported() != 1 {
		t.Fatalf("imported = %d, want 1", batch.Imported())
	}
	got := batch.Assessments[0]
	if got.Title != "Midterm" || got.Status != model.StatusPublished || len(got.Questions) != 1 {
		t.Fatalf("round trip lost fields: %+v", got)
	}
}

func TestAssessmentsDefaultStatusDraft(t *testing.T) {
	batch, err := ParseAssessments(FormatJSON, []byte(`[{"id": "a1", "title": "No status"}]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if batch.Assessments[0].Status != model.StatusDraft {
		t.Fatalf("status = %s, want draft", batch.Assessments[0].Status)
	}
}

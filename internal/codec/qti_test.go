package codec

import (
	"errors"
	"strings"
	"testing"

	"authoring_console_backend/internal/model"
)

func TestQTIExportSupportedTypes(t *testing.T) {
	data, recordErrs, err := ExportQuestions(sampleQuestions(), FormatQTI)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(recordErrs) != 0 {
		t.Fatalf("unexpected record errors: %v", recordErrs)
	}

	out := string(data)
	if !strings.HasPrefix(out, "<?xml") {
		t.Errorf("missing XML declaration")
	}
	for _, want := range []string{
		"<assessmentItems>",
		`identifier="q1"`,
		"<choiceInteraction",
		`baseType="boolean"`,
		"<extendedTextInteraction",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q", want)
		}
	}
}

func TestQTIExportSkipsUnsupportedTypes(t *testing.T) {
	code := model.Question{
		Type:     model.CodeSubmission,
		Content:  model.QuestionContent{Text: "Reverse a list."},
		Points:   10,
		Metadata: map[string]any{"language": "go"},
	}
	code.ID = "q-code"

	questions := append(sampleQuestions(), code)
	data, recordErrs, err := ExportQuestions(questions, FormatQTI)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(recordErrs) != 1 {
		t.Fatalf("record errors = %d, want 1", len(recordErrs))
	}
	if recordErrs[0].RecordIndex != 3 {
		t.Errorf("skip index = %d, want 3", recordErrs[0].RecordIndex)
	}
	var unsupported *UnsupportedTypeError
	if !errors.As(recordErrs[0].Err, &unsupported) {
		t.Errorf("expected UnsupportedTypeError, got %v", recordErrs[0].Err)
	}
	if strings.Contains(string(data), "q-code") {
		t.Errorf("skipped item still present in output")
	}
}

func TestQTIMultiCorrectCardinality(t *testing.T) {
	q := sampleQuestions()[0]
	q.Options[1].IsCorrect = true

	data, _, err := ExportQuestions([]model.Question{q}, FormatQTI)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(string(data), `cardinality="multiple"`) {
		t.Fatalf("multi-correct item must declare multiple cardinality:\n%s", data)
	}
}

func TestQTIRoundTrip(t *testing.T) {
	data, _, err := ExportQuestions(sampleQuestions(), FormatQTI)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	batch, err := ParseQuestions(FormatQTI, data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if batch.Imported() != 3 {
		t.Fatalf("imported = %d, want 3: %v", batch.Imported(), batch.Errors)
	}

	byID := make(map[string]model.Question, len(batch.Questions))
	for _, q := range batch.Questions {
		byID[q.ID] = q
	}

	mcq := byID["q1"]
	if mcq.Type != model.MultipleChoice || len(mcq.Options) != 2 {
		t.Fatalf("q1 = %+v", mcq)
	}
	if !mcq.Options[0].IsCorrect || mcq.Options[1].IsCorrect {
		t.Errorf("q1 correct flags lost: %+v", mcq.Options)
	}
	if mcq.Points != 5 {
		t.Errorf("q1 points = %d, want 5", mcq.Points)
	}

	tf := byID["q2"]
	if tf.Type != model.TrueFalse || tf.CorrectAnswer == nil || tf.CorrectAnswer.Bool {
		t.Errorf("q2 = %+v", tf)
	}

	essay := byID["q3"]
	if essay.Type != model.Essay {
		t.Fatalf("q3 type = %s", essay.Type)
	}
	if limit, ok := essay.Metadata["wordLimit"].(float64); !ok || limit != 500 {
		t.Errorf("q3 wordLimit = %v", essay.Metadata["wordLimit"])
	}
}

func TestQTIContainerError(t *testing.T) {
	_, err := ParseQuestions(FormatQTI, []byte("<assessmentItems><unclosed"))
	var container *ContainerParseError
	if !errors.As(err, &container) {
		t.Fatalf("expected ContainerParseError, got %v", err)
	}
}

package codec

import (
	"errors"
	"strings"
	"testing"

	"authoring_console_backend/internal/model"
)

const csvPayload = `id,type,text,instructions,points,difficulty,tags,options,correct_answer
q1,true_false,"The sky is green.",,1,beginner,,,false
q2,multiple_choice,"Pick the gas giant.",,5,intermediate,astronomy,*Jupiter|Mars|Venus,
q3,essay,"Discuss entropy.",Write clearly.,10,advanced,physics|exam,,
q4,true_false,"Bad points row.",,not-a-number,beginner,,,true
q5,fill_in_blank,"Water is H2_",,2,beginner,,,O|o
`

func TestCSVImportIsolatesBadRow(t *testing.T) {
	batch, err := ParseQuestions(FormatCSV, []byte(csvPayload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if batch.Imported() != 4 {
		t.Fatalf("imported = %d, want 4", batch.Imported())
	}
	if len(batch.Errors) != 1 {
		t.Fatalf("errors = %d, want 1: %v", len(batch.Errors), batch.Errors)
	}
	if batch.Errors[0].RecordIndex != 4 {
		t.Errorf("error index = %d, want 4 (1-based data row)", batch.Errors[0].RecordIndex)
	}
	if !strings.Contains(batch.Errors[0].Reason, "points") {
		t.Errorf("reason %q should name the points column", batch.Errors[0].Reason)
	}
}

func TestCSVParsesTypedAnswers(t *testing.T) {
	batch, err := ParseQuestions(FormatCSV, []byte(csvPayload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	byID := make(map[string]model.Question, len(batch.Questions))
	for _, q := range batch.Questions {
		byID[q.ID] = q
	}

	tf := byID["q1"]
	if tf.CorrectAnswer == nil || tf.CorrectAnswer.Kind != model.AnswerBool || tf.CorrectAnswer.Bool {
		t.Errorf("q1 correctAnswer = %+v, want bool false", tf.CorrectAnswer)
	}

	mcq := byID["q2"]
	if len(mcq.Options) != 3 {
		t.Fatalf("q2 options = %d, want 3", len(mcq.Options))
	}
	if !mcq.Options[0].IsCorrect || mcq.Options[0].Text != "Jupiter" {
		t.Errorf("q2 starred option not parsed: %+v", mcq.Options[0])
	}
	if mcq.Options[1].IsCorrect || mcq.Options[2].IsCorrect {
		t.Errorf("q2 unstarred options marked correct")
	}

	fib := byID["q5"]
	if fib.CorrectAnswer == nil || fib.CorrectAnswer.Kind != model.AnswerTextList || len(fib.CorrectAnswer.Texts) != 2 {
		t.Errorf("q5 correctAnswer = %+v, want two accepted answers", fib.CorrectAnswer)
	}

	essay := byID["q3"]
	if len(essay.Tags) != 2 || essay.Tags[0] != "physics" {
		t.Errorf("q3 tags = %v", essay.Tags)
	}
	if essay.Content.Instructions != "Write clearly." {
		t.Errorf("q3 instructions = %q", essay.Content.Instructions)
	}
}

func TestCSVHeaderRequired(t *testing.T) {
	payloads := map[string]string{
		"empty":        "",
		"wrong header": "name,kind,prompt\nx,y,z\n",
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			_, err := ParseQuestions(FormatCSV, []byte(payload))
			var container *ContainerParseError
			if !errors.As(err, &container) {
				t.Fatalf("expected ContainerParseError, got %v", err)
			}
		})
	}
}

func TestCSVExportRoundTrip(t *testing.T) {
	questions := sampleQuestions()
	data, _, err := ExportQuestions(questions, FormatCSV)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want header + 3 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,type,text") {
		t.Fatalf("missing header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "*Jupiter|Mars") {
		t.Errorf("correct option not starred: %q", lines[1])
	}

	batch, err := ParseQuestions(FormatCSV, data)
	if err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if batch.Imported() != 3 {
		t.Fatalf("reimported = %d, want 3: %v", batch.Imported(), batch.Errors)
	}
}

func TestCSVExportDropsStructuredOptions(t *testing.T) {
	matching := model.Question{
		Type:    model.Matching,
		Content: model.QuestionContent{Text: "Match."},
		Points:  2,
		Options: []model.Option{
			{ID: "l1", Text: "France", MatchID: "r1"},
			{ID: "r1", Text: "Paris", MatchID: "l1"},
		},
	}
	matching.ID = "m1"

	data, _, err := ExportQuestions([]model.Question{matching}, FormatCSV)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if strings.Contains(lines[1], "France") {
		t.Fatalf("matching pair structure must not be flattened into the options cell: %q", lines[1])
	}
}

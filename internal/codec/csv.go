package codec

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"authoring_console_backend/internal/model"
)

// CSV carries questions only, as flat columns. Hints, nested metadata and the
// matching/ordering option structures do not fit a flat row and are dropped
// on export; they cannot be reconstructed on import. Lossy both ways, by
// design.

var csvHeader = []string{"id", "type", "text", "instructions", "points", "difficulty", "tags", "options", "correct_answer"}

const correctMarker = "*"

func exportQuestionsCSV(questions []model.Question) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for i := range questions {
		q := &questions[i]
		row := []string{
			q.ID,
			string(q.Type),
			q.Content.Text,
			q.Content.Instructions,
			strconv.Itoa(q.Points),
			string(q.Difficulty),
			strings.Join(q.Tags, "|"),
			optionsCell(q),
			answerCell(q),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func optionsCell(q *model.Question) string {
	switch q.Type {
	case model.Matching, model.Ordering:
		// pair/position structure has no flat representation
		return ""
	}
	parts := make([]string, 0, len(q.Options))
	for _, opt := range q.Options {
		text := opt.Text
		if opt.IsCorrect {
			text = correctMarker + text
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "|")
}

func answerCell(q *model.Question) string {
	if q.CorrectAnswer == nil {
		return ""
	}
	switch q.CorrectAnswer.Kind {
	case model.AnswerBool:
		return strconv.FormatBool(q.CorrectAnswer.Bool)
	case model.AnswerText:
		return q.CorrectAnswer.Text
	case model.AnswerTextList:
		return strings.Join(q.CorrectAnswer.Texts, "|")
	}
	return ""
}

func parseQuestionCandidatesCSV(data []byte) ([]candidate, []FormatError, error) {
	r := csv.NewReader(bytes.NewReader(data))

	header, err := r.Read()
	if err != nil {
		return nil, nil, &ContainerParseError{Format: FormatCSV, Err: fmt.Errorf("missing header row: %w", err)}
	}
	if !headerMatches(header) {
		return nil, nil, &ContainerParseError{Format: FormatCSV, Err: fmt.Errorf("unexpected header %v", header)}
	}

	var cands []candidate
	var errs []FormatError
	row := 0 // 1-based data row index, what a user sees past the header
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			errs = append(errs, FormatError{RecordIndex: row, Reason: err.Error(), Err: err})
			continue
		}
		q, err := questionFromRow(record)
		if err != nil {
			errs = append(errs, FormatError{RecordIndex: row, Reason: err.Error(), Err: err})
			continue
		}
		cands = append(cands, candidate{index: row, question: q})
	}
	return cands, errs, nil
}

func headerMatches(header []string) bool {
	if len(header) != len(csvHeader) {
		return false
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), csvHeader[i]) {
			return false
		}
	}
	return true
}

func questionFromRow(record []string) (model.Question, error) {
	points, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil {
		return model.Question{}, fmt.Errorf("points %q is not an integer", record[4])
	}

	q := model.Question{
		Type: model.QuestionType(record[1]),
		Content: model.QuestionContent{
			Text:         record[2],
			Instructions: record[3],
		},
		Points:     points,
		Difficulty: model.Difficulty(record[5]),
	}
	q.ID = record[0]

	if record[6] != "" {
		q.Tags = strings.Split(record[6], "|")
	}
	if record[7] != "" {
		for i, part := range strings.Split(record[7], "|") {
			opt := model.Option{ID: fmt.Sprintf("opt_%d", i+1)}
			if strings.HasPrefix(part, correctMarker) {
				opt.IsCorrect = true
				part = strings.TrimPrefix(part, correctMarker)
			}
			opt.Text = part
			q.Options = append(q.Options, opt)
		}
	}

	answer := record[8]
	switch q.Type {
	case model.TrueFalse:
		if answer != "" {
			v, err := strconv.ParseBool(answer)
			if err != nil {
				return model.Question{}, fmt.Errorf("correct_answer %q is not a boolean", answer)
			}
			q.CorrectAnswer = model.BoolAnswer(v)
		}
	case model.FillInBlank:
		if answer != "" {
			q.CorrectAnswer = model.TextListAnswer(strings.Split(answer, "|"))
		}
	default:
		if answer != "" {
			q.CorrectAnswer = model.TextAnswer(answer)
		}
	}
	return q, nil
}

// Package codec parses and serializes question/assessment batches across the
// supported interchange formats. A container-level failure aborts the whole
// operation; once the container parses, every record is processed in
// isolation and one bad record never aborts the batch.
package codec

import (
	"fmt"

	"authoring_console_backend/internal/domain"
	"authoring_console_backend/internal/model"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatQTI  Format = "qti"
)

// ParseFormat maps a caller-declared format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV, FormatQTI:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown interchange format %q", s)
}

// ContentType is the MIME type an export of this format should be served
// with.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatQTI:
		return "application/xml"
	}
	return "application/json"
}

// FormatError is a single bad record. RecordIndex is 1-based for CSV rows
// (matching what a user sees in a spreadsheet) and 0-based for JSON/QTI
// records. Err, when set, carries the typed cause.
type FormatError struct {
	RecordIndex int    `json:"recordIndex"`
	Reason      string `json:"reason"`
	Err         error  `json:"-"`
}

func (e FormatError) Error() string {
	return fmt.Sprintf("record %d: %s", e.RecordIndex, e.Reason)
}

func (e FormatError) Unwrap() error { return e.Err }

// ContainerParseError means the payload as a whole is not well-formed for its
// declared format. Fatal: no records are returned.
type ContainerParseError struct {
	Format Format
	Err    error
}

func (e *ContainerParseError) Error() string {
	return fmt.Sprintf("payload is not well-formed %s: %v", e.Format, e.Err)
}

func (e *ContainerParseError) Unwrap() error { return e.Err }

// UnsupportedFormatError is a declared capability gap between a format and a
// record kind (e.g. assessments over CSV). Container-level.
type UnsupportedFormatError struct {
	Format Format
	Kind   string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s cannot carry %s", e.Format, e.Kind)
}

// UnsupportedTypeError is a per-record capability gap between a question type
// and the format's matrix; the batch continues past it.
type UnsupportedTypeError struct {
	Type model.QuestionType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("question type %s is not representable in this format", e.Type)
}

// QuestionBatch is the outcome of parsing a question payload. Imported() is
// the number of records that survived both the parse and the validation
// stage.
type QuestionBatch struct {
	Questions []model.Question
	Errors    []FormatError
}

func (b QuestionBatch) Imported() int { return len(b.Questions) }

// AssessmentBatch is the assessment counterpart; only JSON carries
// assessments.
type AssessmentBatch struct {
	Assessments []model.Assessment
	Errors      []FormatError
}

func (b AssessmentBatch) Imported() int { return len(b.Assessments) }

// candidate is a record that survived the parse stage and still awaits
// validation, keyed by its index in the input.
type candidate struct {
	index    int
	question model.Question
}

// ParseQuestions parses then validates a question payload. The returned error
// is container-level only; per-record problems land in Errors.
func ParseQuestions(format Format, data []byte) (QuestionBatch, error) {
	cands, errs, err := parseQuestionCandidates(format, data)
	if err != nil {
		return QuestionBatch{}, err
	}
	batch := QuestionBatch{Errors: errs}
	for _, c := range cands {
		if verrs := domain.Validate(&c.question); len(verrs) > 0 {
			batch.Errors = append(batch.Errors, FormatError{RecordIndex: c.index, Reason: domain.JoinReasons(verrs)})
			continue
		}
		batch.Questions = append(batch.Questions, c.question)
	}
	sortErrors(batch.Errors)
	return batch, nil
}

// ParseAssessments parses an assessment payload. The CSV and QTI formats are
// item-centric and cannot carry assessments; that is a declared capability
// gap, reported at the container level.
func ParseAssessments(format Format, data []byte) (AssessmentBatch, error) {
	switch format {
	case FormatCSV, FormatQTI:
		return AssessmentBatch{}, &UnsupportedFormatError{Format: format, Kind: "assessments"}
	}
	return parseAssessmentsJSON(data)
}

// ExportQuestions serializes questions in input order. Output is
// deterministic: the same records always yield the same bytes. For QTI,
// unsupported types are skipped with a per-record error.
func ExportQuestions(questions []model.Question, format Format) ([]byte, []FormatError, error) {
	switch format {
	case FormatCSV:
		b, err := exportQuestionsCSV(questions)
		return b, nil, err
	case FormatQTI:
		return exportQuestionsQTI(questions)
	}
	b, err := exportQuestionsJSON(questions)
	return b, nil, err
}

// ExportAssessments serializes assessments; JSON only.
func ExportAssessments(assessments []model.Assessment, format Format) ([]byte, error) {
	if format != FormatJSON {
		return nil, &UnsupportedFormatError{Format: format, Kind: "assessments"}
	}
	return exportAssessmentsJSON(assessments)
}

func parseQuestionCandidates(format Format, data []byte) ([]candidate, []FormatError, error) {
	switch format {
	case FormatCSV:
		return parseQuestionCandidatesCSV(data)
	case FormatQTI:
		return parseQuestionCandidatesQTI(data)
	}
	return parseQuestionCandidatesJSON(data)
}

func sortErrors(errs []FormatError) {
	// insertion sort; error lists are short and usually already ordered
	for i := 1; i < len(errs); i++ {
		for j := i; j > 0 && errs[j-1].RecordIndex > errs[j].RecordIndex; j-- {
			errs[j-1], errs[j] = errs[j], errs[j-1]
		}
	}
}

package codec

import (
	"context"

	"golang.org/x/sync/errgroup"

	"authoring_console_backend/internal/domain"
	"authoring_console_backend/internal/model"
)

const defaultImportWorkers = 4

// ImportOptions tunes the bulk import pipeline.
type ImportOptions struct {
	// Workers bounds the validation pool; <=0 falls back to the default.
	Workers int
}

// PartialResult marks a bulk import cut short by the caller's deadline.
// Everything collected before cancellation is kept.
type PartialResult struct {
	Completed      int `json:"completed"`
	RemainingCount int `json:"remainingCount"`
}

// ImportResult is the outcome of a bulk question import.
type ImportResult struct {
	Questions []model.Question `json:"questions"`
	Errors    []FormatError    `json:"errors"`
	Partial   *PartialResult   `json:"partial,omitempty"`
}

func (r ImportResult) Imported() int { return len(r.Questions) }

// ImportQuestions parses the payload and validates records across a bounded
// worker pool. Parallelism is invisible to the contract: results and errors
// come back in input order. On ctx cancellation no further records are
// scheduled; whatever completed is returned, tagged with a PartialResult.
func ImportQuestions(ctx context.Context, format Format, data []byte, opts ImportOptions) (ImportResult, error) {
	cands, parseErrs, err := parseQuestionCandidates(format, data)
	if err != nil {
		return ImportResult{}, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultImportWorkers
	}

	verdicts := make([][]domain.ValidationError, len(cands))
	var g errgroup.Group
	g.SetLimit(workers)

	scheduled := 0
	for i := range cands {
		if ctx.Err() != nil {
			break
		}
		i := i
		scheduled++
		g.Go(func() error {
			verdicts[i] = domain.Validate(&cands[i].question)
			return nil
		})
	}
	_ = g.Wait() // validation workers never error; Wait only fences completion

	result := ImportResult{Errors: parseErrs}
	for i := 0; i < scheduled; i++ {
		if len(verdicts[i]) > 0 {
			result.Errors = append(result.Errors, FormatError{
				RecordIndex: cands[i].index,
				Reason:      domain.JoinReasons(verdicts[i]),
			})
			continue
		}
		result.Questions = append(result.Questions, cands[i].question)
	}
	sortErrors(result.Errors)

	if remaining := len(cands) - scheduled; remaining > 0 {
		result.Partial = &PartialResult{Completed: scheduled, RemainingCount: remaining}
	}
	return result, nil
}

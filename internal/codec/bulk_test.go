package codec

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
)

func bulkPayload(t *testing.T, n int, badEvery int) []byte {
	t.Helper()
	records := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		rec := map[string]any{
			"id":      fmt.Sprintf("q%03d", i),
			"type":    "essay",
			"content": map[string]any{"text": fmt.Sprintf("Prompt %d", i)},
			"points":  5,
		}
		if badEvery > 0 && i%badEvery == 0 {
			rec["points"] = 0 // fails validation, not parsing
		}
		records = append(records, rec)
	}
	data, err := json.Marshal(records)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestImportQuestionsOrderPreserved(t *testing.T) {
	data := bulkPayload(t, 40, 0)

	result, err := ImportQuestions(context.Background(), FormatJSON, data, ImportOptions{Workers: 8})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Imported() != 40 {
		t.Fatalf("imported = %d, want 40", result.Imported())
	}
	if result.Partial != nil {
		t.Fatalf("unexpected partial result: %+v", result.Partial)
	}
	for i, q := range result.Questions {
		if want := fmt.Sprintf("q%03d", i); q.ID != want {
			t.Fatalf("position %d holds %s, want %s", i, q.ID, want)
		}
	}
}

func TestImportQuestionsCollectsFailuresInOrder(t *testing.T) {
	data := bulkPayload(t, 20, 5) // indices 0, 5, 10, 15 invalid

	result, err := ImportQuestions(context.Background(), FormatJSON, data, ImportOptions{Workers: 4})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Imported() != 16 {
		t.Fatalf("imported = %d, want 16", result.Imported())
	}
	if len(result.Errors) != 4 {
		t.Fatalf("errors = %d, want 4", len(result.Errors))
	}
	for i, want := range []int{0, 5, 10, 15} {
		if result.Errors[i].RecordIndex != want {
			t.Fatalf("error %d at index %d, want %d", i, result.Errors[i].RecordIndex, want)
		}
	}
}

func TestImportQuestionsCancelledContext(t *testing.T) {
	data := bulkPayload(t, 30, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := ImportQuestions(ctx, FormatJSON, data, ImportOptions{Workers: 2})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Partial == nil {
		t.Fatalf("expected a partial result after cancellation")
	}
	if result.Partial.Completed+result.Partial.RemainingCount != 30 {
		t.Fatalf("completed %d + remaining %d != 30", result.Partial.Completed, result.Partial.RemainingCount)
	}
	if result.Imported() != result.Partial.Completed {
		t.Fatalf("imported = %d, completed = %d", result.Imported(), result.Partial.Completed)
	}
}

func TestImportQuestionsDefaultWorkerPool(t *testing.T) {
	data := bulkPayload(t, 3, 0)

	result, err := ImportQuestions(context.Background(), FormatJSON, data, ImportOptions{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Imported() != 3 {
		t.Fatalf("imported = %d, want 3", result.Imported())
	}
}

func TestImportQuestionsContainerError(t *testing.T) {
	_, err := ImportQuestions(context.Background(), FormatJSON, []byte("not json"), ImportOptions{})
	if err == nil {
		t.Fatalf("expected container-level error")
	}
}

package domain

import (
	"errors"
	"fmt"
	"testing"

	"authoring_console_backend/internal/model"
)

func bankOf(n int) []model.Question {
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{
			Type:       model.MultipleChoice,
			Content:    model.QuestionContent{Text: fmt.Sprintf("Question %02d", i+1)},
			Difficulty: model.Beginner,
			Points:     1,
		}
		qs[i].ID = fmt.Sprintf("q%02d", i+1)
	}
	return qs
}

func TestFilterQuestionsPagination(t *testing.T) {
	qs := bankOf(25)

	page2, err := FilterQuestions(qs, QuestionFilter{}, 2, 10)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page2.Items) != 10 || page2.Total != 25 {
		t.Fatalf("page 2: items=%d total=%d, want 10/25", len(page2.Items), page2.Total)
	}
	if page2.Items[0].ID != "q11" {
		t.Errorf("page 2 starts at %s, want q11", page2.Items[0].ID)
	}

	page3, err := FilterQuestions(qs, QuestionFilter{}, 3, 10)
	if err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if len(page3.Items) != 5 || page3.Total != 25 {
		t.Fatalf("page 3: items=%d total=%d, want 5/25", len(page3.Items), page3.Total)
	}

	past, err := FilterQuestions(qs, QuestionFilter{}, 9, 10)
	if err != nil {
		t.Fatalf("past-end page: %v", err)
	}
	if len(past.Items) != 0 || past.Total != 25 {
		t.Fatalf("past-end page: items=%d total=%d, want 0/25", len(past.Items), past.Total)
	}
}

func TestFilterQuestionsInvalidLimit(t *testing.T) {
	for _, limit := range []int{0, -5} {
		_, err := FilterQuestions(bankOf(3), QuestionFilter{}, 1, limit)
		if !errors.Is(err, ErrInvalidPageSize) {
			t.Fatalf("limit %d: expected ErrInvalidPageSize, got %v", limit, err)
		}
	}
}

func TestFilterQuestionsPageBelowOne(t *testing.T) {
	qs := bankOf(5)
	got, err := FilterQuestions(qs, QuestionFilter{}, 0, 3)
	if err != nil {
		t.Fatalf("page 0: %v", err)
	}
	if len(got.Items) != 3 || got.Items[0].ID != "q01" {
		t.Fatalf("page below 1 should clamp to the first page, got %+v", got.Items)
	}
}

func TestFilterConjunction(t *testing.T) {
	qs := bankOf(6)
	qs[0].Type = model.Essay
	qs[0].Tags = []string{"go", "exam"}
	qs[0].Content.Text = "Explain goroutines"
	qs[1].Tags = []string{"go"}
	qs[2].Difficulty = model.Advanced

	tests := []struct {
		name   string
		filter QuestionFilter
		want   int
	}{
		{"no clauses matches all", QuestionFilter{}, 6},
		{"type", QuestionFilter{Type: model.Essay}, 1},
		{"difficulty", QuestionFilter{Difficulty: model.Advanced}, 1},
		{"all tags must hold", QuestionFilter{Tags: []string{"go", "exam"}}, 1},
		{"single tag", QuestionFilter{Tags: []string{"go"}}, 2},
		{"search is case-insensitive", QuestionFilter{Search: "GOROUTINE"}, 1},
		{"conjunction", QuestionFilter{Type: model.Essay, Tags: []string{"go"}, Search: "explain"}, 1},
		{"conjunction with no match", QuestionFilter{Type: model.Essay, Difficulty: model.Advanced}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterQuestions(qs, tt.filter, 1, 100)
			if err != nil {
				t.Fatalf("filter: %v", err)
			}
			if got.Total != tt.want {
				t.Fatalf("total = %d, want %d", got.Total, tt.want)
			}
			if len(got.Items) != tt.want {
				t.Fatalf("items = %d, want %d", len(got.Items), tt.want)
			}
		})
	}
}

package domain

import (
	"errors"
	"strings"

	"authoring_console_backend/internal/model"
)

// ErrInvalidPageSize rejects a non-positive limit; a missing limit is a
// caller error, never "no limit".
var ErrInvalidPageSize = errors.New("page size must be a positive integer")

// QuestionFilter is a conjunction: every specified clause must hold.
type QuestionFilter struct {
	Type       model.QuestionType `form:"type" json:"type,omitempty"`
	Difficulty model.Difficulty   `form:"difficulty" json:"difficulty,omitempty"`
	Tags       []string           `form:"tags" json:"tags,omitempty"`
	Search     string             `form:"search" json:"search,omitempty"`
}

// QuestionPage is one slice of the filtered set. Total counts the filtered
// set, not the input.
type QuestionPage struct {
	Items []model.Question `json:"items"`
	Total int              `json:"total"`
}

// Matches applies the filter conjunction to one question.
func (f QuestionFilter) Matches(q *model.Question) bool {
	if f.Type != "" && q.Type != f.Type {
		return false
	}
	if f.Difficulty != "" && q.Difficulty != f.Difficulty {
		return false
	}
	for _, tag := range f.Tags {
		if !q.HasTag(tag) {
			return false
		}
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(q.Content.Text), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// FilterQuestions filters then paginates. Pages are 1-indexed; a page past
// the end yields an empty slice with the correct total.
func FilterQuestions(items []model.Question, f QuestionFilter, page, limit int) (QuestionPage, error) {
	if limit <= 0 {
		return QuestionPage{}, ErrInvalidPageSize
	}
	if page < 1 {
		page = 1
	}

	filtered := make([]model.Question, 0, len(items))
	for i := range items {
		if f.Matches(&items[i]) {
			filtered = append(filtered, items[i])
		}
	}

	start := (page - 1) * limit
	if start >= len(filtered) {
		return QuestionPage{Items: []model.Question{}, Total: len(filtered)}, nil
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return QuestionPage{Items: filtered[start:end], Total: len(filtered)}, nil
}

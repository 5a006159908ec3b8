package domain

import (
	"fmt"
	"strings"

	"authoring_console_backend/internal/model"
)

// RubricTotalPoints derives the achievable total: the best level of each
// criterion, summed. It is recomputed from scratch on every call so the total
// can never drift from the criteria.
func RubricTotalPoints(r *model.Rubric) int {
	total := 0
	for _, c := range r.Criteria {
		best := 0
		for _, l := range c.Levels {
			if l.Points > best {
				best = l.Points
			}
		}
		total += best
	}
	return total
}

// ValidateRubric checks structural completeness: non-empty name, at least one
// criterion, every criterion with at least one level, no negative level
// points. All violations are collected.
func ValidateRubric(r *model.Rubric) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Code: CodeRequired, Reason: "rubric name is required"})
	}
	if len(r.Criteria) == 0 {
		errs = append(errs, ValidationError{Field: "criteria", Code: CodeRequired, Reason: "rubric needs at least one criterion"})
	}
	for i, c := range r.Criteria {
		field := fmt.Sprintf("criteria[%d]", i)
		if len(c.Levels) == 0 {
			errs = append(errs, ValidationError{Field: field + ".levels", Code: CodeRequired, Reason: "criterion needs at least one level"})
		}
		for j, l := range c.Levels {
			if l.Points < 0 {
				errs = append(errs, ValidationError{
					Field:  fmt.Sprintf("%s.levels[%d].points", field, j),
					Code:   CodeOutOfRange,
					Reason: "level points must not be negative",
				})
			}
		}
	}
	return errs
}

package domain

import (
	"errors"
	"testing"

	"authoring_console_backend/internal/model"
)

func resolverFor(questions map[string]*model.Question) QuestionResolver {
	return func(id string) (*model.Question, error) {
		q, ok := questions[id]
		if !ok {
			return nil, errors.New("not found")
		}
		return q, nil
	}
}

func draftWith(refs ...string) model.Assessment {
	a := model.Assessment{Title: "Quiz", Status: model.StatusDraft}
	for i, id := range refs {
		a.Questions = append(a.Questions, model.QuestionRef{QuestionID: id, Position: i + 1})
	}
	return a
}

func TestPublishEmptyAssessment(t *testing.T) {
	a := draftWith()
	_, err := Publish(a, resolverFor(nil))

	var empty *EmptyAssessmentError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyAssessmentError, got %v", err)
	}
}

func TestPublishSucceedsAfterAddingQuestion(t *testing.T) {
	q := validMCQ()
	q.ID = "q1"
	a := draftWith("q1")

	published, err := Publish(a, resolverFor(map[string]*model.Question{"q1": &q}))
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if published.Status != model.StatusPublished {
		t.Errorf("status = %s, want published", published.Status)
	}
	if published.PublishedAt == nil {
		t.Errorf("PublishedAt not set")
	}
	if a.Status != model.StatusDraft {
		t.Errorf("input mutated: status = %s", a.Status)
	}
}

func TestPublishInvalidAndMissingQuestions(t *testing.T) {
	bad := validMCQ()
	bad.ID = "q-bad"
	for i := range bad.Options {
		bad.Options[i].IsCorrect = false
	}

	a := draftWith("q-bad", "q-ghost")
	_, err := Publish(a, resolverFor(map[string]*model.Question{"q-bad": &bad}))

	var invalid *InvalidQuestionsError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidQuestionsError, got %v", err)
	}
	if len(invalid.Failures) != 2 {
		t.Fatalf("failures = %d, want 2", len(invalid.Failures))
	}
	if invalid.Failures[0].QuestionID != "q-bad" || invalid.Failures[1].QuestionID != "q-ghost" {
		t.Errorf("failures out of assessment order: %v", invalid.Failures)
	}
	if invalid.Failures[1].Errors[0].Code != CodeNotFound {
		t.Errorf("unresolvable reference should carry %s, got %s", CodeNotFound, invalid.Failures[1].Errors[0].Code)
	}
}

func TestPublishSettingsGuards(t *testing.T) {
	q := validMCQ()
	q.ID = "q1"
	resolve := resolverFor(map[string]*model.Question{"q1": &q})

	bad := 150
	tests := []struct {
		name     string
		settings model.AssessmentSettings
		wantErr  bool
	}{
		{"passing score above 100", model.AssessmentSettings{PassingScore: &bad}, true},
		{"retakes without attempts", model.AssessmentSettings{AllowRetakes: true}, true},
		{"retakes with attempts", model.AssessmentSettings{AllowRetakes: true, MaxAttempts: 3}, false},
		{"defaults", model.AssessmentSettings{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := draftWith("q1")
			a.Settings = tt.settings
			_, err := Publish(a, resolve)

			var settingsErr *InvalidSettingsError
			if tt.wantErr && !errors.As(err, &settingsErr) {
				t.Fatalf("expected InvalidSettingsError, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestArchiveTerminal(t *testing.T) {
	a := draftWith("q1")
	archived, err := Archive(a)
	if err != nil {
		t.Fatalf("archive draft: %v", err)
	}
	if archived.Status != model.StatusArchived {
		t.Fatalf("status = %s, want archived", archived.Status)
	}

	_, err = Archive(archived)
	var terminal *AlreadyTerminalError
	if !errors.As(err, &terminal) {
		t.Fatalf("expected AlreadyTerminalError, got %v", err)
	}

	_, err = Publish(archived, resolverFor(nil))
	var illegal *IllegalTransitionError
	if !errors.As(err, &illegal) {
		t.Fatalf("expected IllegalTransitionError, got %v", err)
	}
}

func TestTransitionToDraftRejected(t *testing.T) {
	a := draftWith("q1")
	a.Status = model.StatusPublished

	_, err := Transition(a, model.StatusDraft, resolverFor(nil))
	var illegal *IllegalTransitionError
	if !errors.As(err, &illegal) {
		t.Fatalf("expected IllegalTransitionError, got %v", err)
	}
}

func TestCanDeleteQuestion(t *testing.T) {
	active := draftWith("q1")
	archived := draftWith("q1")
	archived.Status = model.StatusArchived

	if CanDeleteQuestion("q1", []model.Assessment{active}) {
		t.Errorf("q1 referenced by a draft must not be deletable")
	}
	if !CanDeleteQuestion("q1", []model.Assessment{archived}) {
		t.Errorf("archived references must not block deletion")
	}
	if !CanDeleteQuestion("q2", []model.Assessment{active, archived}) {
		t.Errorf("unreferenced question must be deletable")
	}
}

func TestDuplicateAssessment(t *testing.T) {
	score := 60
	src := draftWith("q1", "q2")
	src.ID = "a1"
	src.Status = model.StatusPublished
	src.Settings.PassingScore = &score

	dup := DuplicateAssessment(src, "a2")
	if dup.ID != "a2" || dup.Status != model.StatusDraft || dup.PublishedAt != nil {
		t.Fatalf("duplicate not reset: %+v", dup)
	}
	if len(dup.Questions) != 2 {
		t.Fatalf("question refs not copied")
	}

	*dup.Settings.PassingScore = 90
	if *src.Settings.PassingScore != 60 {
		t.Errorf("settings not deep-copied: source saw %d", *src.Settings.PassingScore)
	}
}

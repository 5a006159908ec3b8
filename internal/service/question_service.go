package service

import (
	"errors"

	"authoring_console_backend/internal/domain"
	"authoring_console_backend/internal/model"
	"authoring_console_backend/internal/repository"
	"authoring_console_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	Repo        *repository.QuestionRepository
	Assessments *repository.AssessmentRepository
}

func NewQuestionService(repo *repository.QuestionRepository, assessments *repository.AssessmentRepository) *QuestionService {
	return &QuestionService{Repo: repo, Assessments: assessments}
}

type QuestionRequest struct {
	BankID        string                `json:"bankId"`
	Type          model.QuestionType    `json:"type" binding:"required"`
	Content       model.QuestionContent `json:"content" binding:"required"`
	Options       []model.Option        `json:"options"`
	CorrectAnswer *model.Answer         `json:"correctAnswer"`
	Points        int                   `json:"points"`
	Difficulty    model.Difficulty      `json:"difficulty"`
	Tags          []string              `json:"tags"`
	Metadata      map[string]any        `json:"metadata"`
}

func (req QuestionRequest) toQuestion() model.Question {
	return model.Question{
		BankID:        req.BankID,
		Type:          req.Type,
		Content:       req.Content,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Points:        req.Points,
		Difficulty:    req.Difficulty,
		Tags:          req.Tags,
		Metadata:      req.Metadata,
	}
}

// Create validates at the save checkpoint; a structurally invalid question is
// never persisted.
func (s *QuestionService) Create(req QuestionRequest) (*model.Question, []domain.ValidationError, error) {
	q := req.toQuestion()
	if verrs := domain.Validate(&q); len(verrs) > 0 {
		return nil, verrs, nil
	}
	if err := s.Repo.Create(&q); err != nil {
		return nil, nil, err
	}
	return &q, nil, nil
}

// QuestionUpdate replaces whole subtrees. A nil field keeps the stored
// subtree; there is no field-by-field patching, so no half-updated state is
// ever validated or stored.
type QuestionUpdate struct {
	Content       *model.QuestionContent `json:"content"`
	Options       *[]model.Option        `json:"options"`
	Metadata      *map[string]any        `json:"metadata"`
	CorrectAnswer *model.Answer          `json:"correctAnswer"`
	Points        *int                   `json:"points"`
	Difficulty    *model.Difficulty      `json:"difficulty"`
	Tags          *[]string              `json:"tags"`
}

func (s *QuestionService) Update(id string, upd QuestionUpdate) (*model.Question, []domain.ValidationError, error) {
	stored, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrQuestionNotFound
		}
		return nil, nil, err
	}

	next := *stored
	if upd.Content != nil {
		next = domain.WithContent(next, *upd.Content)
	}
	if upd.Options != nil {
		next = domain.WithOptions(next, *upd.Options)
	}
	if upd.Metadata != nil {
		next = domain.WithMetadata(next, *upd.Metadata)
	}
	if upd.CorrectAnswer != nil {
		next.CorrectAnswer = upd.CorrectAnswer
	}
	if upd.Points != nil {
		next.Points = *upd.Points
	}
	if upd.Difficulty != nil {
		next.Difficulty = *upd.Difficulty
	}
	if upd.Tags != nil {
		next.Tags = append([]string(nil), (*upd.Tags)...)
	}

	if verrs := domain.Validate(&next); len(verrs) > 0 {
		return nil, verrs, nil
	}
	if err := s.Repo.Update(&next); err != nil {
		return nil, nil, err
	}
	return &next, nil, nil
}

func (s *QuestionService) Get(id string) (*model.Question, error) {
	q, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	return q, err
}

// List fetches a bank's questions and applies the domain filter/pagination
// contract, so total always counts the filtered set.
func (s *QuestionService) List(bankID string, filter domain.QuestionFilter, page, limit int) (domain.QuestionPage, error) {
	qs, err := s.Repo.ListByBank(bankID)
	if err != nil {
		return domain.QuestionPage{}, err
	}
	return domain.FilterQuestions(qs, filter, page, limit)
}

// CanDelete exposes the referential predicate: deletable only when no
// non-archived assessment references the question.
func (s *QuestionService) CanDelete(id string) (bool, error) {
	active, err := s.Assessments.ListActive()
	if err != nil {
		return false, err
	}
	return domain.CanDeleteQuestion(id, active), nil
}

func (s *QuestionService) Delete(id string) error {
	ok, err := s.CanDelete(id)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrQuestionReferenced
	}
	return s.Repo.Delete(id)
}

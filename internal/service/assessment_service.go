package service

import (
	"errors"

	"authoring_console_backend/internal/domain"
	"authoring_console_backend/internal/model"
	"authoring_console_backend/internal/repository"
	"authoring_console_backend/internal/util"

	"gorm.io/gorm"
)

type AssessmentService struct {
	Repo      *repository.AssessmentRepository
	Questions *repository.QuestionRepository
	Rubrics   *repository.RubricRepository
}

func NewAssessmentService(repo *repository.AssessmentRepository, questions *repository.QuestionRepository, rubrics *repository.RubricRepository) *AssessmentService {
	return &AssessmentService{Repo: repo, Questions: questions, Rubrics: rubrics}
}

type AssessmentRequest struct {
	Title        string                   `json:"title" binding:"required"`
	Description  string                   `json:"description"`
	Instructions string                   `json:"instructions"`
	Questions    []model.QuestionRef      `json:"questions"`
	Settings     model.AssessmentSettings `json:"settings"`
	RubricID     string                   `json:"rubricId"`
	Tags         []string                 `json:"tags"`
}

func (s *AssessmentService) Create(req AssessmentRequest, creatorID string) (*model.Assessment, error) {
	if req.RubricID != "" {
		if _, err := s.Rubrics.FindByID(req.RubricID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrRubricNotFound
			}
			return nil, err
		}
	}
	a := &model.Assessment{
		Title:        req.Title,
		Description:  req.Description,
		Instructions: req.Instructions,
		Questions:    req.Questions,
		Settings:     req.Settings,
		Status:       model.StatusDraft,
		RubricID:     req.RubricID,
		Tags:         req.Tags,
		CreatorID:    creatorID,
	}
	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) Get(id string) (*model.Assessment, error) {
	a, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	return a, err
}

func (s *AssessmentService) List(status model.AssessmentStatus, page, limit int) ([]model.Assessment, int64, error) {
	return s.Repo.List(status, page, limit)
}

type AssessmentUpdate struct {
	Title        *string                   `json:"title"`
	Description  *string                   `json:"description"`
	Instructions *string                   `json:"instructions"`
	Questions    *[]model.QuestionRef      `json:"questions"`
	Settings     *model.AssessmentSettings `json:"settings"`
	RubricID     *string                   `json:"rubricId"`
	Tags         *[]string                 `json:"tags"`
}

// Update edits a draft. Published and archived assessments are immutable
// through this path; lifecycle moves go through Publish/Archive.
func (s *AssessmentService) Update(id string, upd AssessmentUpdate) (*model.Assessment, error) {
	a, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if a.Status != model.StatusDraft {
		return nil, &domain.IllegalTransitionError{From: a.Status, To: a.Status}
	}

	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.Instructions != nil {
		a.Instructions = *upd.Instructions
	}
	if upd.Questions != nil {
		a.Questions = append([]model.QuestionRef(nil), (*upd.Questions)...)
	}
	if upd.Settings != nil {
		a.Settings = *upd.Settings
	}
	if upd.RubricID != nil {
		if *upd.RubricID != "" {
			if _, err := s.Rubrics.FindByID(*upd.RubricID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, util.ErrRubricNotFound
				}
				return nil, err
			}
		}
		a.RubricID = *upd.RubricID
	}
	if upd.Tags != nil {
		a.Tags = append([]string(nil), (*upd.Tags)...)
	}

	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Duplicate builds a fresh draft: deep-copied settings, reference-copied
// question list.
func (s *AssessmentService) Duplicate(id string) (*model.Assessment, error) {
	src, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	dup := domain.DuplicateAssessment(*src, model.GenerateUUID())
	if err := s.Repo.Create(&dup); err != nil {
		return nil, err
	}
	return &dup, nil
}

// Publish runs the lifecycle machine with a repo-backed resolver. Lifecycle
// errors come back as-is so the controller can itemize them.
func (s *AssessmentService) Publish(id string) (*model.Assessment, error) {
	a, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	published, err := domain.Publish(*a, func(qid string) (*model.Question, error) {
		return s.Questions.FindByID(qid)
	})
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(&published); err != nil {
		return nil, err
	}
	return &published, nil
}

func (s *AssessmentService) Archive(id string) (*model.Assessment, error) {
	a, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	archived, err := domain.Archive(*a)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(&archived); err != nil {
		return nil, err
	}
	return &archived, nil
}

package service

import (
	"errors"

	"authoring_console_backend/internal/domain"
	"authoring_console_backend/internal/model"
	"authoring_console_backend/internal/repository"
	"authoring_console_backend/internal/util"

	"gorm.io/gorm"
)

type RubricService struct {
	Repo *repository.RubricRepository
}

func NewRubricService(repo *repository.RubricRepository) *RubricService {
	return &RubricService{Repo: repo}
}

// RubricView is a rubric with its derived point total. Totals are never
// stored; they are recomputed on every read so edits cannot leave a stale
// value behind.
type RubricView struct {
	model.Rubric
	TotalPoints int `json:"totalPoints"`
}

func view(r model.Rubric) RubricView {
	return RubricView{Rubric: r, TotalPoints: domain.RubricTotalPoints(&r)}
}

type RubricRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Criteria    []model.Criterion `json:"criteria" binding:"required"`
}

func (s *RubricService) Create(req RubricRequest, creatorID string) (*RubricView, []domain.ValidationError, error) {
	r := model.Rubric{
		Name:        req.Name,
		Description: req.Description,
		Criteria:    req.Criteria,
		CreatorID:   creatorID,
	}
	if verrs := domain.ValidateRubric(&r); len(verrs) > 0 {
		return nil, verrs, nil
	}
	if err := s.Repo.Create(&r); err != nil {
		return nil, nil, err
	}
	v := view(r)
	return &v, nil, nil
}

func (s *RubricService) Get(id string) (*RubricView, error) {
	r, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRubricNotFound
		}
		return nil, err
	}
	v := view(*r)
	return &v, nil
}

func (s *RubricService) List(page, limit int) ([]RubricView, int64, error) {
	rubrics, total, err := s.Repo.List(page, limit)
	if err != nil {
		return nil, 0, err
	}
	views := make([]RubricView, 0, len(rubrics))
	for _, r := range rubrics {
		views = append(views, view(r))
	}
	return views, total, nil
}

func (s *RubricService) Update(id string, req RubricRequest) (*RubricView, []domain.ValidationError, error) {
	r, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrRubricNotFound
		}
		return nil, nil, err
	}
	r.Name = req.Name
	r.Description = req.Description
	r.Criteria = req.Criteria
	if verrs := domain.ValidateRubric(r); len(verrs) > 0 {
		return nil, verrs, nil
	}
	if err := s.Repo.Update(r); err != nil {
		return nil, nil, err
	}
	v := view(*r)
	return &v, nil, nil
}

func (s *RubricService) Delete(id string) error {
	if _, err := s.Repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrRubricNotFound
		}
		return err
	}
	return s.Repo.Delete(id)
}

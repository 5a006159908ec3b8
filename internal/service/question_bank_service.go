package service

import (
	"errors"

	"authoring_console_backend/internal/model"
	"authoring_console_backend/internal/repository"
	"authoring_console_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionBankService struct {
	Repo *repository.QuestionBankRepository
}

func NewQuestionBankService(repo *repository.QuestionBankRepository) *QuestionBankService {
	return &QuestionBankService{Repo: repo}
}

type QuestionBankRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *QuestionBankService) Create(req QuestionBankRequest, creatorID string) (*model.QuestionBank, error) {
	b := &model.QuestionBank{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   creatorID,
	}
	if err := s.Repo.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *QuestionBankService) Get(id string) (*model.QuestionBank, error) {
	b, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrBankNotFound
	}
	return b, err
}

func (s *QuestionBankService) List(page, limit int) ([]model.QuestionBank, int64, error) {
	return s.Repo.List(page, limit)
}

func (s *QuestionBankService) Update(id string, req QuestionBankRequest) (*model.QuestionBank, error) {
	b, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	b.Name = req.Name
	b.Description = req.Description
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *QuestionBankService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

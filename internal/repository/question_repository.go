package repository

import (
	"authoring_console_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListByBank returns every question of a bank (or all banks when bankID is
// empty) in creation order. Filtering and pagination happen in the domain
// layer so the list contract has a single owner.
func (r *QuestionRepository) ListByBank(bankID string) ([]model.Question, error) {
	var qs []model.Question
	query := r.DB.Model(&model.Question{})
	if bankID != "" {
		query = query.Where("bank_id = ?", bankID)
	}
	err := query.Order("created_at asc, id asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) FindByIDs(ids []string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id string) error {
	return r.DB.Delete(&model.Question{}, "id = ?", id).Error
}

func (r *QuestionRepository) CreateBatch(qs []model.Question) error {
	if len(qs) == 0 {
		return nil
	}
	return r.DB.Create(&qs).Error
}

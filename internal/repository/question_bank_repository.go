package repository

import (
	"authoring_console_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionBankRepository struct {
	DB *gorm.DB
}

func NewQuestionBankRepository(db *gorm.DB) *QuestionBankRepository {
	return &QuestionBankRepository{DB: db}
}

func (r *QuestionBankRepository) Create(b *model.QuestionBank) error {
	return r.DB.Create(b).Error
}

func (r *QuestionBankRepository) FindByID(id string) (*model.QuestionBank, error) {
	var b model.QuestionBank
	err := r.DB.First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *QuestionBankRepository) List(page, limit int) ([]model.QuestionBank, int64, error) {
	var banks []model.QuestionBank
	var total int64
	query := r.DB.Model(&model.QuestionBank{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&banks).Error
	return banks, total, err
}

func (r *QuestionBankRepository) Update(b *model.QuestionBank) error {
	return r.DB.Save(b).Error
}

func (r *QuestionBankRepository) Delete(id string) error {
	return r.DB.Delete(&model.QuestionBank{}, "id = ?", id).Error
}

package repository

import (
	"authoring_console_backend/internal/model"

	"gorm.io/gorm"
)

type RubricRepository struct {
	DB *gorm.DB
}

func NewRubricRepository(db *gorm.DB) *RubricRepository {
	return &RubricRepository{DB: db}
}

func (r *RubricRepository) Create(rb *model.Rubric) error {
	return r.DB.Create(rb).Error
}

func (r *RubricRepository) FindByID(id string) (*model.Rubric, error) {
	var rb model.Rubric
	err := r.DB.First(&rb, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rb, nil
}

func (r *RubricRepository) List(page, limit int) ([]model.Rubric, int64, error) {
	var rbs []model.Rubric
	var total int64
	query := r.DB.Model(&model.Rubric{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&rbs).Error
	return rbs, total, err
}

func (r *RubricRepository) Update(rb *model.Rubric) error {
	return r.DB.Save(rb).Error
}

func (r *RubricRepository) Delete(id string) error {
	return r.DB.Delete(&model.Rubric{}, "id = ?", id).Error
}

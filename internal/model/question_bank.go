package model

// swagger:model QuestionBank
type QuestionBank struct {
	UUIDBase
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	CreatorID   string `gorm:"index;type:varchar(36)" json:"creatorId,omitempty"`
}

func (QuestionBank) TableName() string {
	return "question_banks"
}

package model

// Level is one achievement tier of a criterion.
type Level struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Points      int    `json:"points"`
}

// Criterion is one graded dimension of a rubric. A rubric grades "best level
// reached", so the criterion's contribution to the total is its highest level.
type Criterion struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Levels      []Level `json:"levels"`
}

// swagger:model Rubric
// Rubric carries no stored total; the achievable total is derived from the
// criteria on every read.
type Rubric struct {
	UUIDBase
	Name        string      `gorm:"size:255;not null" json:"name"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	Criteria    []Criterion `gorm:"type:json;serializer:json" json:"criteria"`
	CreatorID   string      `gorm:"index;type:varchar(36)" json:"creatorId,omitempty"`
}

func (Rubric) TableName() string {
	return "rubrics"
}

package model

import "time"

type AssessmentStatus string

const (
	StatusDraft     AssessmentStatus = "draft"
	StatusPublished AssessmentStatus = "published"
	StatusArchived  AssessmentStatus = "archived"
)

// QuestionRef points at a bank question; assessments reference questions,
// they never copy them.
type QuestionRef struct {
	QuestionID string `json:"questionId"`
	Position   int    `json:"position"`
}

type AssessmentSettings struct {
	TimeLimitMinutes   int        `json:"timeLimitMinutes,omitempty"`
	AllowRetakes       bool       `json:"allowRetakes"`
	MaxAttempts        int        `json:"maxAttempts,omitempty"`
	ShuffleQuestions   bool       `json:"shuffleQuestions"`
	ShuffleOptions     bool       `json:"shuffleOptions"`
	ShowResults        bool       `json:"showResults"`
	ShowCorrectAnswers bool       `json:"showCorrectAnswers"`
	AvailableFrom      *time.Time `json:"availableFrom,omitempty"`
	AvailableUntil     *time.Time `json:"availableUntil,omitempty"`
	PassingScore       *int       `json:"passingScore,omitempty"`
	Adaptive           bool       `json:"adaptive"`
}

// swagger:model Assessment
type Assessment struct {
	UUIDBase
	Title        string             `gorm:"size:255;not null" json:"title"`
	Description  string             `gorm:"type:text" json:"description,omitempty"`
	Instructions string             `gorm:"type:text" json:"instructions,omitempty"`
	Questions    []QuestionRef      `gorm:"type:json;serializer:json" json:"questions"`
	Settings     AssessmentSettings `gorm:"type:json;serializer:json" json:"settings"`
	Status       AssessmentStatus   `gorm:"size:20;default:'draft';index" json:"status"`
	RubricID     string             `gorm:"index;type:varchar(36)" json:"rubricId,omitempty"`
	Tags         []string           `gorm:"type:json;serializer:json" json:"tags,omitempty"`
	CreatorID    string             `gorm:"index;type:varchar(36)" json:"creatorId,omitempty"`
	PublishedAt  *time.Time         `json:"publishedAt,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// References reports whether the assessment's question list contains the id.
func (a *Assessment) References(questionID string) bool {
	for _, ref := range a.Questions {
		if ref.QuestionID == questionID {
			return true
		}
	}
	return false
}

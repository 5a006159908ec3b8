package model

import (
	"encoding/json"
	"fmt"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	Essay          QuestionType = "essay"
	FillInBlank    QuestionType = "fill_in_blank"
	CodeSubmission QuestionType = "code_submission"
	FileUpload     QuestionType = "file_upload"
	Matching       QuestionType = "matching"
	Ordering       QuestionType = "ordering"
)

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
	Expert       Difficulty = "expert"
)

// Rank gives the ordinal position of a difficulty, 0 for unknown values.
func (d Difficulty) Rank() int {
	switch d {
	case Beginner:
		return 1
	case Intermediate:
		return 2
	case Advanced:
		return 3
	case Expert:
		return 4
	}
	return 0
}

// Option is one entry of a choice-like question. MatchID pairs options of a
// matching question; Position is the target slot of an ordering question.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect,omitempty"`
	MatchID   string `json:"matchId,omitempty"`
	Position  int    `json:"position,omitempty"`
}

type QuestionContent struct {
	Text         string   `json:"text"`
	Instructions string   `json:"instructions,omitempty"`
	Hints        []string `json:"hints,omitempty"`
	MediaRefs    []string `json:"mediaRefs,omitempty"`
}

type AnswerKind int

const (
	AnswerNone AnswerKind = iota
	AnswerBool
	AnswerText
	AnswerTextList
)

// Answer is the type-dependent correct answer. On the wire it is a bare
// boolean, string or string array, so marshalling is custom.
type Answer struct {
	Kind  AnswerKind
	Bool  bool
	Text  string
	Texts []string
}

func BoolAnswer(v bool) *Answer { return &Answer{Kind: AnswerBool, Bool: v} }
func TextAnswer(v string) *Answer { return &Answer{Kind: AnswerText, Text: v} }
func TextListAnswer(vs []string) *Answer { return &Answer{Kind: AnswerTextList, Texts: vs} }

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerBool:
		return json.Marshal(a.Bool)
	case AnswerText:
		return json.Marshal(a.Text)
	case AnswerTextList:
		return json.Marshal(a.Texts)
	}
	return []byte("null"), nil
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	// null slips through the []string probe below, so it goes first
	if string(data) == "null" {
		*a = Answer{}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*a = Answer{Kind: AnswerBool, Bool: b}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Answer{Kind: AnswerText, Text: s}
		return nil
	}
	var ss []string
	if err := json.Unmarshal(data, &ss); err == nil {
		*a = Answer{Kind: AnswerTextList, Texts: ss}
		return nil
	}
	return fmt.Errorf("correctAnswer must be a boolean, string or string array")
}

// swagger:model Question
type Question struct {
	UUIDBase
	BankID        string          `gorm:"index;type:varchar(36)" json:"bankId,omitempty"`
	Type          QuestionType    `gorm:"size:50;not null;index" json:"type"`
	Content       QuestionContent `gorm:"type:json;serializer:json" json:"content"`
	Options       []Option        `gorm:"type:json;serializer:json" json:"options,omitempty"`
	CorrectAnswer *Answer         `gorm:"type:json;serializer:json" json:"correctAnswer,omitempty"`
	Points        int             `gorm:"default:0" json:"points"`
	Difficulty    Difficulty      `gorm:"size:20;index" json:"difficulty,omitempty"`
	Tags          []string        `gorm:"type:json;serializer:json" json:"tags,omitempty"`
	Metadata      map[string]any  `gorm:"type:json;serializer:json" json:"metadata,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// HasTag reports whether the question carries the given tag.
func (q *Question) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

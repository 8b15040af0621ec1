package models

import (
	"fmt"
	"time"
)

// QuestionType is a closed enumeration; scoring dispatches on it.
type QuestionType string

const (
	SingleChoice   QuestionType = "SINGLE_CHOICE"
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
	TrueFalse      QuestionType = "TRUE_FALSE"
)

// ParseQuestionType maps the textual type field used on the wire (and in LLM
// output) to the enumeration.
func ParseQuestionType(s string) (QuestionType, error) {
	switch QuestionType(s) {
	case SingleChoice, MultipleChoice, TrueFalse:
		return QuestionType(s), nil
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

type Option struct {
	ID        string `bson:"id" json:"id"`
	Text      string `bson:"text" json:"text"`
	IsCorrect bool   `bson:"is_correct" json:"isCorrect"`
}

type Question struct {
	ID          string       `bson:"id" json:"id"`
	Text        string       `bson:"text" json:"text"`
	ImageURL    string       `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Type        QuestionType `bson:"type" json:"type"`
	Options     []Option     `bson:"options" json:"options"`
	Explanation string       `bson:"explanation,omitempty" json:"explanation,omitempty"`
}

type Quiz struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	Tags        []string   `bson:"tags" json:"tags"`
	CreatedBy   string     `bson:"created_by" json:"createdBy"`
	IsPublic    bool       `bson:"is_public" json:"isPublic"`
	TimeLimit   int        `bson:"time_limit" json:"timeLimit"` // minutes, 0 = unlimited
	Questions   []Question `bson:"questions" json:"questions"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updatedAt"`
}

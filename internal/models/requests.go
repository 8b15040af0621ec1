package models

import "github.com/go-playground/validator/v10"

// validate is shared by every creation path. Generated content is mapped into
// the same request types as direct authoring, so these rules are enforced
// exactly once regardless of origin.
var validate = validator.New()

func ValidateRequest(req any) error {
	return validate.Struct(req)
}

type OptionPayload struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionPayload struct {
	Text        string          `json:"text" validate:"required"`
	ImageURL    string          `json:"imageUrl"`
	Type        string          `json:"type" validate:"required"`
	Options     []OptionPayload `json:"options" validate:"required,min=2,dive"`
	Explanation string          `json:"explanation"`
}

type CreateQuizRequest struct {
	Title       string            `json:"title" validate:"required,min=3,max=100"`
	Description string            `json:"description"`
	Tags        []string          `json:"tags"`
	IsPublic    bool              `json:"isPublic"`
	TimeLimit   int               `json:"timeLimit"` // minutes, 0 = unlimited
	Questions   []QuestionPayload `json:"questions" validate:"required,min=1,dive"`
}

type CardPayload struct {
	Front    string `json:"front" validate:"required"`
	Back     string `json:"back" validate:"required"`
	ImageURL string `json:"imageUrl"`
	Position int    `json:"position"`
}

type CreateFlashcardRequest struct {
	Title       string        `json:"title" validate:"required,min=3,max=100"`
	Description string        `json:"description"`
	Tags        []string      `json:"tags"`
	IsPublic    bool          `json:"isPublic"`
	Cards       []CardPayload `json:"cards" validate:"required,min=1,dive"`
}

// SubmitQuizRequest carries the answer map: question id to the option ids
// the user selected. Questions may be omitted entirely.
type SubmitQuizRequest struct {
	Answers   map[string][]string `json:"answers"`
	TimeSpent int                 `json:"timeSpent"`
}

// SubmitStudyRequest carries card id to remembered/not-remembered.
type SubmitStudyRequest struct {
	CardResults map[string]bool `json:"cardResults"`
	TimeSpent   int             `json:"timeSpent"`
}

type GenerateQuizRequest struct {
	Topic             string   `json:"topic" validate:"required,max=200"`
	Difficulty        string   `json:"difficulty" validate:"required"`
	NumberOfQuestions int      `json:"numberOfQuestions"`
	Tags              []string `json:"tags"`
	Model             string   `json:"model"`
}

type GenerateFlashcardRequest struct {
	Topic         string   `json:"topic" validate:"required,max=200"`
	NumberOfCards int      `json:"numberOfCards"`
	Tags          []string `json:"tags"`
	Model         string   `json:"model"`
}

type ChatMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
	Model   string `json:"model"`
}

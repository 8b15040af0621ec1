package models

import "time"

// OptionView deliberately omits the is_correct flag so quiz takers cannot
// read answers out of the API.
type OptionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type QuestionView struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Type        QuestionType `json:"type"`
	Options     []OptionView `json:"options"`
	Explanation string       `json:"explanation,omitempty"`
}

type QuizResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
	CreatedBy   string         `json:"createdBy"`
	IsPublic    bool           `json:"isPublic"`
	TimeLimit   int            `json:"timeLimit"`
	Questions   []QuestionView `json:"questions"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// QuizAttemptResponse joins an attempt with its quiz title. When the parent
// quiz has been deleted the title degrades to "Unknown Quiz".
type QuizAttemptResponse struct {
	ID             string     `json:"id"`
	QuizID         string     `json:"quizId"`
	QuizTitle      string     `json:"quizTitle"`
	Score          int        `json:"score"`
	TotalQuestions int        `json:"totalQuestions"`
	CorrectAnswers int        `json:"correctAnswers"`
	WrongAnswers   int        `json:"wrongAnswers"`
	Unanswered     int        `json:"unanswered"`
	TimeSpent      int        `json:"timeSpent"`
	Completed      bool       `json:"completed"`
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

type FlashcardStudyResponse struct {
	ID              string     `json:"id"`
	FlashcardID     string     `json:"flashcardId"`
	FlashcardTitle  string     `json:"flashcardTitle"`
	TotalCards      int        `json:"totalCards"`
	CardsStudied    int        `json:"cardsStudied"`
	CardsRemembered int        `json:"cardsRemembered"`
	CardsToReview   int        `json:"cardsToReview"`
	TimeSpent       int        `json:"timeSpent"`
	Completed       bool       `json:"completed"`
	StartedAt       time.Time  `json:"startedAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

type AdminDashboardStats struct {
	TotalQuizzes               int64 `json:"totalQuizzes"`
	TotalFlashcards            int64 `json:"totalFlashcards"`
	TotalQuizAttempts          int64 `json:"totalQuizAttempts"`
	TotalFlashcardStudies      int64 `json:"totalFlashcardStudies"`
	TotalAiChats               int64 `json:"totalAiChats"`
	QuizzesCreatedToday        int64 `json:"quizzesCreatedToday"`
	QuizzesCreatedThisWeek     int64 `json:"quizzesCreatedThisWeek"`
	QuizzesCreatedThisMonth    int64 `json:"quizzesCreatedThisMonth"`
	FlashcardsCreatedToday     int64 `json:"flashcardsCreatedToday"`
	FlashcardsCreatedThisWeek  int64 `json:"flashcardsCreatedThisWeek"`
	FlashcardsCreatedThisMonth int64 `json:"flashcardsCreatedThisMonth"`
}

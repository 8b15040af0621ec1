package models

import "time"

// QuizAttempt is one scored instance of a user taking a quiz. It is created
// in progress with a zeroed scorecard and transitions to completed exactly
// once via submission.
type QuizAttempt struct {
	ID             string     `bson:"_id,omitempty" json:"id"`
	UserID         string     `bson:"user_id" json:"userId"`
	QuizID         string     `bson:"quiz_id" json:"quizId"`
	Score          int        `bson:"score" json:"score"` // 0-100 percentage
	TotalQuestions int        `bson:"total_questions" json:"totalQuestions"`
	CorrectAnswers int        `bson:"correct_answers" json:"correctAnswers"`
	WrongAnswers   int        `bson:"wrong_answers" json:"wrongAnswers"`
	Unanswered     int        `bson:"unanswered" json:"unanswered"`
	TimeSpent      int        `bson:"time_spent" json:"timeSpent"` // seconds
	Completed      bool       `bson:"completed" json:"completed"`
	StartedAt      time.Time  `bson:"started_at" json:"startedAt"`
	CompletedAt    *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
}

// FlashcardStudy mirrors QuizAttempt for flashcard decks, with the same
// one-shot completion lifecycle.
type FlashcardStudy struct {
	ID              string     `bson:"_id,omitempty" json:"id"`
	UserID          string     `bson:"user_id" json:"userId"`
	FlashcardID     string     `bson:"flashcard_id" json:"flashcardId"`
	TotalCards      int        `bson:"total_cards" json:"totalCards"`
	CardsStudied    int        `bson:"cards_studied" json:"cardsStudied"`
	CardsRemembered int        `bson:"cards_remembered" json:"cardsRemembered"`
	CardsToReview   int        `bson:"cards_to_review" json:"cardsToReview"`
	TimeSpent       int        `bson:"time_spent" json:"timeSpent"`
	Completed       bool       `bson:"completed" json:"completed"`
	StartedAt       time.Time  `bson:"started_at" json:"startedAt"`
	CompletedAt     *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
}

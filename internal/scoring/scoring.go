package scoring

import "quizmaster-service/internal/models"

// Scorecard is the result of grading one quiz attempt.
type Scorecard struct {
	CorrectAnswers int
	WrongAnswers   int
	Unanswered     int
	Score          int // 0-100, truncated percentage
}

// GradeQuiz grades the submitted answers against the authoritative quiz.
// Questions are evaluated independently; answers is question id to the set
// of selected option ids.
//
// Single-choice and true/false questions require exactly one selected option
// and that option must be flagged correct. Multiple-choice questions require
// the selected set to equal the correct set exactly; there is no partial
// credit. Unknown option ids count as wrong, never as unanswered.
func GradeQuiz(quiz *models.Quiz, answers map[string][]string) Scorecard {
	var card Scorecard

	for _, question := range quiz.Questions {
		selected := answers[question.ID]
		if len(selected) == 0 {
			card.Unanswered++
			continue
		}

		switch question.Type {
		case models.SingleChoice, models.TrueFalse:
			if len(selected) > 1 {
				card.WrongAnswers++
				continue
			}
			if optionIsCorrect(question.Options, selected[0]) {
				card.CorrectAnswers++
			} else {
				card.WrongAnswers++
			}
		case models.MultipleChoice:
			if sameSet(correctOptionIDs(question.Options), selected) {
				card.CorrectAnswers++
			} else {
				card.WrongAnswers++
			}
		}
	}

	card.Score = Score(card.CorrectAnswers, len(quiz.Questions))
	return card
}

// Score is the truncated percentage: 2 of 3 correct scores 66, not 67.
// Attempts pass the question count snapshotted at start so the score stays
// stable even if the quiz changes between start and submit.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return correct * 100 / total
}

// StudySummary is the result of summarizing one flashcard study.
type StudySummary struct {
	CardsStudied    int
	CardsRemembered int
	CardsToReview   int
}

// SummarizeStudy summarizes card results (card id to remembered) against the
// deck size. CardsToReview counts against the full deck, so a partially
// studied deck still reports unstudied cards as needing review.
func SummarizeStudy(totalCards int, cardResults map[string]bool) StudySummary {
	summary := StudySummary{CardsStudied: len(cardResults)}
	for _, remembered := range cardResults {
		if remembered {
			summary.CardsRemembered++
		}
	}
	summary.CardsToReview = totalCards - summary.CardsRemembered
	return summary
}

func optionIsCorrect(options []models.Option, optionID string) bool {
	for _, opt := range options {
		if opt.ID == optionID {
			return opt.IsCorrect
		}
	}
	return false
}

func correctOptionIDs(options []models.Option) []string {
	var ids []string
	for _, opt := range options {
		if opt.IsCorrect {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

// sameSet compares two id lists as sets; duplicates and order are irrelevant.
func sameSet(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, id := range a {
		setA[id] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, id := range b {
		setB[id] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for id := range setA {
		if _, ok := setB[id]; !ok {
			return false
		}
	}
	return true
}

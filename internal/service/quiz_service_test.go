package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"quizmaster-service/internal/errs"
	"quizmaster-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeQuizStore struct {
	quizzes map[string]*models.Quiz
}

func (f *fakeQuizStore) Create(_ context.Context, quiz *models.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = fmt.Sprintf("quiz-%d", len(f.quizzes)+1)
	}
	f.quizzes[quiz.ID] = quiz
	return nil
}

func (f *fakeQuizStore) FindByID(_ context.Context, id string) (*models.Quiz, error) {
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return quiz, nil
}

func (f *fakeQuizStore) FindAll(context.Context) ([]models.Quiz, error)                { return nil, nil }
func (f *fakeQuizStore) FindPublic(context.Context) ([]models.Quiz, error)             { return nil, nil }
func (f *fakeQuizStore) FindByCreator(context.Context, string) ([]models.Quiz, error)  { return nil, nil }
func (f *fakeQuizStore) FindByTag(context.Context, string) ([]models.Quiz, error)      { return nil, nil }
func (f *fakeQuizStore) SearchByTitle(context.Context, string) ([]models.Quiz, error)  { return nil, nil }
func (f *fakeQuizStore) Delete(_ context.Context, id string) error {
	delete(f.quizzes, id)
	return nil
}

type fakeAttemptStore struct {
	attempts    map[string]*models.QuizAttempt
	completeErr error
}

func (f *fakeAttemptStore) Create(_ context.Context, attempt *models.QuizAttempt) error {
	if attempt.ID == "" {
		attempt.ID = fmt.Sprintf("attempt-%d", len(f.attempts)+1)
	}
	f.attempts[attempt.ID] = attempt
	return nil
}

func (f *fakeAttemptStore) FindByID(_ context.Context, id string) (*models.QuizAttempt, error) {
	attempt, ok := f.attempts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *attempt
	return &copied, nil
}

func (f *fakeAttemptStore) FindByUser(context.Context, string) ([]models.QuizAttempt, error) {
	return nil, nil
}

// Complete mimics the conditional update: only an in-progress attempt
// matches, anything else reports no documents.
func (f *fakeAttemptStore) Complete(_ context.Context, id string, card bson.M) (*models.QuizAttempt, error) {
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	attempt, ok := f.attempts[id]
	if !ok || attempt.Completed {
		return nil, mongo.ErrNoDocuments
	}
	updated := *attempt
	updated.Score = card["score"].(int)
	updated.CorrectAnswers = card["correct_answers"].(int)
	updated.WrongAnswers = card["wrong_answers"].(int)
	updated.Unanswered = card["unanswered"].(int)
	updated.TimeSpent = card["time_spent"].(int)
	updated.Completed = true
	completedAt := card["completed_at"].(time.Time)
	updated.CompletedAt = &completedAt
	f.attempts[id] = &updated
	return &updated, nil
}

func (f *fakeAttemptStore) DeleteByQuiz(context.Context, string) error { return nil }

func twoQuestionQuiz() *models.Quiz {
	return &models.Quiz{
		ID:    "quiz-1",
		Title: "Go Basics",
		Questions: []models.Question{
			{
				ID:   "q1",
				Type: models.SingleChoice,
				Options: []models.Option{
					{ID: "q1a", IsCorrect: true},
					{ID: "q1b"},
				},
			},
			{
				ID:   "q2",
				Type: models.TrueFalse,
				Options: []models.Option{
					{ID: "q2a", IsCorrect: true},
					{ID: "q2b"},
				},
			},
		},
	}
}

func newQuizFixture() (*QuizService, *fakeQuizStore, *fakeAttemptStore) {
	quizzes := &fakeQuizStore{quizzes: map[string]*models.Quiz{"quiz-1": twoQuestionQuiz()}}
	attempts := &fakeAttemptStore{attempts: map[string]*models.QuizAttempt{}}
	return &QuizService{Repo: quizzes, AttemptRepo: attempts}, quizzes, attempts
}

func validQuizRequest() *models.CreateQuizRequest {
	return &models.CreateQuizRequest{
		Title: "Go Fundamentals",
		Questions: []models.QuestionPayload{
			{
				Text: "Is Go statically typed?",
				Type: "TRUE_FALSE",
				Options: []models.OptionPayload{
					{Text: "True", IsCorrect: true},
					{Text: "False"},
				},
			},
		},
	}
}

func TestCreateQuizRejectsInvalidRequests(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateQuizRequest)
	}{
		{"title too short", func(r *models.CreateQuizRequest) { r.Title = "ab" }},
		{"no questions", func(r *models.CreateQuizRequest) { r.Questions = nil }},
		{"question without text", func(r *models.CreateQuizRequest) { r.Questions[0].Text = "" }},
		{"single option", func(r *models.CreateQuizRequest) {
			r.Questions[0].Options = r.Questions[0].Options[:1]
		}},
		{"unknown question type", func(r *models.CreateQuizRequest) { r.Questions[0].Type = "ESSAY" }},
	}

	svc := &QuizService{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validQuizRequest()
			tt.mutate(req)

			_, err := svc.CreateQuiz(context.Background(), "user-1", req)
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if errs.KindOf(err) != errs.KindValidation {
				t.Errorf("Expected validation error, got kind %q", errs.KindOf(err))
			}
		})
	}
}

func TestStartQuizSnapshotsQuestionCount(t *testing.T) {
	svc, _, attempts := newQuizFixture()

	attempt, err := svc.StartQuiz(context.Background(), "user-1", "quiz-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if attempt.TotalQuestions != 2 {
		t.Errorf("Expected 2 total questions, got %d", attempt.TotalQuestions)
	}
	if attempt.Unanswered != 2 {
		t.Errorf("Expected unanswered to start at 2, got %d", attempt.Unanswered)
	}
	if attempt.Completed {
		t.Error("Expected a fresh attempt to be in progress")
	}
	if len(attempts.attempts) != 1 {
		t.Errorf("Expected one stored attempt, got %d", len(attempts.attempts))
	}
}

func TestStartQuizUnknownQuiz(t *testing.T) {
	svc, _, _ := newQuizFixture()

	_, err := svc.StartQuiz(context.Background(), "user-1", "missing")
	if errs.KindOf(err) != errs.KindNotFound {
		t.Errorf("Expected not-found error, got kind %q", errs.KindOf(err))
	}
}

func TestSubmitQuizGradesAndCompletes(t *testing.T) {
	svc, _, _ := newQuizFixture()

	started, err := svc.StartQuiz(context.Background(), "user-1", "quiz-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	result, err := svc.SubmitQuiz(context.Background(), "user-1", started.ID, &models.SubmitQuizRequest{
		Answers:   map[string][]string{"q1": {"q1a"}, "q2": {"q2b"}},
		TimeSpent: 90,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.CorrectAnswers != 1 || result.WrongAnswers != 1 || result.Unanswered != 0 {
		t.Errorf("Expected 1/1/0 scorecard, got %d/%d/%d",
			result.CorrectAnswers, result.WrongAnswers, result.Unanswered)
	}
	if result.Score != 50 {
		t.Errorf("Expected score 50, got %d", result.Score)
	}
	if !result.Completed || result.CompletedAt == nil {
		t.Error("Expected the attempt to be completed with a timestamp")
	}
	if result.TimeSpent != 90 {
		t.Errorf("Expected time spent 90, got %d", result.TimeSpent)
	}
}

func TestSubmitQuizScoresAgainstStartSnapshot(t *testing.T) {
	// The attempt was started when the quiz had 4 questions; two were
	// removed before submission. The denominator stays at 4.
	svc, _, attempts := newQuizFixture()
	attempts.attempts["attempt-1"] = &models.QuizAttempt{
		ID:             "attempt-1",
		UserID:         "user-1",
		QuizID:         "quiz-1",
		TotalQuestions: 4,
		Unanswered:     4,
		StartedAt:      time.Now(),
	}

	result, err := svc.SubmitQuiz(context.Background(), "user-1", "attempt-1", &models.SubmitQuizRequest{
		Answers: map[string][]string{"q1": {"q1a"}, "q2": {"q2a"}},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.CorrectAnswers != 2 {
		t.Errorf("Expected 2 correct answers, got %d", result.CorrectAnswers)
	}
	if result.Score != 50 {
		t.Errorf("Expected score 50 (2 of 4 snapshot), got %d", result.Score)
	}
}

func TestSubmitQuizSecondSubmissionConflict(t *testing.T) {
	svc, _, attempts := newQuizFixture()

	started, err := svc.StartQuiz(context.Background(), "user-1", "quiz-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	first, err := svc.SubmitQuiz(context.Background(), "user-1", started.ID, &models.SubmitQuizRequest{
		Answers: map[string][]string{"q1": {"q1a"}, "q2": {"q2a"}},
	})
	if err != nil {
		t.Fatalf("Expected first submission to succeed, got %v", err)
	}

	_, err = svc.SubmitQuiz(context.Background(), "user-1", started.ID, &models.SubmitQuizRequest{
		Answers: map[string][]string{},
	})
	if errs.KindOf(err) != errs.KindConflict {
		t.Errorf("Expected conflict on second submission, got kind %q", errs.KindOf(err))
	}

	stored := attempts.attempts[started.ID]
	if stored.Score != first.Score || stored.CorrectAnswers != first.CorrectAnswers {
		t.Errorf("Expected first result to be unaffected, got score %d correct %d",
			stored.Score, stored.CorrectAnswers)
	}
}

func TestSubmitQuizLostRaceConflict(t *testing.T) {
	// The attempt looks in progress when read, but a concurrent submission
	// wins the conditional update.
	svc, _, attempts := newQuizFixture()
	attempts.attempts["attempt-1"] = &models.QuizAttempt{
		ID:             "attempt-1",
		UserID:         "user-1",
		QuizID:         "quiz-1",
		TotalQuestions: 2,
		Unanswered:     2,
		StartedAt:      time.Now(),
	}
	attempts.completeErr = mongo.ErrNoDocuments

	_, err := svc.SubmitQuiz(context.Background(), "user-1", "attempt-1", &models.SubmitQuizRequest{
		Answers: map[string][]string{"q1": {"q1a"}},
	})
	if errs.KindOf(err) != errs.KindConflict {
		t.Errorf("Expected conflict on lost race, got kind %q", errs.KindOf(err))
	}
}

func TestSubmitQuizOwnership(t *testing.T) {
	svc, _, _ := newQuizFixture()

	started, err := svc.StartQuiz(context.Background(), "user-1", "quiz-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = svc.SubmitQuiz(context.Background(), "user-2", started.ID, &models.SubmitQuizRequest{})
	if errs.KindOf(err) != errs.KindForbidden {
		t.Errorf("Expected forbidden for another user, got kind %q", errs.KindOf(err))
	}

	_, err = svc.SubmitQuiz(context.Background(), "user-1", "missing", &models.SubmitQuizRequest{})
	if errs.KindOf(err) != errs.KindNotFound {
		t.Errorf("Expected not-found for unknown attempt, got kind %q", errs.KindOf(err))
	}
}

func TestGetAttemptOwnership(t *testing.T) {
	svc, _, _ := newQuizFixture()

	started, err := svc.StartQuiz(context.Background(), "user-1", "quiz-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = svc.GetAttempt(context.Background(), "user-2", started.ID)
	if errs.KindOf(err) != errs.KindForbidden {
		t.Errorf("Expected forbidden for another user, got kind %q", errs.KindOf(err))
	}
}

func TestDeleteQuizOwnerOnly(t *testing.T) {
	svc, quizzes, _ := newQuizFixture()
	quizzes.quizzes["quiz-1"].CreatedBy = "user-1"

	if err := svc.DeleteQuiz(context.Background(), "user-2", "quiz-1"); errs.KindOf(err) != errs.KindForbidden {
		t.Errorf("Expected forbidden for non-owner, got kind %q", errs.KindOf(err))
	}
	if err := svc.DeleteQuiz(context.Background(), "user-1", "quiz-1"); err != nil {
		t.Errorf("Expected owner delete to succeed, got %v", err)
	}
	if _, ok := quizzes.quizzes["quiz-1"]; ok {
		t.Error("Expected the quiz to be removed")
	}
}

func TestMapQuizToResponseHidesCorrectness(t *testing.T) {
	quiz := &models.Quiz{
		ID:    "q1",
		Title: "Networking",
		Questions: []models.Question{
			{
				ID:   "question-1",
				Text: "Which protocols are connectionless?",
				Type: models.MultipleChoice,
				Options: []models.Option{
					{ID: "a", Text: "UDP", IsCorrect: true},
					{ID: "b", Text: "TCP"},
				},
			},
		},
	}

	resp := mapQuizToResponse(quiz)

	if len(resp.Questions) != 1 {
		t.Fatalf("Expected 1 question, got %d", len(resp.Questions))
	}
	options := resp.Questions[0].Options
	if len(options) != 2 {
		t.Fatalf("Expected 2 options, got %d", len(options))
	}
	if options[0].ID != "a" || options[0].Text != "UDP" {
		t.Errorf("Expected option id and text to be kept, got %+v", options[0])
	}
}

package service

import (
	"context"
	"errors"
	"log"
	"time"

	"quizmaster-service/internal/errs"
	"quizmaster-service/internal/event"
	"quizmaster-service/internal/models"
	"quizmaster-service/internal/repository"
	"quizmaster-service/internal/scoring"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const unknownQuizTitle = "Unknown Quiz"

type quizStore interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
	FindAll(ctx context.Context) ([]models.Quiz, error)
	FindPublic(ctx context.Context) ([]models.Quiz, error)
	FindByCreator(ctx context.Context, userID string) ([]models.Quiz, error)
	FindByTag(ctx context.Context, tag string) ([]models.Quiz, error)
	SearchByTitle(ctx context.Context, keyword string) ([]models.Quiz, error)
	Delete(ctx context.Context, id string) error
}

type attemptStore interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	FindByID(ctx context.Context, id string) (*models.QuizAttempt, error)
	FindByUser(ctx context.Context, userID string) ([]models.QuizAttempt, error)
	Complete(ctx context.Context, id string, card bson.M) (*models.QuizAttempt, error)
	DeleteByQuiz(ctx context.Context, quizID string) error
}

type QuizService struct {
	Repo        quizStore
	AttemptRepo attemptStore
	Events      *event.EventPublisher
}

func NewQuizService(repo *repository.QuizRepository, attemptRepo *repository.AttemptRepository, events *event.EventPublisher) *QuizService {
	return &QuizService{Repo: repo, AttemptRepo: attemptRepo, Events: events}
}

// CreateQuiz validates and persists a quiz. Both direct authoring and AI
// generation go through here, so the validation boundary is enforced exactly
// once regardless of origin.
func (s *QuizService) CreateQuiz(ctx context.Context, callerID string, req *models.CreateQuizRequest) (*models.QuizResponse, error) {
	if err := models.ValidateRequest(req); err != nil {
		return nil, errs.Wrap(errs.KindValidation, "invalid quiz", err)
	}

	questions := make([]models.Question, 0, len(req.Questions))
	for _, q := range req.Questions {
		qType, err := models.ParseQuestionType(q.Type)
		if err != nil {
			return nil, errs.Wrap(errs.KindValidation, "invalid quiz", err)
		}
		options := make([]models.Option, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, models.Option{
				ID:        uuid.NewString(),
				Text:      o.Text,
				IsCorrect: o.IsCorrect,
			})
		}
		questions = append(questions, models.Question{
			ID:          uuid.NewString(),
			Text:        q.Text,
			ImageURL:    q.ImageURL,
			Type:        qType,
			Options:     options,
			Explanation: q.Explanation,
		})
	}

	now := time.Now()
	quiz := &models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		CreatedBy:   callerID,
		IsPublic:    req.IsPublic,
		TimeLimit:   req.TimeLimit,
		Questions:   questions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, quiz); err != nil {
		return nil, err
	}
	s.publish(event.QuizCreated, map[string]string{"quizId": quiz.ID, "createdBy": callerID})
	return mapQuizToResponse(quiz), nil
}

// publish is best effort. A broker outage never fails the request.
func (s *QuizService) publish(eventType string, payload interface{}) {
	if err := s.Events.Publish(eventType, payload); err != nil {
		log.Printf("failed to publish %s event: %v", eventType, err)
	}
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*models.QuizResponse, error) {
	quiz, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("Quiz not found")
		}
		return nil, err
	}
	return mapQuizToResponse(quiz), nil
}

func (s *QuizService) ListQuizzes(ctx context.Context) ([]models.QuizResponse, error) {
	quizzes, err := s.Repo.FindAll(ctx)
	return mapQuizzesToResponses(quizzes), err
}

func (s *QuizService) ListPublicQuizzes(ctx context.Context) ([]models.QuizResponse, error) {
	quizzes, err := s.Repo.FindPublic(ctx)
	return mapQuizzesToResponses(quizzes), err
}

func (s *QuizService) ListMyQuizzes(ctx context.Context, callerID string) ([]models.QuizResponse, error) {
	quizzes, err := s.Repo.FindByCreator(ctx, callerID)
	return mapQuizzesToResponses(quizzes), err
}

func (s *QuizService) ListQuizzesByTag(ctx context.Context, tag string) ([]models.QuizResponse, error) {
	quizzes, err := s.Repo.FindByTag(ctx, tag)
	return mapQuizzesToResponses(quizzes), err
}

func (s *QuizService) SearchQuizzes(ctx context.Context, keyword string) ([]models.QuizResponse, error) {
	quizzes, err := s.Repo.SearchByTitle(ctx, keyword)
	return mapQuizzesToResponses(quizzes), err
}

// DeleteQuiz removes the quiz and every attempt recorded against it.
func (s *QuizService) DeleteQuiz(ctx context.Context, callerID, quizID string) error {
	quiz, err := s.Repo.FindByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return errs.NotFound("Quiz not found")
		}
		return err
	}
	if quiz.CreatedBy != callerID {
		return errs.Forbidden("Unauthorized access to quiz")
	}
	if err := s.AttemptRepo.DeleteByQuiz(ctx, quizID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, quizID); err != nil {
		return err
	}
	s.publish(event.QuizDeleted, map[string]string{"quizId": quizID, "deletedBy": callerID})
	return nil
}

// StartQuiz creates a new in-progress attempt with a zeroed scorecard. The
// question count is snapshotted here so later scoring does not depend on the
// quiz staying unchanged.
func (s *QuizService) StartQuiz(ctx context.Context, callerID, quizID string) (*models.QuizAttemptResponse, error) {
	quiz, err := s.Repo.FindByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("Quiz not found")
		}
		return nil, err
	}

	attempt := &models.QuizAttempt{
		UserID:         callerID,
		QuizID:         quizID,
		TotalQuestions: len(quiz.Questions),
		Unanswered:     len(quiz.Questions),
		Completed:      false,
		StartedAt:      time.Now(),
	}
	if err := s.AttemptRepo.Create(ctx, attempt); err != nil {
		return nil, err
	}
	return mapAttemptToResponse(attempt, quiz.Title), nil
}

// SubmitQuiz grades and completes an attempt. The completion is a
// conditional update, so when two submissions race exactly one wins and the
// other fails with Conflict.
func (s *QuizService) SubmitQuiz(ctx context.Context, callerID, attemptID string, req *models.SubmitQuizRequest) (*models.QuizAttemptResponse, error) {
	attempt, err := s.AttemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("Quiz attempt not found")
		}
		return nil, err
	}
	if attempt.UserID != callerID {
		return nil, errs.Forbidden("Unauthorized access to quiz attempt")
	}
	if attempt.Completed {
		return nil, errs.Conflict("Quiz attempt already completed")
	}

	quiz, err := s.Repo.FindByID(ctx, attempt.QuizID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("Quiz not found")
		}
		return nil, err
	}

	card := scoring.GradeQuiz(quiz, req.Answers)
	now := time.Now()

	updated, err := s.AttemptRepo.Complete(ctx, attemptID, bson.M{
		"score":           scoring.Score(card.CorrectAnswers, attempt.TotalQuestions),
		"correct_answers": card.CorrectAnswers,
		"wrong_answers":   card.WrongAnswers,
		"unanswered":      card.Unanswered,
		"time_spent":      req.TimeSpent,
		"completed":       true,
		"completed_at":    now,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Lost the race against a concurrent submission.
			return nil, errs.Conflict("Quiz attempt already completed")
		}
		return nil, err
	}
	s.publish(event.AttemptCompleted, map[string]interface{}{
		"attemptId": updated.ID,
		"quizId":    updated.QuizID,
		"userId":    updated.UserID,
		"score":     updated.Score,
	})
	return mapAttemptToResponse(updated, quiz.Title), nil
}

// ListMyAttempts joins each attempt with its quiz title. Attempts whose quiz
// has been deleted degrade to a sentinel title instead of failing.
func (s *QuizService) ListMyAttempts(ctx context.Context, callerID string) ([]models.QuizAttemptResponse, error) {
	attempts, err := s.AttemptRepo.FindByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.QuizAttemptResponse, 0, len(attempts))
	for i := range attempts {
		responses = append(responses, *mapAttemptToResponse(&attempts[i], s.quizTitle(ctx, attempts[i].QuizID)))
	}
	return responses, nil
}

func (s *QuizService) GetAttempt(ctx context.Context, callerID, attemptID string) (*models.QuizAttemptResponse, error) {
	attempt, err := s.AttemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("Quiz attempt not found")
		}
		return nil, err
	}
	if attempt.UserID != callerID {
		return nil, errs.Forbidden("Unauthorized access to quiz attempt")
	}
	return mapAttemptToResponse(attempt, s.quizTitle(ctx, attempt.QuizID)), nil
}

func (s *QuizService) quizTitle(ctx context.Context, quizID string) string {
	quiz, err := s.Repo.FindByID(ctx, quizID)
	if err != nil {
		return unknownQuizTitle
	}
	return quiz.Title
}

func mapQuizToResponse(quiz *models.Quiz) *models.QuizResponse {
	questions := make([]models.QuestionView, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		options := make([]models.OptionView, 0, len(q.Options))
		for _, o := range q.Options {
			// is_correct is omitted so answers cannot be read out of the API.
			options = append(options, models.OptionView{ID: o.ID, Text: o.Text})
		}
		questions = append(questions, models.QuestionView{
			ID:          q.ID,
			Text:        q.Text,
			ImageURL:    q.ImageURL,
			Type:        q.Type,
			Options:     options,
			Explanation: q.Explanation,
		})
	}
	return &models.QuizResponse{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Tags:        quiz.Tags,
		CreatedBy:   quiz.CreatedBy,
		IsPublic:    quiz.IsPublic,
		TimeLimit:   quiz.TimeLimit,
		Questions:   questions,
		CreatedAt:   quiz.CreatedAt,
		UpdatedAt:   quiz.UpdatedAt,
	}
}

func mapQuizzesToResponses(quizzes []models.Quiz) []models.QuizResponse {
	responses := make([]models.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		responses = append(responses, *mapQuizToResponse(&quizzes[i]))
	}
	return responses
}

func mapAttemptToResponse(attempt *models.QuizAttempt, quizTitle string) *models.QuizAttemptResponse {
	return &models.QuizAttemptResponse{
		ID:             attempt.ID,
		QuizID:         attempt.QuizID,
		QuizTitle:      quizTitle,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		CorrectAnswers: attempt.CorrectAnswers,
		WrongAnswers:   attempt.WrongAnswers,
		Unanswered:     attempt.Unanswered,
		TimeSpent:      attempt.TimeSpent,
		Completed:      attempt.Completed,
		StartedAt:      attempt.StartedAt,
		CompletedAt:    attempt.CompletedAt,
	}
}

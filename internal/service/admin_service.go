package service

import (
	"context"
	"time"

	"quizmaster-service/internal/models"
	"quizmaster-service/internal/repository"
)

// AdminService aggregates platform-wide counts for the dashboard. Counts are
// computed on demand, no materialized stats.
type AdminService struct {
	QuizRepo      *repository.QuizRepository
	FlashcardRepo *repository.FlashcardRepository
	AttemptRepo   *repository.AttemptRepository
	StudyRepo     *repository.StudyRepository
	ChatRepo      *repository.ChatRepository
}

func NewAdminService(
	quizRepo *repository.QuizRepository,
	flashcardRepo *repository.FlashcardRepository,
	attemptRepo *repository.AttemptRepository,
	studyRepo *repository.StudyRepository,
	chatRepo *repository.ChatRepository,
) *AdminService {
	return &AdminService{
		QuizRepo:      quizRepo,
		FlashcardRepo: flashcardRepo,
		AttemptRepo:   attemptRepo,
		StudyRepo:     studyRepo,
		ChatRepo:      chatRepo,
	}
}

func (s *AdminService) DashboardStats(ctx context.Context) (*models.AdminDashboardStats, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := today.AddDate(0, 0, -mondayOffset(today.Weekday()))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &models.AdminDashboardStats{}
	var err error

	if stats.TotalQuizzes, err = s.QuizRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalFlashcards, err = s.FlashcardRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalQuizAttempts, err = s.AttemptRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalFlashcardStudies, err = s.StudyRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalAiChats, err = s.ChatRepo.Count(ctx); err != nil {
		return nil, err
	}

	if stats.QuizzesCreatedToday, err = s.QuizRepo.CountCreatedAfter(ctx, today); err != nil {
		return nil, err
	}
	if stats.QuizzesCreatedThisWeek, err = s.QuizRepo.CountCreatedAfter(ctx, startOfWeek); err != nil {
		return nil, err
	}
	if stats.QuizzesCreatedThisMonth, err = s.QuizRepo.CountCreatedAfter(ctx, startOfMonth); err != nil {
		return nil, err
	}
	if stats.FlashcardsCreatedToday, err = s.FlashcardRepo.CountCreatedAfter(ctx, today); err != nil {
		return nil, err
	}
	if stats.FlashcardsCreatedThisWeek, err = s.FlashcardRepo.CountCreatedAfter(ctx, startOfWeek); err != nil {
		return nil, err
	}
	if stats.FlashcardsCreatedThisMonth, err = s.FlashcardRepo.CountCreatedAfter(ctx, startOfMonth); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *AdminService) RecentQuizzes(ctx context.Context, limit int) ([]models.QuizResponse, error) {
	quizzes, err := s.QuizRepo.FindRecent(ctx, limit)
	return mapQuizzesToResponses(quizzes), err
}

func (s *AdminService) RecentFlashcards(ctx context.Context, limit int) ([]models.Flashcard, error) {
	return s.FlashcardRepo.FindRecent(ctx, limit)
}

// mondayOffset returns how many days back Monday lies, treating Monday as the
// start of the week.
func mondayOffset(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

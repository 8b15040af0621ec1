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

const unknownFlashcardTitle = "Unknown Flashcard"

type flashcardStore interface {
	Create(ctx context.Context, deck *models.Flashcard) error
	FindByID(ctx context.Context, id string) (*models.Flashcard, error)
	FindAll(ctx context.Context) ([]models.Flashcard, error)
	FindPublic(ctx context.Context) ([]models.Flashcard, error)
	FindByCreator(ctx context.Context, userID string) ([]models.Flashcard, error)
	FindByTag(ctx context.Context, tag string) ([]models.Flashcard, error)
	SearchByTitle(ctx context.Context, keyword string) ([]models.Flashcard, error)
	Delete(ctx context.Context, id string) error
}

type studyStore interface {
	Create(ctx context.Context, study *models.FlashcardStudy) error
	FindByID(ctx context.Context, id string) (*models.FlashcardStudy, error)
	FindByUser(ctx context.Context, userID string) ([]models.FlashcardStudy, error)
	Complete(ctx context.Context, id string, summary bson.M) (*models.FlashcardStudy, error)
	DeleteByFlashcard(ctx context.Context, flashcardID string) error
}

type FlashcardService struct {
	Repo      flashcardStore
	StudyRepo studyStore
	Events    *event.EventPublisher
}

func NewFlashcardService(repo *repository.FlashcardRepository, studyRepo *repository.StudyRepository, events *event.EventPublisher) *FlashcardService {
	return &FlashcardService{Repo: repo, StudyRepo: studyRepo, Events: events}
}

func (s *FlashcardService) CreateFlashcard(ctx context.Context, callerID string, req *models.CreateFlashcardRequest) (*models.Flashcard, error) {
	if err := models.ValidateRequest(req); err != nil {
		return nil, errs.Wrap(errs.KindValidation, "invalid flashcard set", err)
	}

	cards := make([]models.Card, 0, len(req.Cards))
	for _, c := range req.Cards {
		cards = append(cards, models.Card{
			ID:       uuid.NewString(),
			Front:    c.Front,
			Back:     c.Back,
			ImageURL: c.ImageURL,
			Position: c.Position,
		})
	}

	now := time.Now()
	deck := &models.Flashcard{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		CreatedBy:   callerID,
		IsPublic:    req.IsPublic,
		Cards:       cards,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, deck); err != nil {
		return nil, err
	}
	s.publish(event.FlashcardCreated, map[string]string{"flashcardId": deck.ID, "createdBy": callerID})
	return deck, nil
}

func (s *FlashcardService) publish(eventType string, payload interface{}) {
	if err := s.Events.Publish(eventType, payload); err != nil {
		log.Printf("failed to publish %s event: %v", eventType, err)
	}
}

func (s *FlashcardService) GetFlashcard(ctx context.Context, id string) (*models.Flashcard, error) {
	deck, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("Flashcard set not found")
		}
		return nil, err
	}
	return deck, nil
}

func (s *FlashcardService) ListFlashcards(ctx context.Context) ([]models.Flashcard, error) {
	return s.Repo.FindAll(ctx)
}

func (s *FlashcardService) ListPublicFlashcards(ctx context.Context) ([]models.Flashcard, error) {
	return s.Repo.FindPublic(ctx)
}

func (s *FlashcardService) ListMyFlashcards(ctx context.Context, callerID string) ([]models.Flashcard, error) {
	return s.Repo.FindByCreator(ctx, callerID)
}

func (s *FlashcardService) ListFlashcardsByTag(ctx context.Context, tag string) ([]models.Flashcard, error) {
	return s.Repo.FindByTag(ctx, tag)
}

func (s *FlashcardService) SearchFlashcards(ctx context.Context, keyword string) ([]models.Flashcard, error) {
	return s.Repo.SearchByTitle(ctx, keyword)
}

// DeleteFlashcard removes the set and every study session recorded against it.
func (s *FlashcardService) DeleteFlashcard(ctx context.Context, callerID, id string) error {
	deck, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return errs.NotFound("Flashcard set not found")
		}
		return err
	}
	if deck.CreatedBy != callerID {
		return errs.Forbidden("Unauthorized access to flashcard set")
	}
	if err := s.StudyRepo.DeleteByFlashcard(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(event.FlashcardDeleted, map[string]string{"flashcardId": id, "deletedBy": callerID})
	return nil
}

// StartStudy opens a study session with the card count snapshotted, so a
// later edit to the set does not skew the summary.
func (s *FlashcardService) StartStudy(ctx context.Context, callerID, flashcardID string) (*models.FlashcardStudyResponse, error) {
	deck, err := s.Repo.FindByID(ctx, flashcardID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("Flashcard set not found")
		}
		return nil, err
	}

	study := &models.FlashcardStudy{
		UserID:        callerID,
		FlashcardID:   flashcardID,
		TotalCards:    len(deck.Cards),
		CardsToReview: len(deck.Cards),
		Completed:     false,
		StartedAt:     time.Now(),
	}
	if err := s.StudyRepo.Create(ctx, study); err != nil {
		return nil, err
	}
	return mapStudyToResponse(study, deck.Title), nil
}

// SubmitStudy summarizes card results and completes the session exactly once.
func (s *FlashcardService) SubmitStudy(ctx context.Context, callerID, studyID string, req *models.SubmitStudyRequest) (*models.FlashcardStudyResponse, error) {
	study, err := s.StudyRepo.FindByID(ctx, studyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("Study session not found")
		}
		return nil, err
	}
	if study.UserID != callerID {
		return nil, errs.Forbidden("Unauthorized access to study session")
	}
	if study.Completed {
		return nil, errs.Conflict("Study session already completed")
	}

	deck, err := s.Repo.FindByID(ctx, study.FlashcardID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("Flashcard set not found")
		}
		return nil, err
	}

	summary := scoring.SummarizeStudy(study.TotalCards, req.CardResults)
	now := time.Now()

	updated, err := s.StudyRepo.Complete(ctx, studyID, bson.M{
		"cards_studied":    summary.CardsStudied,
		"cards_remembered": summary.CardsRemembered,
		"cards_to_review":  summary.CardsToReview,
		"time_spent":       req.TimeSpent,
		"completed":        true,
		"completed_at":     now,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.Conflict("Study session already completed")
		}
		return nil, err
	}
	s.publish(event.StudyCompleted, map[string]interface{}{
		"studyId":     updated.ID,
		"flashcardId": updated.FlashcardID,
		"userId":      updated.UserID,
	})
	return mapStudyToResponse(updated, deck.Title), nil
}

func (s *FlashcardService) ListMyStudies(ctx context.Context, callerID string) ([]models.FlashcardStudyResponse, error) {
	studies, err := s.StudyRepo.FindByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.FlashcardStudyResponse, 0, len(studies))
	for i := range studies {
		responses = append(responses, *mapStudyToResponse(&studies[i], s.flashcardTitle(ctx, studies[i].FlashcardID)))
	}
	return responses, nil
}

func (s *FlashcardService) GetStudy(ctx context.Context, callerID, studyID string) (*models.FlashcardStudyResponse, error) {
	study, err := s.StudyRepo.FindByID(ctx, studyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("Study session not found")
		}
		return nil, err
	}
	if study.UserID != callerID {
		return nil, errs.Forbidden("Unauthorized access to study session")
	}
	return mapStudyToResponse(study, s.flashcardTitle(ctx, study.FlashcardID)), nil
}

func (s *FlashcardService) flashcardTitle(ctx context.Context, flashcardID string) string {
	deck, err := s.Repo.FindByID(ctx, flashcardID)
	if err != nil {
		return unknownFlashcardTitle
	}
	return deck.Title
}

func mapStudyToResponse(study *models.FlashcardStudy, deckTitle string) *models.FlashcardStudyResponse {
	return &models.FlashcardStudyResponse{
		ID:              study.ID,
		FlashcardID:     study.FlashcardID,
		FlashcardTitle:  deckTitle,
		TotalCards:      study.TotalCards,
		CardsStudied:    study.CardsStudied,
		CardsRemembered: study.CardsRemembered,
		CardsToReview:   study.CardsToReview,
		TimeSpent:       study.TimeSpent,
		Completed:       study.Completed,
		StartedAt:       study.StartedAt,
		CompletedAt:     study.CompletedAt,
	}
}

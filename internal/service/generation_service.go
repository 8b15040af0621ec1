package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"quizmaster-service/internal/errs"
	"quizmaster-service/internal/event"
	"quizmaster-service/internal/llm"
	"quizmaster-service/internal/models"
)

const (
	quizSystemPrompt = "You are a quiz creation assistant. You create educational quizzes " +
		"with accurate information. Always respond with valid JSON."

	flashcardSystemPrompt = "You are a flashcard creation assistant. You create educational flashcards " +
		"with accurate information. Always respond with valid JSON."

	quizPromptFormat = "Create a quiz about '%s' with %d questions at %s difficulty level. " +
		"Format the response as JSON with the following structure: " +
		`{ "title": "Quiz Title", "description": "Quiz Description", ` +
		`"questions": [ { "text": "Question text", "type": "MULTIPLE_CHOICE", ` +
		`"options": [ { "text": "Option 1", "isCorrect": true }, { "text": "Option 2", "isCorrect": false } ] } ] }`

	flashcardPromptFormat = "Create a set of flashcards about '%s' with %d cards. " +
		"Format the response as JSON with the following structure: " +
		`{ "title": "Flashcard Title", "description": "Flashcard Description", ` +
		`"cards": [ { "front": "Front text", "back": "Back text", "position": 0 } ] }`

	generatedTimeLimit = 30
)

type quizCreator interface {
	CreateQuiz(ctx context.Context, callerID string, req *models.CreateQuizRequest) (*models.QuizResponse, error)
}

type flashcardCreator interface {
	CreateFlashcard(ctx context.Context, callerID string, req *models.CreateFlashcardRequest) (*models.Flashcard, error)
}

// GenerationService turns model completions into quizzes and flashcard sets.
// It only maps and delegates: persistence and validation stay with the quiz
// and flashcard services, so generated content passes the exact same checks
// as hand-authored content and nothing is saved when mapping fails.
type GenerationService struct {
	Completer    llm.Completer
	DefaultModel string
	Quizzes      quizCreator
	Flashcards   flashcardCreator
	Events       *event.EventPublisher
}

func NewGenerationService(completer llm.Completer, defaultModel string, quizzes *QuizService, flashcards *FlashcardService, events *event.EventPublisher) *GenerationService {
	return &GenerationService{
		Completer:    completer,
		DefaultModel: defaultModel,
		Quizzes:      quizzes,
		Flashcards:   flashcards,
		Events:       events,
	}
}

func (s *GenerationService) GenerateQuiz(ctx context.Context, callerID string, req *models.GenerateQuizRequest) (*models.QuizResponse, error) {
	if err := models.ValidateRequest(req); err != nil {
		return nil, errs.Wrap(errs.KindValidation, "invalid generation request", err)
	}

	prompt := fmt.Sprintf(quizPromptFormat, req.Topic, req.NumberOfQuestions, req.Difficulty)
	raw, err := s.complete(ctx, quizSystemPrompt, prompt, req.Model)
	if err != nil {
		// Transport failures surface as generation failures at this
		// boundary, with the cause kept in the chain.
		return nil, errs.Wrap(errs.KindGeneration, "Failed to generate quiz", err)
	}

	jsonStr, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, errs.Wrap(errs.KindGeneration, "Failed to generate quiz", err)
	}

	var createReq models.CreateQuizRequest
	if err := json.Unmarshal([]byte(jsonStr), &createReq); err != nil {
		return nil, errs.Wrap(errs.KindGeneration, "Failed to generate quiz", err)
	}

	// Generated quizzes are public timed quizzes tagged with the topic
	// unless the caller supplied tags.
	createReq.TimeLimit = generatedTimeLimit
	createReq.IsPublic = true
	if len(req.Tags) > 0 {
		createReq.Tags = req.Tags
	} else {
		createReq.Tags = []string{req.Topic}
	}

	quiz, err := s.Quizzes.CreateQuiz(ctx, callerID, &createReq)
	if err != nil {
		return nil, errs.Wrap(errs.KindGeneration, "Failed to generate quiz", err)
	}
	if err := s.Events.Publish(event.QuizGenerated, map[string]string{"quizId": quiz.ID, "topic": req.Topic}); err != nil {
		log.Printf("failed to publish %s event: %v", event.QuizGenerated, err)
	}
	return quiz, nil
}

func (s *GenerationService) GenerateFlashcard(ctx context.Context, callerID string, req *models.GenerateFlashcardRequest) (*models.Flashcard, error) {
	if err := models.ValidateRequest(req); err != nil {
		return nil, errs.Wrap(errs.KindValidation, "invalid generation request", err)
	}

	prompt := fmt.Sprintf(flashcardPromptFormat, req.Topic, req.NumberOfCards)
	raw, err := s.complete(ctx, flashcardSystemPrompt, prompt, req.Model)
	if err != nil {
		return nil, errs.Wrap(errs.KindGeneration, "Failed to generate flashcard", err)
	}

	jsonStr, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, errs.Wrap(errs.KindGeneration, "Failed to generate flashcard", err)
	}

	var createReq models.CreateFlashcardRequest
	if err := json.Unmarshal([]byte(jsonStr), &createReq); err != nil {
		return nil, errs.Wrap(errs.KindGeneration, "Failed to generate flashcard", err)
	}

	createReq.IsPublic = true
	if len(req.Tags) > 0 {
		createReq.Tags = req.Tags
	} else {
		createReq.Tags = []string{req.Topic}
	}

	deck, err := s.Flashcards.CreateFlashcard(ctx, callerID, &createReq)
	if err != nil {
		return nil, errs.Wrap(errs.KindGeneration, "Failed to generate flashcard", err)
	}
	if err := s.Events.Publish(event.FlashcardGenerated, map[string]string{"flashcardId": deck.ID, "topic": req.Topic}); err != nil {
		log.Printf("failed to publish %s event: %v", event.FlashcardGenerated, err)
	}
	return deck, nil
}

func (s *GenerationService) complete(ctx context.Context, systemPrompt, userPrompt, model string) (string, error) {
	if model == "" {
		model = s.DefaultModel
	}
	return s.Completer.Complete(ctx, []llm.Message{
		{Role: models.RoleSystem, Content: systemPrompt},
		{Role: models.RoleUser, Content: userPrompt},
	}, model)
}

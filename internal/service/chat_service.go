package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"quizmaster-service/internal/errs"
	"quizmaster-service/internal/llm"
	"quizmaster-service/internal/models"
	"quizmaster-service/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	defaultChatTitle = "New Chat"

	chatSystemPrompt = "You are a helpful AI assistant for the QuizMaster AI platform. " +
		"You help users learn by answering questions, explaining concepts, and suggesting study strategies."

	// chatWindowSize bounds how much history is replayed to the model per
	// turn. The stored session keeps the full transcript.
	chatWindowSize = 10

	titleMaxLen = 30
)

type ChatService struct {
	Repo         *repository.ChatRepository
	Completer    llm.Completer
	DefaultModel string
}

func NewChatService(repo *repository.ChatRepository, completer llm.Completer, defaultModel string) *ChatService {
	return &ChatService{Repo: repo, Completer: completer, DefaultModel: defaultModel}
}

func (s *ChatService) CreateSession(ctx context.Context, callerID, title string) (*models.ChatSession, error) {
	if title == "" {
		title = defaultChatTitle
	}
	now := time.Now()
	session := &models.ChatSession{
		UserID:    callerID,
		Title:     title,
		Messages:  []models.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ChatService) ListSessions(ctx context.Context, callerID string) ([]models.ChatSession, error) {
	return s.Repo.FindByUser(ctx, callerID)
}

func (s *ChatService) GetSession(ctx context.Context, callerID, sessionID string) (*models.ChatSession, error) {
	session, err := s.findOwnedSession(ctx, callerID, sessionID)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ChatService) DeleteSession(ctx context.Context, callerID, sessionID string) error {
	if _, err := s.findOwnedSession(ctx, callerID, sessionID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, sessionID)
}

// SendMessage appends the user's message, asks the model for a reply over a
// bounded history window, appends the reply, and persists the session. The
// session title is derived from the first user message.
func (s *ChatService) SendMessage(ctx context.Context, callerID, sessionID string, req *models.ChatMessageRequest) (*models.ChatSession, error) {
	if err := models.ValidateRequest(req); err != nil {
		return nil, errs.Wrap(errs.KindValidation, "invalid chat message", err)
	}

	session, err := s.findOwnedSession(ctx, callerID, sessionID)
	if err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = s.DefaultModel
	}

	session.Messages = append(session.Messages, models.ChatMessage{
		ID:        uuid.NewString(),
		Content:   req.Content,
		Role:      models.RoleUser,
		Timestamp: time.Now(),
	})
	if session.Title == defaultChatTitle {
		session.Title = deriveTitle(req.Content)
	}

	reply, err := s.Completer.Complete(ctx, buildWindow(session.Messages), model)
	if err != nil {
		return nil, err
	}

	session.Messages = append(session.Messages, models.ChatMessage{
		ID:        uuid.NewString(),
		Content:   reply,
		Role:      models.RoleAssistant,
		Model:     model,
		Timestamp: time.Now(),
	})
	session.UpdatedAt = time.Now()

	if err := s.Repo.Update(ctx, sessionID, bson.M{
		"title":      session.Title,
		"messages":   session.Messages,
		"updated_at": session.UpdatedAt,
	}); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ChatService) findOwnedSession(ctx context.Context, callerID, sessionID string) (*models.ChatSession, error) {
	session, err := s.Repo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("Chat session not found")
		}
		return nil, err
	}
	if session.UserID != callerID {
		return nil, errs.Forbidden("Unauthorized access to chat session")
	}
	return session, nil
}

// buildWindow returns the model-facing conversation: a system prompt followed
// by the last messages of the transcript, newest user message included.
func buildWindow(messages []models.ChatMessage) []llm.Message {
	start := 0
	if len(messages) > chatWindowSize {
		start = len(messages) - chatWindowSize
	}

	window := make([]llm.Message, 0, chatWindowSize+1)
	window = append(window, llm.Message{Role: models.RoleSystem, Content: chatSystemPrompt})
	for _, m := range messages[start:] {
		window = append(window, llm.Message{Role: m.Role, Content: m.Content})
	}
	return window
}

// deriveTitle shortens the first user message into a session title. A
// trailing ellipsis marks truncation, unless the cut lands on sentence
// punctuation.
func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleMaxLen {
		return content
	}
	title := string(runes[:titleMaxLen])
	if strings.HasSuffix(title, ".") || strings.HasSuffix(title, "?") || strings.HasSuffix(title, "!") {
		return title
	}
	return title + "..."
}

package handlers

import (
	"net/http"

	"quizmaster-service/internal/models"
	"quizmaster-service/internal/service"
	"quizmaster-service/utils"

	"github.com/gin-gonic/gin"
)

// AIHandler fronts the chat and generation services.
type AIHandler struct {
	Chat       *service.ChatService
	Generation *service.GenerationService
}

func NewAIHandler(chat *service.ChatService, generation *service.GenerationService) *AIHandler {
	return &AIHandler{Chat: chat, Generation: generation}
}

func (h *AIHandler) CreateChatSession(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
	}
	// Body is optional, an empty title gets the default.
	_ = c.ShouldBindJSON(&req)

	session, err := h.Chat.CreateSession(c.Request.Context(), callerID(c), req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *AIHandler) ListChatSessions(c *gin.Context) {
	sessions, err := h.Chat.ListSessions(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *AIHandler) GetChatSession(c *gin.Context) {
	session, err := h.Chat.GetSession(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *AIHandler) DeleteChatSession(c *gin.Context) {
	if err := h.Chat.DeleteSession(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat session deleted"})
}

func (h *AIHandler) SendChatMessage(c *gin.Context) {
	var req models.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	session, err := h.Chat.SendMessage(c.Request.Context(), callerID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *AIHandler) GenerateQuiz(c *gin.Context) {
	var req models.GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	quiz, err := h.Generation.GenerateQuiz(c.Request.Context(), callerID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (h *AIHandler) GenerateFlashcard(c *gin.Context) {
	var req models.GenerateFlashcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	deck, err := h.Generation.GenerateFlashcard(c.Request.Context(), callerID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deck)
}

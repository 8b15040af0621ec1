package handlers

import (
	"net/http"

	"quizmaster-service/internal/models"
	"quizmaster-service/internal/service"
	"quizmaster-service/utils"

	"github.com/gin-gonic/gin"
)

type FlashcardHandler struct {
	Service *service.FlashcardService
}

func NewFlashcardHandler(s *service.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{Service: s}
}

func (h *FlashcardHandler) CreateFlashcard(c *gin.Context) {
	var req models.CreateFlashcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	deck, err := h.Service.CreateFlashcard(c.Request.Context(), callerID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deck)
}

func (h *FlashcardHandler) ListFlashcards(c *gin.Context) {
	decks, err := h.Service.ListFlashcards(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decks)
}

func (h *FlashcardHandler) ListPublicFlashcards(c *gin.Context) {
	decks, err := h.Service.ListPublicFlashcards(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decks)
}

func (h *FlashcardHandler) ListMyFlashcards(c *gin.Context) {
	decks, err := h.Service.ListMyFlashcards(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decks)
}

func (h *FlashcardHandler) ListFlashcardsByTag(c *gin.Context) {
	decks, err := h.Service.ListFlashcardsByTag(c.Request.Context(), c.Param("tag"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decks)
}

func (h *FlashcardHandler) SearchFlashcards(c *gin.Context) {
	decks, err := h.Service.SearchFlashcards(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decks)
}

func (h *FlashcardHandler) GetFlashcard(c *gin.Context) {
	deck, err := h.Service.GetFlashcard(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deck)
}

func (h *FlashcardHandler) DeleteFlashcard(c *gin.Context) {
	if err := h.Service.DeleteFlashcard(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Flashcard set deleted"})
}

func (h *FlashcardHandler) StartStudy(c *gin.Context) {
	study, err := h.Service.StartStudy(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, study)
}

func (h *FlashcardHandler) SubmitStudy(c *gin.Context) {
	var req models.SubmitStudyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	study, err := h.Service.SubmitStudy(c.Request.Context(), callerID(c), c.Param("studyId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, study)
}

func (h *FlashcardHandler) ListMyStudies(c *gin.Context) {
	studies, err := h.Service.ListMyStudies(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, studies)
}

func (h *FlashcardHandler) GetStudy(c *gin.Context) {
	study, err := h.Service.GetStudy(c.Request.Context(), callerID(c), c.Param("studyId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, study)
}

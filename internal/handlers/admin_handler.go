package handlers

import (
	"net/http"
	"strconv"

	"quizmaster-service/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultRecentLimit = 5

type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(s *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: s}
}

func (h *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.Service.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) RecentQuizzes(c *gin.Context) {
	quizzes, err := h.Service.RecentQuizzes(c.Request.Context(), recentLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *AdminHandler) RecentFlashcards(c *gin.Context) {
	decks, err := h.Service.RecentFlashcards(c.Request.Context(), recentLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decks)
}

func recentLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", ""))
	if err != nil || limit <= 0 {
		return defaultRecentLimit
	}
	return limit
}

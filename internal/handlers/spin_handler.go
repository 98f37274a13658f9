package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spinthreads/wheel-backend/internal/middleware"
	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/services"
)

// SpinHandler handles spin and game lifecycle requests
type SpinHandler struct {
	spinService *services.SpinService
}

// NewSpinHandler creates a new SpinHandler
func NewSpinHandler(spinService *services.SpinService) *SpinHandler {
	return &SpinHandler{spinService: spinService}
}

// TriggerSpin runs a draw (operator only)
func (h *SpinHandler) TriggerSpin(c *gin.Context) {
	actor := middleware.Actor(c)
	result, err := h.spinService.TriggerSpin(c.Request.Context(), actor.ID, models.SpinTriggerManual)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetSpins lists spin history, newest first (operator only)
func (h *SpinHandler) GetSpins(c *gin.Context) {
	page, limit := pagination(c)
	spins, err := h.spinService.GetSpins(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, spins)
}

// GetSpin retrieves one spin with its participant snapshot (operator only)
func (h *SpinHandler) GetSpin(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	spin, err := h.spinService.GetSpinByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, spin)
}

// ResetGame wipes all game state (operator only)
func (h *SpinHandler) ResetGame(c *gin.Context) {
	if err := h.spinService.ResetGame(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game reset"})
}

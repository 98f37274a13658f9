package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spinthreads/wheel-backend/internal/middleware"
	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/services"
)

// SettingsHandler handles game settings requests
type SettingsHandler struct {
	settingsService *services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings returns the current game settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings writes operator settings changes (operator only)
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var settings models.GameSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.settingsService.UpdateSettings(c.Request.Context(), middleware.Actor(c), &settings); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// StartCountdown arms the game timer (operator only)
func (h *SettingsHandler) StartCountdown(c *gin.Context) {
	settings, err := h.settingsService.StartCountdown(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

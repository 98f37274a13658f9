package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spinthreads/wheel-backend/internal/middleware"
	"github.com/spinthreads/wheel-backend/internal/services"
)

// WinnerHandler handles winner history requests
type WinnerHandler struct {
	winnerService *services.WinnerService
}

// NewWinnerHandler creates a new WinnerHandler
func NewWinnerHandler(winnerService *services.WinnerService) *WinnerHandler {
	return &WinnerHandler{winnerService: winnerService}
}

// GetWinners lists winners, newest first
func (h *WinnerHandler) GetWinners(c *gin.Context) {
	page, limit := pagination(c)
	winners, err := h.winnerService.GetWinners(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, winners)
}

// GetLatestWinner returns the most recent winner
func (h *WinnerHandler) GetLatestWinner(c *gin.Context) {
	winner, err := h.winnerService.GetLatestWinner(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, winner)
}

// UpdateClaimStatus updates a winner's claim status (operator only)
func (h *WinnerHandler) UpdateClaimStatus(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.winnerService.UpdateClaimStatus(c.Request.Context(), middleware.Actor(c), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Claim status updated"})
}

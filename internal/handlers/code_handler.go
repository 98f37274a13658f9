package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spinthreads/wheel-backend/internal/middleware"
	"github.com/spinthreads/wheel-backend/internal/services"
)

// CodeHandler handles purchase code requests
type CodeHandler struct {
	codeService  *services.CodeService
	entryService *services.EntryService
	userService  *services.UserService
}

// NewCodeHandler creates a new CodeHandler
func NewCodeHandler(codeService *services.CodeService, entryService *services.EntryService, userService *services.UserService) *CodeHandler {
	return &CodeHandler{codeService: codeService, entryService: entryService, userService: userService}
}

// GenerateCodes creates a batch of single-use codes (operator only)
func (h *CodeHandler) GenerateCodes(c *gin.Context) {
	var req struct {
		Count    int `json:"count" binding:"required"`
		Entries  int `json:"entries" binding:"required"`
		TTLHours int `json:"ttlHours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TTLHours <= 0 {
		req.TTLHours = 24 * 30
	}

	codes, err := h.codeService.GenerateCodes(c.Request.Context(), middleware.Actor(c),
		req.Count, req.Entries, time.Duration(req.TTLHours)*time.Hour)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, codes)
}

// ListCodes lists generated codes (operator only)
func (h *CodeHandler) ListCodes(c *gin.Context) {
	page, limit := pagination(c)
	codes, err := h.codeService.ListCodes(c.Request.Context(), middleware.Actor(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, codes)
}

// RedeemCode redeems a single-use code for the authenticated user
func (h *CodeHandler) RedeemCode(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := middleware.Actor(c)
	entries, err := h.entryService.CreditCode(c.Request.Context(), actor.ID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	// The actor snapshot predates the credit; re-read for the live total.
	user, err := h.userService.GetUserByID(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entriesAwarded": entries,
		"totalEntries":   user.TotalEntries,
	})
}

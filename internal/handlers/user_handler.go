package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spinthreads/wheel-backend/internal/middleware"
	"github.com/spinthreads/wheel-backend/internal/services"
)

// UserHandler handles user management requests
type UserHandler struct {
	userService  *services.UserService
	entryService *services.EntryService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, entryService *services.EntryService) *UserHandler {
	return &UserHandler{userService: userService, entryService: entryService}
}

// GetMe returns the authenticated user's own profile
func (h *UserHandler) GetMe(c *gin.Context) {
	actor := middleware.Actor(c)
	actor.Password = ""
	c.JSON(http.StatusOK, actor)
}

// GetMyEntries returns the authenticated user's entry audit trail
func (h *UserHandler) GetMyEntries(c *gin.Context) {
	actor := middleware.Actor(c)
	entries, err := h.entryService.GetEntriesByUser(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalEntries": actor.TotalEntries,
		"grants":       entries,
	})
}

// MarkCongratsSeen clears the winner congratulations prompt for the caller
func (h *UserHandler) MarkCongratsSeen(c *gin.Context) {
	actor := middleware.Actor(c)
	if err := h.userService.MarkCongratsSeen(c.Request.Context(), actor.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Acknowledged"})
}

// GetUsers lists all users (operator only)
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	for _, u := range users {
		u.Password = ""
	}
	c.JSON(http.StatusOK, users)
}

// GetUser retrieves a single user (operator only)
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	user.Password = ""
	c.JSON(http.StatusOK, user)
}

// SetBlocked blocks or unblocks a user (operator only)
func (h *UserHandler) SetBlocked(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Blocked bool `json:"blocked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.userService.SetBlocked(c.Request.Context(), middleware.Actor(c), id, req.Blocked); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

// DeleteUser removes a user (operator only)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.userService.DeleteUser(c.Request.Context(), middleware.Actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

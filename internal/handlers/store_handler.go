package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spinthreads/wheel-backend/internal/middleware"
	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/services"
)

// StoreHandler handles catalog and purchase requests
type StoreHandler struct {
	storeService *services.StoreService
	userService  *services.UserService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService *services.StoreService, userService *services.UserService) *StoreHandler {
	return &StoreHandler{storeService: storeService, userService: userService}
}

// ListItems lists catalog items. Participants see active items only;
// operators see everything.
func (h *StoreHandler) ListItems(c *gin.Context) {
	actor := middleware.Actor(c)
	activeOnly := actor == nil || actor.Role != models.RoleOperator
	items, err := h.storeService.ListItems(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItem retrieves one catalog item
func (h *StoreHandler) GetItem(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.storeService.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateItem adds a catalog item (operator only)
func (h *StoreHandler) CreateItem(c *gin.Context) {
	var item models.StoreItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.storeService.CreateItem(c.Request.Context(), middleware.Actor(c), &item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem updates a catalog item (operator only)
func (h *StoreHandler) UpdateItem(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var item models.StoreItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ID = id
	if err := h.storeService.UpdateItem(c.Request.Context(), middleware.Actor(c), &item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes a catalog item (operator only)
func (h *StoreHandler) DeleteItem(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.storeService.DeleteItem(c.Request.Context(), middleware.Actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// Purchase records a purchase for the authenticated user and credits the
// corresponding wheel entries.
func (h *StoreHandler) Purchase(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Units int `json:"units" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := middleware.Actor(c)
	entries, err := h.storeService.Purchase(c.Request.Context(), actor.ID, id, req.Units)
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

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spinthreads/wheel-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondError translates service errors into HTTP responses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, services.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, services.ErrSpinInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "A spin is already in progress"})
	case errors.Is(err, services.ErrEmptyPool):
		c.JSON(http.StatusConflict, gin.H{"error": "No eligible participants to draw from"})
	case errors.Is(err, services.ErrCodeInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code not recognized"})
	case errors.Is(err, services.ErrCodeAlreadyUsed):
		c.JSON(http.StatusConflict, gin.H{"error": "Code has already been used"})
	case errors.Is(err, services.ErrCodeExpired):
		c.JSON(http.StatusGone, gin.H{"error": "Code has expired"})
	case errors.Is(err, services.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
	case errors.Is(err, services.ErrInvalidClaimStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid claim status"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// objectIDParam parses an ObjectID path parameter, writing a 400 on failure
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return primitive.NilObjectID, false
	}
	return id, true
}

// pagination reads page/limit query parameters with sane defaults
func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spinthreads/wheel-backend/internal/config"
	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/services"
	"github.com/spinthreads/wheel-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context keys set by the auth middleware
const (
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
	CtxActor    = "actor"
)

// JWTAuthMiddleware validates the bearer token and stores the subject
// claims in the request context.
func JWTAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const bearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}
		if !strings.HasPrefix(authHeader, bearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer"})
			return
		}

		claims, err := utils.ValidateJWT(authHeader[len(bearerSchema):], cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		sub, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		if sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		c.Set(CtxUserID, sub)
		c.Set(CtxUserRole, role)
		c.Next()
	}
}

// ActorMiddleware resolves the authenticated user document and stores it
// for handlers that run capability checks.
func ActorMiddleware(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		idHex := c.GetString(CtxUserID)
		id, err := primitive.ObjectIDFromHex(idHex)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
			return
		}
		actor, err := userService.GetUserByID(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			return
		}
		if actor.IsBlocked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is blocked"})
			return
		}
		c.Set(CtxActor, actor)
		c.Next()
	}
}

// RequireOperator aborts unless the resolved actor holds the operator role
func RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := Actor(c)
		if actor == nil || actor.Role != models.RoleOperator {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Operator access required"})
			return
		}
		c.Next()
	}
}

// Actor returns the resolved user for the request, or nil
func Actor(c *gin.Context) *models.User {
	v, ok := c.Get(CtxActor)
	if !ok {
		return nil
	}
	actor, _ := v.(*models.User)
	return actor
}

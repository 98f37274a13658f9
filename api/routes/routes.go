package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/spinthreads/wheel-backend/internal/config"
	"github.com/spinthreads/wheel-backend/internal/handlers"
	"github.com/spinthreads/wheel-backend/internal/middleware"
	"github.com/spinthreads/wheel-backend/internal/services"
)

// HandlerDependencies bundles the handlers wired in main
type HandlerDependencies struct {
	AuthHandler     *handlers.AuthHandler
	UserHandler     *handlers.UserHandler
	SpinHandler     *handlers.SpinHandler
	SettingsHandler *handlers.SettingsHandler
	CodeHandler     *handlers.CodeHandler
	StoreHandler    *handlers.StoreHandler
	WinnerHandler   *handlers.WinnerHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, userService *services.UserService, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.ResponseTimeMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		public.GET("/settings", deps.SettingsHandler.GetSettings)
		public.GET("/winners/latest", deps.WinnerHandler.GetLatestWinner)
	}

	// Authenticated routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	protected.Use(middleware.ActorMiddleware(userService))
	{
		me := protected.Group("/me")
		{
			me.GET("", deps.UserHandler.GetMe)
			me.GET("/entries", deps.UserHandler.GetMyEntries)
			me.POST("/congrats-seen", deps.UserHandler.MarkCongratsSeen)
		}

		protected.POST("/codes/redeem", deps.CodeHandler.RedeemCode)

		store := protected.Group("/store")
		{
			store.GET("/items", deps.StoreHandler.ListItems)
			store.GET("/items/:id", deps.StoreHandler.GetItem)
			store.POST("/items/:id/purchase", deps.StoreHandler.Purchase)
		}

		protected.GET("/winners", deps.WinnerHandler.GetWinners)
	}

	// Operator routes
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg))
	admin.Use(middleware.ActorMiddleware(userService))
	admin.Use(middleware.RequireOperator())
	{
		users := admin.Group("/users")
		{
			users.GET("", deps.UserHandler.GetUsers)
			users.GET("/:id", deps.UserHandler.GetUser)
			users.PUT("/:id/blocked", deps.UserHandler.SetBlocked)
			users.DELETE("/:id", deps.UserHandler.DeleteUser)
		}

		spins := admin.Group("/spins")
		{
			spins.GET("", deps.SpinHandler.GetSpins)
			spins.GET("/:id", deps.SpinHandler.GetSpin)
			spins.POST("/trigger", deps.SpinHandler.TriggerSpin)
		}
		admin.POST("/game/reset", deps.SpinHandler.ResetGame)

		settings := admin.Group("/settings")
		{
			settings.PUT("", deps.SettingsHandler.UpdateSettings)
			settings.POST("/countdown/start", deps.SettingsHandler.StartCountdown)
		}

		codes := admin.Group("/codes")
		{
			codes.GET("", deps.CodeHandler.ListCodes)
			codes.POST("/generate", deps.CodeHandler.GenerateCodes)
		}

		items := admin.Group("/store/items")
		{
			items.POST("", deps.StoreHandler.CreateItem)
			items.PUT("/:id", deps.StoreHandler.UpdateItem)
			items.DELETE("/:id", deps.StoreHandler.DeleteItem)
		}

		admin.PUT("/winners/:id/claim", deps.WinnerHandler.UpdateClaimStatus)
	}

	return router
}

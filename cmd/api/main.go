package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spinthreads/wheel-backend/api/routes"
	"github.com/spinthreads/wheel-backend/internal/config"
	"github.com/spinthreads/wheel-backend/internal/handlers"
	"github.com/spinthreads/wheel-backend/internal/repositories"
	mongorepo "github.com/spinthreads/wheel-backend/internal/repositories/mongodb"
	"github.com/spinthreads/wheel-backend/internal/rng"
	"github.com/spinthreads/wheel-backend/internal/scheduler"
	"github.com/spinthreads/wheel-backend/internal/services"
	"github.com/spinthreads/wheel-backend/pkg/broadcast"
	"github.com/spinthreads/wheel-backend/pkg/mailer"
	"github.com/spinthreads/wheel-backend/pkg/mongodb"
)

func main() {
	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel)

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("error disconnecting from MongoDB", "error", err)
		}
	}()
	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)
	var entryRepo repositories.WheelEntryRepository = mongorepo.NewWheelEntryRepository(db)
	var spinRepo repositories.SpinRepository = mongorepo.NewSpinRepository(db)
	var winnerRepo repositories.WinnerRepository = mongorepo.NewWinnerRepository(db)
	var settingsRepo repositories.GameSettingsRepository = mongorepo.NewGameSettingsRepository(db)
	var codeRepo repositories.PurchaseCodeRepository = mongorepo.NewPurchaseCodeRepository(db)
	var itemRepo repositories.StoreItemRepository = mongorepo.NewStoreItemRepository(db)

	// Outbound gateways
	var broadcaster broadcast.Broadcaster = broadcast.Nop{}
	if cfg.Redis.Enabled {
		redisBroadcaster, err := broadcast.NewRedisBroadcaster(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Error("failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer redisBroadcaster.Close()
		broadcaster = redisBroadcaster
	}

	var mail mailer.Mailer = mailer.MockMailer{}
	if !cfg.Mail.MockMail {
		mail = mailer.NewAPIMailer(cfg.Mail.BaseURL, cfg.Mail.APIKey, cfg.Mail.From)
	}

	// Services
	entryService := services.NewEntryService(userRepo, entryRepo, codeRepo, settingsRepo)
	authService := services.NewAuthService(userRepo, entryService, mail, cfg)
	userService := services.NewUserService(userRepo)
	spinService := services.NewSpinService(userRepo, spinRepo, winnerRepo, entryRepo, codeRepo,
		settingsRepo, entryService, rng.NewCrypto(), broadcaster, mail)
	settingsService := services.NewSettingsService(settingsRepo, broadcaster)
	codeService := services.NewCodeService(codeRepo)
	storeService := services.NewStoreService(itemRepo, entryService)
	winnerService := services.NewWinnerService(winnerRepo)

	// Retry any ledger reset a crash left unfinished before serving traffic
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := spinService.ReconcilePendingResets(startupCtx); err != nil {
		slog.Error("startup reconciliation failed", "error", err)
	}
	cancelStartup()

	// Countdown scheduler
	schedCtx, stopScheduler := context.WithCancel(context.Background())
	countdown := scheduler.NewCountdown(settingsRepo, broadcaster, spinService,
		time.Duration(cfg.Game.TickSeconds)*time.Second)
	countdown.Start(schedCtx)

	router := routes.SetupRouter(cfg, userService, routes.HandlerDependencies{
		AuthHandler:     handlers.NewAuthHandler(authService),
		UserHandler:     handlers.NewUserHandler(userService, entryService),
		SpinHandler:     handlers.NewSpinHandler(spinService),
		SettingsHandler: handlers.NewSettingsHandler(settingsService),
		CodeHandler:     handlers.NewCodeHandler(codeService, entryService, userService),
		StoreHandler:    handlers.NewStoreHandler(storeService, userService),
		WinnerHandler:   handlers.NewWinnerHandler(winnerService),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	stopScheduler()
	countdown.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server exiting")
}

// setupLogger installs a JSON slog handler at the configured level
func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}

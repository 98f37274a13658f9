package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spinthreads/wheel-backend/internal/config"
	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/repositories"
	"github.com/spinthreads/wheel-backend/internal/utils"
	"github.com/spinthreads/wheel-backend/pkg/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and login
type AuthService struct {
	userRepo repositories.UserRepository
	entries  *EntryService
	mail     mailer.Mailer
	cfg      *config.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, entries *EntryService, mail mailer.Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		entries:  entries,
		mail:     mail,
		cfg:      cfg,
	}
}

// Register creates a participant account seeded with the baseline entry
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	_, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hashed),
		Role:         models.RoleParticipant,
		TotalEntries: 1, // registration baseline
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.entries.CreditRegistration(ctx, user); err != nil {
		slog.Error("failed to record registration grant", "error", err, "userId", user.ID)
	}

	if err := s.mail.Send(user.Email, mailer.TemplateWelcome, map[string]interface{}{"name": user.Name}); err != nil {
		slog.Error("failed to send welcome email", "error", err, "userId", user.ID)
	}

	slog.Info("user registered", "userId", user.ID)
	user.Password = ""
	return user, nil
}

// Login verifies credentials and issues a JWT
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), string(user.Role), s.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return &models.LoginResponse{Token: token, User: user}, nil
}

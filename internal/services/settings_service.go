package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/repositories"
	"github.com/spinthreads/wheel-backend/pkg/broadcast"
)

// SettingsService manages the singleton game settings document
type SettingsService struct {
	settingsRepo repositories.GameSettingsRepository
	broadcaster  broadcast.Broadcaster
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo repositories.GameSettingsRepository, broadcaster broadcast.Broadcaster) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		broadcaster:  broadcaster,
	}
}

// GetSettings returns the current settings
func (s *SettingsService) GetSettings(ctx context.Context) (*models.GameSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettings writes operator changes and broadcasts them to the wheel
// room so connected UIs refresh immediately.
func (s *SettingsService) UpdateSettings(ctx context.Context, actor *models.User, settings *models.GameSettings) error {
	if !Can(actor, CapManageSettings) {
		return ErrForbidden
	}
	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	settings.ID = current.ID
	settings.CreatedAt = current.CreatedAt
	settings.UpdatedBy = actor.Email
	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if err := s.broadcaster.Publish(ctx, broadcast.TopicWheelRoom, broadcast.Message{
		Event:   broadcast.EventSettingsChanged,
		Payload: settings,
	}); err != nil {
		slog.Error("failed to broadcast settings change", "error", err)
	}
	return nil
}

// StartCountdown arms the game timer for the configured duration
func (s *SettingsService) StartCountdown(ctx context.Context, actor *models.User) (*models.GameSettings, error) {
	if !Can(actor, CapManageSettings) {
		return nil, ErrForbidden
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	now := time.Now()
	settings.CountdownActive = true
	settings.GameStartTime = now
	settings.GameEndTime = now.Add(time.Duration(settings.TimerMinutes) * time.Minute)
	settings.UpdatedBy = actor.Email
	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save countdown: %w", err)
	}

	slog.Info("countdown started", "endTime", settings.GameEndTime)
	if err := s.broadcaster.Publish(ctx, broadcast.TopicWheelRoom, broadcast.Message{
		Event:   broadcast.EventSettingsChanged,
		Payload: settings,
	}); err != nil {
		slog.Error("failed to broadcast countdown start", "error", err)
	}
	return settings, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/repositories"
	"github.com/spinthreads/wheel-backend/internal/rng"
	"github.com/spinthreads/wheel-backend/pkg/broadcast"
	"github.com/spinthreads/wheel-backend/pkg/mailer"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SpinService orchestrates one full draw cycle: snapshot the pool, select a
// winner, persist spin and winner records, reset the ledger and notify.
type SpinService struct {
	userRepo     repositories.UserRepository
	spinRepo     repositories.SpinRepository
	winnerRepo   repositories.WinnerRepository
	entryRepo    repositories.WheelEntryRepository
	codeRepo     repositories.PurchaseCodeRepository
	settingsRepo repositories.GameSettingsRepository
	entries      *EntryService
	random       rng.Source
	broadcaster  broadcast.Broadcaster
	mail         mailer.Mailer

	// mu serializes spin triggers: two operators double-clicking "spin"
	// must not both draw from the same pool snapshot.
	mu sync.Mutex
}

// NewSpinService creates a new SpinService
func NewSpinService(
	userRepo repositories.UserRepository,
	spinRepo repositories.SpinRepository,
	winnerRepo repositories.WinnerRepository,
	entryRepo repositories.WheelEntryRepository,
	codeRepo repositories.PurchaseCodeRepository,
	settingsRepo repositories.GameSettingsRepository,
	entries *EntryService,
	random rng.Source,
	broadcaster broadcast.Broadcaster,
	mail mailer.Mailer,
) *SpinService {
	return &SpinService{
		userRepo:     userRepo,
		spinRepo:     spinRepo,
		winnerRepo:   winnerRepo,
		entryRepo:    entryRepo,
		codeRepo:     codeRepo,
		settingsRepo: settingsRepo,
		entries:      entries,
		random:       random,
		broadcaster:  broadcaster,
		mail:         mail,
	}
}

// TriggerSpin runs one draw. Failure before the spin completes aborts with
// no observable state change; once the completed spin is persisted it is
// the durable source of truth even if the ledger reset or notifications
// fail afterwards.
func (s *SpinService) TriggerSpin(ctx context.Context, initiator primitive.ObjectID, trigger models.SpinTrigger) (*models.SpinResult, error) {
	if !s.mu.TryLock() {
		return nil, ErrSpinInProgress
	}
	defer s.mu.Unlock()

	// 1. Snapshot the eligible pool.
	eligible, err := s.userRepo.FindEligibleParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch eligible participants: %w", err)
	}

	weighted := make([]rng.WeightedEntry, 0, len(eligible))
	participants := make([]models.SpinParticipant, 0, len(eligible))
	for _, u := range eligible {
		weighted = append(weighted, rng.WeightedEntry{UserID: u.ID, Name: u.Name, Weight: u.TotalEntries})
		participants = append(participants, models.SpinParticipant{UserID: u.ID, Name: u.Name, Entries: u.TotalEntries})
	}

	pool, err := rng.BuildPool(weighted)
	if err != nil {
		if errors.Is(err, rng.ErrEmptyPool) {
			return nil, ErrEmptyPool
		}
		return nil, fmt.Errorf("failed to build draw pool: %w", err)
	}

	// 2. Create the spin record with the full participant snapshot.
	spin := &models.Spin{
		Trigger:      trigger,
		InitiatedBy:  initiator,
		Status:       models.SpinStatusPending,
		Participants: participants,
		TotalEntries: pool.TotalWeight(),
	}
	if err := s.spinRepo.Create(ctx, spin); err != nil {
		return nil, fmt.Errorf("failed to create spin record: %w", err)
	}

	// 3. Select the winner and complete the spin. After this commit the
	// winner and completion time are never mutated again.
	drawn := pool.Draw(s.random)
	winner := models.SpinParticipant{UserID: drawn.UserID, Name: drawn.Name, Entries: drawn.Weight}
	completedAt := time.Now()

	spin.Status = models.SpinStatusCompleted
	spin.Winner = &winner
	spin.CompletedAt = completedAt
	if err := s.spinRepo.Update(ctx, spin); err != nil {
		// The pending spin never completed; cancel it so it cannot be
		// mistaken for an in-flight draw.
		spin.Status = models.SpinStatusCancelled
		spin.Winner = nil
		if cancelErr := s.spinRepo.Update(ctx, spin); cancelErr != nil {
			slog.Error("failed to cancel aborted spin", "error", cancelErr, "spinId", spin.ID)
		}
		return nil, fmt.Errorf("failed to complete spin: %w", err)
	}

	slog.Info("spin completed", "spinId", spin.ID, "winner", winner.UserID,
		"totalEntries", spin.TotalEntries, "participants", len(participants), "trigger", trigger)

	// 4-6. Finalize winner bookkeeping and reset the ledger. The spin is
	// durable now; anything that fails past this point is retried by the
	// reconciliation pass rather than rolled back.
	s.finalize(ctx, spin)

	// 7. Best-effort notifications, strictly after the durable state.
	s.notify(ctx, spin)

	return &models.SpinResult{
		SpinID:           spin.ID,
		Winner:           winner,
		TotalEntries:     spin.TotalEntries,
		ParticipantCount: len(participants),
		SpinTime:         completedAt,
	}, nil
}

// finalize creates the winner record, updates the winning user and resets
// the ledger. Each step is idempotent against the completed spin.
func (s *SpinService) finalize(ctx context.Context, spin *models.Spin) {
	prize := ""
	if settings, err := s.settingsRepo.Get(ctx); err == nil {
		prize = settings.PrizeName
	} else {
		slog.Error("failed to load settings for prize label", "error", err, "spinId", spin.ID)
	}

	if _, err := s.winnerRepo.FindBySpinID(ctx, spin.ID); errors.Is(err, mongo.ErrNoDocuments) {
		record := &models.Winner{
			UserID:      spin.Winner.UserID,
			DisplayName: spin.Winner.Name,
			SpinID:      spin.ID,
			WinDate:     spin.CompletedAt,
			Prize:       prize,
			ClaimStatus: models.ClaimStatusPending,
		}
		if err := s.winnerRepo.Create(ctx, record); err != nil {
			slog.Error("failed to create winner record", "error", err, "spinId", spin.ID)
		}
	} else if err != nil {
		slog.Error("failed to check for existing winner record", "error", err, "spinId", spin.ID)
	}

	if err := s.userRepo.MarkWinner(ctx, spin.Winner.UserID, spin.CompletedAt); err != nil {
		slog.Error("failed to mark winning user", "error", err, "spinId", spin.ID, "userId", spin.Winner.UserID)
	}

	if err := s.entries.ResetAllToBaseline(ctx); err != nil {
		// Leave LedgerReset false: the reconciliation pass retries it.
		slog.Error("post-spin ledger reset failed, reconciliation required", "error", err, "spinId", spin.ID)
		return
	}
	if err := s.spinRepo.MarkLedgerReset(ctx, spin.ID); err != nil {
		slog.Error("failed to mark ledger reset on spin", "error", err, "spinId", spin.ID)
	}
}

// notify broadcasts the result and emails the winner. Failures are logged
// and never affect the outcome of the spin.
func (s *SpinService) notify(ctx context.Context, spin *models.Spin) {
	msg := broadcast.Message{
		Event: broadcast.EventSpinCompleted,
		Payload: models.SpinResult{
			SpinID:           spin.ID,
			Winner:           *spin.Winner,
			TotalEntries:     spin.TotalEntries,
			ParticipantCount: len(spin.Participants),
			SpinTime:         spin.CompletedAt,
		},
	}
	for _, topic := range []string{broadcast.TopicWheelRoom, broadcast.TopicAdminRoom} {
		if err := s.broadcaster.Publish(ctx, topic, msg); err != nil {
			slog.Error("failed to broadcast spin result", "error", err, "topic", topic, "spinId", spin.ID)
		}
	}

	winnerUser, err := s.userRepo.FindByID(ctx, spin.Winner.UserID)
	if err != nil {
		slog.Error("failed to load winner for email", "error", err, "userId", spin.Winner.UserID)
		return
	}
	if err := s.mail.Send(winnerUser.Email, mailer.TemplateWinner, map[string]interface{}{
		"name":    winnerUser.Name,
		"winDate": spin.CompletedAt,
	}); err != nil {
		slog.Error("failed to send winner email", "error", err, "userId", winnerUser.ID)
	}
}

// ReconcilePendingResets retries the baseline reset for completed spins
// whose reset never ran. Safe to call repeatedly; the reset is idempotent.
func (s *SpinService) ReconcilePendingResets(ctx context.Context) error {
	pending, err := s.spinRepo.FindCompletedWithoutReset(ctx)
	if err != nil {
		return fmt.Errorf("failed to find spins pending reset: %w", err)
	}
	for _, spin := range pending {
		slog.Warn("retrying ledger reset for completed spin", "spinId", spin.ID)
		if err := s.entries.ResetAllToBaseline(ctx); err != nil {
			return fmt.Errorf("reconciliation reset failed: %w", err)
		}
		if err := s.spinRepo.MarkLedgerReset(ctx, spin.ID); err != nil {
			return fmt.Errorf("failed to mark reconciled spin: %w", err)
		}
	}
	return nil
}

// GetSpinByID retrieves a spin with its immutable participant snapshot
func (s *SpinService) GetSpinByID(ctx context.Context, id primitive.ObjectID) (*models.Spin, error) {
	spin, err := s.spinRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return spin, nil
}

// GetSpins lists spins, newest first
func (s *SpinService) GetSpins(ctx context.Context, page, limit int) ([]*models.Spin, error) {
	return s.spinRepo.FindAll(ctx, page, limit)
}

// ResetGame destructively wipes spins, winners, entry grants and codes,
// then restores every participant to baseline. Explicit and irreversible;
// only the operator reset endpoint reaches it.
func (s *SpinService) ResetGame(ctx context.Context) error {
	if !s.mu.TryLock() {
		return ErrSpinInProgress
	}
	defer s.mu.Unlock()

	if err := s.spinRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to wipe spins: %w", err)
	}
	if err := s.winnerRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to wipe winners: %w", err)
	}
	if err := s.entryRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to wipe entry grants: %w", err)
	}
	if err := s.codeRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to wipe purchase codes: %w", err)
	}
	if err := s.entries.ResetAllToBaseline(ctx); err != nil {
		return fmt.Errorf("failed to reset participants: %w", err)
	}

	slog.Warn("game state reset by operator")
	if err := s.broadcaster.Publish(ctx, broadcast.TopicWheelRoom, broadcast.Message{Event: broadcast.EventGameReset}); err != nil {
		slog.Error("failed to broadcast game reset", "error", err)
	}
	return nil
}

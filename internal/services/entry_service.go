package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// EntryService is the entry ledger: it owns every mutation of a user's
// entry weight. The User.TotalEntries counter is authoritative; WheelEntry
// records are the append-only audit trail written alongside each credit.
type EntryService struct {
	userRepo     repositories.UserRepository
	entryRepo    repositories.WheelEntryRepository
	codeRepo     repositories.PurchaseCodeRepository
	settingsRepo repositories.GameSettingsRepository
}

// NewEntryService creates a new EntryService
func NewEntryService(
	userRepo repositories.UserRepository,
	entryRepo repositories.WheelEntryRepository,
	codeRepo repositories.PurchaseCodeRepository,
	settingsRepo repositories.GameSettingsRepository,
) *EntryService {
	return &EntryService{
		userRepo:     userRepo,
		entryRepo:    entryRepo,
		codeRepo:     codeRepo,
		settingsRepo: settingsRepo,
	}
}

// CreditRegistration seeds the baseline entry for a freshly created user.
// Called exactly once per user lifecycle, at registration. The user is
// expected to be persisted with TotalEntries=1 already; this records the
// audit entry.
func (s *EntryService) CreditRegistration(ctx context.Context, user *models.User) error {
	grant := &models.WheelEntry{
		UserID:  user.ID,
		Type:    models.EntryTypeRegistration,
		Entries: 1,
	}
	if err := s.entryRepo.Create(ctx, grant); err != nil {
		return fmt.Errorf("failed to record registration entry: %w", err)
	}
	return nil
}

// CreditPurchase adds units * entriesPerShirt entries to the user and bumps
// the purchase statistic. The counter mutation is one atomic $inc; no
// partial credit is possible.
func (s *EntryService) CreditPurchase(ctx context.Context, userID primitive.ObjectID, units int, source string) (int, error) {
	if units <= 0 {
		return 0, ErrInvalidQuantity
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load game settings: %w", err)
	}
	perShirt := settings.EntriesPerShirt
	if perShirt <= 0 {
		perShirt = 1
	}
	entries := units * perShirt

	if err := s.userRepo.IncrementEntries(ctx, userID, entries, units); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to credit purchase entries: %w", err)
	}

	grant := &models.WheelEntry{
		UserID:  userID,
		Type:    models.EntryTypePurchase,
		Entries: entries,
		Source:  source,
	}
	if err := s.entryRepo.Create(ctx, grant); err != nil {
		// The counter already committed; the missing audit row is logged,
		// not rolled back.
		slog.Error("failed to record purchase entry grant", "error", err, "userId", userID)
	}

	slog.Info("purchase credited", "userId", userID, "units", units, "entries", entries)
	return entries, nil
}

// CreditCode redeems a single-use code for the user. The redemption is one
// atomic conditional update keyed on the unused state, so two concurrent
// attempts on the same code yield exactly one success.
func (s *EntryService) CreditCode(ctx context.Context, userID primitive.ObjectID, rawCode string) (int, error) {
	code := NormalizeCode(rawCode)
	if code == "" {
		return 0, ErrCodeInvalid
	}
	now := time.Now()

	redeemed, err := s.codeRepo.Redeem(ctx, code, userID, now)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return 0, fmt.Errorf("failed to redeem code: %w", err)
		}
		// The conditional update matched nothing; classify why.
		existing, findErr := s.codeRepo.FindByCode(ctx, code)
		if findErr != nil {
			if errors.Is(findErr, mongo.ErrNoDocuments) {
				return 0, ErrCodeInvalid
			}
			return 0, fmt.Errorf("failed to look up code: %w", findErr)
		}
		if existing.IsUsed {
			return 0, ErrCodeAlreadyUsed
		}
		return 0, ErrCodeExpired
	}

	if err := s.userRepo.IncrementEntries(ctx, userID, redeemed.EntriesAwarded, 0); err != nil {
		// The code is burned but the credit failed; surface loudly so an
		// operator can re-credit manually.
		slog.Error("code marked used but entry credit failed", "error", err, "code", code, "userId", userID)
		return 0, fmt.Errorf("failed to credit code entries: %w", err)
	}

	grant := &models.WheelEntry{
		UserID:  userID,
		Type:    models.EntryTypePurchase,
		Entries: redeemed.EntriesAwarded,
		Source:  code,
	}
	if err := s.entryRepo.Create(ctx, grant); err != nil {
		slog.Error("failed to record code entry grant", "error", err, "userId", userID, "code", code)
	}

	slog.Info("code redeemed", "userId", userID, "code", code, "entries", redeemed.EntriesAwarded)
	return redeemed.EntriesAwarded, nil
}

// ResetAllToBaseline puts every participant back to the registration-only
// weight of 1 and clears purchase statistics. One bulk update; idempotent.
func (s *EntryService) ResetAllToBaseline(ctx context.Context) error {
	if err := s.userRepo.ResetEntriesToBaseline(ctx); err != nil {
		return fmt.Errorf("failed to reset entries to baseline: %w", err)
	}
	return nil
}

// GetEntriesByUser returns the audit trail for a user
func (s *EntryService) GetEntriesByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.WheelEntry, error) {
	return s.entryRepo.FindByUserID(ctx, userID)
}

// NormalizeCode canonicalizes a user-supplied code string
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

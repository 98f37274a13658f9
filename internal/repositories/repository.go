package repositories

import (
	"context"
	"time"

	"github.com/spinthreads/wheel-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	// FindEligibleParticipants returns unblocked participants with at least
	// one entry, in stable _id order so pool construction is deterministic.
	FindEligibleParticipants(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	// IncrementEntries atomically adds entries (and optionally shirts) to a user
	IncrementEntries(ctx context.Context, userID primitive.ObjectID, entries, shirts int) error
	// MarkWinner flags the user as winner, stamps the win date and clears
	// the seen-congratulations flag in one atomic update
	MarkWinner(ctx context.Context, userID primitive.ObjectID, winDate time.Time) error
	SetBlocked(ctx context.Context, userID primitive.ObjectID, blocked bool) error
	// SetCongratsSeen flips the congratulations flag in a single field
	// update so it cannot clobber concurrent entry credits
	SetCongratsSeen(ctx context.Context, userID primitive.ObjectID) error
	// ResetEntriesToBaseline sets every participant back to 1 entry and
	// clears purchase statistics. Bulk operation, idempotent.
	ResetEntriesToBaseline(ctx context.Context) error
}

// WheelEntryRepository defines the interface for the entry audit trail
type WheelEntryRepository interface {
	Create(ctx context.Context, entry *models.WheelEntry) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.WheelEntry, error)
	DeleteAll(ctx context.Context) error
}

// SpinRepository defines the interface for spin data operations
type SpinRepository interface {
	Create(ctx context.Context, spin *models.Spin) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Spin, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Spin, error)
	Update(ctx context.Context, spin *models.Spin) error
	// MarkLedgerReset flips LedgerReset on a completed spin
	MarkLedgerReset(ctx context.Context, spinID primitive.ObjectID) error
	// FindCompletedWithoutReset returns completed spins whose baseline
	// reset never ran, for the reconciliation pass
	FindCompletedWithoutReset(ctx context.Context) ([]*models.Spin, error)
	DeleteAll(ctx context.Context) error
}

// WinnerRepository defines the interface for winner data operations
type WinnerRepository interface {
	Create(ctx context.Context, winner *models.Winner) error
	FindBySpinID(ctx context.Context, spinID primitive.ObjectID) (*models.Winner, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Winner, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Winner, error)
	FindLatest(ctx context.Context) (*models.Winner, error)
	UpdateClaimStatus(ctx context.Context, id primitive.ObjectID, status string) error
	DeleteAll(ctx context.Context) error
}

// GameSettingsRepository manages the singleton settings document
type GameSettingsRepository interface {
	Get(ctx context.Context) (*models.GameSettings, error)
	Upsert(ctx context.Context, settings *models.GameSettings) error
	// DeactivateCountdown flips countdownActive to false only if it is
	// currently true; returns true if this call performed the flip
	DeactivateCountdown(ctx context.Context) (bool, error)
}

// PurchaseCodeRepository defines the interface for purchase code operations
type PurchaseCodeRepository interface {
	CreateMany(ctx context.Context, codes []*models.PurchaseCode) error
	FindByCode(ctx context.Context, code string) (*models.PurchaseCode, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.PurchaseCode, error)
	// Redeem atomically marks the code used by the given user. The filter
	// is keyed on isUsed=false and an unexpired ExpiresAt, so two
	// concurrent redemptions can never both succeed.
	Redeem(ctx context.Context, code string, userID primitive.ObjectID, now time.Time) (*models.PurchaseCode, error)
	DeleteAll(ctx context.Context) error
}

// StoreItemRepository defines the interface for catalog operations
type StoreItemRepository interface {
	Create(ctx context.Context, item *models.StoreItem) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.StoreItem, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*models.StoreItem, error)
	Update(ctx context.Context, item *models.StoreItem) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

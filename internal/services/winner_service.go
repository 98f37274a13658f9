package services

import (
	"context"
	"errors"

	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WinnerService exposes winner history and claim handling
type WinnerService struct {
	winnerRepo repositories.WinnerRepository
}

// NewWinnerService creates a new WinnerService
func NewWinnerService(winnerRepo repositories.WinnerRepository) *WinnerService {
	return &WinnerService{winnerRepo: winnerRepo}
}

// GetWinners lists winners, newest first
func (s *WinnerService) GetWinners(ctx context.Context, page, limit int) ([]*models.Winner, error) {
	return s.winnerRepo.FindAll(ctx, page, limit)
}

// GetLatestWinner returns the most recent winner, or ErrNotFound if none
func (s *WinnerService) GetLatestWinner(ctx context.Context) (*models.Winner, error) {
	winner, err := s.winnerRepo.FindLatest(ctx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return winner, nil
}

// UpdateClaimStatus updates a winner's claim status. Gated by
// CapManageWinners.
func (s *WinnerService) UpdateClaimStatus(ctx context.Context, actor *models.User, id primitive.ObjectID, status string) error {
	if !Can(actor, CapManageWinners) {
		return ErrForbidden
	}
	switch status {
	case models.ClaimStatusPending, models.ClaimStatusClaimed, models.ClaimStatusForfeited:
	default:
		return ErrInvalidClaimStatus
	}
	if err := s.winnerRepo.UpdateClaimStatus(ctx, id, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

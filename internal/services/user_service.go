package services

import (
	"context"
	"errors"

	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserService handles user management
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetAllUsers retrieves all users
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.FindAll(ctx)
}

// GetUserCount returns the total number of users
func (s *UserService) GetUserCount(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}

// SetBlocked blocks or unblocks a user. Blocked users stay in the database
// but are excluded from every draw pool. Gated by CapManageUsers.
func (s *UserService) SetBlocked(ctx context.Context, actor *models.User, userID primitive.ObjectID, blocked bool) error {
	if !Can(actor, CapManageUsers) {
		return ErrForbidden
	}
	if err := s.userRepo.SetBlocked(ctx, userID, blocked); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// DeleteUser removes a user. Gated by CapManageUsers; operators cannot
// delete other operators.
func (s *UserService) DeleteUser(ctx context.Context, actor *models.User, userID primitive.ObjectID) error {
	if !Can(actor, CapManageUsers) {
		return ErrForbidden
	}
	target, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	if target.Role == models.RoleOperator {
		return ErrForbidden
	}
	return s.userRepo.Delete(ctx, userID)
}

// MarkCongratsSeen clears the winner re-prompt for the given user. A single
// field update; a read-modify-write of the whole document would lose entry
// credits landing between the read and the write.
func (s *UserService) MarkCongratsSeen(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.userRepo.SetCongratsSeen(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

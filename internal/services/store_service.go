package services

import (
	"context"
	"errors"

	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// StoreService manages the catalog and turns purchases into wheel entries
type StoreService struct {
	itemRepo repositories.StoreItemRepository
	entries  *EntryService
}

// NewStoreService creates a new StoreService
func NewStoreService(itemRepo repositories.StoreItemRepository, entries *EntryService) *StoreService {
	return &StoreService{itemRepo: itemRepo, entries: entries}
}

// ListItems lists catalog items; participants only see active ones
func (s *StoreService) ListItems(ctx context.Context, activeOnly bool) ([]*models.StoreItem, error) {
	return s.itemRepo.FindAll(ctx, activeOnly)
}

// GetItem retrieves one catalog item
func (s *StoreService) GetItem(ctx context.Context, id primitive.ObjectID) (*models.StoreItem, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// CreateItem adds a catalog item. Gated by CapManageCatalog.
func (s *StoreService) CreateItem(ctx context.Context, actor *models.User, item *models.StoreItem) error {
	if !Can(actor, CapManageCatalog) {
		return ErrForbidden
	}
	return s.itemRepo.Create(ctx, item)
}

// UpdateItem updates a catalog item. Gated by CapManageCatalog.
func (s *StoreService) UpdateItem(ctx context.Context, actor *models.User, item *models.StoreItem) error {
	if !Can(actor, CapManageCatalog) {
		return ErrForbidden
	}
	return s.itemRepo.Update(ctx, item)
}

// DeleteItem removes a catalog item. Gated by CapManageCatalog.
func (s *StoreService) DeleteItem(ctx context.Context, actor *models.User, id primitive.ObjectID) error {
	if !Can(actor, CapManageCatalog) {
		return ErrForbidden
	}
	return s.itemRepo.Delete(ctx, id)
}

// Purchase records a purchase of units of an item for the user and credits
// the corresponding wheel entries through the ledger.
func (s *StoreService) Purchase(ctx context.Context, userID, itemID primitive.ObjectID, units int) (int, error) {
	if units <= 0 {
		return 0, ErrInvalidQuantity
	}
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if !item.Active {
		return 0, ErrNotFound
	}
	return s.entries.CreditPurchase(ctx, userID, units, item.Name)
}

package mongodb

import (
	"context"
	"time"

	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repositories.StoreItemRepository = (*StoreItemRepository)(nil)

// StoreItemRepository handles MongoDB operations for the store catalog
type StoreItemRepository struct {
	collection *mongo.Collection
}

// NewStoreItemRepository creates a new StoreItemRepository
func NewStoreItemRepository(db *mongo.Database) *StoreItemRepository {
	return &StoreItemRepository{
		collection: db.Collection("store_items"),
	}
}

// Create inserts a new catalog item
func (r *StoreItemRepository) Create(ctx context.Context, item *models.StoreItem) error {
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, item)
	return err
}

// FindByID finds a catalog item by ID
func (r *StoreItemRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.StoreItem, error) {
	var item models.StoreItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindAll lists catalog items, optionally only active ones
func (r *StoreItemRepository) FindAll(ctx context.Context, activeOnly bool) ([]*models.StoreItem, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*models.StoreItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.StoreItem{}
	}
	return items, nil
}

// Update updates a catalog item
func (r *StoreItemRepository) Update(ctx context.Context, item *models.StoreItem) error {
	item.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": item.ID}, bson.M{"$set": item})
	return err
}

// Delete removes a catalog item
func (r *StoreItemRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

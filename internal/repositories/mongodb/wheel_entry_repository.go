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

var _ repositories.WheelEntryRepository = (*WheelEntryRepository)(nil)

// WheelEntryRepository handles MongoDB operations for the entry audit trail
type WheelEntryRepository struct {
	collection *mongo.Collection
}

// NewWheelEntryRepository creates a new WheelEntryRepository
func NewWheelEntryRepository(db *mongo.Database) *WheelEntryRepository {
	return &WheelEntryRepository{
		collection: db.Collection("wheel_entries"),
	}
}

// Create appends a new entry grant record
func (r *WheelEntryRepository) Create(ctx context.Context, entry *models.WheelEntry) error {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// FindByUserID finds all entry grants for a user, newest first
func (r *WheelEntryRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.WheelEntry, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.WheelEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.WheelEntry{}
	}
	return entries, nil
}

// DeleteAll wipes the audit trail. Only the explicit game reset calls this.
func (r *WheelEntryRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

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

var _ repositories.WinnerRepository = (*WinnerRepository)(nil)

// WinnerRepository handles MongoDB operations for Winner
type WinnerRepository struct {
	collection *mongo.Collection
}

// NewWinnerRepository creates a new WinnerRepository
func NewWinnerRepository(db *mongo.Database) *WinnerRepository {
	return &WinnerRepository{
		collection: db.Collection("winners"),
	}
}

// Create inserts a new winner record
func (r *WinnerRepository) Create(ctx context.Context, winner *models.Winner) error {
	winner.ID = primitive.NewObjectID()
	winner.CreatedAt = time.Now()
	winner.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, winner)
	return err
}

// FindBySpinID finds the winner record for a spin
func (r *WinnerRepository) FindBySpinID(ctx context.Context, spinID primitive.ObjectID) (*models.Winner, error) {
	var winner models.Winner
	err := r.collection.FindOne(ctx, bson.M{"spinId": spinID}).Decode(&winner)
	if err != nil {
		return nil, err
	}
	return &winner, nil
}

// FindByUserID finds all wins for a user
func (r *WinnerRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Winner, error) {
	opts := options.Find().SetSort(bson.M{"winDate": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var winners []*models.Winner
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, err
	}
	if winners == nil {
		winners = []*models.Winner{}
	}
	return winners, nil
}

// FindAll finds winners, newest first, with pagination
func (r *WinnerRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Winner, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.M{"winDate": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var winners []*models.Winner
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, err
	}
	if winners == nil {
		winners = []*models.Winner{}
	}
	return winners, nil
}

// FindLatest returns the most recent winner
func (r *WinnerRepository) FindLatest(ctx context.Context) (*models.Winner, error) {
	opts := options.FindOne().SetSort(bson.M{"winDate": -1})
	var winner models.Winner
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&winner)
	if err != nil {
		return nil, err
	}
	return &winner, nil
}

// UpdateClaimStatus updates the claim status of a winner record
func (r *WinnerRepository) UpdateClaimStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{"$set": bson.M{
		"claimStatus": status,
		"claimDate":   time.Now(),
		"updatedAt":   time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteAll wipes all winner records. Only the explicit game reset calls this.
func (r *WinnerRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

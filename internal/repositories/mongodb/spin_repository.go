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

var _ repositories.SpinRepository = (*SpinRepository)(nil)

// SpinRepository handles MongoDB operations for Spin
type SpinRepository struct {
	collection *mongo.Collection
}

// NewSpinRepository creates a new SpinRepository
func NewSpinRepository(db *mongo.Database) *SpinRepository {
	return &SpinRepository{
		collection: db.Collection("spins"),
	}
}

// Create inserts a new spin
func (r *SpinRepository) Create(ctx context.Context, spin *models.Spin) error {
	spin.CreatedAt = time.Now()
	spin.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, spin)
	if err != nil {
		return err
	}
	spin.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a spin by ID
func (r *SpinRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Spin, error) {
	var spin models.Spin
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&spin)
	if err != nil {
		return nil, err
	}
	return &spin, nil
}

// FindAll finds spins, newest first, with pagination
func (r *SpinRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Spin, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var spins []*models.Spin
	if err := cursor.All(ctx, &spins); err != nil {
		return nil, err
	}
	if spins == nil {
		spins = []*models.Spin{}
	}
	return spins, nil
}

// Update replaces a spin document
func (r *SpinRepository) Update(ctx context.Context, spin *models.Spin) error {
	spin.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": spin.ID}, spin)
	return err
}

// MarkLedgerReset records that the post-draw baseline reset ran for a spin
func (r *SpinRepository) MarkLedgerReset(ctx context.Context, spinID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"ledgerReset": true, "updatedAt": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": spinID}, update)
	return err
}

// FindCompletedWithoutReset returns completed spins whose ledger reset never
// ran. Used by the reconciliation pass.
func (r *SpinRepository) FindCompletedWithoutReset(ctx context.Context) ([]*models.Spin, error) {
	filter := bson.M{
		"status":      models.SpinStatusCompleted,
		"ledgerReset": false,
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var spins []*models.Spin
	if err := cursor.All(ctx, &spins); err != nil {
		return nil, err
	}
	if spins == nil {
		spins = []*models.Spin{}
	}
	return spins, nil
}

// DeleteAll wipes all spin records. Only the explicit game reset calls this.
func (r *SpinRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

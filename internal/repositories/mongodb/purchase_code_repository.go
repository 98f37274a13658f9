package mongodb

import (
	"context"
	"log/slog"
	"time"

	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repositories.PurchaseCodeRepository = (*PurchaseCodeRepository)(nil)

// PurchaseCodeRepository handles MongoDB operations for PurchaseCode
type PurchaseCodeRepository struct {
	collection *mongo.Collection
}

// NewPurchaseCodeRepository creates a new PurchaseCodeRepository. The unique
// index on code enforces cross-batch uniqueness of generated codes.
func NewPurchaseCodeRepository(db *mongo.Database) *PurchaseCodeRepository {
	r := &PurchaseCodeRepository{
		collection: db.Collection("purchase_codes"),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		slog.Warn("failed to ensure unique code index", "error", err)
	}
	return r
}

// CreateMany inserts a batch of freshly generated codes
func (r *PurchaseCodeRepository) CreateMany(ctx context.Context, codes []*models.PurchaseCode) error {
	docs := make([]interface{}, 0, len(codes))
	for _, c := range codes {
		c.ID = primitive.NewObjectID()
		c.CreatedAt = time.Now()
		docs = append(docs, c)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByCode finds a code by its (normalized) code string
func (r *PurchaseCodeRepository) FindByCode(ctx context.Context, code string) (*models.PurchaseCode, error) {
	var pc models.PurchaseCode
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&pc)
	if err != nil {
		return nil, err
	}
	return &pc, nil
}

// FindAll finds codes, newest first, with pagination
func (r *PurchaseCodeRepository) FindAll(ctx context.Context, page, limit int) ([]*models.PurchaseCode, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
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

	var codes []*models.PurchaseCode
	if err := cursor.All(ctx, &codes); err != nil {
		return nil, err
	}
	if codes == nil {
		codes = []*models.PurchaseCode{}
	}
	return codes, nil
}

// Redeem atomically claims an unused, unexpired code for a user. The single
// findOneAndUpdate keyed on isUsed=false guarantees that of two concurrent
// redemption attempts exactly one succeeds; the loser sees ErrNoDocuments
// and the caller classifies why.
func (r *PurchaseCodeRepository) Redeem(ctx context.Context, code string, userID primitive.ObjectID, now time.Time) (*models.PurchaseCode, error) {
	filter := bson.M{
		"code":      code,
		"isUsed":    false,
		"expiresAt": bson.M{"$gt": now},
	}
	update := bson.M{"$set": bson.M{
		"isUsed": true,
		"usedBy": userID,
		"usedAt": now,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var pc models.PurchaseCode
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&pc)
	if err != nil {
		return nil, err // mongo.ErrNoDocuments when used, expired or unknown
	}
	return &pc, nil
}

// DeleteAll wipes all codes. Only the explicit game reset calls this.
func (r *PurchaseCodeRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

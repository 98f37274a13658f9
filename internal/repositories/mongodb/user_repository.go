package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository handles MongoDB operations for User
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err // includes mongo.ErrNoDocuments
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll retrieves all users sorted by creation time
func (r *UserRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

// FindEligibleParticipants finds unblocked participants holding at least one
// entry. Sorted by _id so the draw pool is built in a stable order.
func (r *UserRepository) FindEligibleParticipants(ctx context.Context) ([]*models.User, error) {
	filter := bson.M{
		"role":         models.RoleParticipant,
		"isBlocked":    bson.M{"$ne": true},
		"totalEntries": bson.M{"$gt": 0},
	}
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

// Update updates an existing user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": user})
	return err
}

// Delete deletes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Count returns the total number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// IncrementEntries atomically adds entries (and shirts) to a user
func (r *UserRepository) IncrementEntries(ctx context.Context, userID primitive.ObjectID, entries, shirts int) error {
	if entries <= 0 {
		return errors.New("entries to add must be positive")
	}
	inc := bson.M{"totalEntries": entries}
	if shirts > 0 {
		inc["totalShirtsPurchased"] = shirts
	}
	update := bson.M{
		"$inc": inc,
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkWinner flags the user as the latest winner in a single update
func (r *UserRepository) MarkWinner(ctx context.Context, userID primitive.ObjectID, winDate time.Time) error {
	update := bson.M{"$set": bson.M{
		"isWinner":     true,
		"lastWinDate":  winDate,
		"seenCongrats": false,
		"updatedAt":    time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetBlocked toggles the blocked flag for a user
func (r *UserRepository) SetBlocked(ctx context.Context, userID primitive.ObjectID, blocked bool) error {
	update := bson.M{"$set": bson.M{"isBlocked": blocked, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetCongratsSeen flips the congratulations flag. A targeted $set only;
// writing the whole document here would race the atomic entry credits.
func (r *UserRepository) SetCongratsSeen(ctx context.Context, userID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"seenCongrats": true, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ResetEntriesToBaseline sets every participant back to the registration
// baseline of one entry and clears purchase statistics. Running it twice in
// a row produces the same state as running it once.
func (r *UserRepository) ResetEntriesToBaseline(ctx context.Context) error {
	filter := bson.M{"role": models.RoleParticipant}
	update := bson.M{"$set": bson.M{
		"totalEntries":         1,
		"totalShirtsPurchased": 0,
		"updatedAt":            time.Now(),
	}}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

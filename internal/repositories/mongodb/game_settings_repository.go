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

var _ repositories.GameSettingsRepository = (*GameSettingsRepository)(nil)

// GameSettingsRepository manages the singleton settings document. The
// collection holds at most one document; reads always fetch it fresh so no
// in-process cache can go stale across instances.
type GameSettingsRepository struct {
	collection *mongo.Collection
}

// NewGameSettingsRepository creates a new GameSettingsRepository
func NewGameSettingsRepository(db *mongo.Database) *GameSettingsRepository {
	return &GameSettingsRepository{
		collection: db.Collection("game_settings"),
	}
}

// Get returns the settings document, creating defaults if none exists yet
func (r *GameSettingsRepository) Get(ctx context.Context) (*models.GameSettings, error) {
	var settings models.GameSettings
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		settings = models.GameSettings{
			ID:              primitive.NewObjectID(),
			TimerMinutes:    60,
			EntriesPerShirt: 10,
			PrizeName:       "Weekly Giveaway",
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		}
		if _, insErr := r.collection.InsertOne(ctx, &settings); insErr != nil {
			return nil, insErr
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert writes the settings document
func (r *GameSettingsRepository) Upsert(ctx context.Context, settings *models.GameSettings) error {
	settings.UpdatedAt = time.Now()
	if settings.ID.IsZero() {
		settings.ID = primitive.NewObjectID()
		settings.CreatedAt = time.Now()
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": settings.ID}, settings, opts)
	return err
}

// DeactivateCountdown flips countdownActive to false only if it is still
// true. The conditional filter makes concurrent expiry ticks race-safe:
// exactly one caller observes the flip.
func (r *GameSettingsRepository) DeactivateCountdown(ctx context.Context) (bool, error) {
	filter := bson.M{"countdownActive": true}
	update := bson.M{"$set": bson.M{"countdownActive": false, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

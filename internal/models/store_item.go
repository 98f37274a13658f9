package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoreItem is a catalog entry. Purchasing units of an item awards wheel
// entries according to GameSettings.EntriesPerShirt.
type StoreItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	PriceCents  int                `bson:"priceCents" json:"priceCents"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

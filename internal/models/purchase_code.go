package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PurchaseCode is a single-use code that awards wheel entries on
// redemption. A code transitions unused -> used exactly once; redemption
// after ExpiresAt is rejected even if the code is still unused.
type PurchaseCode struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code           string             `bson:"code" json:"code"` // stored upper-cased, unique
	EntriesAwarded int                `bson:"entriesAwarded" json:"entriesAwarded"`
	IsUsed         bool               `bson:"isUsed" json:"isUsed"`
	UsedBy         primitive.ObjectID `bson:"usedBy,omitempty" json:"usedBy,omitempty"`
	UsedAt         time.Time          `bson:"usedAt,omitempty" json:"usedAt,omitempty"`
	ExpiresAt      time.Time          `bson:"expiresAt" json:"expiresAt"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

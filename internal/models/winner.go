package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Winner is the denormalized record of a completed spin's outcome
type Winner struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	DisplayName string             `bson:"displayName" json:"displayName"`
	SpinID      primitive.ObjectID `bson:"spinId" json:"spinId"`
	WinDate     time.Time          `bson:"winDate" json:"winDate"`
	Prize       string             `bson:"prize" json:"prize"`
	ClaimStatus string             `bson:"claimStatus" json:"claimStatus"` // PENDING, CLAIMED, FORFEITED
	ClaimDate   time.Time          `bson:"claimDate,omitempty" json:"claimDate,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

const (
	ClaimStatusPending   = "PENDING"
	ClaimStatusClaimed   = "CLAIMED"
	ClaimStatusForfeited = "FORFEITED"
)

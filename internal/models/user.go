package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role determines what a user is allowed to do on the platform.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleOperator    Role = "operator"
)

// User represents a registered user. TotalEntries is the authoritative
// weight the user holds in the wheel; WheelEntry records are the audit trail.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name                 string             `bson:"name" json:"name"`
	Email                string             `bson:"email" json:"email"`
	Password             string             `bson:"password" json:"-"`
	Role                 Role               `bson:"role" json:"role"`
	TotalEntries         int                `bson:"totalEntries" json:"totalEntries"`
	TotalShirtsPurchased int                `bson:"totalShirtsPurchased" json:"totalShirtsPurchased"`
	IsWinner             bool               `bson:"isWinner" json:"isWinner"`
	LastWinDate          time.Time          `bson:"lastWinDate,omitempty" json:"lastWinDate,omitempty"`
	SeenCongrats         bool               `bson:"seenCongrats" json:"seenCongrats"`
	IsBlocked            bool               `bson:"isBlocked" json:"isBlocked"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

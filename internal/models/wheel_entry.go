package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EntryType records how a wheel entry was earned
type EntryType string

const (
	EntryTypeRegistration EntryType = "registration"
	EntryTypePurchase     EntryType = "purchase"
)

// WheelEntry is an append-only audit record of one entry-earning event.
// The authoritative weight lives on User.TotalEntries; these records exist
// so a credit can always be traced back to its source.
type WheelEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Type      EntryType          `bson:"type" json:"type"`
	Entries   int                `bson:"entries" json:"entries"`
	Source    string             `bson:"source,omitempty" json:"source,omitempty"` // e.g. code string or store item name
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

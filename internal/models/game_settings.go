package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameSettings is the singleton configuration document governing the
// current game round. At most one live document exists; operators mutate
// it, the scheduler and entry-award logic read it.
type GameSettings struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TimerMinutes     int                `bson:"timerMinutes" json:"timerMinutes"`
	AutoSpinEnabled  bool               `bson:"autoSpinEnabled" json:"autoSpinEnabled"`
	MaintenanceMode  bool               `bson:"maintenanceMode" json:"maintenanceMode"`
	PrizeName        string             `bson:"prizeName" json:"prizeName"`
	PrizeDescription string             `bson:"prizeDescription,omitempty" json:"prizeDescription,omitempty"`
	EntriesPerShirt  int                `bson:"entriesPerShirt" json:"entriesPerShirt"`
	CountdownActive  bool               `bson:"countdownActive" json:"countdownActive"`
	GameStartTime    time.Time          `bson:"gameStartTime,omitempty" json:"gameStartTime,omitempty"`
	GameEndTime      time.Time          `bson:"gameEndTime,omitempty" json:"gameEndTime,omitempty"`
	UpdatedBy        string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SpinStatus represents the lifecycle status of a spin
type SpinStatus string

const (
	SpinStatusPending   SpinStatus = "PENDING"
	SpinStatusCompleted SpinStatus = "COMPLETED"
	SpinStatusCancelled SpinStatus = "CANCELLED"
)

// SpinTrigger records what initiated a spin
type SpinTrigger string

const (
	SpinTriggerManual SpinTrigger = "manual"
	SpinTriggerTimer  SpinTrigger = "timer"
)

// SpinParticipant is an immutable snapshot of one participant's weight at
// draw time. It never changes after the spin completes, even though the
// live ledger is reset afterwards.
type SpinParticipant struct {
	UserID  primitive.ObjectID `bson:"userId" json:"userId"`
	Name    string             `bson:"name" json:"name"`
	Entries int                `bson:"entries" json:"entries"`
}

// Spin represents one draw attempt. Once Status is COMPLETED the winner and
// completion time are never mutated again; LedgerReset tracks whether the
// post-draw baseline reset has run, so a failed reset can be retried.
type Spin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Trigger      SpinTrigger        `bson:"trigger" json:"trigger"`
	InitiatedBy  primitive.ObjectID `bson:"initiatedBy,omitempty" json:"initiatedBy,omitempty"`
	Status       SpinStatus         `bson:"status" json:"status"`
	Participants []SpinParticipant  `bson:"participants" json:"participants"`
	Winner       *SpinParticipant   `bson:"winner,omitempty" json:"winner,omitempty"`
	TotalEntries int                `bson:"totalEntries" json:"totalEntries"`
	LedgerReset  bool               `bson:"ledgerReset" json:"ledgerReset"`
	CompletedAt  time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SpinResult is the summary surfaced to callers after a completed spin
type SpinResult struct {
	SpinID           primitive.ObjectID `json:"spinId"`
	Winner           SpinParticipant    `json:"winner"`
	TotalEntries     int                `json:"totalEntries"`
	ParticipantCount int                `json:"participantCount"`
	SpinTime         time.Time          `json:"spinTime"`
}

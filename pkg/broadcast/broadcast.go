// Package broadcast delivers fire-and-forget events to live observers.
// Subscribers (the web frontends) listen on well-known topics; publish
// failures are the caller's to log, never to roll back.
package broadcast

import "context"

// Topics subscribed to by the frontends
const (
	TopicWheelRoom = "wheel-room" // all connected players
	TopicAdminRoom = "admin-room" // operator dashboards
)

// Event names carried in the payload envelope
const (
	EventSpinCompleted    = "spin-completed"
	EventSettingsChanged  = "settings-changed"
	EventTimeRemaining    = "time-remaining"
	EventCountdownExpired = "countdown-expired"
	EventGameReset        = "game-reset"
)

// Message is the envelope published on a topic
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Broadcaster publishes a message to all subscribers of a topic
type Broadcaster interface {
	Publish(ctx context.Context, topic string, msg Message) error
}

// Nop is a Broadcaster that drops everything. Used when no Redis is
// configured and in tests that don't care about notifications.
type Nop struct{}

// Publish discards the message
func (Nop) Publish(ctx context.Context, topic string, msg Message) error {
	return nil
}

package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBroadcaster publishes messages over Redis pub/sub. Socket gateways
// subscribed to the topics relay them to browsers.
type RedisBroadcaster struct {
	rdb *redis.Client
}

// NewRedisBroadcaster connects to Redis and verifies the connection
func NewRedisBroadcaster(addr, password string, db int) (*RedisBroadcaster, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisBroadcaster{rdb: rdb}, nil
}

// Publish JSON-encodes the message and publishes it on the topic channel
func (b *RedisBroadcaster) Publish(ctx context.Context, topic string, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast message: %w", err)
	}
	return b.rdb.Publish(ctx, topic, payload).Err()
}

// Close releases the underlying Redis connection
func (b *RedisBroadcaster) Close() error {
	return b.rdb.Close()
}

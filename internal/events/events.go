// Package events publishes tracker notifications for other processes (a UI
// shell, a notifier) to pick up.
package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channel names.
const (
	StatusChanged   = "EVENT_STATUS_CHANGED"
	DigestGenerated = "EVENT_DIGEST_GENERATED"
)

// Publisher sends an event payload on a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

// RedisPublisher publishes JSON payloads with Redis PUBLISH.
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher returns a publisher backed by rdb.
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, channel, body).Err()
}

// Emit publishes and logs a failure instead of returning it. Events are
// best-effort.
func Emit(ctx context.Context, p Publisher, log *zap.Logger, channel string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, channel, payload); err != nil {
		log.Warn("publish failed", zap.String("channel", channel), zap.Error(err))
	}
}

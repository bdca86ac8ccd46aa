// Package push bridges server-pushed emergency events into the shared store
// and the full-screen alarm. The transport is an opaque event source; the
// Redis implementation rides Pub/Sub with one channel group per recipient.
package push

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/auroracare/aurora-cli/internal/logger"
)

// EmergencyEvent is the payload delivered over the push channel when an
// elder raises an SOS.
type EmergencyEvent struct {
	ID        string `json:"id"`
	ElderID   string `json:"elder_id"`
	ElderName string `json:"elder_name,omitempty"`
	Contact   string `json:"contact,omitempty"`
	At        string `json:"at,omitempty"`
}

// Channel is the opaque bidirectional event source the listener consumes.
// Reconnection is the channel implementation's own concern; consumers only
// react to delivered events.
type Channel interface {
	Connect(ctx context.Context) error
	Join(ctx context.Context, group string) error
	Events() <-chan EmergencyEvent
	Close() error
}

const channelPrefix = "emergency:"

// RedisChannel implements Channel over Redis Pub/Sub. go-redis re-subscribes
// after connection loss on its own, so no backoff lives here.
type RedisChannel struct {
	client *redis.Client
	events chan EmergencyEvent

	mu     sync.Mutex
	pubsub *redis.PubSub
	once   sync.Once
}

func NewRedisChannel(addr, password string) *RedisChannel {
	return &RedisChannel{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		events: make(chan EmergencyEvent, 8),
	}
}

func (c *RedisChannel) Connect(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(pingCtx).Err()
}

// Join subscribes to the channel group keyed by the recipient identity and
// starts forwarding decoded events.
func (c *RedisChannel) Join(ctx context.Context, group string) error {
	pubsub := c.client.Subscribe(ctx, channelPrefix+group)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return err
	}

	c.mu.Lock()
	c.pubsub = pubsub
	c.mu.Unlock()

	go func() {
		for msg := range pubsub.Channel() {
			var event EmergencyEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Warn("discarding malformed push payload", "error", err)
				continue
			}
			select {
			case c.events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (c *RedisChannel) Events() <-chan EmergencyEvent {
	return c.events
}

func (c *RedisChannel) Close() error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		if c.pubsub != nil {
			err = c.pubsub.Close()
		}
		c.mu.Unlock()
		if cerr := c.client.Close(); err == nil {
			err = cerr
		}
		close(c.events)
	})
	return err
}

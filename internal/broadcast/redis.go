package broadcast

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// envelope is the wire format published on Redis channels. The channel
// name is the room, so cross-node subscribers can PSUBSCRIBE game_*.
type envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// RedisPublisher mirrors room events onto Redis pub/sub channels so
// server nodes other than the one holding the game can fan them out to
// their own sockets. Publishing is fire-and-forget: errors are logged
// and dropped.
type RedisPublisher struct {
	client *redis.Client
	logger *log.Logger
}

// NewRedisPublisher wraps an established Redis client.
func NewRedisPublisher(client *redis.Client, logger *log.Logger) *RedisPublisher {
	if logger == nil {
		logger = log.Default()
	}
	return &RedisPublisher{client: client, logger: logger.WithPrefix("redis-broadcast")}
}

// Publish implements game.Broadcaster. The publish happens off the
// caller's goroutine so the engine never blocks on the network while
// holding its lock.
func (p *RedisPublisher) Publish(room, event string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("marshal payload failed", "room", room, "event", event, "error", err)
		return
	}
	msg, err := json.Marshal(envelope{Event: event, Payload: body})
	if err != nil {
		p.logger.Error("marshal envelope failed", "room", room, "event", event, "error", err)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := p.client.Publish(ctx, room, msg).Err(); err != nil {
			p.logger.Warn("publish failed", "room", room, "event", event, "error", err)
		}
	}()
}

package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"horizon-rp/quartermaster/internal/logging"
	"horizon-rp/quartermaster/internal/models/dtos"
)

const (
	presenceKeyPrefix  = "presence:"
	presenceSyncPrefix = "presence:sync:"
)

type redisMember struct {
	Viewer   dtos.PresenceViewer `json:"viewer"`
	LastSeen int64               `json:"last_seen"`
}

// RedisChannelHub is the multi-node ChannelHub. Members live in a hash per
// entity and membership changes fan out over pub/sub so every node rebuilds
// its local viewer lists.
type RedisChannelHub struct {
	client *redis.Client
}

// Ensure RedisChannelHub implements ChannelHub
var _ ChannelHub = (*RedisChannelHub)(nil)

// NewRedisChannelHub creates a Redis-backed hub.
func NewRedisChannelHub(client *redis.Client) (*RedisChannelHub, error) {
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisChannelHub{client: client}, nil
}

func (h *RedisChannelHub) Track(ctx context.Context, entity, clientKey string, viewer dtos.PresenceViewer) error {
	data, err := json.Marshal(redisMember{Viewer: viewer, LastSeen: time.Now().Unix()})
	if err != nil {
		return fmt.Errorf("failed to marshal presence member: %w", err)
	}

	pipe := h.client.TxPipeline()
	pipe.HSet(ctx, presenceKeyPrefix+entity, clientKey, data)
	pipe.Expire(ctx, presenceKeyPrefix+entity, 2*MemberTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to track presence member: %w", err)
	}

	return h.publishSync(ctx, entity)
}

func (h *RedisChannelHub) Touch(ctx context.Context, entity, clientKey string) error {
	raw, err := h.client.HGet(ctx, presenceKeyPrefix+entity, clientKey).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read presence member: %w", err)
	}

	var member redisMember
	if err := json.Unmarshal([]byte(raw), &member); err != nil {
		return fmt.Errorf("failed to unmarshal presence member: %w", err)
	}
	member.LastSeen = time.Now().Unix()

	data, err := json.Marshal(member)
	if err != nil {
		return fmt.Errorf("failed to marshal presence member: %w", err)
	}
	if err := h.client.HSet(ctx, presenceKeyPrefix+entity, clientKey, data).Err(); err != nil {
		return fmt.Errorf("failed to refresh presence member: %w", err)
	}
	return nil
}

func (h *RedisChannelHub) Untrack(ctx context.Context, entity, clientKey string) error {
	removed, err := h.client.HDel(ctx, presenceKeyPrefix+entity, clientKey).Result()
	if err != nil {
		return fmt.Errorf("failed to untrack presence member: %w", err)
	}
	if removed == 0 {
		return nil
	}
	return h.publishSync(ctx, entity)
}

func (h *RedisChannelHub) Members(ctx context.Context, entity string) (map[string]dtos.PresenceViewer, error) {
	raw, err := h.client.HGetAll(ctx, presenceKeyPrefix+entity).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read presence members: %w", err)
	}

	cutoff := time.Now().Add(-MemberTTL).Unix()
	result := make(map[string]dtos.PresenceViewer, len(raw))
	for key, value := range raw {
		var member redisMember
		if err := json.Unmarshal([]byte(value), &member); err != nil {
			logging.Warn(fmt.Sprintf("Dropping unreadable presence entry %s on %s: %v", key, entity, err))
			continue
		}
		if member.LastSeen < cutoff {
			continue
		}
		result[key] = member.Viewer
	}
	return result, nil
}

// Subscribe listens on the entity's sync channel. The pub/sub receiver runs
// until the context is cancelled or Unsubscribe is called.
func (h *RedisChannelHub) Subscribe(ctx context.Context, entity string, handler func()) (Unsubscribe, error) {
	pubsub := h.client.Subscribe(ctx, presenceSyncPrefix+entity)

	// Confirm the subscription before returning so callers never miss the
	// sync triggered by their own Track call.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to presence channel: %w", err)
	}

	go func() {
		for range pubsub.Channel() {
			handler()
		}
	}()

	return func() {
		if err := pubsub.Close(); err != nil {
			logging.Warn(fmt.Sprintf("Failed to close presence subscription for %s: %v", entity, err))
		}
	}, nil
}

func (h *RedisChannelHub) Sweep(ctx context.Context) (int, error) {
	removed := 0
	iter := h.client.Scan(ctx, 0, presenceKeyPrefix+"*", 100).Iterator()
	cutoff := time.Now().Add(-MemberTTL).Unix()

	for iter.Next(ctx) {
		key := iter.Val()
		if len(key) > len(presenceSyncPrefix) && key[:len(presenceSyncPrefix)] == presenceSyncPrefix {
			continue
		}
		entity := key[len(presenceKeyPrefix):]

		raw, err := h.client.HGetAll(ctx, key).Result()
		if err != nil {
			return removed, fmt.Errorf("failed to read presence members: %w", err)
		}

		expired := make([]string, 0)
		for field, value := range raw {
			var member redisMember
			if err := json.Unmarshal([]byte(value), &member); err != nil || member.LastSeen < cutoff {
				expired = append(expired, field)
			}
		}
		if len(expired) == 0 {
			continue
		}

		if err := h.client.HDel(ctx, key, expired...).Err(); err != nil {
			return removed, fmt.Errorf("failed to sweep presence members: %w", err)
		}
		removed += len(expired)
		if err := h.publishSync(ctx, entity); err != nil {
			logging.Warn("Failed to publish presence sync after sweep: " + err.Error())
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("presence sweep scan failed: %w", err)
	}

	return removed, nil
}

func (h *RedisChannelHub) Close() error {
	return nil
}

func (h *RedisChannelHub) publishSync(ctx context.Context, entity string) error {
	payload := strconv.FormatInt(time.Now().UnixNano(), 10)
	if err := h.client.Publish(ctx, presenceSyncPrefix+entity, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish presence sync: %w", err)
	}
	return nil
}

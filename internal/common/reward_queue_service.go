package common

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RewardQueueService provides queue functionality for spin-prize redelivery
// using Redis Streams
type RewardQueueService struct {
	client *redis.Client
}

// NewRewardQueueService creates a new reward queue service
func NewRewardQueueService(client *redis.Client) *RewardQueueService {
	return &RewardQueueService{
		client: client,
	}
}

// RewardQueueItem represents a queued prize delivery to be re-attempted
type RewardQueueItem struct {
	RewardID        uint   `json:"reward_id"`
	DiscordID       string `json:"discord_id"`
	DiscordUsername string `json:"discord_username"`
	PrizeKey        string `json:"prize_key"`
	QueuedAt        string `json:"queued_at"`
}

// Enqueue adds a reward to the delivery stream
// XADD stream_name * data <json>
func (s *RewardQueueService) Enqueue(ctx context.Context, streamName string, item *RewardQueueItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal reward item: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}

	_, err = s.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}

	return nil
}

// Dequeue reads a reward from the stream using a consumer group
// Returns (item, messageID, error); a nil item means timeout, not failure
func (s *RewardQueueService) Dequeue(ctx context.Context, streamName, groupName, consumerName string, blockTime time.Duration) (*RewardQueueItem, string, error) {
	args := &redis.XReadGroupArgs{
		Group:    groupName,
		Consumer: consumerName,
		Streams:  []string{streamName, ">"}, // ">" means new messages only
		Count:    1,
		Block:    blockTime,
	}

	streams, err := s.client.XReadGroup(ctx, args).Result()
	if err != nil {
		if err == redis.Nil {
			// No messages available (timeout)
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, "", nil
	}

	msg := streams[0].Messages[0]

	dataStr, ok := msg.Values["data"].(string)
	if !ok {
		return nil, "", fmt.Errorf("invalid message format: data field missing")
	}

	var item RewardQueueItem
	if err := json.Unmarshal([]byte(dataStr), &item); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal reward item: %w", err)
	}

	return &item, msg.ID, nil
}

// Ack acknowledges successful processing of a message
func (s *RewardQueueService) Ack(ctx context.Context, streamName, groupName, messageID string) error {
	return s.client.XAck(ctx, streamName, groupName, messageID).Err()
}

// CreateConsumerGroup creates a consumer group for the stream if it doesn't exist
// XGROUP CREATE stream group 0 MKSTREAM
func (s *RewardQueueService) CreateConsumerGroup(ctx context.Context, streamName, groupName string) error {
	err := s.client.XGroupCreateMkStream(ctx, streamName, groupName, "0").Err()
	if err != nil && err.Error() == "BUSYGROUP Consumer Group name already exists" {
		// Group already exists, this is fine
		return nil
	}
	return err
}

// QueueLength returns the number of messages in the stream
func (s *RewardQueueService) QueueLength(ctx context.Context, streamName string) (int64, error) {
	length, err := s.client.XLen(ctx, streamName).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue length: %w", err)
	}
	return length, nil
}

// ClaimStale claims messages pending longer than minIdleTime (likely from
// dead workers) and returns the parsed items with their message ids.
func (s *RewardQueueService) ClaimStale(ctx context.Context, streamName, groupName, consumerName string, minIdleTime time.Duration) ([]*RewardQueueItem, []string, error) {
	pending, err := s.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: streamName,
		Group:  groupName,
		Start:  "-",
		End:    "+",
		Count:  100,
	}).Result()

	if err != nil {
		return nil, nil, fmt.Errorf("failed to get pending messages: %w", err)
	}

	if len(pending) == 0 {
		return nil, nil, nil
	}

	var staleIDs []string
	for _, p := range pending {
		if p.Idle >= minIdleTime {
			staleIDs = append(staleIDs, p.ID)
		}
	}

	if len(staleIDs) == 0 {
		return nil, nil, nil
	}

	messages, err := s.client.XClaim(ctx, &redis.XClaimArgs{
		Stream:   streamName,
		Group:    groupName,
		Consumer: consumerName,
		MinIdle:  minIdleTime,
		Messages: staleIDs,
	}).Result()

	if err != nil {
		return nil, nil, fmt.Errorf("failed to claim stale messages: %w", err)
	}

	var items []*RewardQueueItem
	var messageIDs []string
	for _, msg := range messages {
		dataStr, ok := msg.Values["data"].(string)
		if !ok {
			continue
		}

		var item RewardQueueItem
		if err := json.Unmarshal([]byte(dataStr), &item); err != nil {
			log.Printf("[RewardQueue] Warning: failed to unmarshal claimed message: %v", err)
			continue
		}

		items = append(items, &item)
		messageIDs = append(messageIDs, msg.ID)
	}

	return items, messageIDs, nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/db/repositories"
	"horizon-rp/quartermaster/internal/logging"
	"horizon-rp/quartermaster/internal/metrics"
	"horizon-rp/quartermaster/internal/models/dtos"
	gormModels "horizon-rp/quartermaster/internal/models/gorm"
)

var ErrMissingPrizeKey = errors.New("prize_key is required")

// PrizeDeliverer is the game-server callback the prize path depends on.
type PrizeDeliverer interface {
	DeliverPrize(ctx context.Context, discordID string, prize constants.AutoPrize) error
}

// RewardEnqueuer pushes failed deliveries onto the retry stream.
type RewardEnqueuer interface {
	Enqueue(ctx context.Context, streamName string, item *common.RewardQueueItem) error
}

// PrizeService hands spin-wheel prizes to the game server. Prizes outside
// the auto-deliverable table are left to staff; failed callback deliveries
// land in pending_rewards and on the retry stream.
type PrizeService struct {
	rewards   *repositories.RewardRepository
	deliverer PrizeDeliverer
	queue     RewardEnqueuer
	metrics   *metrics.MetricsRegistry
}

func NewPrizeService(
	rewards *repositories.RewardRepository,
	deliverer PrizeDeliverer,
	queue RewardEnqueuer,
	reg *metrics.MetricsRegistry,
) *PrizeService {
	return &PrizeService{
		rewards:   rewards,
		deliverer: deliverer,
		queue:     queue,
		metrics:   reg,
	}
}

// ProcessPrizeWebhook handles one spin-prize claim.
func (s *PrizeService) ProcessPrizeWebhook(ctx context.Context, payload dtos.PrizeDeliveryPayload) (*dtos.WebhookResponse, error) {
	if !IsValidDiscordID(payload.DiscordID) {
		return nil, ErrInvalidDiscordID
	}
	if payload.PrizeKey == "" {
		return nil, ErrMissingPrizeKey
	}

	prize, auto := constants.AutoDeliverablePrizes[payload.PrizeKey]
	if !auto {
		// No outbound call for manual prizes; staff handle them in-game.
		s.countDelivery("manual")
		return &dtos.WebhookResponse{
			Success: false,
			Manual:  true,
			Error:   fmt.Sprintf("prize %q requires manual delivery", payload.PrizeKey),
		}, nil
	}

	if err := s.deliverer.DeliverPrize(ctx, payload.DiscordID, prize); err != nil {
		logging.Warn(fmt.Sprintf("Prize delivery failed for %s, queueing: %v", payload.DiscordID, err))
		return s.queueReward(ctx, payload, err)
	}

	s.countDelivery("delivered")
	return &dtos.WebhookResponse{
		Success: true,
		Applied: true,
		Message: prize.Label + " delivered",
	}, nil
}

// queueReward records the failed delivery so the queue worker can retry.
// The pending_rewards row is the source of truth; the stream message is a
// best-effort wake-up.
func (s *PrizeService) queueReward(ctx context.Context, payload dtos.PrizeDeliveryPayload, deliveryErr error) (*dtos.WebhookResponse, error) {
	reward := &gormModels.PendingReward{
		DiscordID:       payload.DiscordID,
		DiscordUsername: payload.DiscordUsername,
		PrizeKey:        payload.PrizeKey,
		Status:          gormModels.RewardStatusPending,
		Attempts:        1,
		LastError:       deliveryErr.Error(),
	}
	if err := s.rewards.Create(ctx, reward); err != nil {
		return nil, fmt.Errorf("failed to queue reward: %w", err)
	}

	if s.queue != nil {
		item := &common.RewardQueueItem{
			RewardID:        reward.ID,
			DiscordID:       payload.DiscordID,
			DiscordUsername: payload.DiscordUsername,
			PrizeKey:        payload.PrizeKey,
		}
		if err := s.queue.Enqueue(ctx, constants.RewardStreamName, item); err != nil {
			logging.Warn(fmt.Sprintf("Failed to enqueue reward %d: %v", reward.ID, err))
		}
	}

	s.countDelivery("queued")
	return &dtos.WebhookResponse{
		Success: true,
		Queued:  true,
		Message: "delivery failed, reward queued for retry",
	}, nil
}

// AttemptQueuedDelivery retries one pending reward. Already-delivered rows
// are skipped so duplicate stream messages cannot double-pay.
func (s *PrizeService) AttemptQueuedDelivery(ctx context.Context, rewardID uint) error {
	reward, err := s.rewards.FindByID(ctx, rewardID)
	if err != nil {
		return fmt.Errorf("failed to load pending reward %d: %w", rewardID, err)
	}
	if reward == nil || reward.Status != gormModels.RewardStatusPending {
		return nil
	}

	prize, auto := constants.AutoDeliverablePrizes[reward.PrizeKey]
	if !auto {
		// Table changed since the reward was queued.
		return s.rewards.RecordAttempt(ctx, reward.ID, "prize key no longer auto-deliverable")
	}

	if err := s.deliverer.DeliverPrize(ctx, reward.DiscordID, prize); err != nil {
		if recordErr := s.rewards.RecordAttempt(ctx, reward.ID, err.Error()); recordErr != nil {
			return recordErr
		}
		return fmt.Errorf("retry delivery failed for reward %d: %w", reward.ID, err)
	}

	s.countDelivery("delivered")
	return s.rewards.MarkDelivered(ctx, reward.ID)
}

func (s *PrizeService) countDelivery(outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.PrizeDeliveriesTotal.WithLabelValues(outcome).Inc()
}

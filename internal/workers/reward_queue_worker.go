package workers

import (
	"context"
	"fmt"
	"time"

	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/logging"
	"horizon-rp/quartermaster/internal/metrics"
	"horizon-rp/quartermaster/internal/services"
)

const (
	rewardDequeueBlock  = 5 * time.Second
	rewardClaimInterval = 2 * time.Minute
	rewardStaleAfter    = 5 * time.Minute
)

// RewardQueueWorker drains the spin-prize redelivery stream. Every message
// points at a pending_rewards row; the row stays the source of truth and the
// stream is only the wakeup signal, so a lost message is recoverable and a
// duplicate one is a no-op.
type RewardQueueWorker struct {
	workerID   string
	queue      *common.RewardQueueService
	prizes     *services.PrizeService
	metricsReg *metrics.MetricsRegistry
}

func NewRewardQueueWorker(workerID string, queue *common.RewardQueueService, prizes *services.PrizeService, metricsReg *metrics.MetricsRegistry) *RewardQueueWorker {
	return &RewardQueueWorker{
		workerID:   workerID,
		queue:      queue,
		prizes:     prizes,
		metricsReg: metricsReg,
	}
}

func (w *RewardQueueWorker) Start(ctx context.Context) {
	logging.Info(fmt.Sprintf("[RewardQueueWorker] Starting consumer %s", w.workerID))

	if err := w.queue.CreateConsumerGroup(ctx, constants.RewardStreamName, constants.RewardGroupName); err != nil {
		logging.Warn(fmt.Sprintf("[RewardQueueWorker] Failed to create consumer group: %v", err))
	}

	claimTicker := time.NewTicker(rewardClaimInterval)
	defer claimTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("[RewardQueueWorker] Stopping")
			return
		case <-claimTicker.C:
			w.claimStale(ctx)
		default:
			w.dequeueOne(ctx)
		}
	}
}

func (w *RewardQueueWorker) dequeueOne(ctx context.Context) {
	item, msgID, err := w.queue.Dequeue(ctx, constants.RewardStreamName, constants.RewardGroupName, w.workerID, rewardDequeueBlock)
	if err != nil {
		logging.Warn(fmt.Sprintf("[RewardQueueWorker] Dequeue failed: %v", err))
		time.Sleep(rewardDequeueBlock)
		return
	}
	if item == nil {
		w.updateDepth(ctx)
		return
	}

	w.process(ctx, item, msgID)
}

func (w *RewardQueueWorker) claimStale(ctx context.Context) {
	items, msgIDs, err := w.queue.ClaimStale(ctx, constants.RewardStreamName, constants.RewardGroupName, w.workerID, rewardStaleAfter)
	if err != nil {
		logging.Warn(fmt.Sprintf("[RewardQueueWorker] Stale claim failed: %v", err))
		return
	}

	for i, item := range items {
		w.process(ctx, item, msgIDs[i])
	}
}

func (w *RewardQueueWorker) process(ctx context.Context, item *common.RewardQueueItem, msgID string) {
	if err := w.prizes.AttemptQueuedDelivery(ctx, item.RewardID); err != nil {
		logging.Warn(fmt.Sprintf("[RewardQueueWorker] Redelivery of reward %d failed: %v", item.RewardID, err))
		// Leave the message pending; the claim pass retries it later.
		return
	}

	if err := w.queue.Ack(ctx, constants.RewardStreamName, constants.RewardGroupName, msgID); err != nil {
		logging.Warn(fmt.Sprintf("[RewardQueueWorker] Ack failed for %s: %v", msgID, err))
	}

	w.updateDepth(ctx)
}

func (w *RewardQueueWorker) updateDepth(ctx context.Context) {
	if w.metricsReg == nil {
		return
	}
	depth, err := w.queue.QueueLength(ctx, constants.RewardStreamName)
	if err != nil {
		return
	}
	w.metricsReg.RewardQueueDepth.Set(float64(depth))
}

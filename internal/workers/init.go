package workers

import (
	"context"
	"fmt"
	"os"

	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/metrics"
	"horizon-rp/quartermaster/internal/presence"
	"horizon-rp/quartermaster/internal/services"
)

type WorkersContainer struct {
	StaffStatus *StaffStatusWorker
	RewardQueue *RewardQueueWorker
	Reaper      *PresenceReaper
}

func InitWorkers(
	ctx context.Context,
	metricsReg *metrics.MetricsRegistry,
	staffStatus *services.StaffStatusService,
	prizes *services.PrizeService,
	queue *common.RewardQueueService,
	hub presence.ChannelHub,
) *WorkersContainer {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("reward-worker-%s-%d", hostname, os.Getpid())

	staffWorker := NewStaffStatusWorker(staffStatus, metricsReg)
	rewardWorker := NewRewardQueueWorker(consumerName, queue, prizes, metricsReg)
	reaper := NewPresenceReaper(hub)

	// Start workers
	go staffWorker.Start(ctx)
	go rewardWorker.Start(ctx)
	go reaper.Start(ctx)

	return &WorkersContainer{
		StaffStatus: staffWorker,
		RewardQueue: rewardWorker,
		Reaper:      reaper,
	}
}

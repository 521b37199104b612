package workers

import (
	"context"
	"fmt"
	"time"

	"horizon-rp/quartermaster/internal/logging"
	"horizon-rp/quartermaster/internal/metrics"
	"horizon-rp/quartermaster/internal/services"
)

const staffRefreshInterval = 30 * time.Second

// StaffStatusWorker re-merges the staff roster with the latest Discord
// presence snapshots on a fixed cadence, so the public status endpoint
// never pays the merge cost on-request.
type StaffStatusWorker struct {
	staffStatus *services.StaffStatusService
	metricsReg  *metrics.MetricsRegistry
}

func NewStaffStatusWorker(staffStatus *services.StaffStatusService, metricsReg *metrics.MetricsRegistry) *StaffStatusWorker {
	return &StaffStatusWorker{
		staffStatus: staffStatus,
		metricsReg:  metricsReg,
	}
}

func (w *StaffStatusWorker) Start(ctx context.Context) {
	logging.Info(fmt.Sprintf("[StaffStatusWorker] Starting with %s refresh interval", staffRefreshInterval))

	ticker := time.NewTicker(staffRefreshInterval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("[StaffStatusWorker] Stopping")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *StaffStatusWorker) refresh(ctx context.Context) {
	resp, err := w.staffStatus.Refresh(ctx)
	if err != nil {
		logging.Warn(fmt.Sprintf("[StaffStatusWorker] Refresh failed: %v", err))
		return
	}

	if w.metricsReg != nil {
		w.metricsReg.StaffOnlineCount.Set(float64(resp.OnlineCount))
	}
}

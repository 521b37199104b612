package workers

import (
	"context"
	"fmt"
	"time"

	"horizon-rp/quartermaster/internal/logging"
	"horizon-rp/quartermaster/internal/presence"
)

const reaperInterval = 30 * time.Second

// PresenceReaper sweeps presence channels for members whose heartbeats
// stopped without a leave, like a closed browser tab.
type PresenceReaper struct {
	hub presence.ChannelHub
}

func NewPresenceReaper(hub presence.ChannelHub) *PresenceReaper {
	return &PresenceReaper{hub: hub}
}

func (w *PresenceReaper) Start(ctx context.Context) {
	logging.Info(fmt.Sprintf("[PresenceReaper] Starting with %s sweep interval", reaperInterval))

	ticker := time.NewTicker(reaperInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("[PresenceReaper] Stopping")
			return
		case <-ticker.C:
			removed, err := w.hub.Sweep(ctx)
			if err != nil {
				logging.Warn(fmt.Sprintf("[PresenceReaper] Sweep failed: %v", err))
				continue
			}
			if removed > 0 {
				logging.Info(fmt.Sprintf("[PresenceReaper] Swept %d expired members", removed))
			}
		}
	}
}

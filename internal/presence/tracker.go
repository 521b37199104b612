package presence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/logging"
	"horizon-rp/quartermaster/internal/models/dtos"
)

// Delay before the single retry on the site-wide visitors channel.
const siteJoinRetryDelay = 2 * time.Second

// Tracker joins clients onto presence channels and hands back live
// subscriptions. Per-entity joins fail fast; the site-wide visitors
// channel retries once after a fixed delay.
type Tracker struct {
	hub ChannelHub
}

// NewTracker creates a tracker on top of a channel hub.
func NewTracker(hub ChannelHub) *Tracker {
	return &Tracker{hub: hub}
}

// Subscription is one client's membership on a presence channel. It keeps a
// viewer list that excludes the client itself, rebuilt on every sync event.
type Subscription struct {
	entity    string
	clientKey string
	hub       ChannelHub
	unsub     Unsubscribe

	mu      sync.RWMutex
	viewers []dtos.PresenceViewer
	closed  bool
}

// Join registers the viewer on the entity channel and subscribes to sync
// events. A subscribe failure is returned to the caller without retrying.
func (t *Tracker) Join(ctx context.Context, entity, clientKey string, viewer dtos.PresenceViewer) (*Subscription, error) {
	if viewer.JoinedAt.IsZero() {
		viewer.JoinedAt = time.Now()
	}

	sub := &Subscription{
		entity:    entity,
		clientKey: clientKey,
		hub:       t.hub,
	}

	unsub, err := t.hub.Subscribe(ctx, entity, sub.rebuild)
	if err != nil {
		return nil, fmt.Errorf("failed to join presence channel %s: %w", entity, err)
	}
	sub.unsub = unsub

	if err := t.hub.Track(ctx, entity, clientKey, viewer); err != nil {
		unsub()
		return nil, fmt.Errorf("failed to join presence channel %s: %w", entity, err)
	}

	// Seed the viewer list; later updates arrive via sync events.
	sub.rebuild()
	return sub, nil
}

// JoinSiteVisitors joins the site-wide visitors channel, retrying once after
// a fixed delay when the first attempt fails.
func (t *Tracker) JoinSiteVisitors(ctx context.Context, clientKey string, viewer dtos.PresenceViewer) (*Subscription, error) {
	sub, err := t.Join(ctx, constants.SiteVisitorsEntity, clientKey, viewer)
	if err == nil {
		return sub, nil
	}
	logging.Warn(fmt.Sprintf("Site visitors join failed, retrying once: %v", err))

	select {
	case <-time.After(siteJoinRetryDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return t.Join(ctx, constants.SiteVisitorsEntity, clientKey, viewer)
}

// rebuild refreshes the viewer list from the hub, dropping the local client.
func (s *Subscription) rebuild() {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return
	}

	members, err := s.hub.Members(context.Background(), s.entity)
	if err != nil {
		logging.Warn(fmt.Sprintf("Failed to rebuild viewers for %s: %v", s.entity, err))
		return
	}

	viewers := make([]dtos.PresenceViewer, 0, len(members))
	for key, viewer := range members {
		if key == s.clientKey {
			continue
		}
		viewers = append(viewers, viewer)
	}

	s.mu.Lock()
	s.viewers = viewers
	s.mu.Unlock()
}

// ActiveViewers returns the other members currently on the channel.
func (s *Subscription) ActiveViewers() []dtos.PresenceViewer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]dtos.PresenceViewer, len(s.viewers))
	copy(out, s.viewers)
	return out
}

// Heartbeat refreshes this client's liveness.
func (s *Subscription) Heartbeat(ctx context.Context) error {
	return s.hub.Touch(ctx, s.entity, s.clientKey)
}

// Leave untracks the client and detaches the sync handler. Safe to call more
// than once.
func (s *Subscription) Leave(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	if s.unsub != nil {
		s.unsub()
	}
	return s.hub.Untrack(ctx, s.entity, s.clientKey)
}

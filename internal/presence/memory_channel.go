package presence

import (
	"context"
	"sync"
	"time"

	"horizon-rp/quartermaster/internal/models/dtos"
)

type memoryMember struct {
	viewer   dtos.PresenceViewer
	lastSeen time.Time
}

// MemoryChannelHub is the single-node ChannelHub. It is the implementation
// used in tests and in deployments without Redis.
type MemoryChannelHub struct {
	mu       sync.RWMutex
	channels map[string]map[string]memoryMember
	subs     map[string]map[int]func()
	nextSub  int
	now      func() time.Time
}

// NewMemoryChannelHub creates an empty in-memory hub.
func NewMemoryChannelHub() *MemoryChannelHub {
	return &MemoryChannelHub{
		channels: make(map[string]map[string]memoryMember),
		subs:     make(map[string]map[int]func()),
		now:      time.Now,
	}
}

func (h *MemoryChannelHub) Track(ctx context.Context, entity, clientKey string, viewer dtos.PresenceViewer) error {
	h.mu.Lock()
	members, ok := h.channels[entity]
	if !ok {
		members = make(map[string]memoryMember)
		h.channels[entity] = members
	}
	members[clientKey] = memoryMember{viewer: viewer, lastSeen: h.now()}
	handlers := h.handlersLocked(entity)
	h.mu.Unlock()

	notify(handlers)
	return nil
}

func (h *MemoryChannelHub) Touch(ctx context.Context, entity, clientKey string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.channels[entity]
	if !ok {
		return nil
	}
	member, ok := members[clientKey]
	if !ok {
		return nil
	}
	member.lastSeen = h.now()
	members[clientKey] = member
	return nil
}

func (h *MemoryChannelHub) Untrack(ctx context.Context, entity, clientKey string) error {
	h.mu.Lock()
	var handlers []func()
	if members, ok := h.channels[entity]; ok {
		if _, tracked := members[clientKey]; tracked {
			delete(members, clientKey)
			if len(members) == 0 {
				delete(h.channels, entity)
			}
			handlers = h.handlersLocked(entity)
		}
	}
	h.mu.Unlock()

	notify(handlers)
	return nil
}

func (h *MemoryChannelHub) Members(ctx context.Context, entity string) (map[string]dtos.PresenceViewer, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	cutoff := h.now().Add(-MemberTTL)
	result := make(map[string]dtos.PresenceViewer)
	for key, member := range h.channels[entity] {
		if member.lastSeen.Before(cutoff) {
			continue
		}
		result[key] = member.viewer
	}
	return result, nil
}

func (h *MemoryChannelHub) Subscribe(ctx context.Context, entity string, handler func()) (Unsubscribe, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	handlers, ok := h.subs[entity]
	if !ok {
		handlers = make(map[int]func())
		h.subs[entity] = handlers
	}
	id := h.nextSub
	h.nextSub++
	handlers[id] = handler

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if handlers, ok := h.subs[entity]; ok {
			delete(handlers, id)
			if len(handlers) == 0 {
				delete(h.subs, entity)
			}
		}
	}, nil
}

func (h *MemoryChannelHub) Sweep(ctx context.Context) (int, error) {
	h.mu.Lock()
	cutoff := h.now().Add(-MemberTTL)
	removed := 0
	changed := make(map[string][]func())
	for entity, members := range h.channels {
		for key, member := range members {
			if member.lastSeen.Before(cutoff) {
				delete(members, key)
				removed++
				changed[entity] = h.handlersLocked(entity)
			}
		}
		if len(members) == 0 {
			delete(h.channels, entity)
		}
	}
	h.mu.Unlock()

	for _, handlers := range changed {
		notify(handlers)
	}
	return removed, nil
}

func (h *MemoryChannelHub) Close() error {
	return nil
}

// handlersLocked snapshots the handler list for an entity. Caller holds mu.
func (h *MemoryChannelHub) handlersLocked(entity string) []func() {
	handlers := h.subs[entity]
	if len(handlers) == 0 {
		return nil
	}
	out := make([]func(), 0, len(handlers))
	for _, fn := range handlers {
		out = append(out, fn)
	}
	return out
}

// notify runs sync handlers outside the hub lock.
func notify(handlers []func()) {
	for _, fn := range handlers {
		fn()
	}
}

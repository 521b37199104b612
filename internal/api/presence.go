package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/metrics"
	"horizon-rp/quartermaster/internal/models/dtos"
	"horizon-rp/quartermaster/internal/presence"
)

// PresenceHandlers is the HTTP facade over the presence tracker. Remote
// clients identify themselves with a client-generated key; the handler owns
// the server-side subscription for each of them. Entries whose client stops
// heartbeating are evicted on the same TTL the hub uses for members.
type PresenceHandlers struct {
	tracker    *presence.Tracker
	metricsReg *metrics.MetricsRegistry

	mu   sync.Mutex
	subs map[string]*registryEntry
}

type registryEntry struct {
	sub      *presence.Subscription
	lastSeen time.Time
}

func NewPresenceHandlers(tracker *presence.Tracker, metricsReg *metrics.MetricsRegistry) *PresenceHandlers {
	p := &PresenceHandlers{
		tracker:    tracker,
		metricsReg: metricsReg,
		subs:       make(map[string]*registryEntry),
	}
	go p.evictLoop()
	return p
}

func subKey(entity, clientKey string) string {
	return entity + "|" + clientKey
}

func (p *PresenceHandlers) evictLoop() {
	ticker := time.NewTicker(presence.MemberTTL)
	defer ticker.Stop()
	for range ticker.C {
		p.evictIdle(time.Now().Add(-presence.MemberTTL))
	}
}

// evictIdle closes and drops registry entries not heartbeated since the
// cutoff. Without this, clients that vanish without a leave would keep their
// subscription (and, on the Redis hub, its pub/sub receiver) alive forever.
func (p *PresenceHandlers) evictIdle(cutoff time.Time) int {
	p.mu.Lock()
	var stale []*registryEntry
	for key, entry := range p.subs {
		if entry.lastSeen.Before(cutoff) {
			stale = append(stale, entry)
			delete(p.subs, key)
		}
	}
	total := len(p.subs)
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, entry := range stale {
		_ = entry.sub.Leave(ctx)
	}

	p.setTracked(total)
	return len(stale)
}

func (p *PresenceHandlers) setTracked(total int) {
	if p.metricsReg != nil {
		p.metricsReg.PresenceMembersTracked.WithLabelValues("http").Set(float64(total))
	}
}

// JoinHandler handles POST /api/v1/presence/{entity}/join
func (p *PresenceHandlers) JoinHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		entity := chi.URLParam(r, "entity")

		var req dtos.PresenceJoinReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.ClientKey == "" {
			common.RespondError(w, initTime, nil, "client_key is required", http.StatusBadRequest)
			return
		}

		viewer := dtos.PresenceViewer{
			UserID:          req.UserID,
			DiscordID:       req.DiscordID,
			DiscordUsername: req.DiscordUsername,
			DiscordAvatar:   req.DiscordAvatar,
			IsStaff:         req.IsStaff,
			JoinedAt:        time.Now(),
		}

		// A rejoin with the same key replaces the old subscription. The old
		// one must be closed before Track runs, or its Leave would untrack
		// the member the rejoin just added.
		p.mu.Lock()
		old := p.subs[subKey(entity, req.ClientKey)]
		delete(p.subs, subKey(entity, req.ClientKey))
		p.mu.Unlock()
		if old != nil {
			_ = old.sub.Leave(r.Context())
		}

		var (
			sub *presence.Subscription
			err error
		)
		if entity == constants.SiteVisitorsEntity {
			sub, err = p.tracker.JoinSiteVisitors(r.Context(), req.ClientKey, viewer)
		} else {
			sub, err = p.tracker.Join(r.Context(), entity, req.ClientKey, viewer)
		}
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to join presence channel")
			return
		}

		p.mu.Lock()
		p.subs[subKey(entity, req.ClientKey)] = &registryEntry{sub: sub, lastSeen: time.Now()}
		total := len(p.subs)
		p.mu.Unlock()

		p.setTracked(total)

		common.RespondSuccess(w, initTime, "Joined presence channel", map[string]any{
			"active_viewers": sub.ActiveViewers(),
		})
	}
}

type presenceClientReq struct {
	ClientKey string `json:"client_key"`
}

func (p *PresenceHandlers) lookup(entity, clientKey string) *presence.Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry := p.subs[subKey(entity, clientKey)]
	if entry == nil {
		return nil
	}
	return entry.sub
}

// HeartbeatHandler handles POST /api/v1/presence/{entity}/heartbeat
func (p *PresenceHandlers) HeartbeatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		entity := chi.URLParam(r, "entity")

		var req presenceClientReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		p.mu.Lock()
		entry := p.subs[subKey(entity, req.ClientKey)]
		if entry != nil {
			entry.lastSeen = time.Now()
		}
		p.mu.Unlock()

		if entry == nil {
			common.RespondError(w, initTime, errors.New("not joined"), "Unknown presence client", http.StatusNotFound)
			return
		}

		if err := entry.sub.Heartbeat(r.Context()); err != nil {
			common.RespondError(w, initTime, err, "Failed to refresh presence")
			return
		}

		common.RespondSuccess(w, initTime, "Presence refreshed", nil)
	}
}

// ViewersHandler handles GET /api/v1/presence/{entity}/viewers
func (p *PresenceHandlers) ViewersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		entity := chi.URLParam(r, "entity")
		clientKey := r.URL.Query().Get("client_key")

		sub := p.lookup(entity, clientKey)
		if sub == nil {
			common.RespondError(w, initTime, errors.New("not joined"), "Unknown presence client", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Active viewers fetched", map[string]any{
			"active_viewers": sub.ActiveViewers(),
		})
	}
}

// LeaveHandler handles POST /api/v1/presence/{entity}/leave
func (p *PresenceHandlers) LeaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		entity := chi.URLParam(r, "entity")

		var req presenceClientReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		p.mu.Lock()
		entry := p.subs[subKey(entity, req.ClientKey)]
		delete(p.subs, subKey(entity, req.ClientKey))
		total := len(p.subs)
		p.mu.Unlock()

		p.setTracked(total)

		if entry == nil {
			// A leave after an eviction sweep or restart is fine.
			common.RespondSuccess(w, initTime, "Already left", nil)
			return
		}

		if err := entry.sub.Leave(r.Context()); err != nil {
			common.RespondError(w, initTime, err, "Failed to leave presence channel")
			return
		}

		common.RespondSuccess(w, initTime, "Left presence channel", nil)
	}
}

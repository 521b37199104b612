package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"horizon-rp/quartermaster/internal/presence"
)

func newPresenceTestRouter(t *testing.T) (*PresenceHandlers, *presence.MemoryChannelHub, chi.Router) {
	t.Helper()

	hub := presence.NewMemoryChannelHub()
	handlers := NewPresenceHandlers(presence.NewTracker(hub), nil)

	r := chi.NewRouter()
	r.Post("/presence/{entity}/join", handlers.JoinHandler())
	r.Post("/presence/{entity}/heartbeat", handlers.HeartbeatHandler())
	r.Get("/presence/{entity}/viewers", handlers.ViewersHandler())
	r.Post("/presence/{entity}/leave", handlers.LeaveHandler())
	return handlers, hub, r
}

func doPresencePost(t *testing.T, r chi.Router, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPresenceRejoinKeepsMemberTracked(t *testing.T) {
	_, hub, r := newPresenceTestRouter(t)

	if rec := doPresencePost(t, r, "/presence/ticket:1/join",
		`{"client_key":"k1","discord_username":"alice"}`); rec.Code != http.StatusOK {
		t.Fatalf("First join failed: %d %s", rec.Code, rec.Body.String())
	}
	if rec := doPresencePost(t, r, "/presence/ticket:1/join",
		`{"client_key":"k1","discord_username":"alice"}`); rec.Code != http.StatusOK {
		t.Fatalf("Rejoin failed: %d %s", rec.Code, rec.Body.String())
	}

	members, err := hub.Members(context.Background(), "ticket:1")
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("Expected the rejoined client to stay tracked, got %d members", len(members))
	}
	if _, ok := members["k1"]; !ok {
		t.Errorf("Expected member k1, got %v", members)
	}
}

func TestPresenceRejoinStaysVisibleToOthers(t *testing.T) {
	handlers, _, r := newPresenceTestRouter(t)

	doPresencePost(t, r, "/presence/ticket:1/join", `{"client_key":"k1","discord_username":"alice"}`)
	doPresencePost(t, r, "/presence/ticket:1/join", `{"client_key":"k1","discord_username":"alice"}`)
	doPresencePost(t, r, "/presence/ticket:1/join", `{"client_key":"k2","discord_username":"bob"}`)

	sub := handlers.lookup("ticket:1", "k2")
	if sub == nil {
		t.Fatal("k2 subscription missing")
	}
	viewers := sub.ActiveViewers()
	if len(viewers) != 1 || viewers[0].DiscordUsername != "alice" {
		t.Errorf("Expected k2 to see the rejoined alice, got %v", viewers)
	}
}

func TestPresenceEvictIdleClosesSubscriptions(t *testing.T) {
	handlers, hub, r := newPresenceTestRouter(t)

	doPresencePost(t, r, "/presence/ticket:1/join", `{"client_key":"k1"}`)
	doPresencePost(t, r, "/presence/ticket:1/join", `{"client_key":"k2"}`)

	// Only k2 keeps heartbeating.
	handlers.mu.Lock()
	handlers.subs[subKey("ticket:1", "k1")].lastSeen = time.Now().Add(-2 * presence.MemberTTL)
	handlers.mu.Unlock()

	if evicted := handlers.evictIdle(time.Now().Add(-presence.MemberTTL)); evicted != 1 {
		t.Fatalf("Expected 1 eviction, got %d", evicted)
	}

	if sub := handlers.lookup("ticket:1", "k1"); sub != nil {
		t.Error("Evicted client still in the registry")
	}
	if sub := handlers.lookup("ticket:1", "k2"); sub == nil {
		t.Error("Live client was evicted")
	}

	members, err := hub.Members(context.Background(), "ticket:1")
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if _, ok := members["k1"]; ok {
		t.Error("Evicted client still tracked on the hub")
	}
	if _, ok := members["k2"]; !ok {
		t.Error("Live client lost hub membership")
	}
}

func TestPresenceHeartbeatUnknownClient(t *testing.T) {
	_, _, r := newPresenceTestRouter(t)

	rec := doPresencePost(t, r, "/presence/ticket:1/heartbeat", `{"client_key":"ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown client, got %d", rec.Code)
	}
}

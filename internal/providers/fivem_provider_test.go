package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"horizon-rp/quartermaster/internal/constants"
)

func TestFivemProvider_DeliverPrize_Success(t *testing.T) {
	// Mock server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}

		if r.URL.Path != "/quartermaster/deliver" {
			t.Errorf("Expected path /quartermaster/deliver, got %s", r.URL.Path)
		}

		if auth := r.Header.Get("Authorization"); auth != "Bearer test-callback-key" {
			t.Errorf("Expected bearer callback key, got %q", auth)
		}

		var body deliverCallbackReq
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}
		if body.DiscordID != "123456789012345678" {
			t.Errorf("Expected discord id in payload, got %q", body.DiscordID)
		}
		if body.Type != "cash" || body.Amount != 50000 {
			t.Errorf("Unexpected prize payload: %+v", body)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(deliverCallbackResp{Success: true})
	}))
	defer server.Close()

	provider := &FivemProvider{
		BaseURL:     server.URL,
		CallbackKey: "test-callback-key",
		Client:      &http.Client{},
	}

	err := provider.DeliverPrize(context.Background(), "123456789012345678", constants.AutoPrize{
		Type:   "cash",
		Amount: 50000,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestFivemProvider_DeliverPrize_ServerRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(deliverCallbackResp{Success: false, Error: "player has no active character"})
	}))
	defer server.Close()

	provider := &FivemProvider{
		BaseURL:     server.URL,
		CallbackKey: "test-callback-key",
		Client:      &http.Client{},
	}

	err := provider.DeliverPrize(context.Background(), "123456789012345678", constants.AutoPrize{Type: "cash", Amount: 100})
	if err == nil {
		t.Fatal("Expected error when server reports success=false")
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %T", err)
	}
	if provErr.Code != constants.ErrCodeDeliveryFailed {
		t.Errorf("Expected code %s, got %s", constants.ErrCodeDeliveryFailed, provErr.Code)
	}
	if provErr.Details != "player has no active character" {
		t.Errorf("Expected upstream detail preserved, got %q", provErr.Details)
	}
}

func TestFivemProvider_DeliverPrize_BadKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	provider := &FivemProvider{
		BaseURL:     server.URL,
		CallbackKey: "wrong-key",
		Client:      &http.Client{},
	}

	err := provider.DeliverPrize(context.Background(), "123456789012345678", constants.AutoPrize{Type: "cash", Amount: 100})

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %v", err)
	}
	if provErr.Code != constants.ErrCodeInvalidAPIKey {
		t.Errorf("Expected code %s, got %s", constants.ErrCodeInvalidAPIKey, provErr.Code)
	}
}

func TestFivemProvider_DeliverPrize_MissingConfig(t *testing.T) {
	provider := &FivemProvider{Client: &http.Client{}}

	err := provider.DeliverPrize(context.Background(), "123456789012345678", constants.AutoPrize{Type: "cash", Amount: 100})

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %v", err)
	}
	if provErr.Code != constants.ErrCodeMissingConfig {
		t.Errorf("Expected code %s, got %s", constants.ErrCodeMissingConfig, provErr.Code)
	}
}

func TestFivemProvider_GetServerStatus_Online(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dynamic.json" {
			t.Errorf("Expected path /dynamic.json, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(dynamicStatusResp{Clients: 42, MaxClients: "64"})
	}))
	defer server.Close()

	provider := &FivemProvider{
		BaseURL: server.URL,
		Client:  &http.Client{},
	}

	status := provider.GetServerStatus(context.Background())
	if !status.Online {
		t.Fatal("Expected server to report online")
	}
	if status.PlayersCurrent != 42 || status.PlayersMax != 64 {
		t.Errorf("Expected 42/64 players, got %d/%d", status.PlayersCurrent, status.PlayersMax)
	}
}

func TestFivemProvider_GetServerStatus_Unreachable(t *testing.T) {
	// Point at a closed server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	provider := &FivemProvider{
		BaseURL: server.URL,
		Client:  &http.Client{},
	}

	status := provider.GetServerStatus(context.Background())
	if status.Online {
		t.Error("Expected offline status when the server is unreachable")
	}
	if status.PlayersCurrent != 0 {
		t.Errorf("Expected zero players when offline, got %d", status.PlayersCurrent)
	}
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"horizon-rp/quartermaster/internal/common"
)

type fakeExchanger struct {
	token   *common.SignedToken
	valErr  error
	markErr error
	burned  []string
}

func (f *fakeExchanger) ValidateToken(ctx context.Context, tokenString string) (*common.SignedToken, error) {
	if f.valErr != nil {
		return nil, f.valErr
	}
	return f.token, nil
}

func (f *fakeExchanger) MarkTokenAsUsed(ctx context.Context, tokenID string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.burned = append(f.burned, tokenID)
	return nil
}

func TestDashboardLoginBurnsToken(t *testing.T) {
	signer := &fakeExchanger{token: &common.SignedToken{
		DiscordID: "123456789012345678",
		Role:      "admin",
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}}
	handler := DashboardLoginHandler(signer)

	req := httptest.NewRequest(http.MethodGet, "/auth/login?token=abc", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(signer.burned) != 1 || signer.burned[0] != "jti-1" {
		t.Errorf("Expected jti-1 to be burned, got %v", signer.burned)
	}

	var body struct {
		Data struct {
			DiscordID string `json:"discord_id"`
			Role      string `json:"role"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body.Data.DiscordID != "123456789012345678" || body.Data.Role != "admin" {
		t.Errorf("Unexpected claims payload: %+v", body.Data)
	}
}

func TestDashboardLoginRejectsUsedToken(t *testing.T) {
	signer := &fakeExchanger{valErr: errors.New("token already used")}
	handler := DashboardLoginHandler(signer)

	req := httptest.NewRequest(http.MethodGet, "/auth/login?token=abc", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for a used token, got %d", rec.Code)
	}
}

func TestDashboardLoginMissingToken(t *testing.T) {
	handler := DashboardLoginHandler(&fakeExchanger{})

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without token, got %d", rec.Code)
	}
}

func TestDashboardLoginFailsClosedOnBurnError(t *testing.T) {
	signer := &fakeExchanger{
		token:   &common.SignedToken{TokenID: "jti-2", ExpiresAt: time.Now().Add(time.Minute)},
		markErr: errors.New("redis down"),
	}
	handler := DashboardLoginHandler(signer)

	req := httptest.NewRequest(http.MethodGet, "/auth/login?token=abc", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 when the jti cannot be burned, got %d", rec.Code)
	}
}

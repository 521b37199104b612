package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"

	"horizon-rp/quartermaster/internal/config"
	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/db/repositories"
	"horizon-rp/quartermaster/internal/models/dtos"
	gormModels "horizon-rp/quartermaster/internal/models/gorm"
	"horizon-rp/quartermaster/internal/services"
)

func setupWebhookTestDB(t *testing.T) *gormlib.DB {
	db, err := gormlib.Open(sqlite.Open(":memory:"), &gormlib.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&gormModels.User{},
		&gormModels.WebsiteBan{},
		&gormModels.DeviceFingerprint{},
		&gormModels.PendingReward{},
	); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

type stubDeliverer struct {
	err   error
	calls int
}

func (d *stubDeliverer) DeliverPrize(ctx context.Context, discordID string, prize constants.AutoPrize) error {
	d.calls++
	return d.err
}

func newBanWebhookServer(t *testing.T) http.HandlerFunc {
	db := setupWebhookTestDB(t)
	svc := services.NewBanService(
		repositories.NewUserRepositoryGORM(db),
		repositories.NewBanRepository(db),
		repositories.NewFingerprintRepository(db),
		nil,
		&config.Config{},
	)
	return BanWebhookHandler(svc, nil)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) (*httptest.ResponseRecorder, dtos.WebhookResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhooks/test", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	var envelope dtos.WebhookResponse
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("Webhook response is not valid JSON: %v (body %q)", err, rec.Body.String())
	}
	return rec, envelope
}

func TestBanWebhookHandlerRejectsInvalidJSON(t *testing.T) {
	handler := newBanWebhookServer(t)

	rec, envelope := postJSON(t, handler, "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
	if envelope.Success {
		t.Error("Expected success=false for malformed payload")
	}
	if envelope.Error == "" {
		t.Error("Expected an error message in the envelope")
	}
}

func TestBanWebhookHandlerRejectsMissingIdentifier(t *testing.T) {
	handler := newBanWebhookServer(t)

	rec, envelope := postJSON(t, handler, `{"action":"ban","is_permanent":true,"ban_reason":"cheating"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for payload without identifiers, got %d", rec.Code)
	}
	if envelope.Success {
		t.Error("Expected success=false")
	}
}

func TestBanWebhookHandlerRejectsUnknownAction(t *testing.T) {
	handler := newBanWebhookServer(t)

	rec, envelope := postJSON(t, handler,
		`{"action":"shadowban","is_permanent":true,"discord_id":"123456789012345678","ban_reason":"cheating"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown action, got %d", rec.Code)
	}
	if envelope.Success {
		t.Error("Expected success=false")
	}
}

func TestBanWebhookHandlerRecordsPermanentBan(t *testing.T) {
	handler := newBanWebhookServer(t)

	rec, envelope := postJSON(t, handler,
		`{"action":"ban","is_permanent":true,"discord_id":"123456789012345678","ban_reason":"cheating","banned_by":"console"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (body %q)", rec.Code, rec.Body.String())
	}
	if !envelope.Success || !envelope.Applied {
		t.Errorf("Expected success+applied, got %+v", envelope)
	}
}

func TestPrizeWebhookHandlerRejectsBadDiscordID(t *testing.T) {
	db := setupWebhookTestDB(t)
	deliverer := &stubDeliverer{}
	svc := services.NewPrizeService(repositories.NewRewardRepository(db), deliverer, nil, nil)
	handler := PrizeWebhookHandler(svc, nil)

	rec, envelope := postJSON(t, handler, `{"prize_key":"cash_small","discord_id":"not-a-snowflake"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
	if envelope.Success {
		t.Error("Expected success=false")
	}
	if deliverer.calls != 0 {
		t.Errorf("Expected no delivery attempt, got %d", deliverer.calls)
	}
}

func TestPrizeWebhookHandlerRejectsMissingPrizeKey(t *testing.T) {
	db := setupWebhookTestDB(t)
	deliverer := &stubDeliverer{}
	svc := services.NewPrizeService(repositories.NewRewardRepository(db), deliverer, nil, nil)
	handler := PrizeWebhookHandler(svc, nil)

	rec, envelope := postJSON(t, handler, `{"discord_id":"123456789012345678"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing prize_key, got %d", rec.Code)
	}
	if envelope.Success {
		t.Error("Expected success=false")
	}
	if deliverer.calls != 0 {
		t.Errorf("Expected no delivery attempt, got %d", deliverer.calls)
	}
}

func TestPrizeWebhookHandlerFlagsManualPrizes(t *testing.T) {
	db := setupWebhookTestDB(t)
	deliverer := &stubDeliverer{}
	svc := services.NewPrizeService(repositories.NewRewardRepository(db), deliverer, nil, nil)
	handler := PrizeWebhookHandler(svc, nil)

	rec, envelope := postJSON(t, handler, `{"prize_key":"golden_lambo","discord_id":"123456789012345678"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if envelope.Success {
		t.Error("Manual prizes must not report success")
	}
	if !envelope.Manual {
		t.Error("Expected manual=true for a prize outside the auto table")
	}
	if deliverer.calls != 0 {
		t.Errorf("Expected no callback for a manual prize, got %d calls", deliverer.calls)
	}
}

func TestWebhookPanicReturnsJSONEnvelope(t *testing.T) {
	// A nil service dereferences inside the handler, which must still come
	// back as a parseable envelope rather than a dropped connection.
	handler := PrizeWebhookHandler(nil, nil)

	rec, envelope := postJSON(t, handler, `{"prize_key":"cash_small","discord_id":"123456789012345678"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 after panic, got %d", rec.Code)
	}
	if envelope.Success {
		t.Error("Expected success=false after panic")
	}
	if envelope.Error != "internal error" {
		t.Errorf("Expected generic error message, got %q", envelope.Error)
	}
}

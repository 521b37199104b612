package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"

	"horizon-rp/quartermaster/internal/db/repositories"
	"horizon-rp/quartermaster/internal/models/dtos"
	gormModels "horizon-rp/quartermaster/internal/models/gorm"
)

func setupSpinTestDB(t *testing.T) *gormlib.DB {
	db, err := gormlib.Open(sqlite.Open(":memory:"), &gormlib.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&gormModels.GiftedSpin{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func TestSpinService_GiftAccumulates(t *testing.T) {
	db := setupSpinTestDB(t)
	svc := NewSpinService(repositories.NewSpinRepository(db))
	ctx := context.Background()

	if err := svc.Gift(ctx, dtos.GiftSpinsReq{DiscordID: "123456789012345678", Spins: 2}, "admin_jane"); err != nil {
		t.Fatalf("Expected no error gifting, got %v", err)
	}
	if err := svc.Gift(ctx, dtos.GiftSpinsReq{DiscordID: "123456789012345678", Spins: 3}, "admin_jane"); err != nil {
		t.Fatalf("Expected no error gifting again, got %v", err)
	}

	remaining, err := svc.Remaining(ctx, "123456789012345678")
	if err != nil {
		t.Fatalf("Expected no error reading balance, got %v", err)
	}
	if remaining != 5 {
		t.Errorf("Expected 5 spins after two gifts, got %d", remaining)
	}
}

func TestSpinService_ConsumeStopsAtZero(t *testing.T) {
	db := setupSpinTestDB(t)
	svc := NewSpinService(repositories.NewSpinRepository(db))
	ctx := context.Background()

	if err := svc.Gift(ctx, dtos.GiftSpinsReq{DiscordID: "123456789012345678", Spins: 1}, "admin_jane"); err != nil {
		t.Fatalf("Expected no error gifting, got %v", err)
	}

	if err := svc.Consume(ctx, "123456789012345678"); err != nil {
		t.Fatalf("Expected first consume to pass, got %v", err)
	}
	if err := svc.Consume(ctx, "123456789012345678"); !errors.Is(err, repositories.ErrNoSpinsRemaining) {
		t.Errorf("Expected ErrNoSpinsRemaining, got %v", err)
	}

	remaining, err := svc.Remaining(ctx, "123456789012345678")
	if err != nil {
		t.Fatalf("Expected no error reading balance, got %v", err)
	}
	if remaining != 0 {
		t.Errorf("Expected balance to stay at zero, got %d", remaining)
	}
}

func TestSpinService_GiftValidation(t *testing.T) {
	db := setupSpinTestDB(t)
	svc := NewSpinService(repositories.NewSpinRepository(db))
	ctx := context.Background()

	if err := svc.Gift(ctx, dtos.GiftSpinsReq{DiscordID: "bogus", Spins: 1}, "admin"); !errors.Is(err, ErrInvalidDiscordID) {
		t.Errorf("Expected ErrInvalidDiscordID, got %v", err)
	}
	if err := svc.Gift(ctx, dtos.GiftSpinsReq{DiscordID: "123456789012345678", Spins: 0}, "admin"); err == nil {
		t.Error("Expected error for zero spins")
	}
}

func TestSpinService_RemainingForUnknownUser(t *testing.T) {
	db := setupSpinTestDB(t)
	svc := NewSpinService(repositories.NewSpinRepository(db))

	remaining, err := svc.Remaining(context.Background(), "123456789012345678")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if remaining != 0 {
		t.Errorf("Expected zero balance for unknown user, got %d", remaining)
	}
}

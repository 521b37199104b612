package repositories

import (
	"context"

	"horizon-rp/quartermaster/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// BanRepository handles website_bans table operations
type BanRepository struct {
	db *gormlib.DB
}

// NewBanRepository creates a new website ban repository
func NewBanRepository(db *gormlib.DB) *BanRepository {
	return &BanRepository{db: db}
}

// Create inserts a new ban row
func (r *BanRepository) Create(ctx context.Context, ban *gorm.WebsiteBan) error {
	return r.db.WithContext(ctx).Create(ban).Error
}

// FindActiveByDiscordID returns the active ban rows for a Discord id
func (r *BanRepository) FindActiveByDiscordID(ctx context.Context, discordID string) ([]gorm.WebsiteBan, error) {
	var bans []gorm.WebsiteBan
	err := r.db.WithContext(ctx).
		Where("discord_id = ? AND is_active = ?", discordID, true).
		Find(&bans).Error
	if err != nil {
		return nil, err
	}
	return bans, nil
}

// Deactivate flips is_active=false on every active ban matching the
// discord or steam id. Rows are never deleted.
func (r *BanRepository) Deactivate(ctx context.Context, discordID, steamID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&gorm.WebsiteBan{}).
		Where("is_active = ?", true)

	switch {
	case discordID != "" && steamID != "":
		query = query.Where("discord_id = ? OR steam_id = ?", discordID, steamID)
	case discordID != "":
		query = query.Where("discord_id = ?", discordID)
	default:
		query = query.Where("steam_id = ?", steamID)
	}

	res := query.Update("is_active", false)
	return res.RowsAffected, res.Error
}

// FingerprintRepository handles device_fingerprints table operations
type FingerprintRepository struct {
	db *gormlib.DB
}

// NewFingerprintRepository creates a new device fingerprint repository
func NewFingerprintRepository(db *gormlib.DB) *FingerprintRepository {
	return &FingerprintRepository{db: db}
}

// ListByUser returns every fingerprint recorded for a user
func (r *FingerprintRepository) ListByUser(ctx context.Context, userID string) ([]gorm.DeviceFingerprint, error) {
	var prints []gorm.DeviceFingerprint
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&prints).Error
	if err != nil {
		return nil, err
	}
	return prints, nil
}

// SetBlockedForUser marks all of a user's fingerprints blocked or unblocked
func (r *FingerprintRepository) SetBlockedForUser(ctx context.Context, userID string, blocked bool) error {
	return r.db.WithContext(ctx).
		Model(&gorm.DeviceFingerprint{}).
		Where("user_id = ?", userID).
		Update("is_blocked", blocked).Error
}

// Record upserts a fingerprint observation for a user
func (r *FingerprintRepository) Record(ctx context.Context, print *gorm.DeviceFingerprint) error {
	var existing gorm.DeviceFingerprint
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND hash = ? AND ip_address = ?", print.UserID, print.Hash, print.IPAddress).
		First(&existing).Error

	if err == gormlib.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(print).Error
	}
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&existing).
		Update("last_seen_at", print.LastSeenAt).Error
}

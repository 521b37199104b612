package repositories

import (
	"context"

	"horizon-rp/quartermaster/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// ApplicationRepository handles whitelist_applications table operations
type ApplicationRepository struct {
	db *gormlib.DB
}

// NewApplicationRepository creates a new whitelist application repository
func NewApplicationRepository(db *gormlib.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a new application
func (r *ApplicationRepository) Create(ctx context.Context, app *gorm.WhitelistApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// FindByID returns an application, nil when missing
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*gorm.WhitelistApplication, error) {
	var app gorm.WhitelistApplication
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

// FindPendingByDiscordID returns the open application for a Discord user
func (r *ApplicationRepository) FindPendingByDiscordID(ctx context.Context, discordID string) (*gorm.WhitelistApplication, error) {
	var app gorm.WhitelistApplication
	err := r.db.WithContext(ctx).
		Where("discord_id = ? AND status = ?", discordID, gorm.ApplicationStatusPending).
		First(&app).Error
	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

// ListByStatus returns applications with the given status, newest first
func (r *ApplicationRepository) ListByStatus(ctx context.Context, status string, limit int) ([]gorm.WhitelistApplication, error) {
	var apps []gorm.WhitelistApplication

	query := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// SetStatus records a review outcome
func (r *ApplicationRepository) SetStatus(ctx context.Context, id, status, reviewedBy, note string) error {
	return r.db.WithContext(ctx).
		Model(&gorm.WhitelistApplication{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewedBy,
			"review_note": note,
		}).Error
}

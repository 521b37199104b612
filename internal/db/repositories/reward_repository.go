package repositories

import (
	"context"

	"horizon-rp/quartermaster/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// RewardRepository handles pending_rewards table operations
type RewardRepository struct {
	db *gormlib.DB
}

// NewRewardRepository creates a new pending reward repository
func NewRewardRepository(db *gormlib.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

// Create queues a reward row
func (r *RewardRepository) Create(ctx context.Context, reward *gorm.PendingReward) error {
	return r.db.WithContext(ctx).Create(reward).Error
}

// ListPending returns queued rewards oldest first
func (r *RewardRepository) ListPending(ctx context.Context, limit int) ([]gorm.PendingReward, error) {
	var rewards []gorm.PendingReward

	query := r.db.WithContext(ctx).
		Where("status = ?", gorm.RewardStatusPending).
		Order("created_at ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

// FindByID returns a reward row, nil when missing
func (r *RewardRepository) FindByID(ctx context.Context, id uint) (*gorm.PendingReward, error) {
	var reward gorm.PendingReward
	err := r.db.WithContext(ctx).First(&reward, id).Error
	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &reward, nil
}

// MarkDelivered flips a queued reward to delivered
func (r *RewardRepository) MarkDelivered(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&gorm.PendingReward{}).
		Where("id = ?", id).
		Update("status", gorm.RewardStatusDelivered).Error
}

// RecordAttempt increments the attempt counter and stores the last error
func (r *RewardRepository) RecordAttempt(ctx context.Context, id uint, lastError string) error {
	return r.db.WithContext(ctx).
		Model(&gorm.PendingReward{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":   gormlib.Expr("attempts + 1"),
			"last_error": lastError,
		}).Error
}

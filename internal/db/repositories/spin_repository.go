package repositories

import (
	"context"
	"errors"

	"horizon-rp/quartermaster/internal/models/gorm"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNoSpinsRemaining = errors.New("no spins remaining")

// SpinRepository handles gifted_spins table operations
type SpinRepository struct {
	db *gormlib.DB
}

// NewSpinRepository creates a new gifted spin repository
func NewSpinRepository(db *gormlib.DB) *SpinRepository {
	return &SpinRepository{db: db}
}

// Gift adds spins to a Discord user's balance, creating the row on first gift.
// ON CONFLICT (discord_id) DO UPDATE
func (r *SpinRepository) Gift(ctx context.Context, discordID, giftedBy string, spins int) error {
	row := &gorm.GiftedSpin{
		DiscordID:      discordID,
		SpinsRemaining: spins,
		GiftedBy:       giftedBy,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "discord_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"spins_remaining": gormlib.Expr("spins_remaining + ?", spins),
				"gifted_by":       giftedBy,
			}),
		}).
		Create(row).Error
}

// GetByDiscordID returns the spin balance row, nil when the user has none
func (r *SpinRepository) GetByDiscordID(ctx context.Context, discordID string) (*gorm.GiftedSpin, error) {
	var row gorm.GiftedSpin
	err := r.db.WithContext(ctx).
		Where("discord_id = ?", discordID).
		First(&row).Error
	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Consume decrements one spin. The guarded UPDATE keeps the balance from
// going negative under concurrent claims.
func (r *SpinRepository) Consume(ctx context.Context, discordID string) error {
	res := r.db.WithContext(ctx).
		Model(&gorm.GiftedSpin{}).
		Where("discord_id = ? AND spins_remaining > 0", discordID).
		Update("spins_remaining", gormlib.Expr("spins_remaining - 1"))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoSpinsRemaining
	}
	return nil
}

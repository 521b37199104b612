package repositories

import (
	"context"
	"fmt"

	gormModels "horizon-rp/quartermaster/internal/models/gorm"

	"gorm.io/gorm"
)

type UserRepositoryGORM struct {
	db *gorm.DB
}

// NewUserRepositoryGORM creates a new GORM-based user repository
func NewUserRepositoryGORM(db *gorm.DB) *UserRepositoryGORM {
	return &UserRepositoryGORM{db: db}
}

// GetUserByDiscordID retrieves a user by Discord ID without relationships
func (r *UserRepositoryGORM) GetUserByDiscordID(ctx context.Context, discordID string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where("discord_id = ?", discordID).
		First(&user).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// GetUserBySteamID retrieves a user by Steam ID
func (r *UserRepositoryGORM) GetUserBySteamID(ctx context.Context, steamID string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where("steam_id = ?", steamID).
		First(&user).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// CreateUser inserts a new user row
func (r *UserRepositoryGORM) CreateUser(ctx context.Context, user *gormModels.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

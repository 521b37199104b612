package repositories

import (
	"context"

	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db}
}

func (r *UserRepository) InsertUser(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (
			discord_id,
			discord_username,
			steam_id,
			is_active
		)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at;
	`

	return r.db.QueryRowxContext(ctx, query,
		user.DiscordID,
		user.DiscordUsername,
		user.SteamID,
		user.IsActive,
	).StructScan(user)
}

func (r *UserRepository) FindUserByDiscordId(ctx context.Context, discordId string) (*entities.User, error) {

	var user entities.User

	err := r.db.QueryRowxContext(ctx, constants.GetUserByDiscordId, discordId).StructScan(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

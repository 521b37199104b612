package entities

import "time"

type User struct {
	ID              string    `db:"id"`
	DiscordID       string    `db:"discord_id"`
	DiscordUsername string    `db:"discord_username"`
	SteamID         *string   `db:"steam_id"`
	FivemID         *string   `db:"fivem_id"`
	IsActive        bool      `db:"is_active"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

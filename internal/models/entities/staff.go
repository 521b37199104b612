package entities

import (
	"time"

	"horizon-rp/quartermaster/internal/constants"
)

type StaffMember struct {
	ID              string              `db:"id"`
	DiscordID       string              `db:"discord_id"`
	DiscordUsername string              `db:"discord_username"`
	Role            constants.StaffRole `db:"role"`
	IsActive        bool                `db:"is_active"`
	CreatedAt       time.Time           `db:"created_at"`
	UpdatedAt       time.Time           `db:"updated_at"`
}

// DiscordPresence is the row the presence bot keeps in sync for each staff
// member's Discord account.
type DiscordPresence struct {
	DiscordID  string                   `db:"discord_id"`
	Status     constants.PresenceStatus `db:"status"`
	IsOnline   bool                     `db:"is_online"`
	LastSeenAt time.Time                `db:"last_seen_at"`
	UpdatedAt  time.Time                `db:"updated_at"`
}

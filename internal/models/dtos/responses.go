package dtos

import "time"

// --- Controller endpoints ----

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// WebhookResponse is the envelope every inbound webhook answers with,
// success or not.
type WebhookResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Manual  bool   `json:"manual,omitempty"`
	Queued  bool   `json:"queued,omitempty"`
	Applied bool   `json:"applied,omitempty"`
	Message string `json:"message,omitempty"`
}

// RoleChangeResult reports the outcome of a role bridge call.
type RoleChangeResult struct {
	DiscordID string `json:"discord_id"`
	RoleID    string `json:"role_id"`
	Action    string `json:"action"`
	Applied   bool   `json:"applied"`
	Skipped   bool   `json:"skipped,omitempty"`
	Message   string `json:"message,omitempty"`
}

// StaffOnlineStatus is one merged staff + presence entry.
type StaffOnlineStatus struct {
	StaffMemberID   string    `json:"staff_member_id"`
	DiscordID       string    `json:"discord_id"`
	DiscordUsername string    `json:"discord_username"`
	Role            string    `json:"role"`
	Online          bool      `json:"online"`
	Status          string    `json:"status"`
	LastSeenAt      time.Time `json:"last_seen_at"`
}

// StaffStatusResponse carries the merged map plus the derived online count.
type StaffStatusResponse struct {
	Staff       map[string]StaffOnlineStatus `json:"staff"`
	OnlineCount int                          `json:"online_count"`
	FetchedAt   time.Time                    `json:"fetched_at"`
}

// PresenceViewer mirrors the ephemeral presence record of a remote client.
type PresenceViewer struct {
	UserID          string    `json:"user_id,omitempty"`
	DiscordID       string    `json:"discord_id,omitempty"`
	DiscordUsername string    `json:"discord_username,omitempty"`
	DiscordAvatar   string    `json:"discord_avatar,omitempty"`
	IsStaff         bool      `json:"is_staff"`
	JoinedAt        time.Time `json:"joined_at"`
}

// ServerStatus is the game server's live player count, decoded into an
// explicit shape instead of field-probing the raw payload.
type ServerStatus struct {
	Online         bool `json:"online"`
	PlayersCurrent int  `json:"players_current"`
	PlayersMax     int  `json:"players_max"`
}

// StorePackage is one Tebex package entry surfaced to the front-end.
type StorePackage struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
}

// CommunityEvent is a Discord guild scheduled event.
type CommunityEvent struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Location    string     `json:"location,omitempty"`
}

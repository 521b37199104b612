package dtos

// --- Inbound webhook payloads ---

// BanWebhookPayload is posted by the game server on ban/unban events.
type BanWebhookPayload struct {
	DiscordID   string `json:"discord_id,omitempty"`
	SteamID     string `json:"steam_id,omitempty"`
	FivemID     string `json:"fivem_id,omitempty"`
	BanReason   string `json:"ban_reason"`
	IsPermanent bool   `json:"is_permanent"`
	Action      string `json:"action"` // "ban" or "unban"
	BannedBy    string `json:"banned_by,omitempty"`
}

// PrizeDeliveryPayload is posted when a spin-wheel prize is claimed.
type PrizeDeliveryPayload struct {
	PrizeKey        string `json:"prize_key"`
	DiscordID       string `json:"discord_id"`
	DiscordUsername string `json:"discord_username"`
}

// --- API request bodies ---

type RoleChangeReq struct {
	DiscordID string `json:"discord_id"`
	RoleType  string `json:"role_type,omitempty"`
	RoleID    string `json:"role_id,omitempty"`
	Action    string `json:"action"` // "add" or "remove"
}

type GiftSpinsReq struct {
	DiscordID string `json:"discord_id"`
	Spins     int    `json:"spins"`
}

type SubmitApplicationReq struct {
	DiscordID       string            `json:"discord_id"`
	DiscordUsername string            `json:"discord_username"`
	Email           string            `json:"email"`
	Answers         map[string]string `json:"answers"`
}

type ReviewApplicationReq struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note,omitempty"`
}

type SetSettingReq struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type FeedbackReq struct {
	Message         string `json:"message"`
	DiscordUsername string `json:"discord_username,omitempty"`
	Page            string `json:"page,omitempty"`
}

type PresenceJoinReq struct {
	ClientKey       string `json:"client_key"`
	UserID          string `json:"user_id,omitempty"`
	DiscordID       string `json:"discord_id,omitempty"`
	DiscordUsername string `json:"discord_username,omitempty"`
	DiscordAvatar   string `json:"discord_avatar,omitempty"`
	IsStaff         bool   `json:"is_staff"`
}

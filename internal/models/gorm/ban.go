package gorm

import "time"

// WebsiteBan records a permanent game-server ban relayed by the ban webhook.
// Rows are deactivated on unban, never deleted.
type WebsiteBan struct {
	ID                uint      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID            *string   `gorm:"column:user_id;type:uuid;index"`
	DiscordID         string    `gorm:"column:discord_id;index"`
	SteamID           string    `gorm:"column:steam_id;index"`
	FingerprintHashes []string  `gorm:"column:fingerprint_hashes;serializer:json"`
	IPAddresses       []string  `gorm:"column:ip_addresses;serializer:json"`
	Reason            string    `gorm:"column:reason;type:text"`
	IsPermanent       bool      `gorm:"column:is_permanent"`
	BannedBy          string    `gorm:"column:banned_by"`
	IsActive          bool      `gorm:"column:is_active;default:true;index"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (WebsiteBan) TableName() string {
	return "website_bans"
}

// DeviceFingerprint is a browser fingerprint / IP pair observed for a user.
// Blocked fingerprints gate the website alongside the ban row itself.
type DeviceFingerprint struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID     string    `gorm:"column:user_id;type:uuid;index"`
	Hash       string    `gorm:"column:hash;index"`
	IPAddress  string    `gorm:"column:ip_address"`
	IsBlocked  bool      `gorm:"column:is_blocked;default:false;index"`
	LastSeenAt time.Time `gorm:"column:last_seen_at"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (DeviceFingerprint) TableName() string {
	return "device_fingerprints"
}

package gorm

import "time"

// Reward delivery lifecycle for pending_rewards rows.
const (
	RewardStatusPending   = "pending"
	RewardStatusDelivered = "delivered"
	RewardStatusFailed    = "failed"
)

// PendingReward queues a spin prize whose game-server delivery call failed,
// so a later attempt (queue worker or in-game event) can retry it.
type PendingReward struct {
	ID              uint      `gorm:"column:id;primaryKey;autoIncrement"`
	DiscordID       string    `gorm:"column:discord_id;index"`
	DiscordUsername string    `gorm:"column:discord_username"`
	PrizeKey        string    `gorm:"column:prize_key"`
	Status          string    `gorm:"column:status;default:pending;index"`
	Attempts        int       `gorm:"column:attempts;default:0"`
	LastError       string    `gorm:"column:last_error;type:text"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (PendingReward) TableName() string {
	return "pending_rewards"
}

// GiftedSpin tracks spin-wheel credits granted to a Discord user by an
// admin; decremented as spins are claimed.
type GiftedSpin struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement"`
	DiscordID      string    `gorm:"column:discord_id;uniqueIndex"`
	SpinsRemaining int       `gorm:"column:spins_remaining;default:0"`
	GiftedBy       string    `gorm:"column:gifted_by"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (GiftedSpin) TableName() string {
	return "gifted_spins"
}

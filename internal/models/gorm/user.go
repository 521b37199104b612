package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              string    `gorm:"column:id;primaryKey;type:uuid"`
	DiscordID       string    `gorm:"column:discord_id;uniqueIndex"`
	DiscordUsername string    `gorm:"column:discord_username"`
	SteamID         *string   `gorm:"column:steam_id;index"`
	FivemID         *string   `gorm:"column:fivem_id"`
	IsActive        bool      `gorm:"column:is_active;default:true"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Fingerprints []DeviceFingerprint `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key when none is provided. Postgres
// owns the default in production; sqlite test databases rely on this hook.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

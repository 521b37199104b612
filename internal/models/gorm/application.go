package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Whitelist application lifecycle
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusDenied   = "denied"
)

// WhitelistApplication is a submitted form gating entry to the roleplay
// server, reviewed by staff.
type WhitelistApplication struct {
	ID              string            `gorm:"column:id;primaryKey;type:uuid"`
	DiscordID       string            `gorm:"column:discord_id;index"`
	DiscordUsername string            `gorm:"column:discord_username"`
	Email           string            `gorm:"column:email"`
	Answers         map[string]string `gorm:"column:answers;serializer:json"`
	Status          string            `gorm:"column:status;default:pending;index"`
	ReviewedBy      *string           `gorm:"column:reviewed_by"`
	ReviewNote      string            `gorm:"column:review_note;type:text"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (WhitelistApplication) TableName() string {
	return "whitelist_applications"
}

// BeforeCreate assigns a UUID primary key when none is provided.
func (a *WhitelistApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

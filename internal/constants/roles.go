package constants

import (
	"database/sql/driver"
	"fmt"
)

// StaffRole mirrors the Postgres ENUM 'staff_role'
type StaffRole string

const (
	RoleMember    StaffRole = "member"
	RoleModerator StaffRole = "moderator"
	RoleAdmin     StaffRole = "admin"
	RoleOwner     StaffRole = "owner"
)

// Stringer ­– convenient for fmt / logs
func (r StaffRole) String() string { return string(r) }

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *StaffRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = StaffRole(v)
	case []byte:
		*r = StaffRole(v)
	default:
		return fmt.Errorf("StaffRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r StaffRole) Value() (driver.Value, error) { return string(r), nil }

// PresenceStatus mirrors the Discord presence states persisted in
// discord_presence plus the "unknown" value forced on stale rows.
type PresenceStatus string

const (
	PresenceOnline  PresenceStatus = "online"
	PresenceIdle    PresenceStatus = "idle"
	PresenceDnd     PresenceStatus = "dnd"
	PresenceOffline PresenceStatus = "offline"
	PresenceUnknown PresenceStatus = "unknown"
)

func (s PresenceStatus) String() string { return string(s) }

// Scan implements the sql.Scanner interface
func (s *PresenceStatus) Scan(src interface{}) error {
	if src == nil {
		*s = PresenceUnknown
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = PresenceStatus(v)
	case []byte:
		*s = PresenceStatus(v)
	default:
		return fmt.Errorf("PresenceStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s PresenceStatus) Value() (driver.Value, error) { return string(s), nil }

package services

import (
	"testing"
	"time"

	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/models/entities"
)

func TestMergeStaffPresence_FreshRowPassesThrough(t *testing.T) {
	now := time.Now()
	member := entities.StaffMember{
		ID:              "staff-1",
		DiscordID:       "111111111111111111",
		DiscordUsername: "mod_one",
		Role:            constants.RoleModerator,
	}
	presence := &entities.DiscordPresence{
		DiscordID:  member.DiscordID,
		Status:     constants.PresenceIdle,
		IsOnline:   true,
		LastSeenAt: now.Add(-2 * time.Minute),
		UpdatedAt:  now.Add(-14 * time.Minute),
	}

	entry := MergeStaffPresence(member, presence, now)

	if !entry.Online {
		t.Error("Expected fresh presence row to keep online=true")
	}
	if entry.Status != "idle" {
		t.Errorf("Expected stored status idle, got %s", entry.Status)
	}
	if entry.Role != "moderator" {
		t.Errorf("Expected role moderator, got %s", entry.Role)
	}
}

func TestMergeStaffPresence_StaleRowForcedUnknown(t *testing.T) {
	now := time.Now()
	member := entities.StaffMember{ID: "staff-1", DiscordID: "111111111111111111"}
	presence := &entities.DiscordPresence{
		DiscordID: member.DiscordID,
		Status:    constants.PresenceOnline,
		IsOnline:  true,
		UpdatedAt: now.Add(-16 * time.Minute),
	}

	entry := MergeStaffPresence(member, presence, now)

	if entry.Online {
		t.Error("Expected stale presence row to force online=false")
	}
	if entry.Status != "unknown" {
		t.Errorf("Expected stale presence row to force status unknown, got %s", entry.Status)
	}
}

func TestMergeStaffPresence_ExactlyAtBoundaryIsFresh(t *testing.T) {
	now := time.Now()
	member := entities.StaffMember{ID: "staff-1", DiscordID: "111111111111111111"}
	presence := &entities.DiscordPresence{
		DiscordID: member.DiscordID,
		Status:    constants.PresenceDnd,
		IsOnline:  true,
		UpdatedAt: now.Add(-constants.PresenceStaleMinutes * time.Minute),
	}

	entry := MergeStaffPresence(member, presence, now)

	if !entry.Online || entry.Status != "dnd" {
		t.Errorf("Expected row exactly at the staleness boundary to pass through, got online=%v status=%s", entry.Online, entry.Status)
	}
}

func TestMergeStaffPresence_MissingPresenceRow(t *testing.T) {
	member := entities.StaffMember{ID: "staff-1", DiscordID: "111111111111111111"}

	entry := MergeStaffPresence(member, nil, time.Now())

	if entry.Online {
		t.Error("Expected missing presence row to report offline")
	}
	if entry.Status != "unknown" {
		t.Errorf("Expected missing presence row to report unknown, got %s", entry.Status)
	}
	if !entry.LastSeenAt.IsZero() {
		t.Error("Expected zero last seen when no presence row exists")
	}
}

package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"

	"horizon-rp/quartermaster/internal/config"
	"horizon-rp/quartermaster/internal/models/dtos"
)

// fakeRoleClient records role calls and returns a scripted error.
type fakeRoleClient struct {
	addCalls    int
	removeCalls int
	lastUserID  string
	lastRoleID  string
	err         error
}

func (f *fakeRoleClient) GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	f.addCalls++
	f.lastUserID = userID
	f.lastRoleID = roleID
	return f.err
}

func (f *fakeRoleClient) GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	f.removeCalls++
	f.lastUserID = userID
	f.lastRoleID = roleID
	return f.err
}

func restError(status int) error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: status},
		Message:  &discordgo.APIErrorMessage{},
	}
}

func testBridgeConfig() *config.Config {
	return &config.Config{
		DiscordServerID: "999999999999999999",
		DiscordRoleIDs: map[string]string{
			"whitelisted": "888888888888888888",
		},
		Environment: "test",
	}
}

func TestRoleBridge_RejectsMalformedDiscordID(t *testing.T) {
	cases := []string{
		"", "abc", "1234", "12345678901234567890", "11111111111111111x",
	}

	client := &fakeRoleClient{}
	svc := NewRoleBridgeService(client, testBridgeConfig(), nil)

	for _, id := range cases {
		_, err := svc.ChangeRole(context.Background(), dtos.RoleChangeReq{
			DiscordID: id,
			RoleType:  "whitelisted",
			Action:    "add",
		})
		if !errors.Is(err, ErrInvalidDiscordID) {
			t.Errorf("Expected ErrInvalidDiscordID for %q, got %v", id, err)
		}
	}

	// No Discord call may happen before validation passes.
	if client.addCalls != 0 || client.removeCalls != 0 {
		t.Errorf("Expected zero Discord calls for invalid ids, got add=%d remove=%d", client.addCalls, client.removeCalls)
	}
}

func TestRoleBridge_AddAppliesConfiguredRole(t *testing.T) {
	client := &fakeRoleClient{}
	svc := NewRoleBridgeService(client, testBridgeConfig(), nil)

	result, err := svc.ChangeRole(context.Background(), dtos.RoleChangeReq{
		DiscordID: "123456789012345678",
		RoleType:  "whitelisted",
		Action:    "add",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !result.Applied {
		t.Error("Expected role change to be applied")
	}
	if client.lastRoleID != "888888888888888888" {
		t.Errorf("Expected configured role id to be used, got %s", client.lastRoleID)
	}
}

func TestRoleBridge_ExplicitRoleIDWins(t *testing.T) {
	client := &fakeRoleClient{}
	svc := NewRoleBridgeService(client, testBridgeConfig(), nil)

	result, err := svc.ChangeRole(context.Background(), dtos.RoleChangeReq{
		DiscordID: "123456789012345678",
		RoleType:  "whitelisted",
		RoleID:    "777777777777777777",
		Action:    "add",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.RoleID != "777777777777777777" {
		t.Errorf("Expected explicit role id to take precedence, got %s", result.RoleID)
	}
}

func TestRoleBridge_RemoveMissingRoleIsSkippedSuccess(t *testing.T) {
	client := &fakeRoleClient{err: restError(http.StatusNotFound)}
	svc := NewRoleBridgeService(client, testBridgeConfig(), nil)

	result, err := svc.ChangeRole(context.Background(), dtos.RoleChangeReq{
		DiscordID: "123456789012345678",
		RoleType:  "whitelisted",
		Action:    "remove",
	})
	if err != nil {
		t.Fatalf("Expected skipped success for 404 on removal, got %v", err)
	}
	if result.Applied || !result.Skipped {
		t.Errorf("Expected applied=false skipped=true, got %+v", result)
	}
}

func TestRoleBridge_AddToMissingMemberFails(t *testing.T) {
	client := &fakeRoleClient{err: restError(http.StatusNotFound)}
	svc := NewRoleBridgeService(client, testBridgeConfig(), nil)

	_, err := svc.ChangeRole(context.Background(), dtos.RoleChangeReq{
		DiscordID: "123456789012345678",
		RoleType:  "whitelisted",
		Action:    "add",
	})
	if !errors.Is(err, ErrMemberNotInGuild) {
		t.Errorf("Expected ErrMemberNotInGuild for 404 on add, got %v", err)
	}
}

func TestRoleBridge_ForbiddenMapsToPermissionError(t *testing.T) {
	client := &fakeRoleClient{err: restError(http.StatusForbidden)}
	svc := NewRoleBridgeService(client, testBridgeConfig(), nil)

	_, err := svc.ChangeRole(context.Background(), dtos.RoleChangeReq{
		DiscordID: "123456789012345678",
		RoleType:  "whitelisted",
		Action:    "add",
	})
	if !errors.Is(err, ErrMissingPermission) {
		t.Errorf("Expected ErrMissingPermission for 403, got %v", err)
	}
}

func TestRoleBridge_UnknownRoleTypeFails(t *testing.T) {
	client := &fakeRoleClient{}
	svc := NewRoleBridgeService(client, testBridgeConfig(), nil)

	_, err := svc.ChangeRole(context.Background(), dtos.RoleChangeReq{
		DiscordID: "123456789012345678",
		RoleType:  "vip",
		Action:    "add",
	})
	if err == nil {
		t.Fatal("Expected error for unknown role type")
	}
	if client.addCalls != 0 {
		t.Error("Expected no Discord call when role resolution fails")
	}
}

func TestRoleBridge_BatchContinuesPastFailures(t *testing.T) {
	client := &fakeRoleClient{}
	svc := NewRoleBridgeService(client, testBridgeConfig(), nil)

	results := svc.ChangeRolesBatch(context.Background(), []dtos.RoleChangeReq{
		{DiscordID: "not-a-snowflake", RoleType: "whitelisted", Action: "add"},
		{DiscordID: "123456789012345678", RoleType: "whitelisted", Action: "add"},
	})

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Applied {
		t.Error("Expected first entry to fail validation")
	}
	if !results[1].Applied {
		t.Error("Expected second entry to be applied despite earlier failure")
	}
}

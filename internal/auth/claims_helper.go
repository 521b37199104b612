package auth

import (
	"context"
	"fmt"

	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/db/repositories"
	"horizon-rp/quartermaster/internal/logging"
)

// MakeClaimsFromApiKey resolves the staff role for an API-key request from
// the caller-supplied discord id header. Callers without a staff row get
// member-level claims.
func MakeClaimsFromApiKey(ctx context.Context, staffRepo *repositories.StaffRepository, keyID, discordID string) *APIKeyClaims {
	claims := &APIKeyClaims{
		DiscordUIDVal: discordID,
		RoleValue:     constants.RoleMember,
		KeyID:         keyID,
	}
	if discordID == "" {
		return claims
	}

	staff, err := staffRepo.FindByDiscordId(ctx, discordID)
	if err != nil {
		logging.Debug(fmt.Sprintf("No staff row for %s: %v", discordID, err))
		return claims
	}
	if staff != nil && staff.IsActive {
		claims.RoleValue = staff.Role
	}
	return claims
}

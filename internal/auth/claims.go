package auth

import "horizon-rp/quartermaster/internal/constants"

// UserClaims is what every authenticated request carries in its context,
// regardless of whether it came in with an API key or a presigned token.
type UserClaims interface {
	DiscordUserID() string
	Role() string
	Source() string
	HasRoleAtLeast(role constants.StaffRole) bool
}

// roleRank orders staff roles for threshold checks.
var roleRank = map[constants.StaffRole]int{
	constants.RoleMember:    0,
	constants.RoleModerator: 1,
	constants.RoleAdmin:     2,
	constants.RoleOwner:     3,
}

func rankOf(role constants.StaffRole) int {
	if rank, ok := roleRank[role]; ok {
		return rank
	}
	return -1
}

// APIKeyClaims authenticates the game server and the Discord bot, which
// call with a static key plus identifying headers.
type APIKeyClaims struct {
	DiscordUIDVal string
	RoleValue     constants.StaffRole
	KeyID         string
}

func (c *APIKeyClaims) DiscordUserID() string { return c.DiscordUIDVal }
func (c *APIKeyClaims) Role() string          { return c.RoleValue.String() }
func (c *APIKeyClaims) Source() string        { return "API_KEY" }
func (c *APIKeyClaims) HasRoleAtLeast(role constants.StaffRole) bool {
	return rankOf(c.RoleValue) >= rankOf(role)
}

// TokenClaims authenticates dashboard users holding a presigned token.
type TokenClaims struct {
	DiscordUIDVal string
	RoleValue     constants.StaffRole
	TokenID       string
}

func (c *TokenClaims) DiscordUserID() string { return c.DiscordUIDVal }
func (c *TokenClaims) Role() string          { return c.RoleValue.String() }
func (c *TokenClaims) Source() string        { return "TOKEN" }
func (c *TokenClaims) HasRoleAtLeast(role constants.StaffRole) bool {
	return rankOf(c.RoleValue) >= rankOf(role)
}

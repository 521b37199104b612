package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"horizon-rp/quartermaster/internal/config"
	"horizon-rp/quartermaster/internal/logging"
	"horizon-rp/quartermaster/internal/metrics"
	"horizon-rp/quartermaster/internal/models/dtos"
)

// Discord snowflake ids are 17-19 digits. Anything else is rejected before
// a single REST call goes out.
var discordIDPattern = regexp.MustCompile(`^\d{17,19}$`)

// IsValidDiscordID reports whether a string is a plausible Discord user id.
func IsValidDiscordID(id string) bool {
	return discordIDPattern.MatchString(id)
}

var (
	ErrInvalidDiscordID  = errors.New("discord_id must be a 17-19 digit snowflake")
	ErrMemberNotInGuild  = errors.New("member is not in the guild")
	ErrMissingPermission = errors.New("bot lacks permission to manage this role")
	ErrInvalidAction     = errors.New(`action must be "add" or "remove"`)
)

// DiscordRoleClient is the slice of discordgo.Session the role bridge needs.
type DiscordRoleClient interface {
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

// RoleBridgeService applies role changes requested by the site (whitelist
// approval, donator sync, giveaway winners) to the Discord guild.
type RoleBridgeService struct {
	session DiscordRoleClient
	cfg     *config.Config
	limiter *rate.Limiter
	metrics *metrics.MetricsRegistry
}

func NewRoleBridgeService(session DiscordRoleClient, cfg *config.Config, reg *metrics.MetricsRegistry) *RoleBridgeService {
	return &RoleBridgeService{
		session: session,
		cfg:     cfg,
		// Pace sequential batch calls instead of reacting to 429 headers.
		limiter: rate.NewLimiter(rate.Every(300*time.Millisecond), 1),
		metrics: reg,
	}
}

// ResolveRoleID turns a request into a concrete role id: an explicit role_id
// wins, otherwise role_type is looked up in configuration.
func (s *RoleBridgeService) ResolveRoleID(req dtos.RoleChangeReq) (string, error) {
	if req.RoleID != "" {
		return req.RoleID, nil
	}
	return s.cfg.RoleID(req.RoleType)
}

// ChangeRole validates and applies a single role change.
//
// Removal of a role the member does not have (404) is a skipped success:
// the desired end state already holds. A 404 on add means the member left
// the guild and is surfaced as an explicit error.
func (s *RoleBridgeService) ChangeRole(ctx context.Context, req dtos.RoleChangeReq) (*dtos.RoleChangeResult, error) {
	if !IsValidDiscordID(req.DiscordID) {
		return nil, ErrInvalidDiscordID
	}
	if req.Action != "add" && req.Action != "remove" {
		return nil, ErrInvalidAction
	}

	roleID, err := s.ResolveRoleID(req)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result := &dtos.RoleChangeResult{
		DiscordID: req.DiscordID,
		RoleID:    roleID,
		Action:    req.Action,
	}

	switch req.Action {
	case "add":
		err = s.session.GuildMemberRoleAdd(s.cfg.DiscordServerID, req.DiscordID, roleID, discordgo.WithContext(ctx))
	case "remove":
		err = s.session.GuildMemberRoleRemove(s.cfg.DiscordServerID, req.DiscordID, roleID, discordgo.WithContext(ctx))
	}

	if err != nil {
		mapped := s.mapDiscordError(err, req.Action)
		if mapped == nil {
			// Role was already absent on removal.
			result.Applied = false
			result.Skipped = true
			result.Message = "member does not have this role"
			s.countCall("role_"+req.Action, "skipped")
			return result, nil
		}
		s.countCall("role_"+req.Action, "error")
		return nil, mapped
	}

	result.Applied = true
	s.countCall("role_"+req.Action, "ok")
	return result, nil
}

// ChangeRolesBatch applies changes sequentially, collecting per-entry
// results. A failed entry does not stop later entries.
func (s *RoleBridgeService) ChangeRolesBatch(ctx context.Context, reqs []dtos.RoleChangeReq) []dtos.RoleChangeResult {
	results := make([]dtos.RoleChangeResult, 0, len(reqs))
	for _, req := range reqs {
		result, err := s.ChangeRole(ctx, req)
		if err != nil {
			logging.Warn(fmt.Sprintf("Role change failed for %s: %v", req.DiscordID, err))
			results = append(results, dtos.RoleChangeResult{
				DiscordID: req.DiscordID,
				Action:    req.Action,
				Applied:   false,
				Message:   err.Error(),
			})
			continue
		}
		results = append(results, *result)
	}
	return results
}

// mapDiscordError translates a discordgo REST error. Returns nil when the
// error should be treated as a skipped success.
func (s *RoleBridgeService) mapDiscordError(err error, action string) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return fmt.Errorf("discord request failed: %w", err)
	}

	switch restErr.Response.StatusCode {
	case http.StatusNotFound:
		if action == "remove" {
			return nil
		}
		return ErrMemberNotInGuild
	case http.StatusForbidden:
		return ErrMissingPermission
	default:
		return fmt.Errorf("discord returned status %d: %w", restErr.Response.StatusCode, err)
	}
}

func (s *RoleBridgeService) countCall(operation, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.DiscordAPICallsTotal.WithLabelValues(operation, result).Inc()
}

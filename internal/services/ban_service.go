package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/config"
	"horizon-rp/quartermaster/internal/db/repositories"
	"horizon-rp/quartermaster/internal/logging"
	"horizon-rp/quartermaster/internal/models/dtos"
	gormModels "horizon-rp/quartermaster/internal/models/gorm"
)

var (
	ErrMissingBanIdentifier = errors.New("ban payload needs a discord_id or steam_id")
	ErrUnknownBanAction     = errors.New(`action must be "ban" or "unban"`)
)

// DiscordAlertClient is the slice of discordgo.Session the alert path needs.
type DiscordAlertClient interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// BanService mirrors permanent game-server bans onto the website: block the
// user's known device fingerprints and IPs, record the ban, and alert staff.
type BanService struct {
	users        *repositories.UserRepositoryGORM
	bans         *repositories.BanRepository
	fingerprints *repositories.FingerprintRepository
	alerts       DiscordAlertClient
	cfg          *config.Config
}

func NewBanService(
	users *repositories.UserRepositoryGORM,
	bans *repositories.BanRepository,
	fingerprints *repositories.FingerprintRepository,
	alerts DiscordAlertClient,
	cfg *config.Config,
) *BanService {
	return &BanService{
		users:        users,
		bans:         bans,
		fingerprints: fingerprints,
		alerts:       alerts,
		cfg:          cfg,
	}
}

// ProcessBanWebhook handles one ban/unban event from the game server.
func (s *BanService) ProcessBanWebhook(ctx context.Context, payload dtos.BanWebhookPayload) (*dtos.WebhookResponse, error) {
	if payload.DiscordID == "" && payload.SteamID == "" {
		return nil, ErrMissingBanIdentifier
	}

	switch payload.Action {
	case "unban":
		return s.processUnban(ctx, payload)
	case "ban":
		return s.processBan(ctx, payload)
	default:
		return nil, ErrUnknownBanAction
	}
}

func (s *BanService) processBan(ctx context.Context, payload dtos.BanWebhookPayload) (*dtos.WebhookResponse, error) {
	// Temporary bans stay game-side; the website only mirrors permanent ones.
	if !payload.IsPermanent {
		return &dtos.WebhookResponse{
			Success: true,
			Applied: false,
			Message: "temporary ban not mirrored to website",
		}, nil
	}

	user, err := s.resolveUser(ctx, payload)
	if err != nil {
		return nil, err
	}

	ban := &gormModels.WebsiteBan{
		DiscordID:   payload.DiscordID,
		SteamID:     payload.SteamID,
		Reason:      payload.BanReason,
		IsPermanent: true,
		BannedBy:    payload.BannedBy,
		IsActive:    true,
	}

	if user != nil {
		ban.UserID = &user.ID

		prints, err := s.fingerprints.ListByUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to collect fingerprints: %w", err)
		}

		hashes := make([]string, 0, len(prints))
		ips := make([]string, 0, len(prints))
		for _, p := range prints {
			hashes = append(hashes, p.Hash)
			if p.IPAddress != "" {
				ips = append(ips, p.IPAddress)
			}
		}
		ban.FingerprintHashes = common.DedupeStrings(hashes)
		ban.IPAddresses = common.DedupeStrings(ips)

		if err := s.fingerprints.SetBlockedForUser(ctx, user.ID, true); err != nil {
			return nil, fmt.Errorf("failed to block fingerprints: %w", err)
		}
	}

	if err := s.bans.Create(ctx, ban); err != nil {
		return nil, fmt.Errorf("failed to record website ban: %w", err)
	}

	// Staff alert is best-effort; a Discord outage never fails the webhook.
	s.sendBanAlert(payload, len(ban.FingerprintHashes))

	return &dtos.WebhookResponse{
		Success: true,
		Applied: true,
		Message: fmt.Sprintf("website ban recorded, %d fingerprints blocked", len(ban.FingerprintHashes)),
	}, nil
}

func (s *BanService) processUnban(ctx context.Context, payload dtos.BanWebhookPayload) (*dtos.WebhookResponse, error) {
	deactivated, err := s.bans.Deactivate(ctx, payload.DiscordID, payload.SteamID)
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate bans: %w", err)
	}

	user, err := s.resolveUser(ctx, payload)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if err := s.fingerprints.SetBlockedForUser(ctx, user.ID, false); err != nil {
			return nil, fmt.Errorf("failed to unblock fingerprints: %w", err)
		}
	}

	return &dtos.WebhookResponse{
		Success: true,
		Applied: deactivated > 0,
		Message: fmt.Sprintf("%d ban records deactivated", deactivated),
	}, nil
}

// resolveUser looks up the internal user by discord id first, then steam id.
// A missing user is not an error; bans are recorded regardless.
func (s *BanService) resolveUser(ctx context.Context, payload dtos.BanWebhookPayload) (*gormModels.User, error) {
	if payload.DiscordID != "" {
		user, err := s.users.GetUserByDiscordID(ctx, payload.DiscordID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user: %w", err)
		}
		if user != nil {
			return user, nil
		}
	}
	if payload.SteamID != "" {
		user, err := s.users.GetUserBySteamID(ctx, payload.SteamID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user: %w", err)
		}
		return user, nil
	}
	return nil, nil
}

func (s *BanService) sendBanAlert(payload dtos.BanWebhookPayload, blockedPrints int) {
	if s.alerts == nil || s.cfg.BanAlertChannelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "Permanent Ban Mirrored",
		Color: 0xED4245,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Discord ID", Value: orDash(payload.DiscordID), Inline: true},
			{Name: "Steam ID", Value: orDash(payload.SteamID), Inline: true},
			{Name: "Banned By", Value: orDash(payload.BannedBy), Inline: true},
			{Name: "Reason", Value: orDash(payload.BanReason)},
			{Name: "Fingerprints Blocked", Value: fmt.Sprintf("%d", blockedPrints), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := s.alerts.ChannelMessageSendEmbed(s.cfg.BanAlertChannelID, embed); err != nil {
		logging.Warn(fmt.Sprintf("Failed to send ban alert embed: %v", err))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

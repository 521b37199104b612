package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"horizon-rp/quartermaster/internal/config"
	"horizon-rp/quartermaster/internal/models/dtos"
)

var ErrEmptyFeedback = errors.New("feedback message is required")

const maxFeedbackLength = 2000

// FeedbackService relays site feedback into the staff Discord channel.
type FeedbackService struct {
	alerts DiscordAlertClient
	cfg    *config.Config
}

func NewFeedbackService(alerts DiscordAlertClient, cfg *config.Config) *FeedbackService {
	return &FeedbackService{alerts: alerts, cfg: cfg}
}

func (s *FeedbackService) Submit(ctx context.Context, req dtos.FeedbackReq) error {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return ErrEmptyFeedback
	}
	if runes := []rune(message); len(runes) > maxFeedbackLength {
		message = string(runes[:maxFeedbackLength])
	}

	if s.alerts == nil || s.cfg.FeedbackChannelID == "" {
		return errors.New("feedback channel is not configured")
	}

	author := strings.TrimSpace(req.DiscordUsername)
	if author == "" {
		author = "Anonymous"
	}

	embed := &discordgo.MessageEmbed{
		Title:       "New site feedback",
		Description: message,
		Color:       0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "From", Value: author, Inline: true},
			{Name: "Page", Value: orDash(req.Page), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := s.alerts.ChannelMessageSendEmbed(s.cfg.FeedbackChannelID, embed); err != nil {
		return fmt.Errorf("failed to post feedback alert: %w", err)
	}
	return nil
}

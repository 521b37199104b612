package common

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"horizon-rp/quartermaster/internal/config"
)

// NewDiscordSession opens a discordgo session used purely for REST calls
// (role changes, embeds, scheduled events). No gateway intents are needed,
// but Open is still required so discordgo resolves its internal state.
func NewDiscordSession(cfg *config.Config) (*discordgo.Session, error) {
	if cfg.DiscordBotToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN is not set")
	}

	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsNone

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("failed to open Discord session: %w", err)
	}

	return session, nil
}

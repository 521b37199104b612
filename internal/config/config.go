package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordBotToken string
	DiscordServerID string

	// Role ids keyed by role type (whitelisted, staff, donator, giveaway_winner)
	DiscordRoleIDs map[string]string

	// Channel ids for outbound alerts
	BanAlertChannelID string
	FeedbackChannelID string

	// FiveM game-server callback
	FivemServerIP    string
	FivemServerPort  string
	FivemCallbackKey string

	// Store / email integrations
	TebexSecretKey string
	ResendAPIKey   string
	ResendFromAddr string

	// Dashboard token signing secret
	SigningSecret string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// roleTypeEnvVars maps role types accepted by the role bridge to the
// environment variable carrying the corresponding Discord role id.
var roleTypeEnvVars = map[string]string{
	"whitelisted":     "DISCORD_WHITELISTED_ROLE_ID",
	"staff":           "DISCORD_STAFF_ROLE_ID",
	"donator":         "DISCORD_DONATOR_ROLE_ID",
	"giveaway_winner": "DISCORD_GIVEAWAY_ROLE_ID",
}

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DiscordBotToken: os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordServerID: os.Getenv("DISCORD_SERVER_ID"),

		BanAlertChannelID: os.Getenv("DISCORD_BAN_ALERT_CHANNEL_ID"),
		FeedbackChannelID: os.Getenv("DISCORD_FEEDBACK_CHANNEL_ID"),

		FivemServerIP:    os.Getenv("FIVEM_SERVER_IP"),
		FivemServerPort:  os.Getenv("FIVEM_SERVER_PORT"),
		FivemCallbackKey: os.Getenv("FIVEM_CALLBACK_KEY"),

		TebexSecretKey: os.Getenv("TEBEX_SECRET_KEY"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		ResendFromAddr: os.Getenv("RESEND_FROM_ADDRESS"),

		SigningSecret: os.Getenv("DASHBOARD_SIGNING_SECRET"),

		Environment: os.Getenv("APP_ENV"),
	}

	config.DiscordRoleIDs = make(map[string]string, len(roleTypeEnvVars))
	for roleType, envVar := range roleTypeEnvVars {
		if id := strings.TrimSpace(os.Getenv(envVar)); id != "" {
			config.DiscordRoleIDs[roleType] = id
		}
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordBotToken == "" {
			return nil, fmt.Errorf("DISCORD_BOT_TOKEN is required")
		}
		if config.DiscordServerID == "" {
			return nil, fmt.Errorf("DISCORD_SERVER_ID is required")
		}
	}

	return config, nil
}

// RoleID resolves a Discord role id for a role type. Returns an error when
// the role type is unknown or its environment variable is unset.
func (c *Config) RoleID(roleType string) (string, error) {
	envVar, ok := roleTypeEnvVars[roleType]
	if !ok {
		return "", fmt.Errorf("unknown role type %q", roleType)
	}
	id, ok := c.DiscordRoleIDs[roleType]
	if !ok {
		return "", fmt.Errorf("%s is not configured", envVar)
	}
	return id, nil
}

// FivemCallbackBaseURL builds the game-server callback base URL, empty when
// the server address is not configured.
func (c *Config) FivemCallbackBaseURL() string {
	if c.FivemServerIP == "" || c.FivemServerPort == "" {
		return ""
	}
	return fmt.Sprintf("http://%s:%s", c.FivemServerIP, c.FivemServerPort)
}

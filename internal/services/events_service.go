package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/config"
	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/models/dtos"
)

const eventsCacheTTL = 2 * time.Minute

// DiscordEventClient is the slice of discordgo.Session the events page uses.
type DiscordEventClient interface {
	GuildScheduledEvents(guildID string, userCount bool, options ...discordgo.RequestOption) ([]*discordgo.GuildScheduledEvent, error)
}

// EventsService surfaces the guild's scheduled events on the community site.
type EventsService struct {
	session DiscordEventClient
	cfg     *config.Config
	cache   common.CacheInterface
}

func NewEventsService(session DiscordEventClient, cfg *config.Config, cache common.CacheInterface) *EventsService {
	return &EventsService{session: session, cfg: cfg, cache: cache}
}

// ListUpcoming returns the guild's scheduled events in the order Discord
// reports them.
func (s *EventsService) ListUpcoming(ctx context.Context) ([]dtos.CommunityEvent, error) {
	val, err := s.cache.GetOrSet(string(constants.CachePrefixEvents), eventsCacheTTL, func() (any, error) {
		raw, err := s.session.GuildScheduledEvents(s.cfg.DiscordServerID, false, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch scheduled events: %w", err)
		}

		events := make([]dtos.CommunityEvent, 0, len(raw))
		for _, ev := range raw {
			event := dtos.CommunityEvent{
				ID:          ev.ID,
				Name:        ev.Name,
				Description: ev.Description,
				StartTime:   ev.ScheduledStartTime,
				EndTime:     ev.ScheduledEndTime,
			}
			event.Location = ev.EntityMetadata.Location
			events = append(events, event)
		}
		return events, nil
	})
	if err != nil {
		return nil, err
	}

	events, _ := val.([]dtos.CommunityEvent)
	return events, nil
}

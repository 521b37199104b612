package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/db/repositories"
	"horizon-rp/quartermaster/internal/models/dtos"
	"horizon-rp/quartermaster/internal/models/entities"
)

const staffStatusCacheTTL = 30 * time.Second

// StaffStatusService merges the staff roster with the presence rows the
// Discord bot keeps updated, applying the staleness rule before anything
// reaches the front-end.
type StaffStatusService struct {
	staffRepo    *repositories.StaffRepository
	presenceRepo *repositories.PresenceRepository
	cache        common.CacheInterface
}

func NewStaffStatusService(
	staffRepo *repositories.StaffRepository,
	presenceRepo *repositories.PresenceRepository,
	cache common.CacheInterface,
) *StaffStatusService {
	return &StaffStatusService{
		staffRepo:    staffRepo,
		presenceRepo: presenceRepo,
		cache:        cache,
	}
}

// MergeStaffPresence computes one roster entry from a staff row and its
// optional presence row. Presence rows not updated within the staleness
// window are overridden to unknown/offline regardless of stored values.
func MergeStaffPresence(member entities.StaffMember, presence *entities.DiscordPresence, now time.Time) dtos.StaffOnlineStatus {
	entry := dtos.StaffOnlineStatus{
		StaffMemberID:   member.ID,
		DiscordID:       member.DiscordID,
		DiscordUsername: member.DiscordUsername,
		Role:            member.Role.String(),
		Online:          false,
		Status:          constants.PresenceUnknown.String(),
	}

	if presence == nil {
		return entry
	}

	entry.LastSeenAt = presence.LastSeenAt

	stale := now.Sub(presence.UpdatedAt) > constants.PresenceStaleMinutes*time.Minute
	if stale {
		return entry
	}

	entry.Online = presence.IsOnline
	entry.Status = presence.Status.String()
	return entry
}

// GetStatus returns the merged staff status map, served from cache when the
// snapshot is still fresh.
func (s *StaffStatusService) GetStatus(ctx context.Context) (*dtos.StaffStatusResponse, error) {
	if cached, found := s.cache.Get(string(constants.CachePrefixStaffStatus)); found {
		if resp, ok := cached.(*dtos.StaffStatusResponse); ok {
			return resp, nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the snapshot from the database and caches it. The
// roster and presence tables are read in parallel and joined in memory by
// discord id.
func (s *StaffStatusService) Refresh(ctx context.Context) (*dtos.StaffStatusResponse, error) {
	var (
		staff    []entities.StaffMember
		presence []entities.DiscordPresence
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		staff, err = s.staffRepo.ListActiveStaff(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		presence, err = s.presenceRepo.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch staff status: %w", err)
	}

	presenceByDiscordID := make(map[string]*entities.DiscordPresence, len(presence))
	for i := range presence {
		presenceByDiscordID[presence[i].DiscordID] = &presence[i]
	}

	now := time.Now()
	resp := &dtos.StaffStatusResponse{
		Staff:     make(map[string]dtos.StaffOnlineStatus, len(staff)),
		FetchedAt: now,
	}
	for _, member := range staff {
		entry := MergeStaffPresence(member, presenceByDiscordID[member.DiscordID], now)
		resp.Staff[member.ID] = entry
		if entry.Online {
			resp.OnlineCount++
		}
	}

	s.cache.Set(string(constants.CachePrefixStaffStatus), resp, staffStatusCacheTTL)
	return resp, nil
}

// RecordPresence upserts a presence row for a Discord account. Called by the
// presence sync webhook whenever the bot observes a status change.
func (s *StaffStatusService) RecordPresence(ctx context.Context, discordID string, status constants.PresenceStatus, isOnline bool) error {
	if err := s.presenceRepo.Upsert(ctx, discordID, status, isOnline); err != nil {
		return fmt.Errorf("failed to record presence for %s: %w", discordID, err)
	}
	// Invalidate so the next read reflects the change inside the cache TTL.
	s.cache.Delete(string(constants.CachePrefixStaffStatus))
	return nil
}

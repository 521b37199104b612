package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/db/repositories"
)

///////////////////////////////////////////////////////////////////////////////
// Allowed keys, anything else is rejected on write
///////////////////////////////////////////////////////////////////////////////

const (
	SettingKeyMaintenanceMode   = "maintenance_mode"
	SettingKeyApplicationsOpen  = "applications_open"
	SettingKeySpinWheelEnabled  = "spin_wheel_enabled"
	SettingKeyGiveawaysEnabled  = "giveaways_enabled"
	SettingKeyNotificationSound = "notification_sound"
	SettingKeyAnnouncementText  = "announcement_text"
)

var AllowedSettingKeys = []string{
	SettingKeyMaintenanceMode,
	SettingKeyApplicationsOpen,
	SettingKeySpinWheelEnabled,
	SettingKeyGiveawaysEnabled,
	SettingKeyNotificationSound,
	SettingKeyAnnouncementText,
}

// O(n) validator (fine for small list)
func IsValidSettingKey(k string) bool {
	for _, allowed := range AllowedSettingKeys {
		if allowed == k {
			return true
		}
	}
	return false
}

///////////////////////////////////////////////////////////////////////////////
// Service
///////////////////////////////////////////////////////////////////////////////

// Settings are read on demand and cached for up to a minute, matching how
// the front-end treats them as slowly changing feature flags.
const settingCacheTTL = 60 * time.Second

type SettingsService struct {
	repo  *repositories.SettingsRepository
	cache CacheInterface
}

func NewSettingsService(r *repositories.SettingsRepository, c CacheInterface) *SettingsService {
	return &SettingsService{repo: r, cache: c}
}

func settingCacheKey(key string) string {
	return string(constants.CachePrefixSiteSetting) + key
}

// ListPossibleKeys exposes the allowed keys to API callers
func (s *SettingsService) ListPossibleKeys() []string { return AllowedSettingKeys }

// GetSetting returns a setting value, empty string when the row is missing.
func (s *SettingsService) GetSetting(ctx context.Context, key string) (string, error) {
	if !IsValidSettingKey(key) {
		return "", fmt.Errorf("%q is not a valid setting key", key)
	}

	val, err := s.cache.GetOrSet(settingCacheKey(key), settingCacheTTL, func() (any, error) {
		row, err := s.repo.GetByKey(ctx, key)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return "", nil
			}
			return nil, err
		}
		return row.Value, nil
	})
	if err != nil {
		return "", err
	}

	str, _ := val.(string)
	return str, nil
}

// SetSetting upserts a setting and evicts its cache entry.
func (s *SettingsService) SetSetting(ctx context.Context, key, value string) error {
	if !IsValidSettingKey(key) {
		return fmt.Errorf("%q is not a valid setting key", key)
	}

	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}

	s.cache.Delete(settingCacheKey(key))
	return nil
}

// GetAllSettings returns every settings row as a map, bypassing the cache.
func (s *SettingsService) GetAllSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	m := make(map[string]string, len(rows))
	for _, r := range rows {
		m[r.Key] = r.Value
	}
	return m, nil
}

package repositories

import (
	"context"

	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db}
}

func (r *SettingsRepository) GetByKey(ctx context.Context, key string) (*entities.SiteSetting, error) {
	var setting entities.SiteSetting
	err := r.db.QueryRowxContext(ctx, constants.GetSiteSettingByKey, key).StructScan(&setting)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *SettingsRepository) ListAll(ctx context.Context) ([]entities.SiteSetting, error) {
	var settings []entities.SiteSetting
	if err := r.db.SelectContext(ctx, &settings, constants.GetAllSiteSettings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, constants.UpsertSiteSetting, key, value)
	return err
}

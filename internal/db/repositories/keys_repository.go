package repositories

import (
	"context"

	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type KeysRepo struct {
	db *sqlx.DB
}

func NewApiKeysRepo(db *sqlx.DB) *KeysRepo {
	return &KeysRepo{db}
}

func (r *KeysRepo) Create(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, constants.InsertApiKey, key)
	return err
}

func (r *KeysRepo) Deactivate(ctx context.Context, key string) (int64, error) {
	res, err := r.db.ExecContext(ctx, constants.DeactivateApiKey, key)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *KeysRepo) GetStatus(ctx context.Context, key string) (*entities.ApiKey, error) {
	var keyRes entities.ApiKey

	err := r.db.QueryRowxContext(ctx, constants.GetStatusByApiKey, key).StructScan(&keyRes)

	if err != nil {
		return nil, err
	}

	return &keyRes, nil
}

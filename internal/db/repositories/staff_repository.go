package repositories

import (
	"context"

	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type StaffRepository struct {
	db *sqlx.DB
}

func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db}
}

// ListActiveStaff returns all active staff roster rows.
func (r *StaffRepository) ListActiveStaff(ctx context.Context) ([]entities.StaffMember, error) {
	var staff []entities.StaffMember
	if err := r.db.SelectContext(ctx, &staff, constants.GetActiveStaffMembers); err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *StaffRepository) FindByDiscordId(ctx context.Context, discordId string) (*entities.StaffMember, error) {
	var member entities.StaffMember
	err := r.db.QueryRowxContext(ctx, constants.GetStaffMemberByDiscordId, discordId).StructScan(&member)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

type PresenceRepository struct {
	db *sqlx.DB
}

func NewPresenceRepository(db *sqlx.DB) *PresenceRepository {
	return &PresenceRepository{db}
}

// ListAll returns every discord_presence row. The staff status aggregator
// joins these with the staff roster client-side by discord id.
func (r *PresenceRepository) ListAll(ctx context.Context) ([]entities.DiscordPresence, error) {
	var rows []entities.DiscordPresence
	if err := r.db.SelectContext(ctx, &rows, constants.GetAllDiscordPresence); err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert writes the presence row the Discord bot reports for a member.
func (r *PresenceRepository) Upsert(ctx context.Context, discordId string, status constants.PresenceStatus, isOnline bool) error {
	_, err := r.db.ExecContext(ctx, constants.UpsertDiscordPresence, discordId, status, isOnline)
	return err
}

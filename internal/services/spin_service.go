package services

import (
	"context"
	"errors"

	"horizon-rp/quartermaster/internal/db/repositories"
	"horizon-rp/quartermaster/internal/models/dtos"
)

var ErrInvalidSpinCount = errors.New("spins must be a positive number")

// SpinService manages spin-wheel credits gifted by admins and consumed by
// the wheel before a prize claim reaches the delivery webhook.
type SpinService struct {
	spins *repositories.SpinRepository
}

func NewSpinService(spins *repositories.SpinRepository) *SpinService {
	return &SpinService{spins: spins}
}

// Gift credits spins to a Discord user, creating the row on first gift.
func (s *SpinService) Gift(ctx context.Context, req dtos.GiftSpinsReq, giftedBy string) error {
	if !IsValidDiscordID(req.DiscordID) {
		return ErrInvalidDiscordID
	}
	if req.Spins <= 0 {
		return ErrInvalidSpinCount
	}
	return s.spins.Gift(ctx, req.DiscordID, giftedBy, req.Spins)
}

// Remaining returns how many spins a user has left. Zero when no row exists.
func (s *SpinService) Remaining(ctx context.Context, discordID string) (int, error) {
	if !IsValidDiscordID(discordID) {
		return 0, ErrInvalidDiscordID
	}
	row, err := s.spins.GetByDiscordID(ctx, discordID)
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, nil
	}
	return row.SpinsRemaining, nil
}

// Consume spends one spin. Returns repositories.ErrNoSpinsRemaining when
// the balance is already zero.
func (s *SpinService) Consume(ctx context.Context, discordID string) error {
	if !IsValidDiscordID(discordID) {
		return ErrInvalidDiscordID
	}
	return s.spins.Consume(ctx, discordID)
}

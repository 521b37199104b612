package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"horizon-rp/quartermaster/internal/auth"
	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/db/repositories"
	"horizon-rp/quartermaster/internal/models/dtos"
	"horizon-rp/quartermaster/internal/services"
)

// GiftSpinsHandler handles POST /api/v1/spins/gift (admin only)
func (h *Handlers) GiftSpinsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req dtos.GiftSpinsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := h.deps.Services.Spin.Gift(r.Context(), req, claims.DiscordUserID()); err != nil {
			if errors.Is(err, services.ErrInvalidDiscordID) || errors.Is(err, services.ErrInvalidSpinCount) {
				common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
				return
			}
			common.RespondError(w, initTime, err, "Failed to gift spins")
			return
		}

		common.RespondSuccess(w, initTime, "Spins gifted", nil)
	}
}

// SpinsRemainingHandler handles GET /api/v1/spins/{discordID}
func (h *Handlers) SpinsRemainingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		discordID := chi.URLParam(r, "discordID")

		remaining, err := h.deps.Services.Spin.Remaining(r.Context(), discordID)
		if err != nil {
			if errors.Is(err, services.ErrInvalidDiscordID) {
				common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
				return
			}
			common.RespondError(w, initTime, err, "Failed to fetch remaining spins")
			return
		}

		common.RespondSuccess(w, initTime, "Remaining spins fetched", map[string]any{
			"discord_id": discordID,
			"remaining":  remaining,
		})
	}
}

// ConsumeSpinHandler handles POST /api/v1/spins/{discordID}/consume
func (h *Handlers) ConsumeSpinHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		discordID := chi.URLParam(r, "discordID")

		if err := h.deps.Services.Spin.Consume(r.Context(), discordID); err != nil {
			switch {
			case errors.Is(err, repositories.ErrNoSpinsRemaining):
				common.RespondError(w, initTime, err, "No spins remaining", http.StatusConflict)
			case errors.Is(err, services.ErrInvalidDiscordID):
				common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			default:
				common.RespondError(w, initTime, err, "Failed to consume spin")
			}
			return
		}

		common.RespondSuccess(w, initTime, "Spin consumed", nil)
	}
}

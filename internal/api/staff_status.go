package api

import (
	"encoding/json"
	"net/http"
	"time"

	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/services"
)

// StaffStatusHandler handles GET /api/v1/staff/status
func StaffStatusHandler(staffStatus *services.StaffStatusService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		resp, err := staffStatus.GetStatus(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch staff status")
			return
		}

		common.RespondSuccess(w, initTime, "Staff status fetched", resp)
	}
}

type presenceSyncReq struct {
	DiscordID string `json:"discord_id"`
	Status    string `json:"status"`
	IsOnline  bool   `json:"is_online"`
}

// PresenceSyncHandler handles POST /api/v1/staff/presence, called by the
// Discord bot whenever it observes a staff presence change.
func PresenceSyncHandler(staffStatus *services.StaffStatusService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req presenceSyncReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}
		if !services.IsValidDiscordID(req.DiscordID) {
			common.RespondError(w, initTime, services.ErrInvalidDiscordID, "Invalid discord id", http.StatusBadRequest)
			return
		}

		status := constants.PresenceStatus(req.Status)
		switch status {
		case constants.PresenceOnline, constants.PresenceIdle, constants.PresenceDnd, constants.PresenceOffline:
		default:
			status = constants.PresenceUnknown
		}

		if err := staffStatus.RecordPresence(r.Context(), req.DiscordID, status, req.IsOnline); err != nil {
			common.RespondError(w, initTime, err, "Failed to record presence")
			return
		}

		common.RespondSuccess(w, initTime, "Presence recorded", nil)
	}
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/models/dtos"
	"horizon-rp/quartermaster/internal/services"
)

// ChangeRoleHandler handles POST /api/v1/roles/change
func ChangeRoleHandler(bridge *services.RoleBridgeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RoleChangeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		result, err := bridge.ChangeRole(r.Context(), req)
		if err != nil {
			code := http.StatusInternalServerError
			switch {
			case errors.Is(err, services.ErrInvalidDiscordID),
				errors.Is(err, services.ErrInvalidAction):
				code = http.StatusBadRequest
			case errors.Is(err, services.ErrMemberNotInGuild):
				code = http.StatusNotFound
			case errors.Is(err, services.ErrMissingPermission):
				code = http.StatusForbidden
			}
			common.RespondError(w, initTime, err, "Role change failed", code)
			return
		}

		common.RespondSuccess(w, initTime, "Role change processed", result)
	}
}

// ChangeRolesBatchHandler handles POST /api/v1/roles/batch
func ChangeRolesBatchHandler(bridge *services.RoleBridgeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var reqs []dtos.RoleChangeReq
		if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}
		if len(reqs) == 0 {
			common.RespondError(w, initTime, nil, "Empty batch", http.StatusBadRequest)
			return
		}

		results := bridge.ChangeRolesBatch(r.Context(), reqs)
		common.RespondSuccess(w, initTime, "Batch processed", results)
	}
}

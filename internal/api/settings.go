package api

import (
	"encoding/json"
	"net/http"
	"time"

	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/models/dtos"
)

// GetSettingsHandler handles GET /settings (public read)
func (h *Handlers) GetSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		settings, err := h.deps.Services.Settings.GetAllSettings(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch settings")
			return
		}

		common.RespondSuccess(w, initTime, "Settings fetched", settings)
	}
}

// SetSettingHandler handles PUT /api/v1/settings (admin only)
func (h *Handlers) SetSettingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SetSettingReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		if !common.IsValidSettingKey(req.Key) {
			common.RespondError(w, initTime, nil, "Unknown setting key", http.StatusBadRequest)
			return
		}

		if err := h.deps.Services.Settings.SetSetting(r.Context(), req.Key, req.Value); err != nil {
			common.RespondError(w, initTime, err, "Failed to update setting")
			return
		}

		common.RespondSuccess(w, initTime, "Setting updated", map[string]any{
			"key":   req.Key,
			"value": req.Value,
		})
	}
}

// ListSettingKeysHandler handles GET /api/v1/settings/keys (admin only)
func (h *Handlers) ListSettingKeysHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		common.RespondSuccess(w, initTime, "Setting keys fetched", h.deps.Services.Settings.ListPossibleKeys())
	}
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"horizon-rp/quartermaster/internal/auth"
	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/models/dtos"
	"horizon-rp/quartermaster/internal/services"
)

// SubmitApplicationHandler handles POST /api/v1/whitelist/apply
func (h *Handlers) SubmitApplicationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SubmitApplicationReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		app, err := h.deps.Services.Whitelist.Submit(r.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrApplicationsClosed):
				common.RespondError(w, initTime, err, "Applications are currently closed", http.StatusForbidden)
			case errors.Is(err, services.ErrDuplicateApplication):
				common.RespondError(w, initTime, err, "You already have a pending application", http.StatusConflict)
			case errors.Is(err, services.ErrInvalidDiscordID):
				common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			default:
				common.RespondError(w, initTime, err, "Failed to submit application")
			}
			return
		}

		common.RespondSuccess(w, initTime, "Application submitted", map[string]any{
			"application_id": app.ID,
			"status":         app.Status,
		}, http.StatusCreated)
	}
}

// ListPendingApplicationsHandler handles GET /api/v1/whitelist/pending (staff only)
func (h *Handlers) ListPendingApplicationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
				limit = n
			}
		}

		apps, err := h.deps.Services.Whitelist.ListPending(r.Context(), limit)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list pending applications")
			return
		}

		common.RespondSuccess(w, initTime, "Pending applications fetched", apps)
	}
}

// ReviewApplicationHandler handles POST /api/v1/whitelist/{appID}/review (staff only)
func (h *Handlers) ReviewApplicationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		appID := chi.URLParam(r, "appID")

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req dtos.ReviewApplicationReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		app, err := h.deps.Services.Whitelist.Review(r.Context(), appID, claims.DiscordUserID(), req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrApplicationNotFound):
				common.RespondError(w, initTime, err, "Application not found", http.StatusNotFound)
			case errors.Is(err, services.ErrAlreadyReviewed):
				common.RespondError(w, initTime, err, "Application has already been reviewed", http.StatusConflict)
			default:
				common.RespondError(w, initTime, err, "Failed to review application")
			}
			return
		}

		common.RespondSuccess(w, initTime, "Application reviewed", map[string]any{
			"application_id": app.ID,
			"status":         app.Status,
		})
	}
}

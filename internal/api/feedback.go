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

// SubmitFeedbackHandler handles POST /feedback
func (h *Handlers) SubmitFeedbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FeedbackReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := h.deps.Services.Feedback.Submit(r.Context(), req); err != nil {
			if errors.Is(err, services.ErrEmptyFeedback) {
				common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
				return
			}
			common.RespondError(w, initTime, err, "Failed to submit feedback")
			return
		}

		common.RespondSuccess(w, initTime, "Feedback submitted", nil)
	}
}

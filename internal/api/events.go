package api

import (
	"net/http"
	"time"

	"horizon-rp/quartermaster/internal/common"
)

// UpcomingEventsHandler handles GET /events
func (h *Handlers) UpcomingEventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		events, err := h.deps.Services.Events.ListUpcoming(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch upcoming events")
			return
		}

		common.RespondSuccess(w, initTime, "Upcoming events fetched", events)
	}
}

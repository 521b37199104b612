package api

import (
	"net/http"
	"time"

	"horizon-rp/quartermaster/internal/common"
)

// ServerStatusHandler handles GET /server-status. The provider already maps
// an unreachable game server to an offline payload, so this never errors on
// upstream failure.
func (h *Handlers) ServerStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		status := h.deps.Services.Fivem.GetServerStatus(r.Context())
		common.RespondSuccess(w, initTime, "Server status fetched", status)
	}
}

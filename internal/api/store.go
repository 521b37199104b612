package api

import (
	"net/http"
	"time"

	"horizon-rp/quartermaster/internal/common"
)

// StoreInfoHandler handles GET /store/info
func (h *Handlers) StoreInfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		info, err := h.deps.Services.Store.GetStoreInfo(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch store info")
			return
		}

		common.RespondSuccess(w, initTime, "Store info fetched", info)
	}
}

// StorePackagesHandler handles GET /store/packages
func (h *Handlers) StorePackagesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		packages, err := h.deps.Services.Store.GetPackages(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch store packages")
			return
		}

		common.RespondSuccess(w, initTime, "Store packages fetched", packages)
	}
}

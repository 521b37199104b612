package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"horizon-rp/quartermaster/internal/common"
)

// APIKeyStore is the slice of the keys repository the owner surface uses.
type APIKeyStore interface {
	Create(ctx context.Context, key string) error
	Deactivate(ctx context.Context, key string) (int64, error)
}

// CreateAPIKeyHandler handles POST /api/v1/admin/api-keys (owner only)
func CreateAPIKeyHandler(keys APIKeyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		key := uuid.New().String()
		if err := keys.Create(r.Context(), key); err != nil {
			common.RespondError(w, initTime, err, "Failed to create API key")
			return
		}

		common.RespondSuccess(w, initTime, "API key created", map[string]any{
			"api_key": key,
		}, http.StatusCreated)
	}
}

// DeactivateAPIKeyHandler handles DELETE /api/v1/admin/api-keys/{key} (owner only)
func DeactivateAPIKeyHandler(keys APIKeyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		key := chi.URLParam(r, "key")

		affected, err := keys.Deactivate(r.Context(), key)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to deactivate API key")
			return
		}
		if affected == 0 {
			common.RespondError(w, initTime, errors.New("unknown key"), "API key not found", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "API key deactivated", nil)
	}
}

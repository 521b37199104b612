package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"horizon-rp/quartermaster/internal/logging"
	"horizon-rp/quartermaster/internal/metrics"
	"horizon-rp/quartermaster/internal/models/dtos"
	"horizon-rp/quartermaster/internal/services"
)

// writeWebhookJSON writes the webhook envelope. Inbound game-server hooks
// always answer with this shape, success or not.
func writeWebhookJSON(w http.ResponseWriter, code int, body dtos.WebhookResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// recoverWebhook converts a handler panic into a 500 envelope so the game
// server always gets parseable JSON back.
func recoverWebhook(w http.ResponseWriter, endpoint string, metricsReg *metrics.MetricsRegistry) {
	if rec := recover(); rec != nil {
		logging.Error(fmt.Sprintf("Panic in %s webhook: %v", endpoint, rec))
		countWebhook(metricsReg, endpoint, "panic")
		writeWebhookJSON(w, http.StatusInternalServerError, dtos.WebhookResponse{
			Success: false,
			Error:   "internal error",
		})
	}
}

func countWebhook(metricsReg *metrics.MetricsRegistry, endpoint, outcome string) {
	if metricsReg == nil {
		return
	}
	metricsReg.WebhooksReceivedTotal.WithLabelValues(endpoint, outcome).Inc()
}

// BanWebhookHandler handles POST /webhooks/fivem-ban
func BanWebhookHandler(banSvc *services.BanService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer recoverWebhook(w, "fivem-ban", metricsReg)

		var payload dtos.BanWebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			countWebhook(metricsReg, "fivem-ban", "bad_request")
			writeWebhookJSON(w, http.StatusBadRequest, dtos.WebhookResponse{
				Success: false,
				Error:   "invalid JSON payload",
			})
			return
		}

		resp, err := banSvc.ProcessBanWebhook(r.Context(), payload)
		if err != nil {
			code := http.StatusInternalServerError
			if errors.Is(err, services.ErrMissingBanIdentifier) || errors.Is(err, services.ErrUnknownBanAction) {
				code = http.StatusBadRequest
			}
			countWebhook(metricsReg, "fivem-ban", "error")
			writeWebhookJSON(w, code, dtos.WebhookResponse{
				Success: false,
				Error:   err.Error(),
			})
			return
		}

		countWebhook(metricsReg, "fivem-ban", "ok")
		writeWebhookJSON(w, http.StatusOK, *resp)
	}
}

// PrizeWebhookHandler handles POST /webhooks/deliver-spin-prize
func PrizeWebhookHandler(prizeSvc *services.PrizeService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer recoverWebhook(w, "deliver-spin-prize", metricsReg)

		var payload dtos.PrizeDeliveryPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			countWebhook(metricsReg, "deliver-spin-prize", "bad_request")
			writeWebhookJSON(w, http.StatusBadRequest, dtos.WebhookResponse{
				Success: false,
				Error:   "invalid JSON payload",
			})
			return
		}

		resp, err := prizeSvc.ProcessPrizeWebhook(r.Context(), payload)
		if err != nil {
			code := http.StatusInternalServerError
			if errors.Is(err, services.ErrInvalidDiscordID) || errors.Is(err, services.ErrMissingPrizeKey) {
				code = http.StatusBadRequest
			}
			countWebhook(metricsReg, "deliver-spin-prize", "error")
			writeWebhookJSON(w, code, dtos.WebhookResponse{
				Success: false,
				Error:   err.Error(),
			})
			return
		}

		countWebhook(metricsReg, "deliver-spin-prize", "ok")
		writeWebhookJSON(w, http.StatusOK, *resp)
	}
}

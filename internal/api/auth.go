package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/logging"
)

// DashboardTokenExchanger is the slice of the URL signer the login exchange
// uses.
type DashboardTokenExchanger interface {
	ValidateToken(ctx context.Context, tokenString string) (*common.SignedToken, error)
	MarkTokenAsUsed(ctx context.Context, tokenID string) error
}

// DashboardLoginHandler handles GET /auth/login?token=... — the target of
// presigned dashboard links. The token is validated and its jti burned, so a
// link grants exactly one login.
func DashboardLoginHandler(signer DashboardTokenExchanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			common.RespondError(w, initTime, errors.New("missing token"), "Missing token", http.StatusBadRequest)
			return
		}

		token, err := signer.ValidateToken(r.Context(), tokenString)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		if err := signer.MarkTokenAsUsed(r.Context(), token.TokenID); err != nil {
			// Refusing the login is safer than letting the link stay live.
			logging.Error("Failed to burn dashboard token", "jti", token.TokenID, "error", err.Error())
			common.RespondError(w, initTime, err, "Failed to complete login")
			return
		}

		common.RespondSuccess(w, initTime, "Login successful", map[string]any{
			"discord_id": token.DiscordID,
			"role":       token.Role,
			"expires_at": token.ExpiresAt,
		})
	}
}

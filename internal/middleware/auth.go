package middleware

import (
	"net/http"
	"strings"

	"horizon-rp/quartermaster/internal/auth"
	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/db/repositories"
)

// AuthMiddleware accepts either an X-API-Key (game server / Discord bot) or
// a presigned bearer token (staff dashboard) and stores the resulting claims
// in the request context.
func AuthMiddleware(staffRepo *repositories.StaffRepository, keysRepo *repositories.KeysRepo, signer *common.URLSignerService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			apiKey := r.Header.Get("X-API-Key")

			var claims auth.UserClaims

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				tokenString := strings.TrimPrefix(authHeader, "Bearer ")

				token, err := signer.ValidateToken(r.Context(), tokenString)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
					return
				}

				claims = &auth.TokenClaims{
					DiscordUIDVal: token.DiscordID,
					RoleValue:     constants.StaffRole(token.Role),
					TokenID:       token.TokenID,
				}

			case apiKey != "":
				discordID := r.Header.Get("X-Discord-Id")

				keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
					return
				}
				if !keyRes.Status {
					http.Error(w, "Unauthorized. Inactive API Key", http.StatusUnauthorized)
					return
				}

				claims = auth.MakeClaimsFromApiKey(r.Context(), staffRepo, keyRes.ApiKey, discordID)

			default:
				http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

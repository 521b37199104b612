package middleware

import (
	"net/http"

	"horizon-rp/quartermaster/internal/auth"
	"horizon-rp/quartermaster/internal/constants"
)

func IsStaffMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if claims == nil || !claims.HasRoleAtLeast(constants.RoleModerator) {
				http.Error(w, "Unauthorized. Need staff perms", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

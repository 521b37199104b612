package routes

import (
	"github.com/go-chi/chi/v5"

	"horizon-rp/quartermaster/internal/api"
	"horizon-rp/quartermaster/internal/metrics"
	"horizon-rp/quartermaster/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, presenceHandlers *api.PresenceHandlers, deps *api.Dependencies, metricsReg *metrics.MetricsRegistry) {

	// Inbound hooks from the game server. These carry their own shared
	// secret on the FiveM side and answer with the webhook envelope.
	r.Group(func(hooks chi.Router) {
		hooks.Post("/webhooks/fivem-ban", api.BanWebhookHandler(deps.Services.Ban, metricsReg))
		hooks.Post("/webhooks/deliver-spin-prize", api.PrizeWebhookHandler(deps.Services.Prize, metricsReg))
	})

	// Public reads for the website frontend
	r.Group(func(public chi.Router) {
		public.Get("/auth/login", api.DashboardLoginHandler(deps.Services.URLSigner))
		public.Get("/staff/status", api.StaffStatusHandler(deps.Services.StaffStatus))
		public.Get("/server-status", handlers.ServerStatusHandler())
		public.Get("/settings", handlers.GetSettingsHandler())
		public.Get("/store/info", handlers.StoreInfoHandler())
		public.Get("/store/packages", handlers.StorePackagesHandler())
		public.Get("/events", handlers.UpcomingEventsHandler())
		public.Post("/whitelist/apply", handlers.SubmitApplicationHandler())
		public.Post("/feedback", handlers.SubmitFeedbackHandler())

		// Presence channels are public: anonymous visitors count too
		public.Post("/presence/{entity}/join", presenceHandlers.JoinHandler())
		public.Post("/presence/{entity}/heartbeat", presenceHandlers.HeartbeatHandler())
		public.Get("/presence/{entity}/viewers", presenceHandlers.ViewersHandler())
		public.Post("/presence/{entity}/leave", presenceHandlers.LeaveHandler())
	})

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.AuthMiddleware(deps.Repo.Staff, &deps.Repo.Keys, deps.Services.URLSigner)) // global: all routes must be authenticated

		v1.Post("/auth/generate-dashboard-link", handlers.GenerateDashboardLinkHandler())
		v1.Get("/spins/{discordID}", handlers.SpinsRemainingHandler())
		v1.Post("/spins/{discordID}/consume", handlers.ConsumeSpinHandler())

		// Staff-only group
		v1.Group(func(staff chi.Router) {
			staff.Use(middleware.IsStaffMiddleware())

			staff.Post("/roles/change", api.ChangeRoleHandler(deps.Services.RoleBridge))
			staff.Post("/roles/change-batch", api.ChangeRolesBatchHandler(deps.Services.RoleBridge))

			// The presence bot posts Discord status snapshots here
			staff.Post("/staff/presence", api.PresenceSyncHandler(deps.Services.StaffStatus))

			staff.Get("/whitelist/pending", handlers.ListPendingApplicationsHandler())
			staff.Post("/whitelist/{appID}/review", handlers.ReviewApplicationHandler())

			// Admin-only group (staff + admin)
			staff.Group(func(admin chi.Router) {
				admin.Use(middleware.IsAdminMiddleware())

				admin.Post("/spins/gift", handlers.GiftSpinsHandler())
				admin.Put("/settings", handlers.SetSettingHandler())
				admin.Get("/settings/keys", handlers.ListSettingKeysHandler())

				// Owner-only group (staff + admin + owner)
				admin.Group(func(owner chi.Router) {
					owner.Use(middleware.IsOwnerMiddleware())

					owner.Post("/admin/api-keys", api.CreateAPIKeyHandler(&deps.Repo.Keys))
					owner.Delete("/admin/api-keys/{key}", api.DeactivateAPIKeyHandler(&deps.Repo.Keys))
				})
			})
		})
	})
}

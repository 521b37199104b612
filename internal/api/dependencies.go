package api

import (
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"

	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/config"
	"horizon-rp/quartermaster/internal/db"
	"horizon-rp/quartermaster/internal/db/repositories"
	"horizon-rp/quartermaster/internal/logging"
	"horizon-rp/quartermaster/internal/metrics"
	"horizon-rp/quartermaster/internal/presence"
	"horizon-rp/quartermaster/internal/providers"
	"horizon-rp/quartermaster/internal/services"
)

type Repositories struct {
	User         repositories.UserRepository
	UserGorm     *repositories.UserRepositoryGORM
	Keys         repositories.KeysRepo
	Staff        *repositories.StaffRepository
	Presence     *repositories.PresenceRepository
	Settings     *repositories.SettingsRepository
	Bans         *repositories.BanRepository
	Fingerprints *repositories.FingerprintRepository
	Rewards      *repositories.RewardRepository
	Spins        *repositories.SpinRepository
	Applications *repositories.ApplicationRepository
}

type Services struct {
	Cache       common.CacheInterface
	Redis       *redis.Client
	RewardQueue common.RewardQueueService
	Settings    *common.SettingsService
	URLSigner   *common.URLSignerService
	Discord     *discordgo.Session

	Fivem *providers.FivemProvider
	Tebex *providers.TebexProvider
	Email *providers.ResendProvider

	StaffStatus *services.StaffStatusService
	RoleBridge  *services.RoleBridgeService
	Ban         *services.BanService
	Prize       *services.PrizeService
	Spin        *services.SpinService
	Whitelist   *services.WhitelistService
	Feedback    *services.FeedbackService
	Store       *services.StoreService
	Events      *services.EventsService

	PresenceHub presence.ChannelHub
	Tracker     *presence.Tracker
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	cfg := config.Get()

	repos := &Repositories{
		User:         *repositories.NewUserRepository(db.DB),
		UserGorm:     repositories.NewUserRepositoryGORM(db.PgDB),
		Keys:         *repositories.NewApiKeysRepo(db.DB),
		Staff:        repositories.NewStaffRepository(db.DB),
		Presence:     repositories.NewPresenceRepository(db.DB),
		Settings:     repositories.NewSettingsRepository(db.DB),
		Bans:         repositories.NewBanRepository(db.PgDB),
		Fingerprints: repositories.NewFingerprintRepository(db.PgDB),
		Rewards:      repositories.NewRewardRepository(db.PgDB),
		Spins:        repositories.NewSpinRepository(db.PgDB),
		Applications: repositories.NewApplicationRepository(db.PgDB),
	}

	redisClient := common.NewRedisClient()

	// Cache defaults to in-memory; Redis keeps nodes consistent when the
	// service runs more than one replica.
	var cacheSvc common.CacheInterface
	if os.Getenv("CACHE_BACKEND") == "redis" {
		redisCache, err := common.NewRedisCacheService(redisClient)
		if err != nil {
			return nil, err
		}
		cacheSvc = redisCache
	} else {
		cacheSvc = common.NewCacheService(60, 600)
	}

	discordSession, err := common.NewDiscordSession(cfg)
	if err != nil {
		return nil, err
	}

	// Presence follows the same single-node / multi-node split as the cache.
	var hub presence.ChannelHub
	if os.Getenv("PRESENCE_BACKEND") == "redis" {
		redisHub, err := presence.NewRedisChannelHub(redisClient)
		if err != nil {
			return nil, err
		}
		hub = redisHub
	} else {
		hub = presence.NewMemoryChannelHub()
	}

	fivem := providers.NewFivemProvider(cfg)
	tebex := providers.NewTebexProvider(cfg)
	email := providers.NewResendProvider(cfg)

	settingsSvc := common.NewSettingsService(repos.Settings, cacheSvc)
	rewardQueue := common.NewRewardQueueService(redisClient)
	roleBridge := services.NewRoleBridgeService(discordSession, cfg, metricsReg)

	svcs := &Services{
		Cache:       cacheSvc,
		Redis:       redisClient,
		RewardQueue: *rewardQueue,
		Settings:    settingsSvc,
		URLSigner:   common.NewURLSignerService([]byte(cfg.SigningSecret), redisClient),
		Discord:     discordSession,

		Fivem: fivem,
		Tebex: tebex,
		Email: email,

		StaffStatus: services.NewStaffStatusService(repos.Staff, repos.Presence, cacheSvc),
		RoleBridge:  roleBridge,
		Ban:         services.NewBanService(repos.UserGorm, repos.Bans, repos.Fingerprints, discordSession, cfg),
		Prize:       services.NewPrizeService(repos.Rewards, fivem, rewardQueue, metricsReg),
		Spin:        services.NewSpinService(repos.Spins),
		Whitelist:   services.NewWhitelistService(repos.Applications, settingsSvc, roleBridge, email),
		Feedback:    services.NewFeedbackService(discordSession, cfg),
		Store:       services.NewStoreService(tebex, cacheSvc),
		Events:      services.NewEventsService(discordSession, cfg, cacheSvc),

		PresenceHub: hub,
		Tracker:     presence.NewTracker(hub),
	}

	logging.Info("Dependencies initialized",
		"cache_backend", os.Getenv("CACHE_BACKEND"),
		"presence_backend", os.Getenv("PRESENCE_BACKEND"),
	)

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
	}, nil
}

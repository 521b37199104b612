package constants

type (
	RequestSource string
	APIStatus     string
	CachePrefix   string
)

const (
	RequestSourceAPI       RequestSource = "API"
	RequestSourceWebClient RequestSource = "WEB_CLIENT"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixSiteSetting CachePrefix = "SETTING_"
	CachePrefixStaffStatus CachePrefix = "STAFF_STATUS"
	CachePrefixStoreInfo   CachePrefix = "TEBEX_STORE_INFO"
	CachePrefixStorePkgs   CachePrefix = "TEBEX_PACKAGES"
	CachePrefixEvents      CachePrefix = "DISCORD_EVENTS"
)

// Presence rows older than this are treated as unknown/offline by the
// staff status aggregator.
const PresenceStaleMinutes = 15

// Reward delivery stream / consumer group names
const (
	RewardStreamName   = "rewards:deliver"
	RewardGroupName    = "reward-workers"
	SiteVisitorsEntity = "site"
)

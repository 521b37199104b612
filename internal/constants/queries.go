package constants

const (
	GetUserByDiscordId = `
	SELECT * FROM users WHERE discord_id = $1
	`

	GetStatusByApiKey = `
	SELECT id, status FROM api_keys WHERE id = $1
	`

	InsertApiKey = `
	INSERT INTO api_keys (id, status) VALUES ($1, true)
	`

	DeactivateApiKey = `
	UPDATE api_keys SET status = false WHERE id = $1
	`

	GetActiveStaffMembers = `
	SELECT * FROM staff_members WHERE is_active = true ORDER BY role, discord_username
	`

	GetStaffMemberByDiscordId = `
	SELECT * FROM staff_members WHERE discord_id = $1 AND is_active = true
	`

	GetAllDiscordPresence = `
	SELECT * FROM discord_presence
	`

	UpsertDiscordPresence = `
	INSERT INTO discord_presence (discord_id, status, is_online, last_seen_at, updated_at)
	VALUES ($1, $2, $3, NOW(), NOW())
	ON CONFLICT (discord_id)
	DO UPDATE SET status = $2, is_online = $3, last_seen_at = NOW(), updated_at = NOW()
	`

	GetSiteSettingByKey = `
	SELECT * FROM site_settings WHERE key = $1
	`

	GetAllSiteSettings = `
	SELECT * FROM site_settings ORDER BY key
	`

	UpsertSiteSetting = `
	INSERT INTO site_settings (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key)
	DO UPDATE SET value = $2, updated_at = NOW()
	`
)

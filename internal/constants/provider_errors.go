package constants

// Provider Error Codes
// These constants define specific error scenarios for external integrations

const (
	ErrCodeMissingConfig  = "MISSING_CONFIG"
	ErrCodeInvalidAPIKey  = "INVALID_API_KEY"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeNetworkError   = "NETWORK_ERROR"
	ErrCodeUpstreamError  = "UPSTREAM_ERROR"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodePermission     = "PERMISSION_DENIED"
	ErrCodeInvalidData    = "INVALID_DATA_FORMAT"
	ErrCodeDeliveryFailed = "DELIVERY_FAILED"
)

// Error Messages
// Human-readable messages corresponding to error codes

var ProviderErrorMessages = map[string]string{
	ErrCodeMissingConfig:  "A required environment variable for this integration is not set",
	ErrCodeInvalidAPIKey:  "The configured API key is invalid or has been revoked",
	ErrCodeRateLimited:    "Rate limit exceeded. Please try again later",
	ErrCodeNetworkError:   "Unable to reach the upstream service",
	ErrCodeUpstreamError:  "The upstream service returned an unexpected response",
	ErrCodeNotFound:       "The requested upstream resource was not found",
	ErrCodePermission:     "The bot lacks permission for this operation",
	ErrCodeInvalidData:    "The data format is invalid",
	ErrCodeDeliveryFailed: "The game server rejected or failed the delivery call",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, ok := ProviderErrorMessages[code]; ok {
		return msg
	}
	return "An unknown integration error occurred"
}

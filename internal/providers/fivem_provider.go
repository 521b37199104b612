package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"horizon-rp/quartermaster/internal/config"
	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/models/dtos"
)

// FivemProvider talks to the game server's HTTP surface: the public
// dynamic.json status endpoint and the authenticated reward callback.
type FivemProvider struct {
	BaseURL     string
	CallbackKey string
	Client      *http.Client
}

// NewFivemProvider creates a provider from the configured server address.
func NewFivemProvider(cfg *config.Config) *FivemProvider {
	return &FivemProvider{
		BaseURL:     cfg.FivemCallbackBaseURL(),
		CallbackKey: cfg.FivemCallbackKey,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// deliverCallbackReq is the body the game server's reward resource expects.
type deliverCallbackReq struct {
	DiscordID string `json:"discord_id"`
	Type      string `json:"type"`
	Amount    int    `json:"amount,omitempty"`
	Item      string `json:"item,omitempty"`
}

type deliverCallbackResp struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// DeliverPrize asks the game server to credit a prize to the player's
// character. A non-2xx response or success=false both count as failure.
func (p *FivemProvider) DeliverPrize(ctx context.Context, discordID string, prize constants.AutoPrize) error {
	if p.BaseURL == "" {
		return &ProviderError{
			Code:    constants.ErrCodeMissingConfig,
			Message: "FIVEM_SERVER_IP / FIVEM_SERVER_PORT are not set",
		}
	}
	if p.CallbackKey == "" {
		return &ProviderError{
			Code:    constants.ErrCodeMissingConfig,
			Message: "FIVEM_CALLBACK_KEY is not set",
		}
	}

	reqBody := deliverCallbackReq{
		DiscordID: discordID,
		Type:      prize.Type,
		Amount:    prize.Amount,
		Item:      prize.Item,
	}

	var result deliverCallbackResp
	if _, err := p.doPost(ctx, "/quartermaster/deliver", reqBody, &result); err != nil {
		return err
	}

	if !result.Success {
		return &ProviderError{
			Code:    constants.ErrCodeDeliveryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeDeliveryFailed),
			Details: result.Error,
		}
	}

	return nil
}

// dynamicStatusResp mirrors the relevant fields of FiveM's dynamic.json.
type dynamicStatusResp struct {
	Clients    int    `json:"clients"`
	MaxClients string `json:"sv_maxclients"`
	Hostname   string `json:"hostname"`
}

// GetServerStatus polls the public dynamic.json endpoint. Any failure is
// reported as an offline server rather than an error so callers can render
// the status widget unconditionally.
func (p *FivemProvider) GetServerStatus(ctx context.Context) *dtos.ServerStatus {
	if p.BaseURL == "" {
		return &dtos.ServerStatus{Online: false}
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var raw dynamicStatusResp
	if _, err := p.doGET(ctx, "/dynamic.json", &raw); err != nil {
		return &dtos.ServerStatus{Online: false}
	}

	max := 0
	fmt.Sscanf(raw.MaxClients, "%d", &max)

	return &dtos.ServerStatus{
		Online:         true,
		PlayersCurrent: raw.Clients,
		PlayersMax:     max,
	}
}

// doGET performs an unauthenticated GET against the game server.
func (p *FivemProvider) doGET(ctx context.Context, endpoint string, result interface{}) (int, error) {
	url := p.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, p.buildHTTPError(resp.StatusCode, endpoint, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to decode response",
			Err:     err,
		}
	}

	return resp.StatusCode, nil
}

// doPost performs an authenticated POST with a JSON body.
func (p *FivemProvider) doPost(ctx context.Context, endpoint string, payload interface{}, result interface{}) (int, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to marshal request body",
			Err:     err,
		}
	}

	url := p.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payloadBytes))
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	req.Header.Set("Authorization", "Bearer "+p.CallbackKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to read response body",
			Err:     readErr,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, p.buildHTTPError(resp.StatusCode, endpoint, string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, result); err != nil {
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to decode response",
			Details: string(bodyBytes),
			Err:     err,
		}
	}

	return resp.StatusCode, nil
}

// buildHTTPError creates the appropriate error for a status code.
func (p *FivemProvider) buildHTTPError(statusCode int, endpoint string, body string) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ProviderError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: fmt.Sprintf("Callback authentication failed for endpoint %s", endpoint),
			Details: body,
		}
	case http.StatusNotFound:
		return &ProviderError{
			Code:    constants.ErrCodeNotFound,
			Message: fmt.Sprintf("Resource not found: %s", endpoint),
			Details: body,
		}
	case http.StatusTooManyRequests:
		return &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details: body,
		}
	default:
		return &ProviderError{
			Code:    constants.ErrCodeUpstreamError,
			Message: fmt.Sprintf("Game server returned status %d for %s", statusCode, endpoint),
			Details: body,
		}
	}
}

package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"horizon-rp/quartermaster/internal/config"
	"horizon-rp/quartermaster/internal/constants"
)

// ResendProvider sends transactional email through the Resend HTTP API.
type ResendProvider struct {
	BaseURL  string
	APIKey   string
	FromAddr string
	Client   *http.Client
}

// NewResendProvider creates a provider from the configured API key.
func NewResendProvider(cfg *config.Config) *ResendProvider {
	baseURL := os.Getenv("RESEND_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}

	return &ResendProvider{
		BaseURL:  baseURL,
		APIKey:   cfg.ResendAPIKey,
		FromAddr: cfg.ResendFromAddr,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type resendEmailReq struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendEmailResp struct {
	ID string `json:"id"`
}

// SendEmail delivers a single HTML email and returns the provider message id.
func (p *ResendProvider) SendEmail(ctx context.Context, to, subject, html string) (string, error) {
	if p.APIKey == "" {
		return "", &ProviderError{
			Code:    constants.ErrCodeMissingConfig,
			Message: "RESEND_API_KEY environment variable is not set",
		}
	}
	if p.FromAddr == "" {
		return "", &ProviderError{
			Code:    constants.ErrCodeMissingConfig,
			Message: "RESEND_FROM_ADDRESS environment variable is not set",
		}
	}

	reqBody := resendEmailReq{
		From:    p.FromAddr,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}

	payloadBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to marshal request body",
			Err:     err,
		}
	}

	url := p.BaseURL + "/emails"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payloadBytes))
	if err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to read response body",
			Err:     readErr,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "", &ProviderError{
				Code:    constants.ErrCodeInvalidAPIKey,
				Message: "Resend rejected the configured API key",
				Details: string(bodyBytes),
			}
		case http.StatusTooManyRequests:
			return "", &ProviderError{
				Code:    constants.ErrCodeRateLimited,
				Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
				Details: string(bodyBytes),
			}
		default:
			return "", &ProviderError{
				Code:    constants.ErrCodeUpstreamError,
				Message: fmt.Sprintf("Resend returned status %d", resp.StatusCode),
				Details: string(bodyBytes),
			}
		}
	}

	var result resendEmailResp
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to decode response",
			Details: string(bodyBytes),
			Err:     err,
		}
	}

	return result.ID, nil
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"horizon-rp/quartermaster/internal/config"
	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/models/dtos"
)

// TebexProvider implements a read-only client for the Tebex Headless API,
// used to surface store packages on the community site.
type TebexProvider struct {
	BaseURL   string
	SecretKey string
	Client    *http.Client
}

// NewTebexProvider creates a Tebex provider from the configured secret key.
func NewTebexProvider(cfg *config.Config) *TebexProvider {
	baseURL := os.Getenv("TEBEX_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://plugin.tebex.io"
	}

	return &TebexProvider{
		BaseURL:   baseURL,
		SecretKey: cfg.TebexSecretKey,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// TebexStoreInfo is the subset of /information the site renders.
type TebexStoreInfo struct {
	Account struct {
		Name     string `json:"name"`
		Domain   string `json:"domain"`
		Currency struct {
			ISO4217 string `json:"iso_4217"`
			Symbol  string `json:"symbol"`
		} `json:"currency"`
	} `json:"account"`
}

type tebexPackage struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category struct {
		Name string `json:"name"`
	} `json:"category"`
}

// GetStoreInfo fetches webstore metadata.
func (p *TebexProvider) GetStoreInfo(ctx context.Context) (*TebexStoreInfo, error) {
	var info TebexStoreInfo
	if _, err := p.doGET(ctx, "/information", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetPackages fetches the published package list and flattens it into the
// shape the front-end consumes.
func (p *TebexProvider) GetPackages(ctx context.Context) ([]dtos.StorePackage, error) {
	var raw []tebexPackage
	if _, err := p.doGET(ctx, "/packages", &raw); err != nil {
		return nil, err
	}

	packages := make([]dtos.StorePackage, 0, len(raw))
	for _, pkg := range raw {
		packages = append(packages, dtos.StorePackage{
			ID:       pkg.ID,
			Name:     pkg.Name,
			Price:    pkg.Price,
			Category: pkg.Category.Name,
			ImageURL: pkg.Image,
		})
	}

	return packages, nil
}

// doGET performs a GET request with the store secret header.
func (p *TebexProvider) doGET(ctx context.Context, endpoint string, result interface{}) (int, error) {
	if p.SecretKey == "" {
		return 0, &ProviderError{
			Code:    constants.ErrCodeMissingConfig,
			Message: "TEBEX_SECRET_KEY environment variable is not set",
		}
	}

	url := p.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	req.Header.Set("X-Tebex-Secret", p.SecretKey)
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

func (p *TebexProvider) buildHTTPError(statusCode int, endpoint string, body string) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ProviderError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: fmt.Sprintf("Authentication failed for endpoint %s", endpoint),
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
			Message: fmt.Sprintf("Tebex returned status %d for %s", statusCode, endpoint),
			Details: body,
		}
	}
}

// Package erapi provides a client for the open.er-api.com exchange-rate API.
package erapi

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"tjkspices_backend/internal/feature/rates/domain"
	"tjkspices_backend/internal/feature/rates/domain/entity"
)

// Config holds configuration for the exchange-rate client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// LoadConfig loads exchange-rate configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("EXCHANGE_RATE_BASE_URL")
	if base == "" {
		base = "https://open.er-api.com"
	}
	return Config{
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}

// Client fetches INR exchange rates.
type Client struct {
	http *resty.Client
}

// NewClient creates a Client for the configured provider.
func NewClient(cfg Config) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout),
	}
}

type latestResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// LatestINR returns the current USD/EUR/AED rates against INR.
func (c *Client) LatestINR(ctx context.Context) (*entity.Rates, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&latestResponse{}).
		Get("/v6/latest/INR")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRateProvider, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: status %d", domain.ErrRateProvider, res.StatusCode())
	}

	body, ok := res.Result().(*latestResponse)
	if !ok || body.Rates == nil {
		return nil, fmt.Errorf("%w: malformed response", domain.ErrRateProvider)
	}

	return &entity.Rates{
		USD: body.Rates["USD"],
		EUR: body.Rates["EUR"],
		AED: body.Rates["AED"],
	}, nil
}

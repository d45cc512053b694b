// Package exchangerate implements the external rate provider collaborator
// against an exchangerate-api.com compatible endpoint.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zhwei-dev/jizhang_backend/internal/cache"
	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	portssvc "github.com/zhwei-dev/jizhang_backend/internal/core/ports/services"
)

const (
	defaultBaseURL = "https://v6.exchangerate-api.com/v6"

	// The free plan serves one rate table per day, so a fetched table can
	// shadow the rest of that day's calls for the same base currency.
	dayCacheTTL     = 24 * time.Hour
	dayCacheEntries = 64
)

// Client fetches latest conversion tables over HTTP. A process-local day
// cache bounds request volume; it is distinct from the persistent rate cache,
// which the exchange rate service owns.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	dayCache   *cache.LRUCache[map[domain.Currency]decimal.Decimal]
	now        func() time.Time
}

// Ensure Client implements the provider port
var _ portssvc.RateProviderSvc = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the provider endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithClock overrides the time source used for day-cache keys.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a provider client. An empty apiKey is allowed; every
// fetch then fails as unavailable, which pushes callers toward manual rates.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		dayCache:   cache.NewLRUCache[map[domain.Currency]decimal.Decimal](dayCacheEntries, dayCacheTTL),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// latestResponse mirrors the provider's /latest payload. Rates are decoded
// from the raw JSON numbers so no float64 round trip happens.
type latestResponse struct {
	Result          string                     `json:"result"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

// FetchLatestRates returns the latest conversion table for the base currency.
// Missing API key, transport errors, non-2xx statuses and non-success bodies
// are all reported as errors; there is no default rate.
func (c *Client) FetchLatestRates(ctx context.Context, from domain.Currency) (map[domain.Currency]decimal.Decimal, error) {
	cacheKey := fmt.Sprintf("%s-%s", c.now().UTC().Format("2006-01-02"), from)
	if rates, ok := c.dayCache.Get(cacheKey); ok {
		return rates, nil
	}

	if c.apiKey == "" {
		return nil, fmt.Errorf("exchange rate provider: no API key configured")
	}

	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, from)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("exchange rate provider: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchange rate provider: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange rate provider: unexpected status %d", resp.StatusCode)
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("exchange rate provider: decode response: %w", err)
	}
	if payload.Result != "success" {
		return nil, fmt.Errorf("exchange rate provider: result %q", payload.Result)
	}
	if len(payload.ConversionRates) == 0 {
		return nil, fmt.Errorf("exchange rate provider: empty conversion table for %s", from)
	}

	rates := make(map[domain.Currency]decimal.Decimal, len(payload.ConversionRates))
	for code, rate := range payload.ConversionRates {
		if currency, ok := domain.ParseCurrency(code); ok {
			rates[currency] = rate
		}
	}

	c.dayCache.Set(cacheKey, rates)
	return rates, nil
}

package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Provider fetches the multiplier that converts one unit of from into to.
type Provider interface {
	Convert(ctx context.Context, from, to string) (float64, error)
}

const (
	defaultBaseURL = "https://api.exchangerate.host/convert"
	requestTimeout = 5 * time.Second
)

// Client is a Provider backed by the exchangerate.host convert endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a rate provider client. apiKey may be empty; the free
// tier of the API works without one.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
	}
}

type convertResponse struct {
	Result *float64 `json:"result"`
}

func (c *Client) Convert(ctx context.Context, from, to string) (float64, error) {
	params := url.Values{}
	params.Set("from", from)
	params.Set("to", to)
	params.Set("amount", "1")
	if c.apiKey != "" {
		params.Set("access_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate request failed: status %d", resp.StatusCode)
	}

	var parsed convertResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("failed to parse rate response: %w", err)
	}
	if parsed.Result == nil || *parsed.Result <= 0 {
		return 0, fmt.Errorf("rate response has no usable result")
	}
	return *parsed.Result, nil
}

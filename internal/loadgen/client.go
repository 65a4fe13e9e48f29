package loadgen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// HTTP status code constants.
const (
	statusOK = 200
)

// Client wraps http.Client for the leaderboard API.
type Client struct {
	client  *http.Client
	baseURL string
}

// newClient creates an API client with a request timeout.
func newClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Health checks the service health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != statusOK {
		return fmt.Errorf("health check failed with status %d", resp.StatusCode)
	}
	return nil
}

// PostScore applies a delta and returns the new score reported by the
// service.
func (c *Client) PostScore(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/customer/%d/score/%s", c.baseURL, id, delta)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to post score: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != statusOK {
		return decimal.Zero, fmt.Errorf("score update rejected with status %d: %s", resp.StatusCode, body)
	}

	score, err := decimal.NewFromString(string(body))
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparsable score body %q: %w", body, err)
	}
	return score, nil
}

// Leaderboard fetches the rank window [start, end].
func (c *Client) Leaderboard(ctx context.Context, start, end int) ([]Entry, error) {
	url := fmt.Sprintf("%s/leaderboard?start=%d&end=%d", c.baseURL, start, end)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != statusOK {
		return nil, fmt.Errorf("leaderboard fetch failed with status %d", resp.StatusCode)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}
	return entries, nil
}

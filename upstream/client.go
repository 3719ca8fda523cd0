package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sig-0/vesdash/quote"
)

// StatusSuccess is the success sentinel on upstream payloads
const StatusSuccess = "success"

// ExchangeUpdate is the per-exchange fetch breakdown on the
// current-rates payload
type ExchangeUpdate struct {
	Status        string                `json:"status"`
	ProcessedData []quote.RawRateRecord `json:"processed_data"`
}

// CurrentResponse is the current-rates endpoint payload
type CurrentResponse struct {
	Status       string                    `json:"status"`
	Data         []quote.RawRateRecord     `json:"data"`
	UpdateStatus map[string]ExchangeUpdate `json:"update_status"`
	Timestamp    string                    `json:"timestamp"`
}

// HistoryResponse is the historical-rates endpoint payload
type HistoryResponse struct {
	Status    string                 `json:"status"`
	Data      []quote.HistoricalRate `json:"data"`
	Count     int                    `json:"count"`
	Timestamp string                 `json:"timestamp"`
}

// Client is the upstream rate aggregation API client
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a new upstream API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// CurrentRates fetches the current quotations, bypassing any HTTP cache
// so the response always reflects the latest upstream write
func (c *Client) CurrentRates(ctx context.Context) (*CurrentResponse, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/api/v1/rates/current",
		http.NoBody,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create new GET request: %w", err)
	}

	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to execute GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	var payload CurrentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("unable to decode response: %w", err)
	}

	return &payload, nil
}

// HistoricalRates fetches the historical rate records, optionally
// passing a record-limit hint (limit <= 0 means no hint)
func (c *Client) HistoricalRates(ctx context.Context, limit int) (*HistoryResponse, error) {
	endpoint := c.baseURL + "/api/v1/rates/history"

	if limit > 0 {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(limit))

		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("unable to create new GET request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to execute GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	var payload HistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("unable to decode response: %w", err)
	}

	return &payload, nil
}

// Ping checks the upstream API for reachability
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodHead,
		c.baseURL+"/api/v1/rates/current",
		http.NoBody,
	)
	if err != nil {
		return fmt.Errorf("unable to create new HEAD request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to execute HEAD request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	return nil
}

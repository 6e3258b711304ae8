package zepp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"swimreport/internal/auth"
)

// DefaultBaseURL is the Mi Fit / Zepp API endpoint
const DefaultBaseURL = "https://api-mifit.huami.com"

const (
	historyPath = "/v1/sport/run/history.json"
	detailPath  = "/v1/sport/run/detail.json"
)

// APIError is returned for non-200 responses
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
}

// Client is a Zepp workout API client
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a client that authenticates every request with the app
// token from tokenSource
func NewClient(baseURL string, tokenSource oauth2.TokenSource) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: auth.NewTransport(tokenSource, nil),
			Timeout:   60 * time.Second,
		},
		rateLimiter: NewRateLimiter(200 * time.Millisecond),
	}
}

// SetMinInterval changes the spacing between requests
func (c *Client) SetMinInterval(d time.Duration) {
	c.rateLimiter = NewRateLimiter(d)
}

// GetHistory fetches the list of recorded workouts
func (c *Client) GetHistory(ctx context.Context) ([]WorkoutSummary, error) {
	var body historyResponse
	if err := c.getJSON(ctx, historyPath, nil, &body); err != nil {
		return nil, fmt.Errorf("history request: %w", err)
	}
	return body.Data.Summary, nil
}

// GetDetail fetches the encoded streams for one workout
func (c *Client) GetDetail(ctx context.Context, trackID, source string) (*WorkoutDetail, error) {
	params := url.Values{}
	params.Set("trackid", trackID)
	params.Set("source", source)

	var body detailResponse
	if err := c.getJSON(ctx, detailPath, params, &body); err != nil {
		return nil, fmt.Errorf("fetching detail for %s: %w", trackID, err)
	}
	return &body.Data, nil
}

// Requests returns the number of API requests issued so far
func (c *Client) Requests() int {
	return c.rateLimiter.Requests()
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.rateLimiter.UpdateFromResponse(resp)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

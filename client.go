package webcore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is an HTTP client for the site API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithAPIKey sets the bearer key used for admin endpoints.
func WithAPIKey(key string) Option {
	return func(client *Client) {
		client.apiKey = key
	}
}

// NewClient creates a site API client.
// baseURL is the API root (e.g., "https://www.example.com").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Search runs a unified search across insights and credentials.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	if opts.Type != "" {
		params.Set("type", opts.Type)
	}
	setPagination(params, opts.Page, opts.Limit)

	var resp SearchResponse
	if err := c.get(ctx, "/api/search", params, &resp); err != nil {
		return nil, wrapError(err, "Search")
	}
	return &resp, nil
}

// SearchInsights searches published insights only.
func (c *Client) SearchInsights(ctx context.Context, query string, page, limit int) (*InsightsResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	setPagination(params, page, limit)

	var resp InsightsResponse
	if err := c.get(ctx, "/api/search/insights", params, &resp); err != nil {
		return nil, wrapError(err, "SearchInsights")
	}
	return &resp, nil
}

// SearchCredentials searches active credentials only.
func (c *Client) SearchCredentials(
	ctx context.Context, query string, filter CredentialFilter, page, limit int,
) (*CredentialsResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	if filter.Type != "" {
		params.Set("type", filter.Type)
	}
	if filter.Category != "" {
		params.Set("category", filter.Category)
	}
	setPagination(params, page, limit)

	var resp CredentialsResponse
	if err := c.get(ctx, "/api/search/credentials", params, &resp); err != nil {
		return nil, wrapError(err, "SearchCredentials")
	}
	return &resp, nil
}

// BustCache drops the server-side sitemap cache. Requires an API key.
func (c *Client) BustCache(ctx context.Context) error {
	return wrapError(c.do(ctx, http.MethodPost, "/api/admin/cache/bust", nil), "BustCache")
}

func setPagination(params url.Values, page, limit int) {
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	return c.do(ctx, http.MethodGet, path+"?"+params.Encode(), result)
}

// do performs an HTTP request and decodes the JSON response. A non-2xx
// status becomes an *Error carrying the server's error message.
func (c *Client) do(ctx context.Context, method, pathAndQuery string, result any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	ref, err := url.Parse(pathAndQuery)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	fullURL := u.ResolveReference(ref).String()

	req, err := http.NewRequestWithContext(ctx, method, fullURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// errorMessage extracts the error field from an API error body, falling
// back to the raw body.
func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return string(body)
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"guess-the-guild/internal/metrics"
)

const DefaultBaseURL = "https://api.guild.xyz"

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: NewMetricsRoundTripper(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// NewTestClient creates a client with custom base URL for testing.
func NewTestClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

type ListGuildsQuery struct {
	Limit  int
	Offset int
	Sort   string
}

func (c *Client) ListGuilds(ctx context.Context, q ListGuildsQuery) ([]Guild, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("offset", strconv.Itoa(q.Offset))
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	u := fmt.Sprintf("%s/v2/guilds?%s", c.baseURL, params.Encode())

	var data []Guild
	if err := c.getAndDecode(ctx, u, &data); err != nil {
		return nil, fmt.Errorf("list guilds: %w", err)
	}

	return data, nil
}

func (c *Client) getAndDecode(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// -- Middleware --

type MetricsRoundTripper struct {
	Proxied http.RoundTripper
}

func NewMetricsRoundTripper(proxied http.RoundTripper) *MetricsRoundTripper {
	if proxied == nil {
		proxied = http.DefaultTransport
	}
	return &MetricsRoundTripper{Proxied: proxied}
}

func (mrt *MetricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := mrt.Proxied.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	endpoint := endpointLabel(req.URL.Path)
	metrics.GuildAPIRequestDuration.WithLabelValues(endpoint, status).Observe(duration)
	metrics.GuildAPIRequests.WithLabelValues(endpoint, status).Inc()

	return resp, err
}

func endpointLabel(path string) string {
	if strings.HasSuffix(strings.TrimRight(path, "/"), "/v2/guilds") {
		return "guilds"
	}
	return "unknown"
}

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leolovestravel/vietnamtravel/internal/ratelimit"
)

const (
	DefaultBaseURL = "https://leolovestravel.com/api/"
	maxBodyBytes   = 1 << 20
)

const (
	EndpointLogin          = "login-admin.php"
	EndpointLogout         = "logout-admin.php"
	EndpointChangePassword = "change-password.php"
	EndpointListAdmins     = "list-admins.php"
	EndpointCreateAdmin    = "create-admin.php"
	EndpointDeleteAdmin    = "delete-admin.php"
	EndpointGrantRole      = "grant-role.php"
	EndpointGetCategories  = "get-categories.php"
	EndpointAddCategory    = "add-categories.php"
	EndpointUpdateCategory = "update-category.php"
	EndpointDeleteCategory = "delete-category.php"
)

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	RateLimiter *ratelimit.EndpointLimiter
	HTTPClient  *http.Client
}

// Client talks to the agency's PHP admin API. Calls are made once: no retry,
// no backoff.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.EndpointLimiter
}

func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		limiter:    cfg.RateLimiter,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, headers http.Header, body, out interface{}) ([]*http.Cookie, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, endpoint); err != nil {
			return nil, NewAPIError(endpoint, 0, "", err)
		}
	}

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, NewAPIError(endpoint, 0, "", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, NewAPIError(endpoint, 0, "", err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewAPIError(endpoint, 0, "", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, NewAPIError(endpoint, resp.StatusCode, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewAPIError(endpoint, resp.StatusCode, extractMessage(data), nil)
	}

	if out != nil {
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, NewAPIError(endpoint, resp.StatusCode, "", ErrMalformedResponse)
		}
		if err := json.Unmarshal(data, out); err != nil {
			return nil, NewAPIError(endpoint, resp.StatusCode, "", ErrMalformedResponse)
		}
	}

	return resp.Cookies(), nil
}

type messageBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func extractMessage(data []byte) string {
	var m messageBody
	if err := json.Unmarshal(data, &m); err != nil {
		return ""
	}
	if m.Message != "" {
		return m.Message
	}
	return m.Error
}

// Ping probes the API with the cheapest public read.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, EndpointGetCategories, nil, nil, nil, nil)
	return err
}

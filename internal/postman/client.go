// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package postman

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

const (
	// DefaultBaseURL is the public Postman API endpoint.
	DefaultBaseURL = "https://api.getpostman.com"
	// DefaultTimeout bounds a single HTTP attempt.
	DefaultTimeout = 30 * time.Second
	// APIKeyPrefix is the documented prefix of every Postman API key.
	APIKeyPrefix = "PMAK-"

	headerAPIKey = "X-API-Key"
)

// ErrMissingAPIKey is returned when no API key was configured.
var ErrMissingAPIKey = errors.New("postman API key is required")

// ValidateAPIKey rejects keys that cannot be Postman API keys before any request is sent.
func ValidateAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrMissingAPIKey
	}
	if !strings.HasPrefix(key, APIKeyPrefix) {
		return fmt.Errorf("postman API key must start with %q", APIKeyPrefix)
	}
	return nil
}

// Config holds everything needed to build a Client.
type Config struct {
	APIKey      string
	BaseURL     string
	WorkspaceID string
	UserAgent   string
	// Timeout bounds a single attempt; the retry loop is bounded by the caller's context.
	Timeout time.Duration
	Retry   RetryPolicy
	// HTTPClient replaces the pooled transport client, mostly for tests.
	HTTPClient      *http.Client
	ExecutorOptions []ExecutorOption
}

// Client talks to the Postman REST API. It is safe for concurrent use.
type Client struct {
	baseURL     *url.URL
	apiKey      string
	workspaceID string
	userAgent   string
	http        *retryablehttp.Client
	exec        *Executor
	envLocks    keyedMutex
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	if err := ValidateAPIKey(cfg.APIKey); err != nil {
		return nil, err
	}
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be an absolute http(s) URL", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	policy := cfg.Retry
	if policy == (RetryPolicy{}) {
		policy = DefaultRetryPolicy()
	}

	return &Client{
		baseURL:     u,
		apiKey:      strings.TrimSpace(cfg.APIKey),
		workspaceID: cfg.WorkspaceID,
		userAgent:   cfg.UserAgent,
		http:        newTransport(cfg.HTTPClient, timeout),
		exec:        NewExecutor(policy, cfg.ExecutorOptions...),
	}, nil
}

// newTransport returns a pooled retryablehttp client that performs exactly one
// attempt per call; retries belong to the Executor.
func newTransport(base *http.Client, timeout time.Duration) *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	if base != nil {
		rc.HTTPClient = base
	}
	if rc.HTTPClient.Timeout == 0 {
		rc.HTTPClient.Timeout = timeout
	}
	rc.RetryMax = 0
	rc.Logger = nil
	rc.CheckRetry = func(_ context.Context, _ *http.Response, err error) (bool, error) {
		return false, err
	}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, _ int) {
		tflog.Debug(req.Context(), "sending Postman API request", map[string]interface{}{
			"method": req.Method,
			"path":   req.URL.Path,
		})
	}
	return rc
}

// WorkspaceID returns the default workspace, which may be empty.
func (c *Client) WorkspaceID() string { return c.workspaceID }

// Policy returns the retry policy in effect.
func (c *Client) Policy() RetryPolicy { return c.exec.Policy() }

func (c *Client) workspace(id string) string {
	if id != "" {
		return id
	}
	return c.workspaceID
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// Do sends one logical request through the retry executor. in is encoded as
// JSON when non-nil; a successful body is decoded into out when non-nil.
// The last response is returned even on failure so callers can inspect it.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out interface{}) (*Response, error) {
	var body interface{}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		body = b
	}
	target := c.endpoint(path, query)

	resp, err := c.exec.Execute(ctx, func(ctx context.Context) (*Response, error) {
		req, err := retryablehttp.NewRequestWithContext(ctx, method, target, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set(headerAPIKey, c.apiKey)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		hr, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer hr.Body.Close()
		data, err := io.ReadAll(hr.Body)
		if err != nil {
			return nil, err
		}
		return &Response{StatusCode: hr.StatusCode, Header: hr.Header, Body: data}, nil
	})
	if err != nil {
		return resp, err
	}
	if out != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return resp, fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return resp, nil
}

// Me calls GET /me; it is the cheapest authenticated request and doubles as a
// credentials check.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if _, err := c.Do(ctx, http.MethodGet, "/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// User is the owner of the API key.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

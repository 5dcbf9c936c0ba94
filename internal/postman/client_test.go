// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package postman

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAPIKey(t *testing.T) {
	assert.ErrorIs(t, ValidateAPIKey(""), ErrMissingAPIKey)
	assert.ErrorIs(t, ValidateAPIKey("   "), ErrMissingAPIKey)
	assert.Error(t, ValidateAPIKey("pmak-lowercase"))
	assert.Error(t, ValidateAPIKey("Bearer abc"))
	assert.NoError(t, ValidateAPIKey("PMAK-abc"))
}

func TestNewClient_Config(t *testing.T) {
	_, err := NewClient(Config{APIKey: "nope"})
	assert.Error(t, err)

	_, err = NewClient(Config{APIKey: testAPIKey, BaseURL: "api.getpostman.com"})
	assert.Error(t, err)

	_, err = NewClient(Config{APIKey: testAPIKey, BaseURL: "ftp://api.getpostman.com"})
	assert.Error(t, err)

	c, err := NewClient(Config{APIKey: testAPIKey, WorkspaceID: "ws-1"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL.String())
	assert.Equal(t, "ws-1", c.WorkspaceID())
	assert.Equal(t, DefaultRetryPolicy(), c.Policy())
	assert.Equal(t, DefaultTimeout, c.http.HTTPClient.Timeout)
	assert.Equal(t, 0, c.http.RetryMax)
}

func TestClient_SendsAuthHeaders(t *testing.T) {
	var got http.Header
	_, srv := newFakeAPI(t)
	c := newTestClient(t, srv)
	srv.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":7,"username":"me"}}`))
	})

	u, err := c.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, testAPIKey, got.Get("X-API-Key"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "terraform-provider-postman/test", got.Get("User-Agent"))
}

func TestClient_RetriesThroughExecutor(t *testing.T) {
	f, srv := newFakeAPI(t)
	var waits []time.Duration
	c := newTestClient(t, srv, WithAttemptObserver(func(a RequestAttempt) {
		if a.Number > 1 {
			waits = append(waits, a.Wait)
		}
	}))
	failures := 1
	f.fail = func(w http.ResponseWriter, r *http.Request) bool {
		if failures == 0 {
			return false
		}
		failures--
		w.Header().Set("Retry-After", "2")
		f.writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{"error": map[string]interface{}{"message": "slow down"}})
		return true
	}

	_, err := c.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"GET /me", "GET /me"}, f.requestLog())
	assert.Equal(t, []time.Duration{2 * time.Second}, waits)
}

func TestClient_WrongKeyIsAuthenticationError(t *testing.T) {
	_, srv := newFakeAPI(t)
	c, err := NewClient(Config{APIKey: "PMAK-wrong", BaseURL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)

	_, err = c.Me(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindAuthentication, apiErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "invalid key")
	assert.Contains(t, apiErr.Error(), HintAuthentication)
}

func TestClient_ConnectionRefusedIsNetworkError(t *testing.T) {
	_, srv := newFakeAPI(t)
	base := srv.URL
	client := srv.Client()
	srv.Close()
	calls := 0
	c, err := NewClient(Config{
		APIKey:     testAPIKey,
		BaseURL:    base,
		HTTPClient: client,
		Retry:      RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond, Multiplier: 1},
		ExecutorOptions: []ExecutorOption{
			WithAttemptObserver(func(RequestAttempt) { calls++ }),
		},
	})
	require.NoError(t, err)

	_, err = c.Me(context.Background())

	assert.True(t, IsKind(err, KindNetwork), "got %v", err)
	assert.Equal(t, 2, calls)
}

func TestClient_DecodeFailure(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := newTestClient(t, srv)
	srv.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":`))
	})

	_, err := c.Me(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode GET /me response")
}

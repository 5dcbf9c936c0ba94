// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package postman

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testAPIKey = "PMAK-0123456789abcdef"

// fakeAPI is an in-memory stand-in for the environments and collections endpoints.
type fakeAPI struct {
	mu           sync.Mutex
	t            *testing.T
	environments map[string]map[string]interface{}
	collections  map[string]map[string]interface{}
	requests     []string
	puts         []map[string]interface{}
	workspaces   []string
	nextID       int
	// fail, when set, may answer a request instead of the store.
	fail func(w http.ResponseWriter, r *http.Request) bool
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	f := &fakeAPI{
		t:            t,
		environments: map[string]map[string]interface{}{},
		collections:  map[string]map[string]interface{}{},
	}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

func newTestClient(t *testing.T, srv *httptest.Server, opts ...ExecutorOption) *Client {
	t.Helper()
	opts = append([]ExecutorOption{WithSleep(func(ctx context.Context, _ time.Duration) error { return ctx.Err() })}, opts...)
	c, err := NewClient(Config{
		APIKey:          testAPIKey,
		BaseURL:         srv.URL,
		UserAgent:       "terraform-provider-postman/test",
		HTTPClient:      srv.Client(),
		Retry:           RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2},
		ExecutorOptions: opts,
	})
	require.NoError(t, err)
	return c
}

func (f *fakeAPI) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) notFound(w http.ResponseWriter, what string) {
	f.writeJSON(w, http.StatusNotFound, map[string]interface{}{
		"error": map[string]interface{}{"name": "instanceNotFoundError", "message": what + " not found"},
	})
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	if ws := r.URL.Query().Get("workspace"); ws != "" {
		f.workspaces = append(f.workspaces, ws)
	}
	if r.Header.Get("X-API-Key") != testAPIKey {
		f.writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"message": "invalid key"})
		return
	}
	if f.fail != nil && f.fail(w, r) {
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	var body map[string]interface{}
	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
	}

	switch {
	case parts[0] == "me":
		f.writeJSON(w, http.StatusOK, map[string]interface{}{"user": map[string]interface{}{"id": 1, "username": "tester"}})
	case parts[0] == "environments":
		f.environmentsHandler(w, r, parts, body)
	case parts[0] == "collections":
		f.collectionsHandler(w, r, parts, body)
	default:
		f.notFound(w, "route")
	}
}

func (f *fakeAPI) newUID() (string, string) {
	f.nextID++
	id := fmt.Sprintf("id-%d", f.nextID)
	return id, "12345-" + id
}

func (f *fakeAPI) environmentsHandler(w http.ResponseWriter, r *http.Request, parts []string, body map[string]interface{}) {
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			list := []interface{}{}
			for uid, e := range f.environments {
				list = append(list, map[string]interface{}{"id": e["id"], "uid": uid, "name": e["name"], "owner": "12345", "isPublic": false})
			}
			f.writeJSON(w, http.StatusOK, map[string]interface{}{"environments": list})
		case http.MethodPost:
			env := body["environment"].(map[string]interface{})
			id, uid := f.newUID()
			env["id"] = id
			f.environments[uid] = env
			f.writeJSON(w, http.StatusOK, map[string]interface{}{"environment": map[string]interface{}{"id": id, "uid": uid, "name": env["name"]}})
		}
		return
	}
	uid := parts[1]
	env, ok := f.environments[uid]
	if !ok {
		f.notFound(w, "environment")
		return
	}
	switch r.Method {
	case http.MethodGet:
		f.writeJSON(w, http.StatusOK, map[string]interface{}{"environment": env})
	case http.MethodPut:
		next := body["environment"].(map[string]interface{})
		next["id"] = env["id"]
		f.environments[uid] = next
		f.puts = append(f.puts, next)
		f.writeJSON(w, http.StatusOK, map[string]interface{}{"environment": map[string]interface{}{"id": env["id"], "uid": uid, "name": next["name"]}})
	case http.MethodDelete:
		delete(f.environments, uid)
		f.writeJSON(w, http.StatusOK, map[string]interface{}{"environment": map[string]interface{}{"id": env["id"], "uid": uid}})
	}
}

func (f *fakeAPI) collectionsHandler(w http.ResponseWriter, r *http.Request, parts []string, body map[string]interface{}) {
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			list := []interface{}{}
			for uid, c := range f.collections {
				info := c["info"].(map[string]interface{})
				list = append(list, map[string]interface{}{"id": info["_postman_id"], "uid": uid, "name": info["name"], "owner": "12345"})
			}
			f.writeJSON(w, http.StatusOK, map[string]interface{}{"collections": list})
		case http.MethodPost:
			col := body["collection"].(map[string]interface{})
			id, uid := f.newUID()
			col["info"].(map[string]interface{})["_postman_id"] = id
			f.collections[uid] = col
			f.writeJSON(w, http.StatusOK, map[string]interface{}{"collection": map[string]interface{}{"id": id, "uid": uid, "name": col["info"].(map[string]interface{})["name"]}})
		}
		return
	}
	uid := parts[1]
	col, ok := f.collections[uid]
	if !ok {
		f.notFound(w, "collection")
		return
	}
	switch r.Method {
	case http.MethodGet:
		f.writeJSON(w, http.StatusOK, map[string]interface{}{"collection": col})
	case http.MethodPut:
		next := body["collection"].(map[string]interface{})
		f.collections[uid] = next
		f.puts = append(f.puts, next)
		f.writeJSON(w, http.StatusOK, map[string]interface{}{"collection": map[string]interface{}{"uid": uid}})
	case http.MethodDelete:
		delete(f.collections, uid)
		f.writeJSON(w, http.StatusOK, map[string]interface{}{"collection": map[string]interface{}{"uid": uid}})
	}
}

func (f *fakeAPI) requestLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

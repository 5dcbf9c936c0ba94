// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package postman

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// EnvironmentSummary is one row of GET /environments.
type EnvironmentSummary struct {
	ID        string `mapstructure:"id"`
	UID       string `mapstructure:"uid"`
	Name      string `mapstructure:"name"`
	Owner     string `mapstructure:"owner"`
	IsPublic  bool   `mapstructure:"isPublic"`
	CreatedAt string `mapstructure:"createdAt"`
	UpdatedAt string `mapstructure:"updatedAt"`
}

// Environment is a named set of variables.
type Environment struct {
	ID        string
	UID       string
	Name      string
	Owner     string
	IsPublic  bool
	CreatedAt string
	UpdatedAt string
	Values    []Variable
}

type environmentWire struct {
	ID        string              `mapstructure:"id"`
	UID       string              `mapstructure:"uid"`
	Name      string              `mapstructure:"name"`
	Owner     string              `mapstructure:"owner"`
	IsPublic  bool                `mapstructure:"isPublic"`
	CreatedAt string              `mapstructure:"createdAt"`
	UpdatedAt string              `mapstructure:"updatedAt"`
	Values    []variableWireLoose `mapstructure:"values"`
}

type variableWireLoose struct {
	Key     string `mapstructure:"key"`
	Value   string `mapstructure:"value"`
	Type    string `mapstructure:"type"`
	Enabled *bool  `mapstructure:"enabled"`
}

type environmentPayload struct {
	Environment environmentBody `json:"environment"`
}

type environmentBody struct {
	Name   string     `json:"name"`
	Values []Variable `json:"values"`
}

type environmentRef struct {
	Environment struct {
		ID   string `json:"id"`
		UID  string `json:"uid"`
		Name string `json:"name"`
	} `json:"environment"`
}

func environmentPath(uid string) string { return "/environments/" + url.PathEscape(uid) }

func workspaceQuery(id string) url.Values {
	if id == "" {
		return nil
	}
	return url.Values{"workspace": []string{id}}
}

// ListEnvironments returns the environments visible to the key, scoped to
// workspaceID or the client's default workspace when set.
func (c *Client) ListEnvironments(ctx context.Context, workspaceID string) ([]EnvironmentSummary, error) {
	var raw struct {
		Environments []map[string]interface{} `json:"environments"`
	}
	if _, err := c.Do(ctx, http.MethodGet, "/environments", workspaceQuery(c.workspace(workspaceID)), nil, &raw); err != nil {
		return nil, err
	}
	out := make([]EnvironmentSummary, 0, len(raw.Environments))
	for _, m := range raw.Environments {
		var s EnvironmentSummary
		if err := decodeLoose(m, &s); err != nil {
			return nil, fmt.Errorf("decode environment summary: %w", err)
		}
		out = append(out, s)
	}
	return out, nil
}

// GetEnvironment fetches one environment with all of its variables.
func (c *Client) GetEnvironment(ctx context.Context, uid string) (*Environment, error) {
	var raw struct {
		Environment map[string]interface{} `json:"environment"`
	}
	if _, err := c.Do(ctx, http.MethodGet, environmentPath(uid), nil, nil, &raw); err != nil {
		return nil, err
	}
	var w environmentWire
	if err := decodeLoose(raw.Environment, &w); err != nil {
		return nil, fmt.Errorf("decode environment %s: %w", uid, err)
	}
	env := &Environment{
		ID:        w.ID,
		UID:       w.UID,
		Name:      w.Name,
		Owner:     w.Owner,
		IsPublic:  w.IsPublic,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
		Values:    make([]Variable, 0, len(w.Values)),
	}
	// the GET body only carries the short id
	env.UID = uid
	for _, v := range w.Values {
		enabled := true
		if v.Enabled != nil {
			enabled = *v.Enabled
		}
		env.Values = append(env.Values, Variable{Key: v.Key, Value: v.Value, Type: v.Type, Enabled: enabled})
	}
	return env, nil
}

// CreateEnvironment creates an environment whose variables are classified by key name
// unless a pair carries an explicit type.
func (c *Client) CreateEnvironment(ctx context.Context, name string, pairs []Pair, workspaceID string) (*Environment, error) {
	return c.createEnvironment(ctx, name, BuildEntries(pairs, nil), workspaceID)
}

func (c *Client) createEnvironment(ctx context.Context, name string, values []Variable, workspaceID string) (*Environment, error) {
	var ref environmentRef
	in := environmentPayload{Environment: environmentBody{Name: name, Values: values}}
	if _, err := c.Do(ctx, http.MethodPost, "/environments", workspaceQuery(c.workspace(workspaceID)), in, &ref); err != nil {
		return nil, err
	}
	tflog.Debug(ctx, "created Postman environment", map[string]interface{}{
		"uid":       ref.Environment.UID,
		"variables": len(values),
	})
	return &Environment{
		ID:     ref.Environment.ID,
		UID:    ref.Environment.UID,
		Name:   name,
		Values: values,
	}, nil
}

// UpdateEnvironment merges pairs into the remote variables: keys not in pairs are kept,
// and existing keys keep their type tag. An empty name keeps the current name.
func (c *Client) UpdateEnvironment(ctx context.Context, uid, name string, pairs []Pair) (*Environment, error) {
	defer c.envLocks.lock(uid)()
	cur, err := c.GetEnvironment(ctx, uid)
	if err != nil {
		return nil, err
	}
	return c.putEnvironment(ctx, cur, name, BuildEntries(pairs, cur.Values))
}

// SetEnvironmentVariables upserts pairs without touching any other variable.
func (c *Client) SetEnvironmentVariables(ctx context.Context, uid string, pairs ...Pair) (*Environment, error) {
	return c.UpdateEnvironment(ctx, uid, "", pairs)
}

// RemoveEnvironmentVariables deletes the given keys. No request is sent when none of
// them exist.
func (c *Client) RemoveEnvironmentVariables(ctx context.Context, uid string, keys ...string) (*Environment, error) {
	defer c.envLocks.lock(uid)()
	cur, err := c.GetEnvironment(ctx, uid)
	if err != nil {
		return nil, err
	}
	values, removed := RemoveEntries(cur.Values, keys...)
	if !removed {
		return cur, nil
	}
	return c.putEnvironment(ctx, cur, "", values)
}

// ReplaceEnvironment makes pairs the complete variable set. Keys that survive keep
// their type tag; all others are dropped.
func (c *Client) ReplaceEnvironment(ctx context.Context, uid, name string, pairs []Pair) (*Environment, error) {
	defer c.envLocks.lock(uid)()
	cur, err := c.GetEnvironment(ctx, uid)
	if err != nil {
		return nil, err
	}
	return c.putEnvironment(ctx, cur, name, ReplaceEntries(pairs, cur.Values))
}

func (c *Client) putEnvironment(ctx context.Context, cur *Environment, name string, values []Variable) (*Environment, error) {
	if name == "" {
		name = cur.Name
	}
	in := environmentPayload{Environment: environmentBody{Name: name, Values: values}}
	if _, err := c.Do(ctx, http.MethodPut, environmentPath(cur.UID), nil, in, nil); err != nil {
		return nil, err
	}
	next := *cur
	next.Name = name
	next.Values = values
	return &next, nil
}

// EnvironmentVariable is a single entry addressed by its environment.
type EnvironmentVariable struct {
	EnvironmentUID string
	Variable
}

// GetEnvironmentVariable fetches one variable. A missing key is reported as a
// ResourceNotFound error, the same as a missing environment.
func (c *Client) GetEnvironmentVariable(ctx context.Context, uid, key string) (*EnvironmentVariable, error) {
	env, err := c.GetEnvironment(ctx, uid)
	if err != nil {
		return nil, err
	}
	v, ok := FindEntry(env.Values, key)
	if !ok {
		return nil, &APIError{
			Kind:       KindResourceNotFound,
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("Variable %q not found in environment %s.", key, uid),
			Hint:       HintResourceNotFound,
		}
	}
	return &EnvironmentVariable{EnvironmentUID: uid, Variable: v}, nil
}

// DeleteEnvironment deletes an environment.
func (c *Client) DeleteEnvironment(ctx context.Context, uid string) error {
	_, err := c.Do(ctx, http.MethodDelete, environmentPath(uid), nil, nil, nil)
	return err
}

// DuplicateEnvironment copies an environment including every variable and its type tag.
// The copy is named "<source name> Copy" unless name is given.
func (c *Client) DuplicateEnvironment(ctx context.Context, uid, name, workspaceID string) (*Environment, error) {
	src, err := c.GetEnvironment(ctx, uid)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = src.Name + " Copy"
	}
	values := make([]Variable, len(src.Values))
	copy(values, src.Values)
	return c.createEnvironment(ctx, name, values, workspaceID)
}

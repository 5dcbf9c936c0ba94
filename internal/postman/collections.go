// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package postman

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CollectionSchemaURL is the collection format written by CreateCollection.
const CollectionSchemaURL = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

// CollectionSummary is one row of GET /collections.
type CollectionSummary struct {
	ID        string `mapstructure:"id"`
	UID       string `mapstructure:"uid"`
	Name      string `mapstructure:"name"`
	Owner     string `mapstructure:"owner"`
	IsPublic  bool   `mapstructure:"isPublic"`
	CreatedAt string `mapstructure:"createdAt"`
	UpdatedAt string `mapstructure:"updatedAt"`
}

// Collection holds the info block of a collection plus the untouched document.
type Collection struct {
	ID          string
	UID         string
	Name        string
	Description string
	Schema      string
	// Raw is the full collection document, including requests and folders.
	Raw map[string]interface{}
}

type collectionInfoWire struct {
	PostmanID   string      `mapstructure:"_postman_id"`
	Name        string      `mapstructure:"name"`
	Description interface{} `mapstructure:"description"`
	Schema      string      `mapstructure:"schema"`
}

type collectionRef struct {
	Collection struct {
		ID   string `json:"id"`
		UID  string `json:"uid"`
		Name string `json:"name"`
	} `json:"collection"`
}

func collectionPath(uid string) string { return "/collections/" + url.PathEscape(uid) }

// ListCollections returns the collections visible to the key, scoped like ListEnvironments.
func (c *Client) ListCollections(ctx context.Context, workspaceID string) ([]CollectionSummary, error) {
	var raw struct {
		Collections []map[string]interface{} `json:"collections"`
	}
	if _, err := c.Do(ctx, http.MethodGet, "/collections", workspaceQuery(c.workspace(workspaceID)), nil, &raw); err != nil {
		return nil, err
	}
	out := make([]CollectionSummary, 0, len(raw.Collections))
	for _, m := range raw.Collections {
		var s CollectionSummary
		if err := decodeLoose(m, &s); err != nil {
			return nil, fmt.Errorf("decode collection summary: %w", err)
		}
		out = append(out, s)
	}
	return out, nil
}

// GetCollection fetches the full collection document.
func (c *Client) GetCollection(ctx context.Context, uid string) (*Collection, error) {
	var raw struct {
		Collection map[string]interface{} `json:"collection"`
	}
	if _, err := c.Do(ctx, http.MethodGet, collectionPath(uid), nil, nil, &raw); err != nil {
		return nil, err
	}
	if raw.Collection == nil {
		raw.Collection = map[string]interface{}{}
	}
	var info collectionInfoWire
	if err := decodeLoose(raw.Collection["info"], &info); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", uid, err)
	}
	return &Collection{
		ID:          info.PostmanID,
		UID:         uid,
		Name:        info.Name,
		Description: descriptionText(info.Description),
		Schema:      info.Schema,
		Raw:         raw.Collection,
	}, nil
}

// descriptionText accepts both a plain string and the {"content": ...} object form.
func descriptionText(v interface{}) string {
	switch d := v.(type) {
	case string:
		return d
	case map[string]interface{}:
		if s, ok := d["content"].(string); ok {
			return s
		}
	}
	return ""
}

// CreateCollection creates an empty v2.1 collection.
func (c *Client) CreateCollection(ctx context.Context, name, description, workspaceID string) (*Collection, error) {
	info := map[string]interface{}{
		"name":   name,
		"schema": CollectionSchemaURL,
	}
	if description != "" {
		info["description"] = description
	}
	doc := map[string]interface{}{
		"info": info,
		"item": []interface{}{},
	}
	var ref collectionRef
	in := map[string]interface{}{"collection": doc}
	if _, err := c.Do(ctx, http.MethodPost, "/collections", workspaceQuery(c.workspace(workspaceID)), in, &ref); err != nil {
		return nil, err
	}
	return &Collection{
		ID:          ref.Collection.ID,
		UID:         ref.Collection.UID,
		Name:        name,
		Description: description,
		Schema:      CollectionSchemaURL,
		Raw:         doc,
	}, nil
}

// UpdateCollectionInfo rewrites name and description only; requests and folders
// are sent back unchanged.
func (c *Client) UpdateCollectionInfo(ctx context.Context, uid, name, description string) (*Collection, error) {
	cur, err := c.GetCollection(ctx, uid)
	if err != nil {
		return nil, err
	}
	doc := make(map[string]interface{}, len(cur.Raw))
	for k, v := range cur.Raw {
		doc[k] = v
	}
	info := map[string]interface{}{}
	if m, ok := doc["info"].(map[string]interface{}); ok {
		for k, v := range m {
			info[k] = v
		}
	}
	info["name"] = name
	if description == "" {
		delete(info, "description")
	} else {
		info["description"] = description
	}
	if _, ok := info["schema"]; !ok {
		info["schema"] = CollectionSchemaURL
	}
	doc["info"] = info

	in := map[string]interface{}{"collection": doc}
	if _, err := c.Do(ctx, http.MethodPut, collectionPath(uid), nil, in, nil); err != nil {
		return nil, err
	}
	next := *cur
	next.Name = name
	next.Description = description
	next.Schema, _ = info["schema"].(string)
	next.Raw = doc
	return &next, nil
}

// DeleteCollection deletes a collection.
func (c *Client) DeleteCollection(ctx context.Context, uid string) error {
	_, err := c.Do(ctx, http.MethodDelete, collectionPath(uid), nil, nil, nil)
	return err
}

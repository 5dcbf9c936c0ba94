// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package postman

import "strings"

// Variable type tags understood by the Postman API.
const (
	TypeDefault = "default"
	TypeSecret  = "secret"
)

var secretKeywords = []string{
	"api_key",
	"token",
	"password",
	"bearer",
	"auth",
	"secret",
	"client_secret",
	"private_key",
	"access_token",
	"refresh_token",
	"jwt",
}

// SecretKeywords returns a copy of the keywords that mark a key as sensitive.
func SecretKeywords() []string {
	out := make([]string, len(secretKeywords))
	copy(out, secretKeywords)
	return out
}

// IsSecretKey reports whether key contains any secret keyword, ignoring case.
// The value is never consulted.
func IsSecretKey(key string) bool {
	k := strings.ToLower(key)
	for _, kw := range secretKeywords {
		if strings.Contains(k, kw) {
			return true
		}
	}
	return false
}

// ClassifyKey returns the type tag for a key with no prior classification.
func ClassifyKey(key string) string {
	if IsSecretKey(key) {
		return TypeSecret
	}
	return TypeDefault
}

// Pair is a key/value the caller wants stored. A non-empty Type forces that
// tag instead of keeping a prior classification. A nil Enabled keeps the prior
// flag, or true for a new key.
type Pair struct {
	Key     string
	Value   string
	Type    string
	Enabled *bool
}

// Variable is one entry of a remote environment.
type Variable struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Type    string `json:"type,omitempty"`
	Enabled bool   `json:"enabled"`
}

// BuildEntries merges pairs into existing. Keys new to existing are classified
// by name; keys already present keep their type tag and enabled flag unless
// the pair carries an explicit Type. Output holds the pair keys in first
// appearance order (last value wins) followed by the untouched existing entries.
func BuildEntries(pairs []Pair, existing []Variable) []Variable {
	prior := make(map[string]Variable, len(existing))
	for _, v := range existing {
		if _, dup := prior[v.Key]; !dup {
			prior[v.Key] = v
		}
	}

	out := make([]Variable, 0, len(pairs)+len(existing))
	index := make(map[string]int, len(pairs))
	for _, p := range pairs {
		if i, seen := index[p.Key]; seen {
			out[i].Value = p.Value
			if p.Type != "" {
				out[i].Type = p.Type
			}
			if p.Enabled != nil {
				out[i].Enabled = *p.Enabled
			}
			continue
		}
		v, ok := prior[p.Key]
		switch {
		case ok:
			v.Value = p.Value
			if v.Type == "" {
				v.Type = ClassifyKey(p.Key)
			}
		default:
			v = Variable{Key: p.Key, Value: p.Value, Type: ClassifyKey(p.Key), Enabled: true}
		}
		if p.Type != "" {
			v.Type = p.Type
		}
		if p.Enabled != nil {
			v.Enabled = *p.Enabled
		}
		index[p.Key] = len(out)
		out = append(out, v)
	}

	for _, v := range existing {
		if _, touched := index[v.Key]; touched {
			continue
		}
		index[v.Key] = len(out)
		out = append(out, v)
	}
	return out
}

// ReplaceEntries is BuildEntries restricted to the keys in pairs: prior type
// tags are still honored, but keys absent from pairs are dropped.
func ReplaceEntries(pairs []Pair, existing []Variable) []Variable {
	merged := BuildEntries(pairs, existing)
	keep := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		keep[p.Key] = struct{}{}
	}
	out := merged[:0]
	for _, v := range merged {
		if _, ok := keep[v.Key]; ok {
			out = append(out, v)
		}
	}
	return out
}

// RemoveEntries returns existing without the given keys. The second result
// reports whether anything was removed.
func RemoveEntries(existing []Variable, keys ...string) ([]Variable, bool) {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	out := make([]Variable, 0, len(existing))
	removed := false
	for _, v := range existing {
		if _, ok := drop[v.Key]; ok {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out, removed
}

// FindEntry returns the entry for key, if present.
func FindEntry(vars []Variable, key string) (Variable, bool) {
	for _, v := range vars {
		if v.Key == key {
			return v, true
		}
	}
	return Variable{}, false
}

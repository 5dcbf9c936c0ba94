// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"strconv"
	"testing"

	"github.com/devops-wiz/terraform-provider-postman/internal/postman"
	"github.com/hashicorp/terraform-plugin-framework/diag"
)

type item = *postman.EnvironmentSummary

type out = environmentSummaryModel

func envHooks(items ...item) ListHooks[item, out] {
	return ListHooks[item, out]{
		List: func(ctx context.Context) ([]item, diag.Diagnostics) {
			return items, nil
		},
		KeyOf:     func(i item) string { return i.UID },
		MapToOut:  mapEnvironmentSummaryToModel,
		AttrTypes: environmentSummaryAttrTypes,
	}
}

func manyEnvironments(n int) []item {
	items := make([]item, 0, n)
	for i := 0; i < n; i++ {
		s := strconv.Itoa(i)
		items = append(items, &postman.EnvironmentSummary{UID: "u-" + s, ID: s, Name: "env-" + s})
	}
	return items
}

func TestListRunner_ListWithoutFilter(t *testing.T) {
	ctx := context.Background()
	h := envHooks(
		&postman.EnvironmentSummary{UID: "a", Name: "dev"},
		&postman.EnvironmentSummary{UID: "b", Name: "prod"},
	)
	m, diags := DoListToMap(ctx, h)
	if diags.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(m) != 2 {
		t.Fatalf("expected 2 items, got %d", len(m))
	}
	if m["a"].Name.ValueString() != "dev" {
		t.Fatalf("unexpected value for key 'a': %+v", m["a"])
	}
	if _, ok := m["b"]; !ok {
		t.Fatalf("missing key 'b'")
	}
}

func TestListRunner_ListWithFilter(t *testing.T) {
	ctx := context.Background()
	h := envHooks(
		&postman.EnvironmentSummary{UID: "a", Name: "dev"},
		&postman.EnvironmentSummary{UID: "b", Name: "Prod"},
	)
	f := newNameFilter([]string{"prod"})
	h.Filter = func(ctx context.Context, i item) bool { return f.match(i.Name) }
	m, diags := DoListToMap(ctx, h)
	if diags.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(m) != 1 {
		t.Fatalf("expected 1 item after filter, got %d", len(m))
	}
	if _, ok := m["b"]; !ok {
		t.Fatalf("expected only key 'b' to remain")
	}
	if missing := f.missing(); len(missing) != 0 {
		t.Fatalf("expected no missing names, got %v", missing)
	}
}

func TestListRunner_ListDiagnosticsError_ReturnsNil(t *testing.T) {
	ctx := context.Background()
	h := envHooks()
	h.List = func(ctx context.Context) ([]item, diag.Diagnostics) {
		var d diag.Diagnostics
		d.AddError("list environments failed", "HTTP status: 401")
		return nil, d
	}
	m, diags := DoListToMap(ctx, h)
	if !diags.HasError() {
		t.Fatalf("expected list error")
	}
	if m != nil {
		t.Fatalf("expected nil result on error, got %v", m)
	}
}

func TestListRunner_MapToOutErrorPropagates(t *testing.T) {
	ctx := context.Background()
	calls := 0
	h := envHooks(&postman.EnvironmentSummary{UID: "a"}, &postman.EnvironmentSummary{UID: "b"})
	h.MapToOut = func(ctx context.Context, i item) (out, diag.Diagnostics) {
		calls++
		var d diag.Diagnostics
		d.AddError("map error", "failed mapping")
		return out{}, d
	}
	m, diags := DoListToMap(ctx, h)
	if !diags.HasError() {
		t.Fatalf("expected diagnostics due to mapping error")
	}
	if calls != 1 {
		t.Fatalf("expected single MapToOut call, got %d", calls)
	}
	if m != nil {
		t.Fatalf("expected no partial result on mapping error")
	}
}

func TestListRunner_EmptyList_WithFilter_ReturnsEmptyMap(t *testing.T) {
	ctx := context.Background()
	h := envHooks()
	h.Filter = func(ctx context.Context, i item) bool { return i.IsPublic }
	m, diags := DoListToMap(ctx, h)
	if diags.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if m == nil || len(m) != 0 {
		t.Fatalf("expected empty non-nil map for empty list, got %v", m)
	}
}

func TestListRunner_DuplicateKeys_LastWins(t *testing.T) {
	ctx := context.Background()
	h := envHooks(
		&postman.EnvironmentSummary{UID: "a", Name: "first"},
		&postman.EnvironmentSummary{UID: "a", Name: "second"},
	)
	m, diags := DoListToMap(ctx, h)
	if diags.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(m) != 1 || m["a"].Name.ValueString() != "second" {
		t.Fatalf("expected last item to win, got %+v", m)
	}
}

func TestListRunner_WarnThreshold_WarnsOnce(t *testing.T) {
	ctx := context.Background()
	h := envHooks(manyEnvironments(5)...)
	m, diags := DoListToMapWithLimit(ctx, h, ListOptions{WarnThreshold: 3})
	if diags.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(m) != 5 {
		t.Fatalf("threshold must not truncate, got %d", len(m))
	}
	if w := diags.Warnings(); len(w) != 1 || w[0].Summary() != "large result set" {
		t.Fatalf("expected one 'large result set' warning, got %v", w)
	}
}

func TestListRunner_MaxItems_Caps(t *testing.T) {
	ctx := context.Background()
	h := envHooks(manyEnvironments(10)...)
	m, diags := DoListToMapWithLimit(ctx, h, ListOptions{MaxItems: 4})
	if diags.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(m) != 4 {
		t.Fatalf("expected 4 items, got %d", len(m))
	}
	if w := diags.Warnings(); len(w) != 1 || w[0].Summary() != "result capped" {
		t.Fatalf("expected one 'result capped' warning, got %v", w)
	}
}

func TestListRunner_MaxItems_CountsAfterFilter(t *testing.T) {
	ctx := context.Background()
	h := envHooks(manyEnvironments(10)...)
	h.Filter = func(ctx context.Context, i item) bool { return i.ID == "1" || i.ID == "7" }
	m, diags := DoListToMapWithLimit(ctx, h, ListOptions{MaxItems: 2})
	if len(m) != 2 {
		t.Fatalf("expected both filtered items, got %d", len(m))
	}
	if _, ok := m["u-7"]; !ok {
		t.Fatalf("expected u-7 to be kept")
	}
	if len(diags.Warnings()) != 1 {
		t.Fatalf("expected cap warning when the last allowed item is kept, got %v", diags)
	}
}

func TestListRunner_RespectContext_CanceledReturnsPartial(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := envHooks(manyEnvironments(2500)...)
	m, diags := DoListToMapWithLimit(ctx, h, ListOptions{RespectContext: true})
	if diags.HasError() {
		t.Fatalf("cancellation must be a warning, got %v", diags)
	}
	if len(m) != 999 {
		t.Fatalf("expected the items before the first check, got %d", len(m))
	}
	if w := diags.Warnings(); len(w) != 1 || w[0].Summary() != "listing canceled" {
		t.Fatalf("expected 'listing canceled' warning, got %v", w)
	}
}

func TestListRunner_IgnoresContextWhenNotRequested(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := envHooks(manyEnvironments(1500)...)
	m, diags := DoListToMapWithLimit(ctx, h, ListOptions{})
	if diags.HasError() || len(diags.Warnings()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(m) != 1500 {
		t.Fatalf("expected full result, got %d", len(m))
	}
}

func TestListRunner_CollectionSummaries(t *testing.T) {
	ctx := context.Background()
	h := ListHooks[*postman.CollectionSummary, collectionSummaryModel]{
		List: func(ctx context.Context) ([]*postman.CollectionSummary, diag.Diagnostics) {
			return []*postman.CollectionSummary{{UID: "c1", ID: "1", Name: "Orders", IsPublic: true}}, nil
		},
		KeyOf:     func(i *postman.CollectionSummary) string { return i.UID },
		MapToOut:  mapCollectionSummaryToModel,
		AttrTypes: collectionSummaryAttrTypes,
	}
	m, diags := DoListToMap(ctx, h)
	if diags.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	got := m["c1"]
	if got.Name.ValueString() != "Orders" || !got.IsPublic.ValueBool() || !got.UpdatedAt.IsNull() {
		t.Fatalf("unexpected mapping: %+v", got)
	}
}

// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"strconv"

	"github.com/devops-wiz/terraform-provider-postman/internal/postman"
	"github.com/hashicorp/terraform-plugin-framework/attr"
	"github.com/hashicorp/terraform-plugin-framework/diag"
)

// Function type aliases for list-to-map flows.
//
// Usage:
// - Implement List to fetch all items.
// - Optionally implement Filter to apply client-side filtering.
// - KeyOf must return a stable string key (e.g., the uid).
// - MapToOut converts an API item to the Terraform object model (struct of types.* fields).
type ListFunc[TAPI APIListConstraint] func(ctx context.Context) ([]TAPI, diag.Diagnostics)
type FilterFunc[TAPI APIListConstraint] func(ctx context.Context, item TAPI) bool
type KeyOfFunc[TAPI APIListConstraint] func(item TAPI) string
type MapToOutFunc[TAPI APIListConstraint, TOut OutModelConstraint] func(ctx context.Context, item TAPI) (TOut, diag.Diagnostics)
type AttrTypesFunc func() map[string]attr.Type

// Generic type constraints restricted to available provider types.
//
// - APIListConstraint enumerates the summary models returned by list endpoints.
// - OutModelConstraint enumerates the Terraform object models (map values).
//
// Add new API and output model types to the unions below when introducing a new data source.
type APIListConstraint interface {
	*postman.EnvironmentSummary | *postman.CollectionSummary
}

type OutModelConstraint interface {
	environmentSummaryModel | collectionSummaryModel
}

// ListHooks defines list-to-map helpers for data sources.
// TAPI: API model per item (constrained by APIListConstraint).
// TOut: Terraform object model per item (constrained by OutModelConstraint).
type ListHooks[TAPI APIListConstraint, TOut OutModelConstraint] struct {
	// List should fetch all items.
	List ListFunc[TAPI]

	// Optional filter applied client-side (return true to keep).
	Filter FilterFunc[TAPI]

	// KeyOf must return the stable string key.
	KeyOf KeyOfFunc[TAPI]

	// MapToOut converts API item to Terraform object model.
	MapToOut MapToOutFunc[TAPI, TOut]

	// AttrTypes returns the ObjectType attribute types for TOut.
	AttrTypes AttrTypesFunc
}

// ListOptions configures DoListToMapWithLimit behavior.
//
// Fields
// - MaxItems: hard cap on kept items (post-filter). 0 = unlimited (default).
// - WarnThreshold: soft threshold that adds a warning once kept items reach/exceed it. 0 = disabled.
// - RespectContext: if true, checks ctx.Done() periodically and returns early with a warning if canceled.
type ListOptions struct {
	MaxItems       int
	WarnThreshold  int
	RespectContext bool
}

// DoListToMap builds a map[string]TOut using hooks without limits.
//
// Steps
// 1) List: fetch all items.
// 2) Filter (optional): keep only items where Filter returns true.
// 3) KeyOf: compute the stable key for each item.
// 4) MapToOut: convert each API item into the Terraform object model.
// 5) Aggregate: return a map keyed by the stable string key.
func DoListToMap[TAPI APIListConstraint, TOut OutModelConstraint](
	ctx context.Context,
	h ListHooks[TAPI, TOut],
) (map[string]TOut, diag.Diagnostics) {
	return DoListToMapWithLimit[TAPI, TOut](ctx, h, ListOptions{})
}

// DoListToMapWithLimit builds a map[string]TOut using hooks with guardrails for large datasets.
//
// Behavior
// - Filter (when provided) is applied before mapping to avoid unnecessary allocations.
// - Last write wins for duplicate keys.
// - If MaxItems > 0, mapping stops after that many kept items; a warning is added indicating capping.
// - If WarnThreshold > 0 and kept >= threshold, a warning is added (once).
// - If RespectContext is true, ctx.Done() is checked every 1000 processed items.
//
// Diagnostics from List and MapToOut are appended and on error return immediately (no partial results).
// Soft warnings (WarnThreshold, MaxItems cap, context cancellation) come with a partial, coherent result.
func DoListToMapWithLimit[TAPI APIListConstraint, TOut OutModelConstraint](
	ctx context.Context,
	h ListHooks[TAPI, TOut],
	opts ListOptions,
) (map[string]TOut, diag.Diagnostics) {
	const checkCancelEvery = 1000
	var diags diag.Diagnostics

	items, d := h.List(ctx)
	diags.Append(d...)
	if diags.HasError() {
		return nil, diags
	}

	capHint := len(items)
	if opts.MaxItems > 0 && opts.MaxItems < capHint {
		capHint = opts.MaxItems
	}
	result := make(map[string]TOut, capHint)

	kept := 0
	for i, it := range items {
		if opts.RespectContext && (i+1)%checkCancelEvery == 0 {
			if ctx.Err() != nil {
				diags.AddWarning("listing canceled", "context canceled or deadline exceeded during listing; returning partial results")
				return result, diags
			}
		}
		if h.Filter != nil && !h.Filter(ctx, it) {
			continue
		}
		obj, d2 := h.MapToOut(ctx, it)
		diags.Append(d2...)
		if diags.HasError() {
			return nil, diags
		}
		result[h.KeyOf(it)] = obj
		kept++
		if opts.WarnThreshold > 0 && kept == opts.WarnThreshold {
			diags.AddWarning("large result set", "number of items kept reached threshold: "+strconv.Itoa(kept))
		}
		if opts.MaxItems > 0 && kept >= opts.MaxItems {
			diags.AddWarning("result capped", "maximum items reached; result truncated at "+strconv.Itoa(opts.MaxItems))
			break
		}
	}
	return result, diags
}

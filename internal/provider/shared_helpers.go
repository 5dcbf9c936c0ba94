// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Tiny mapping helpers to reduce verbosity in map-to-state code.
func stringOrNull(s string) types.String {
	if s != "" {
		return types.StringValue(s)
	}
	return types.StringNull()
}

func boolValue(b bool) types.Bool { return types.BoolValue(b) }

// ensureWith wraps EnsureSuccessOrDiagWithOptions binding the diagnostics pointer.
// Use in Resource CRUD/Import methods to avoid repeating the closure at each callsite.
func ensureWith(diags *diag.Diagnostics) EnsureFunc {
	return func(ctx context.Context, action string, err error, opts *EnsureSuccessOrDiagOptions) bool {
		return EnsureSuccessOrDiagWithOptions(ctx, action, err, diags, opts)
	}
}

// withTimeout wraps ctx with a timeout when d > 0. If d <= 0, it returns the
// original context and a no-op cancel, allowing callers to `defer cancel()` unconditionally.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	ctx2, cancel := context.WithTimeout(ctx, d)
	tflog.Debug(ctx2, "context deadline set for operation", map[string]interface{}{"timeout": d.String()})
	return ctx2, cancel
}

// listHasUnknown reports if the list itself or any of its elements are unknown.
func listHasUnknown(l types.List) bool {
	if l.IsUnknown() {
		return true
	}
	elems := l.Elements()
	for i := range elems {
		if elems[i].IsUnknown() {
			return true
		}
	}
	return false
}

// getKnownStrings parses a Terraform list of strings into a Go slice.
// Returns (nil, true) if the list or any of its elements are unknown at plan time, so the caller can defer evaluation.
// On conversion failures with known values, records an attribute-scoped error and returns (nil, false).
func getKnownStrings(ctx context.Context, l types.List, attr string, diags *diag.Diagnostics) (vals []string, deferEval bool) {
	if l.IsNull() {
		return nil, false
	}
	if listHasUnknown(l) {
		return nil, true
	}
	vals = make([]string, len(l.Elements()))
	if d := l.ElementsAs(ctx, &vals, false); d.HasError() {
		diags.AddAttributeError(
			path.Root(attr),
			fmt.Sprintf("Invalid %s list", attr),
			fmt.Sprintf("Failed to read '%s' as a list of strings. Ensure all elements are known and of type string.", attr),
		)
		diags.Append(d...)
		return nil, false
	}
	return vals, false
}

// uniqueStrings returns a de-duplicated slice preserving first occurrence order.
func uniqueStrings(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// nameFilter matches names case-insensitively and remembers which requested
// names were seen. An empty filter matches everything.
type nameFilter struct {
	want  map[string]struct{}
	found map[string]struct{}
}

func newNameFilter(names []string) *nameFilter {
	f := &nameFilter{want: map[string]struct{}{}, found: map[string]struct{}{}}
	for _, n := range uniqueStrings(names) {
		f.want[strings.ToLower(n)] = struct{}{}
	}
	return f
}

func (f *nameFilter) match(name string) bool {
	if len(f.want) == 0 {
		return true
	}
	ln := strings.ToLower(name)
	if _, ok := f.want[ln]; !ok {
		return false
	}
	f.found[ln] = struct{}{}
	return true
}

// missing returns the requested names that never matched, sorted.
func (f *nameFilter) missing() []string {
	out := maps.Keys(f.want)
	out = slices.DeleteFunc(out, func(n string) bool {
		_, ok := f.found[n]
		return ok
	})
	slices.Sort(out)
	return out
}

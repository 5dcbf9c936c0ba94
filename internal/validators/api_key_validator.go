// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
)

// apiKeyValidator validates that a Postman API key carries the documented prefix.
type apiKeyValidator struct {
	prefix string
}

// Description returns a plain text description of the validator's behavior
func (v apiKeyValidator) Description(ctx context.Context) string {
	return fmt.Sprintf("Value must start with %q", v.prefix)
}

// MarkdownDescription returns a markdown formatted description of the validator's behavior
func (v apiKeyValidator) MarkdownDescription(ctx context.Context) string {
	return fmt.Sprintf("Value must start with `%s`", v.prefix)
}

// ValidateString rejects keys without the prefix. The value itself is never echoed.
func (v apiKeyValidator) ValidateString(ctx context.Context, req validator.StringRequest, resp *validator.StringResponse) {
	if req.ConfigValue.IsUnknown() || req.ConfigValue.IsNull() {
		return
	}

	value := strings.TrimSpace(req.ConfigValue.ValueString())
	if value == "" {
		resp.Diagnostics.AddAttributeError(
			req.Path,
			"Invalid API Key",
			"The API key must not be empty. Generate one at https://web.postman.co/settings/me/api-keys.",
		)
		return
	}
	if !strings.HasPrefix(value, v.prefix) {
		resp.Diagnostics.AddAttributeError(
			req.Path,
			"Invalid API Key",
			fmt.Sprintf("Postman API keys start with %q. Check that the value is an API key and not a collection or workspace ID.", v.prefix),
		)
	}
}

// APIKey returns a validator that ensures the value starts with prefix.
func APIKey(prefix string) validator.String {
	return apiKeyValidator{prefix: prefix}
}

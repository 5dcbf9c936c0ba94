// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package validators

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"golang.org/x/exp/slices"
)

// variableTypeValidator validates environment variable type tags.
type variableTypeValidator struct{}

var validVariableTypes = []string{"default", "secret"}

// Description returns a plain text description of the validator's behavior
func (v variableTypeValidator) Description(ctx context.Context) string {
	return "Value must be 'default' or 'secret'"
}

// MarkdownDescription returns a markdown formatted description of the validator's behavior
func (v variableTypeValidator) MarkdownDescription(ctx context.Context) string {
	return "Value must be `default` or `secret`"
}

// ValidateString validates the type tag. Matching is case-sensitive because the API is.
func (v variableTypeValidator) ValidateString(ctx context.Context, req validator.StringRequest, resp *validator.StringResponse) {
	if req.ConfigValue.IsUnknown() || req.ConfigValue.IsNull() {
		return
	}

	value := req.ConfigValue.ValueString()
	if !slices.Contains(validVariableTypes, value) {
		resp.Diagnostics.AddAttributeError(
			req.Path,
			"Invalid Variable Type",
			fmt.Sprintf("Value %q is not valid. Must be 'default' or 'secret'. "+
				"Omit the attribute to have the type derived from the key name.", value),
		)
	}
}

// VariableType returns a validator that ensures the value is "default" or "secret"
func VariableType() validator.String {
	return variableTypeValidator{}
}

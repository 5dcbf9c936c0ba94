// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"

	"github.com/devops-wiz/terraform-provider-postman/internal/postman"
	"github.com/hashicorp/terraform-plugin-framework/attr"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// environmentResourceModel models the Terraform schema/state for postman_environment.
type environmentResourceModel struct {
	ID          types.String               `tfsdk:"id"`
	WorkspaceID types.String               `tfsdk:"workspace_id"`
	Name        types.String               `tfsdk:"name"`
	Variables   []environmentVariableModel `tfsdk:"variables"`
}

// environmentVariableModel is one element of postman_environment.variables.
type environmentVariableModel struct {
	Key     types.String `tfsdk:"key"`
	Value   types.String `tfsdk:"value"`
	Type    types.String `tfsdk:"type"`
	Enabled types.Bool   `tfsdk:"enabled"`
}

// environmentPayload is what Create/Update send for postman_environment.
type environmentPayload struct {
	WorkspaceID string
	Name        string
	Pairs       []postman.Pair
	// ManageVariables is false when the variables block is omitted.
	ManageVariables bool
}

// environmentSummaryModel is one value of the postman_environments map.
type environmentSummaryModel struct {
	UID       types.String `tfsdk:"uid"`
	ID        types.String `tfsdk:"id"`
	Name      types.String `tfsdk:"name"`
	Owner     types.String `tfsdk:"owner"`
	IsPublic  types.Bool   `tfsdk:"is_public"`
	UpdatedAt types.String `tfsdk:"updated_at"`
}

func environmentSummaryAttrTypes() map[string]attr.Type {
	return map[string]attr.Type{
		"uid":        types.StringType,
		"id":         types.StringType,
		"name":       types.StringType,
		"owner":      types.StringType,
		"is_public":  types.BoolType,
		"updated_at": types.StringType,
	}
}

// pairFromModel turns a configured variable into a Pair. Unset type and
// enabled leave the decision to the classifier and any prior remote entry.
func pairFromModel(key, value, typ types.String, enabled types.Bool) postman.Pair {
	p := postman.Pair{Key: key.ValueString(), Value: value.ValueString()}
	if !typ.IsNull() && !typ.IsUnknown() {
		p.Type = typ.ValueString()
	}
	if !enabled.IsNull() && !enabled.IsUnknown() {
		b := enabled.ValueBool()
		p.Enabled = &b
	}
	return p
}

// variableType reports the stored type, treating an untagged entry as default.
func variableType(v postman.Variable) types.String {
	if v.Type == "" {
		return types.StringValue(postman.TypeDefault)
	}
	return types.StringValue(v.Type)
}

// mapEnvironmentToModel maps the remote environment into state. workspace_id
// is not part of the API response and is left as planned. A nil Variables
// slice means the block is omitted and variables are managed elsewhere, so it
// stays nil.
func mapEnvironmentToModel(_ context.Context, env *postman.Environment, st *environmentResourceModel) diag.Diagnostics {
	st.ID = types.StringValue(env.UID)
	st.Name = types.StringValue(env.Name)

	if st.Variables == nil {
		return nil
	}
	if len(env.Values) == 0 {
		st.Variables = []environmentVariableModel{}
		return nil
	}
	vars := make([]environmentVariableModel, 0, len(env.Values))
	for _, v := range env.Values {
		vars = append(vars, environmentVariableModel{
			Key:     types.StringValue(v.Key),
			Value:   types.StringValue(v.Value),
			Type:    variableType(v),
			Enabled: boolValue(v.Enabled),
		})
	}
	st.Variables = vars
	return nil
}

func mapEnvironmentSummaryToModel(_ context.Context, s *postman.EnvironmentSummary) (environmentSummaryModel, diag.Diagnostics) {
	return environmentSummaryModel{
		UID:       types.StringValue(s.UID),
		ID:        types.StringValue(s.ID),
		Name:      types.StringValue(s.Name),
		Owner:     stringOrNull(s.Owner),
		IsPublic:  boolValue(s.IsPublic),
		UpdatedAt: stringOrNull(s.UpdatedAt),
	}, nil
}

// mapImportedEnvironmentToModel adopts every remote variable, since an import
// has no configuration to tell whether the block is used.
func mapImportedEnvironmentToModel(ctx context.Context, env *postman.Environment, st *environmentResourceModel) diag.Diagnostics {
	if len(env.Values) > 0 && st.Variables == nil {
		st.Variables = []environmentVariableModel{}
	}
	return mapEnvironmentToModel(ctx, env, st)
}

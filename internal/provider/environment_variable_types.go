// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/devops-wiz/terraform-provider-postman/internal/postman"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// environmentVariableResourceModel models postman_environment_variable.
type environmentVariableResourceModel struct {
	ID            types.String `tfsdk:"id"`
	EnvironmentID types.String `tfsdk:"environment_id"`
	Key           types.String `tfsdk:"key"`
	Value         types.String `tfsdk:"value"`
	Type          types.String `tfsdk:"type"`
	Enabled       types.Bool   `tfsdk:"enabled"`
}

type environmentVariablePayload struct {
	EnvironmentID string
	Pair          postman.Pair
}

// variableID joins an environment uid and a key into the resource id.
func variableID(envUID, key string) string { return envUID + "/" + key }

// splitVariableID splits "<environment uid>/<key>" at the first slash, so keys
// may themselves contain slashes.
func splitVariableID(id string) (envUID, key string, err error) {
	envUID, key, ok := strings.Cut(id, "/")
	if !ok || envUID == "" || key == "" {
		return "", "", fmt.Errorf("expected an id of the form <environment_uid>/<key>, got %q", id)
	}
	return envUID, key, nil
}

func mapEnvironmentVariableToModel(_ context.Context, v *postman.EnvironmentVariable, st *environmentVariableResourceModel) diag.Diagnostics {
	st.ID = types.StringValue(variableID(v.EnvironmentUID, v.Key))
	st.EnvironmentID = types.StringValue(v.EnvironmentUID)
	st.Key = types.StringValue(v.Key)
	st.Value = types.StringValue(v.Value)
	st.Type = variableType(v.Variable)
	st.Enabled = boolValue(v.Enabled)
	return nil
}

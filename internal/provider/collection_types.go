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

type collectionResourceModel struct {
	ID          types.String `tfsdk:"id"`
	PostmanID   types.String `tfsdk:"postman_id"`
	WorkspaceID types.String `tfsdk:"workspace_id"`
	Name        types.String `tfsdk:"name"`
	Description types.String `tfsdk:"description"`
	Schema      types.String `tfsdk:"schema"`
}

type collectionPayload struct {
	WorkspaceID string
	Name        string
	Description string
}

// collectionSummaryModel is one value of the postman_collections map.
type collectionSummaryModel struct {
	UID       types.String `tfsdk:"uid"`
	ID        types.String `tfsdk:"id"`
	Name      types.String `tfsdk:"name"`
	Owner     types.String `tfsdk:"owner"`
	IsPublic  types.Bool   `tfsdk:"is_public"`
	UpdatedAt types.String `tfsdk:"updated_at"`
}

func collectionSummaryAttrTypes() map[string]attr.Type {
	return map[string]attr.Type{
		"uid":        types.StringType,
		"id":         types.StringType,
		"name":       types.StringType,
		"owner":      types.StringType,
		"is_public":  types.BoolType,
		"updated_at": types.StringType,
	}
}

func mapCollectionToModel(_ context.Context, c *postman.Collection, st *collectionResourceModel) diag.Diagnostics {
	st.ID = types.StringValue(c.UID)
	st.PostmanID = stringOrNull(c.ID)
	st.Name = types.StringValue(c.Name)
	st.Description = stringOrNull(c.Description)
	st.Schema = stringOrNull(c.Schema)
	return nil
}

func mapCollectionSummaryToModel(_ context.Context, s *postman.CollectionSummary) (collectionSummaryModel, diag.Diagnostics) {
	return collectionSummaryModel{
		UID:       types.StringValue(s.UID),
		ID:        types.StringValue(s.ID),
		Name:      types.StringValue(s.Name),
		Owner:     stringOrNull(s.Owner),
		IsPublic:  boolValue(s.IsPublic),
		UpdatedAt: stringOrNull(s.UpdatedAt),
	}, nil
}

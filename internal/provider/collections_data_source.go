// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"fmt"

	"github.com/devops-wiz/terraform-provider-postman/internal/postman"
	"github.com/hashicorp/terraform-plugin-framework-validators/listvalidator"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

var _ datasource.DataSource = (*collectionsDataSource)(nil)
var _ datasource.DataSourceWithConfigure = (*collectionsDataSource)(nil)

// NewCollectionsDataSource returns the data source for postman_collections.
func NewCollectionsDataSource() datasource.DataSource { return &collectionsDataSource{} }

type collectionsDataSource struct {
	ServiceClient
}

type collectionsDataSourceModel struct {
	WorkspaceID types.String `tfsdk:"workspace_id"`
	Names       types.List   `tfsdk:"names"`
	Collections types.Map    `tfsdk:"collections"`
}

func (d *collectionsDataSource) Metadata(_ context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_collections"
}

func (d *collectionsDataSource) Schema(_ context.Context, _ datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Lists Postman collections, optionally scoped to a workspace and filtered by name.",
		Attributes: map[string]schema.Attribute{
			"workspace_id": schema.StringAttribute{
				Optional:            true,
				MarkdownDescription: "Workspace to list. Defaults to the provider `workspace_id`; when both are unset every collection visible to the key is returned.",
			},
			"names": schema.ListAttribute{
				ElementType:         types.StringType,
				Optional:            true,
				MarkdownDescription: "Filter by collection names (case-insensitive).",
				Validators: []validator.List{
					listvalidator.UniqueValues(),
					listvalidator.ValueStringsAre(stringvalidator.LengthAtLeast(1)),
				},
			},
			"collections": schema.MapNestedAttribute{
				Computed:            true,
				MarkdownDescription: "Collections keyed by uid.",
				NestedObject: schema.NestedAttributeObject{
					Attributes: summaryAttributes("collection"),
				},
			},
		},
	}
}

func (d *collectionsDataSource) Configure(_ context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	d.configureFrom(req.ProviderData, "Data Source", &resp.Diagnostics)
}

func (d *collectionsDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, d.providerTimeouts.Read)
	defer cancel()

	var data collectionsDataSourceModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	names, deferNames := getKnownStrings(ctx, data.Names, "names", &resp.Diagnostics)
	if resp.Diagnostics.HasError() || deferNames {
		return
	}
	filter := newNameFilter(names)

	objMap, listDiags := DoListToMapWithLimit(ctx, ListHooks[*postman.CollectionSummary, collectionSummaryModel]{
		List: func(ctx context.Context) ([]*postman.CollectionSummary, diag.Diagnostics) {
			var diags diag.Diagnostics
			cols, err := d.client.ListCollections(ctx, data.WorkspaceID.ValueString())
			if !EnsureSuccessOrDiagWithOptions(ctx, "list collections", err, &diags, &EnsureSuccessOrDiagOptions{IncludeBodySnippet: true}) {
				return nil, diags
			}
			out := make([]*postman.CollectionSummary, len(cols))
			for i := range cols {
				out[i] = &cols[i]
			}
			return out, diags
		},
		Filter: func(_ context.Context, e *postman.CollectionSummary) bool {
			return filter.match(e.Name)
		},
		KeyOf:     func(e *postman.CollectionSummary) string { return e.UID },
		MapToOut:  mapCollectionSummaryToModel,
		AttrTypes: collectionSummaryAttrTypes,
	}, ListOptions{WarnThreshold: listWarnThreshold, RespectContext: true})
	resp.Diagnostics.Append(listDiags...)
	if resp.Diagnostics.HasError() {
		return
	}

	if missing := filter.missing(); len(missing) > 0 {
		resp.Diagnostics.AddWarning(
			"Some requested collection names were not found",
			fmt.Sprintf("The following names were not found in Postman: %v. They will be omitted from the result.", missing),
		)
	}

	var diags diag.Diagnostics
	data.Collections, diags = types.MapValueFrom(ctx, types.ObjectType{AttrTypes: collectionSummaryAttrTypes()}, objMap)
	if diags.HasError() {
		resp.Diagnostics.AddAttributeError(
			path.Root("collections"),
			"Failed to build collections map",
			fmt.Sprintf("Could not encode %d collections into state. See diagnostics for details.", len(objMap)),
		)
		resp.Diagnostics.Append(diags...)
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

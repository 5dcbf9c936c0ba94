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

var _ datasource.DataSource = (*environmentsDataSource)(nil)
var _ datasource.DataSourceWithConfigure = (*environmentsDataSource)(nil)

// listWarnThreshold adds a warning once a data source keeps this many items.
const listWarnThreshold = 1000

// NewEnvironmentsDataSource returns the data source for postman_environments.
func NewEnvironmentsDataSource() datasource.DataSource { return &environmentsDataSource{} }

type environmentsDataSource struct {
	ServiceClient
}

type environmentsDataSourceModel struct {
	WorkspaceID  types.String `tfsdk:"workspace_id"`
	Names        types.List   `tfsdk:"names"`
	Environments types.Map    `tfsdk:"environments"`
}

func (d *environmentsDataSource) Metadata(_ context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_environments"
}

func (d *environmentsDataSource) Schema(_ context.Context, _ datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Lists Postman environments, optionally scoped to a workspace and filtered by name.",
		Attributes: map[string]schema.Attribute{
			"workspace_id": schema.StringAttribute{
				Optional:            true,
				MarkdownDescription: "Workspace to list. Defaults to the provider `workspace_id`; when both are unset every environment visible to the key is returned.",
			},
			"names": schema.ListAttribute{
				ElementType:         types.StringType,
				Optional:            true,
				MarkdownDescription: "Filter by environment names (case-insensitive).",
				Validators: []validator.List{
					listvalidator.UniqueValues(),
					listvalidator.ValueStringsAre(stringvalidator.LengthAtLeast(1)),
				},
			},
			"environments": schema.MapNestedAttribute{
				Computed:            true,
				MarkdownDescription: "Environments keyed by uid.",
				NestedObject: schema.NestedAttributeObject{
					Attributes: summaryAttributes("environment"),
				},
			},
		},
	}
}

// summaryAttributes describes one entry of a listing data source.
func summaryAttributes(kind string) map[string]schema.Attribute {
	return map[string]schema.Attribute{
		"uid": schema.StringAttribute{
			Computed:            true,
			MarkdownDescription: fmt.Sprintf("The %s uid, used by the API and by imports.", kind),
		},
		"id": schema.StringAttribute{
			Computed:            true,
			MarkdownDescription: fmt.Sprintf("The short %s id.", kind),
		},
		"name": schema.StringAttribute{
			Computed: true,
		},
		"owner": schema.StringAttribute{
			Computed:            true,
			MarkdownDescription: "Owner user id.",
		},
		"is_public": schema.BoolAttribute{
			Computed: true,
		},
		"updated_at": schema.StringAttribute{
			Computed:            true,
			MarkdownDescription: "Last update timestamp as reported by Postman.",
		},
	}
}

func (d *environmentsDataSource) Configure(_ context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	d.configureFrom(req.ProviderData, "Data Source", &resp.Diagnostics)
}

func (d *environmentsDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, d.providerTimeouts.Read)
	defer cancel()

	var data environmentsDataSourceModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	names, deferNames := getKnownStrings(ctx, data.Names, "names", &resp.Diagnostics)
	if resp.Diagnostics.HasError() || deferNames {
		return
	}
	filter := newNameFilter(names)

	objMap, listDiags := DoListToMapWithLimit(ctx, ListHooks[*postman.EnvironmentSummary, environmentSummaryModel]{
		List: func(ctx context.Context) ([]*postman.EnvironmentSummary, diag.Diagnostics) {
			var diags diag.Diagnostics
			envs, err := d.client.ListEnvironments(ctx, data.WorkspaceID.ValueString())
			if !EnsureSuccessOrDiagWithOptions(ctx, "list environments", err, &diags, &EnsureSuccessOrDiagOptions{IncludeBodySnippet: true}) {
				return nil, diags
			}
			out := make([]*postman.EnvironmentSummary, len(envs))
			for i := range envs {
				out[i] = &envs[i]
			}
			return out, diags
		},
		Filter: func(_ context.Context, e *postman.EnvironmentSummary) bool {
			return filter.match(e.Name)
		},
		KeyOf:     func(e *postman.EnvironmentSummary) string { return e.UID },
		MapToOut:  mapEnvironmentSummaryToModel,
		AttrTypes: environmentSummaryAttrTypes,
	}, ListOptions{WarnThreshold: listWarnThreshold, RespectContext: true})
	resp.Diagnostics.Append(listDiags...)
	if resp.Diagnostics.HasError() {
		return
	}

	if missing := filter.missing(); len(missing) > 0 {
		resp.Diagnostics.AddWarning(
			"Some requested environment names were not found",
			fmt.Sprintf("The following names were not found in Postman: %v. They will be omitted from the result.", missing),
		)
	}

	var diags diag.Diagnostics
	data.Environments, diags = types.MapValueFrom(ctx, types.ObjectType{AttrTypes: environmentSummaryAttrTypes()}, objMap)
	if diags.HasError() {
		resp.Diagnostics.AddAttributeError(
			path.Root("environments"),
			"Failed to build environments map",
			fmt.Sprintf("Could not encode %d environments into state. See diagnostics for details.", len(objMap)),
		)
		resp.Diagnostics.Append(diags...)
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

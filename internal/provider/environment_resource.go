// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"fmt"

	"github.com/devops-wiz/terraform-provider-postman/internal/postman"
	"github.com/devops-wiz/terraform-provider-postman/internal/validators"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/booldefault"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
)

var _ resource.Resource = (*environmentResource)(nil)
var _ resource.ResourceWithConfigure = (*environmentResource)(nil)
var _ resource.ResourceWithImportState = (*environmentResource)(nil)
var _ resource.ResourceWithValidateConfig = (*environmentResource)(nil)

// NewEnvironmentResource returns the Terraform resource implementation for postman_environment.
func NewEnvironmentResource() resource.Resource { return &environmentResource{} }

type environmentResource struct {
	ServiceClient
}

func (r *environmentResource) Metadata(_ context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_environment"
}

func (r *environmentResource) Configure(_ context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	r.configureFrom(req.ProviderData, "Resource", &resp.Diagnostics)
}

func (r *environmentResource) ValidateConfig(ctx context.Context, req resource.ValidateConfigRequest, resp *resource.ValidateConfigResponse) {
	var data environmentResourceModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}
	seen := make(map[string]int, len(data.Variables))
	for i, v := range data.Variables {
		if v.Key.IsUnknown() || v.Key.IsNull() {
			continue
		}
		k := v.Key.ValueString()
		if first, dup := seen[k]; dup {
			resp.Diagnostics.AddAttributeError(
				path.Root("variables").AtListIndex(i).AtName("key"),
				"Duplicate variable key",
				fmt.Sprintf("Variable key %q is already declared at index %d. Each key may appear only once.", k, first),
			)
			continue
		}
		seen[k] = i
	}
}

func (r *environmentResource) Schema(_ context.Context, _ resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Manages a Postman environment and its complete set of variables. " +
			"Variables not declared here are removed on update. Keys that look like credentials " +
			"(for example `api_key`, `password`, `client_secret`) are stored as `secret` unless `type` is set.",
		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed: true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
				MarkdownDescription: "The environment uid.",
			},
			"workspace_id": schema.StringAttribute{
				Optional: true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
				MarkdownDescription: "Workspace to create the environment in. Defaults to the provider `workspace_id`.",
			},
			"name": schema.StringAttribute{
				Required:            true,
				Validators:          []validator.String{stringvalidator.LengthAtLeast(1)},
				MarkdownDescription: "The display name of the environment.",
			},
			"variables": schema.ListNestedAttribute{
				Optional:            true,
				MarkdownDescription: "Environment variables in display order.",
				NestedObject: schema.NestedAttributeObject{
					Attributes: variableAttributes(),
				},
			},
		},
	}
}

// variableAttributes are the per-variable attributes shared by the environment schemas.
func variableAttributes() map[string]schema.Attribute {
	return map[string]schema.Attribute{
		"key": schema.StringAttribute{
			Required:            true,
			Validators:          []validator.String{stringvalidator.LengthAtLeast(1)},
			MarkdownDescription: "Variable name.",
		},
		"value": schema.StringAttribute{
			Required:            true,
			Sensitive:           true,
			MarkdownDescription: "Variable value.",
		},
		"type": schema.StringAttribute{
			Optional:            true,
			Computed:            true,
			Validators:          []validator.String{validators.VariableType()},
			MarkdownDescription: "`default` or `secret`. When unset, new keys are classified by name and existing keys keep their stored type.",
		},
		"enabled": schema.BoolAttribute{
			Optional:            true,
			Computed:            true,
			Default:             booldefault.StaticBool(true),
			MarkdownDescription: "Whether the variable is active. Defaults to true.",
		},
	}
}

func (r *environmentResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Create)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	diags := runner.DoCreate(
		ctx,
		func(ctx context.Context, dst *environmentResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *environmentResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *environmentResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	diags := runner.DoRead(
		ctx,
		func(ctx context.Context, dst *environmentResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		func(ctx context.Context, src *environmentResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		func(ctx context.Context) { resp.State.RemoveResource(ctx) },
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *environmentResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Update)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	diags := runner.DoUpdate(
		ctx,
		func(ctx context.Context, dst *environmentResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *environmentResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *environmentResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Delete)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	diags := runner.DoDelete(
		ctx,
		func(ctx context.Context, dst *environmentResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

func (r *environmentResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	hooks := r.hooks()
	hooks.MapToState = mapImportedEnvironmentToModel
	runner := NewCRUDRunner(hooks)
	diags := runner.DoImport(
		ctx,
		req.ID,
		func(ctx context.Context, src *environmentResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)
	resp.Diagnostics.Append(diags...)
}

// hooks returns the CRUD hooks for the generic runner.
func (r *environmentResource) hooks() CRUDHooks[environmentResourceModel, *environmentPayload, *postman.Environment] {
	return CRUDHooks[environmentResourceModel, *environmentPayload, *postman.Environment]{
		BuildPayload: buildEnvironmentPayload,
		APICreate: func(ctx context.Context, p *environmentPayload) (*postman.Environment, error) {
			return r.client.CreateEnvironment(ctx, p.Name, p.Pairs, p.WorkspaceID)
		},
		APIRead: r.client.GetEnvironment,
		APIUpdate: func(ctx context.Context, id string, p *environmentPayload) (*postman.Environment, error) {
			if !p.ManageVariables {
				return r.client.UpdateEnvironment(ctx, id, p.Name, nil)
			}
			return r.client.ReplaceEnvironment(ctx, id, p.Name, p.Pairs)
		},
		APIDelete:               r.client.DeleteEnvironment,
		ExtractID:               func(st *environmentResourceModel) string { return st.ID.ValueString() },
		MapToState:              mapEnvironmentToModel,
		TreatDelete404AsSuccess: true,
	}
}

func buildEnvironmentPayload(_ context.Context, st *environmentResourceModel) (*environmentPayload, diag.Diagnostics) {
	p := &environmentPayload{
		WorkspaceID:     st.WorkspaceID.ValueString(),
		Name:            st.Name.ValueString(),
		Pairs:           make([]postman.Pair, 0, len(st.Variables)),
		ManageVariables: st.Variables != nil,
	}
	for _, v := range st.Variables {
		p.Pairs = append(p.Pairs, pairFromModel(v.Key, v.Value, v.Type, v.Enabled))
	}
	return p, nil
}

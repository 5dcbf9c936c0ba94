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
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/booldefault"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
)

var _ resource.Resource = (*environmentVariableResource)(nil)
var _ resource.ResourceWithConfigure = (*environmentVariableResource)(nil)
var _ resource.ResourceWithImportState = (*environmentVariableResource)(nil)

// NewEnvironmentVariableResource returns the resource for postman_environment_variable.
func NewEnvironmentVariableResource() resource.Resource { return &environmentVariableResource{} }

type environmentVariableResource struct {
	ServiceClient
}

func (r *environmentVariableResource) Metadata(_ context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_environment_variable"
}

func (r *environmentVariableResource) Configure(_ context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	r.configureFrom(req.ProviderData, "Resource", &resp.Diagnostics)
}

func (r *environmentVariableResource) Schema(_ context.Context, _ resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Manages a single variable inside an existing Postman environment. " +
			"Other variables of the environment are left untouched. Do not combine with a " +
			"`postman_environment` that declares `variables` for the same environment.",
		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed: true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
				MarkdownDescription: "`<environment_id>/<key>`.",
			},
			"environment_id": schema.StringAttribute{
				Required:            true,
				Validators:          []validator.String{stringvalidator.LengthAtLeast(1)},
				PlanModifiers:       []planmodifier.String{stringplanmodifier.RequiresReplace()},
				MarkdownDescription: "Uid of the environment holding the variable.",
			},
			"key": schema.StringAttribute{
				Required:            true,
				Validators:          []validator.String{stringvalidator.LengthAtLeast(1)},
				PlanModifiers:       []planmodifier.String{stringplanmodifier.RequiresReplace()},
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
				MarkdownDescription: "`default` or `secret`. When unset the key name decides, and an existing variable keeps its type.",
			},
			"enabled": schema.BoolAttribute{
				Optional:            true,
				Computed:            true,
				Default:             booldefault.StaticBool(true),
				MarkdownDescription: "Whether the variable is active. Defaults to true.",
			},
		},
	}
}

func (r *environmentVariableResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Create)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	resp.Diagnostics.Append(runner.DoCreate(
		ctx,
		func(ctx context.Context, dst *environmentVariableResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *environmentVariableResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)...)
}

func (r *environmentVariableResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	resp.Diagnostics.Append(runner.DoRead(
		ctx,
		func(ctx context.Context, dst *environmentVariableResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		func(ctx context.Context, src *environmentVariableResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		func(ctx context.Context) { resp.State.RemoveResource(ctx) },
		ensureWith(&resp.Diagnostics),
	)...)
}

func (r *environmentVariableResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Update)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	resp.Diagnostics.Append(runner.DoUpdate(
		ctx,
		func(ctx context.Context, dst *environmentVariableResourceModel) diag.Diagnostics {
			return req.Plan.Get(ctx, dst)
		},
		func(ctx context.Context, src *environmentVariableResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)...)
}

func (r *environmentVariableResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Delete)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	resp.Diagnostics.Append(runner.DoDelete(
		ctx,
		func(ctx context.Context, dst *environmentVariableResourceModel) diag.Diagnostics {
			return req.State.Get(ctx, dst)
		},
		ensureWith(&resp.Diagnostics),
	)...)
}

func (r *environmentVariableResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	if _, _, err := splitVariableID(req.ID); err != nil {
		resp.Diagnostics.AddError("Invalid import identifier", err.Error())
		return
	}
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	resp.Diagnostics.Append(runner.DoImport(
		ctx,
		req.ID,
		func(ctx context.Context, src *environmentVariableResourceModel) diag.Diagnostics {
			return resp.State.Set(ctx, src)
		},
		ensureWith(&resp.Diagnostics),
	)...)
}

func (r *environmentVariableResource) hooks() CRUDHooks[environmentVariableResourceModel, *environmentVariablePayload, *postman.EnvironmentVariable] {
	return CRUDHooks[environmentVariableResourceModel, *environmentVariablePayload, *postman.EnvironmentVariable]{
		BuildPayload: buildEnvironmentVariablePayload,
		APICreate:    r.setVariable,
		APIRead: func(ctx context.Context, id string) (*postman.EnvironmentVariable, error) {
			envUID, key, err := splitVariableID(id)
			if err != nil {
				return nil, err
			}
			return r.client.GetEnvironmentVariable(ctx, envUID, key)
		},
		APIUpdate: func(ctx context.Context, _ string, p *environmentVariablePayload) (*postman.EnvironmentVariable, error) {
			return r.setVariable(ctx, p)
		},
		APIDelete: func(ctx context.Context, id string) error {
			envUID, key, err := splitVariableID(id)
			if err != nil {
				return err
			}
			_, err = r.client.RemoveEnvironmentVariables(ctx, envUID, key)
			return err
		},
		ExtractID:               func(st *environmentVariableResourceModel) string { return st.ID.ValueString() },
		MapToState:              mapEnvironmentVariableToModel,
		TreatDelete404AsSuccess: true,
	}
}

// setVariable upserts one variable and returns it as stored.
func (r *environmentVariableResource) setVariable(ctx context.Context, p *environmentVariablePayload) (*postman.EnvironmentVariable, error) {
	env, err := r.client.SetEnvironmentVariables(ctx, p.EnvironmentID, p.Pair)
	if err != nil {
		return nil, err
	}
	v, ok := postman.FindEntry(env.Values, p.Pair.Key)
	if !ok {
		return nil, fmt.Errorf("variable %q missing from environment %s after write", p.Pair.Key, p.EnvironmentID)
	}
	return &postman.EnvironmentVariable{EnvironmentUID: p.EnvironmentID, Variable: v}, nil
}

func buildEnvironmentVariablePayload(_ context.Context, st *environmentVariableResourceModel) (*environmentVariablePayload, diag.Diagnostics) {
	return &environmentVariablePayload{
		EnvironmentID: st.EnvironmentID.ValueString(),
		Pair:          pairFromModel(st.Key, st.Value, st.Type, st.Enabled),
	}, nil
}

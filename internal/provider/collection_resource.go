// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"

	"github.com/devops-wiz/terraform-provider-postman/internal/postman"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
)

var _ resource.Resource = (*collectionResource)(nil)
var _ resource.ResourceWithConfigure = (*collectionResource)(nil)
var _ resource.ResourceWithImportState = (*collectionResource)(nil)

// NewCollectionResource returns the resource for postman_collection.
func NewCollectionResource() resource.Resource { return &collectionResource{} }

type collectionResource struct {
	ServiceClient
}

func (r *collectionResource) Metadata(_ context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_collection"
}

func (r *collectionResource) Configure(_ context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	r.configureFrom(req.ProviderData, "Resource", &resp.Diagnostics)
}

func (r *collectionResource) Schema(_ context.Context, _ resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Manages the name and description of a Postman collection. " +
			"Requests and folders added in Postman are preserved on update.",
		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "The collection uid.",
			},
			"postman_id": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "The `_postman_id` of the collection document.",
			},
			"workspace_id": schema.StringAttribute{
				Optional:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.RequiresReplace()},
				MarkdownDescription: "Workspace to create the collection in. Defaults to the provider `workspace_id`.",
			},
			"name": schema.StringAttribute{
				Required:            true,
				Validators:          []validator.String{stringvalidator.LengthAtLeast(1)},
				MarkdownDescription: "Collection name.",
			},
			"description": schema.StringAttribute{
				Optional:            true,
				Validators:          []validator.String{stringvalidator.LengthAtLeast(1)},
				MarkdownDescription: "Collection description. Omit to clear it.",
			},
			"schema": schema.StringAttribute{
				Computed:            true,
				PlanModifiers:       []planmodifier.String{stringplanmodifier.UseStateForUnknown()},
				MarkdownDescription: "Collection format URL.",
			},
		},
	}
}

func (r *collectionResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Create)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	resp.Diagnostics.Append(runner.DoCreate(
		ctx,
		func(ctx context.Context, dst *collectionResourceModel) diag.Diagnostics { return req.Plan.Get(ctx, dst) },
		func(ctx context.Context, src *collectionResourceModel) diag.Diagnostics { return resp.State.Set(ctx, src) },
		ensureWith(&resp.Diagnostics),
	)...)
}

func (r *collectionResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	resp.Diagnostics.Append(runner.DoRead(
		ctx,
		func(ctx context.Context, dst *collectionResourceModel) diag.Diagnostics { return req.State.Get(ctx, dst) },
		func(ctx context.Context, src *collectionResourceModel) diag.Diagnostics { return resp.State.Set(ctx, src) },
		func(ctx context.Context) { resp.State.RemoveResource(ctx) },
		ensureWith(&resp.Diagnostics),
	)...)
}

func (r *collectionResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Update)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	resp.Diagnostics.Append(runner.DoUpdate(
		ctx,
		func(ctx context.Context, dst *collectionResourceModel) diag.Diagnostics { return req.Plan.Get(ctx, dst) },
		func(ctx context.Context, src *collectionResourceModel) diag.Diagnostics { return resp.State.Set(ctx, src) },
		ensureWith(&resp.Diagnostics),
	)...)
}

func (r *collectionResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Delete)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	resp.Diagnostics.Append(runner.DoDelete(
		ctx,
		func(ctx context.Context, dst *collectionResourceModel) diag.Diagnostics { return req.State.Get(ctx, dst) },
		ensureWith(&resp.Diagnostics),
	)...)
}

func (r *collectionResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	ctx, cancel := withTimeout(ctx, r.providerTimeouts.Read)
	defer cancel()

	runner := NewCRUDRunner(r.hooks())
	resp.Diagnostics.Append(runner.DoImport(
		ctx,
		req.ID,
		func(ctx context.Context, src *collectionResourceModel) diag.Diagnostics { return resp.State.Set(ctx, src) },
		ensureWith(&resp.Diagnostics),
	)...)
}

func (r *collectionResource) hooks() CRUDHooks[collectionResourceModel, *collectionPayload, *postman.Collection] {
	return CRUDHooks[collectionResourceModel, *collectionPayload, *postman.Collection]{
		BuildPayload: func(_ context.Context, st *collectionResourceModel) (*collectionPayload, diag.Diagnostics) {
			return &collectionPayload{
				WorkspaceID: st.WorkspaceID.ValueString(),
				Name:        st.Name.ValueString(),
				Description: st.Description.ValueString(),
			}, nil
		},
		APICreate: func(ctx context.Context, p *collectionPayload) (*postman.Collection, error) {
			return r.client.CreateCollection(ctx, p.Name, p.Description, p.WorkspaceID)
		},
		APIRead: r.client.GetCollection,
		APIUpdate: func(ctx context.Context, id string, p *collectionPayload) (*postman.Collection, error) {
			return r.client.UpdateCollectionInfo(ctx, id, p.Name, p.Description)
		},
		APIDelete:               r.client.DeleteCollection,
		ExtractID:               func(st *collectionResourceModel) string { return st.ID.ValueString() },
		MapToState:              mapCollectionToModel,
		TreatDelete404AsSuccess: true,
	}
}

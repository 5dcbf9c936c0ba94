// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"regexp"

	"github.com/devops-wiz/terraform-provider-postman/internal/postman"
	"github.com/devops-wiz/terraform-provider-postman/internal/validators"
	"github.com/hashicorp/terraform-plugin-framework-validators/float64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/int64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensure PostmanProvider satisfies various provider interfaces.
var _ provider.Provider = &PostmanProvider{}
var _ provider.ProviderWithValidateConfig = &PostmanProvider{}

// PostmanProvider defines the provider implementation.
type PostmanProvider struct {
	// version is set to the provider version on release, "dev" when the
	// provider is built and ran locally, and "test" when running acceptance
	// testing.
	version string
	// client is the Postman API client shared by all resources and data sources.
	client *postman.Client
	// providerTimeouts are the per-operation deadlines from operation_timeouts.
	providerTimeouts opTimeouts
	// executorOpts are passed to the client's retry executor; tests use them
	// to observe attempts without sleeping.
	executorOpts []postman.ExecutorOption
}

// PostmanProviderModel describes the provider data model.
type PostmanProviderModel struct {
	// Base Configuration
	BaseURL     types.String `tfsdk:"base_url"`
	WorkspaceID types.String `tfsdk:"workspace_id"`

	// Authentication
	APIKey types.String `tfsdk:"api_key"`

	// HTTP
	HTTPTimeoutSeconds types.Int64 `tfsdk:"http_timeout_seconds"`

	// Retry
	RetryOn4295xx          types.Bool    `tfsdk:"retry_on_429_5xx"`
	RetryMaxAttempts       types.Int64   `tfsdk:"retry_max_attempts"`
	RetryInitialBackoffMs  types.Int64   `tfsdk:"retry_initial_backoff_ms"`
	RetryMaxBackoffMs      types.Int64   `tfsdk:"retry_max_backoff_ms"`
	RetryBackoffMultiplier types.Float64 `tfsdk:"retry_backoff_multiplier"`

	OperationTimeouts *OperationTimeoutsModel `tfsdk:"operation_timeouts"`
}

func (p *PostmanProvider) Metadata(_ context.Context, _ provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = "postman"
	resp.Version = p.version
}

func (p *PostmanProvider) Schema(_ context.Context, _ provider.SchemaRequest, resp *provider.SchemaResponse) {
	durationAttr := func(op string) schema.StringAttribute {
		return schema.StringAttribute{
			MarkdownDescription: "Deadline for " + op + " operations as a Go duration string (e.g. `30s`, `2m`).",
			Optional:            true,
			Validators: []validator.String{
				stringvalidator.LengthAtLeast(2),
			},
		}
	}

	resp.Schema = schema.Schema{
		MarkdownDescription: "Postman provider for managing environments and collections through the Postman API.",
		Attributes: map[string]schema.Attribute{
			// Base Configuration
			attrBaseURL: schema.StringAttribute{
				MarkdownDescription: "Base URL of the Postman API. Defaults to `" + postman.DefaultBaseURL + "`. Can also be set with `" + envBaseURL + "`.",
				Optional:            true,
				Validators: []validator.String{
					stringvalidator.RegexMatches(regexp.MustCompile(`^https?://`), "base_url must start with http:// or https://."),
				},
			},
			attrWorkspaceID: schema.StringAttribute{
				MarkdownDescription: "Default workspace for new environments and collections. Can also be set with `" + envWorkspaceID + "`.",
				Optional:            true,
			},

			// Authentication
			attrAPIKey: schema.StringAttribute{
				MarkdownDescription: "Postman API key (starts with `" + postman.APIKeyPrefix + "`). Can also be set with `" + envAPIKey + "`.",
				Optional:            true,
				Sensitive:           true,
				Validators: []validator.String{
					validators.APIKey(postman.APIKeyPrefix),
				},
			},

			// HTTP
			attrHTTPTimeoutSeconds: schema.Int64Attribute{
				MarkdownDescription: "Timeout in seconds for a single HTTP attempt. Defaults to 30. Can also be set with `" + envTimeout + "`.",
				Optional:            true,
				Validators:          []validator.Int64{int64validator.Between(1, 600)},
			},

			// Retry
			attrRetryOn4295xx: schema.BoolAttribute{
				MarkdownDescription: "Retry rate limited (429), server (5xx), network and timeout failures. Defaults to true; false makes every call a single attempt.",
				Optional:            true,
			},
			attrRetryMaxAttempts: schema.Int64Attribute{
				MarkdownDescription: "Total attempts per API call including the first. Defaults to 3. Can also be set with `" + envMaxRetries + "`.",
				Optional:            true,
				Validators:          []validator.Int64{int64validator.Between(1, 10)},
			},
			attrRetryInitialBackoff: schema.Int64Attribute{
				MarkdownDescription: "Wait before the first retry in milliseconds. Defaults to 1000.",
				Optional:            true,
				Validators:          []validator.Int64{int64validator.Between(100, 600000)},
			},
			attrRetryMaxBackoff: schema.Int64Attribute{
				MarkdownDescription: "Cap on the computed wait between retries in milliseconds. A server `Retry-After` is always honored in full. Defaults to 60000. `" + envRateLimitDelay + "` sets it in seconds.",
				Optional:            true,
				Validators:          []validator.Int64{int64validator.Between(100, 600000)},
			},
			attrRetryBackoffMultiplier: schema.Float64Attribute{
				MarkdownDescription: "Growth factor of the wait between consecutive retries. Defaults to 2.",
				Optional:            true,
				Validators:          []validator.Float64{float64validator.Between(1, 10)},
			},

			attrOperationTimeouts: schema.SingleNestedAttribute{
				MarkdownDescription: "Per-operation deadlines applied to every resource and data source. The retry loop stops when the deadline passes.",
				Optional:            true,
				Attributes: map[string]schema.Attribute{
					"create": durationAttr("create"),
					"read":   durationAttr("read"),
					"update": durationAttr("update"),
					"delete": durationAttr("delete"),
				},
			},
		},
	}
}

func (p *PostmanProvider) ValidateConfig(ctx context.Context, req provider.ValidateConfigRequest, resp *provider.ValidateConfigResponse) {
	var data PostmanProviderModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	_, errs := parseOperationTimeouts(data.OperationTimeouts)
	appendTimeoutErrors(&resp.Diagnostics, errs)

	if data.RetryInitialBackoffMs.IsNull() || data.RetryInitialBackoffMs.IsUnknown() ||
		data.RetryMaxBackoffMs.IsNull() || data.RetryMaxBackoffMs.IsUnknown() {
		return
	}
	if data.RetryInitialBackoffMs.ValueInt64() > data.RetryMaxBackoffMs.ValueInt64() {
		resp.Diagnostics.AddAttributeError(path.Root(attrRetryInitialBackoff), "Invalid Retry Backoff Configuration.",
			"retry_initial_backoff_ms must be less than or equal to retry_max_backoff_ms.")
	}
}

func (p *PostmanProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var data PostmanProviderModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	if data.APIKey.IsUnknown() {
		resp.Diagnostics.AddAttributeError(path.Root(attrAPIKey), "Unknown Postman API Key",
			"The provider cannot create the Postman API client as there is an unknown configuration value for the API key. "+
				"Either set the value statically in the configuration, or use the "+envAPIKey+" environment variable.")
		return
	}

	rc := deriveResolvedConfig(data)
	for _, e := range validateResolvedConfig(rc) {
		if e.attr == "" {
			resp.Diagnostics.AddError(e.summary, e.detail)
			continue
		}
		resp.Diagnostics.AddAttributeError(path.Root(e.attr), e.summary, e.detail)
	}

	timeouts, errs := parseOperationTimeouts(data.OperationTimeouts)
	appendTimeoutErrors(&resp.Diagnostics, errs)
	if resp.Diagnostics.HasError() {
		return
	}

	ctx = tflog.SetField(ctx, "postman_base_url", rc.baseURL)
	ctx = tflog.MaskFieldValuesWithFieldKeys(ctx, "api_key")
	tflog.Debug(ctx, "creating Postman client", map[string]interface{}{
		"workspace_id":       rc.workspaceID,
		"http_timeout":       rc.httpTimeout().String(),
		"retry_enabled":      rc.retryOn4295xx,
		"retry_max_attempts": rc.retryPolicy().MaxAttempts,
	})

	client, err := p.initPostmanClient(rc, p.executorOpts...)
	if err != nil {
		resp.Diagnostics.AddError("Error creating Postman client", RedactSecrets(err.Error()))
		return
	}

	if !p.testConnection(ctx, client, &resp.Diagnostics) {
		return
	}

	p.client = client
	p.providerTimeouts = timeouts

	resp.ResourceData = p
	resp.DataSourceData = p
}

// appendTimeoutErrors reports operation_timeouts parse errors against their nested attribute.
func appendTimeoutErrors(diags *diag.Diagnostics, errs []validationErr) {
	for _, e := range errs {
		diags.AddAttributeError(path.Root(attrOperationTimeouts).AtName(e.attr), e.summary, e.detail)
	}
}

func (p *PostmanProvider) Resources(_ context.Context) []func() resource.Resource {
	return []func() resource.Resource{
		NewEnvironmentResource,
		NewEnvironmentVariableResource,
		NewCollectionResource,
	}
}

func (p *PostmanProvider) DataSources(_ context.Context) []func() datasource.DataSource {
	return []func() datasource.DataSource{
		NewEnvironmentsDataSource,
		NewCollectionsDataSource,
	}
}

func New(version string) func() provider.Provider {
	return func() provider.Provider {
		return &PostmanProvider{
			version: version,
		}
	}
}

// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"fmt"

	"github.com/devops-wiz/terraform-provider-postman/internal/postman"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// userAgent identifies this provider build to the Postman API.
func (p *PostmanProvider) userAgent() string {
	return fmt.Sprintf("devops-wiz/terraform-provider-postman/%s", p.version)
}

// initPostmanClient builds the API client from the resolved configuration.
// Every call it makes runs through one retry executor built from rc.
func (p *PostmanProvider) initPostmanClient(rc resolvedConfig, opts ...postman.ExecutorOption) (*postman.Client, error) {
	return postman.NewClient(postman.Config{
		APIKey:          rc.apiKey,
		BaseURL:         rc.baseURL,
		WorkspaceID:     rc.workspaceID,
		UserAgent:       p.userAgent(),
		Timeout:         rc.httpTimeout(),
		Retry:           rc.retryPolicy(),
		ExecutorOptions: opts,
	})
}

// testConnection checks API connectivity and appends diagnostics on failure.
func (p *PostmanProvider) testConnection(ctx context.Context, client *postman.Client, diags *diag.Diagnostics) bool {
	me, err := client.Me(ctx)
	if !EnsureSuccessOrDiagWithOptions(ctx, "authenticate (me)", err, diags, &EnsureSuccessOrDiagOptions{IncludeBodySnippet: true}) {
		return false
	}
	tflog.Info(ctx, "authenticated with Postman API", map[string]interface{}{
		"user_id":  me.ID,
		"username": me.Username,
		"email":    sanitizeEmail(me.Email),
	})
	return true
}

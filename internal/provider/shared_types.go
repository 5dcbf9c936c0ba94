// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"fmt"

	"github.com/devops-wiz/terraform-provider-postman/internal/postman"
	"github.com/hashicorp/terraform-plugin-framework/diag"
)

// ServiceClient is embedded by every resource and data source.
type ServiceClient struct {
	client           *postman.Client
	providerTimeouts opTimeouts
}

// configureFrom copies the provider's client and timeouts. kind names the
// caller in the diagnostic ("Resource" or "Data Source").
func (s *ServiceClient) configureFrom(providerData any, kind string, diags *diag.Diagnostics) {
	if providerData == nil {
		return
	}
	p, ok := providerData.(*PostmanProvider)
	if !ok {
		diags.AddError(
			fmt.Sprintf("Unexpected %s Configure Type", kind),
			fmt.Sprintf("Expected *PostmanProvider, got: %T. Please report this issue to the provider developers.", providerData),
		)
		return
	}
	s.client = p.client
	s.providerTimeouts = p.providerTimeouts
}

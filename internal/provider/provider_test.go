// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"os"
	"strings"
	"testing"

	"github.com/devops-wiz/terraform-provider-postman/internal/postman"
	"github.com/devops-wiz/terraform-provider-postman/internal/provider/testhelpers"
	"github.com/hashicorp/terraform-plugin-framework/providerserver"
	"github.com/hashicorp/terraform-plugin-go/tfprotov6"
)

// testAccPreCheck requires a usable API key for acceptance tests.
func testAccPreCheck(t *testing.T) {
	v := os.Getenv(testhelpers.EnvAPIKey)
	if v == "" {
		t.Fatalf("%s must be set for acceptance tests", testhelpers.EnvAPIKey)
	}
	if err := postman.ValidateAPIKey(v); err != nil {
		t.Fatalf("%s is not a valid Postman API key: %v", testhelpers.EnvAPIKey, err)
	}
	if strings.ContainsAny(v, " \t\r\n") {
		t.Fatalf("%s must not contain whitespace", testhelpers.EnvAPIKey)
	}
	if ws := testhelpers.TestAccWorkspaceID(); ws != "" && strings.ContainsAny(ws, " \t\r\n/") {
		t.Fatalf("%s must be a bare workspace id", testhelpers.EnvWorkspaceID)
	}
}

// Provider factory for acceptance tests
var testAccProtoV6ProviderFactories = map[string]func() (tfprotov6.ProviderServer, error){
	"postman": providerserver.NewProtocol6WithError(New("test")()),
}

// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"regexp"
	"testing"

	"github.com/devops-wiz/terraform-provider-postman/internal/provider/testhelpers"
	"github.com/hashicorp/terraform-plugin-testing/helper/acctest"
	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
	"github.com/hashicorp/terraform-plugin-testing/knownvalue"
	"github.com/hashicorp/terraform-plugin-testing/plancheck"
	"github.com/hashicorp/terraform-plugin-testing/statecheck"
	"github.com/hashicorp/terraform-plugin-testing/tfjsonpath"
)

func boolPtr(b bool) *bool { return &b }

func TestAccEnvironmentResource_basic(t *testing.T) {
	t.Parallel()
	rName := "postman_environment.test"

	t.Run("create environment with classified variables", func(t *testing.T) {
		t.Parallel()
		envName := acctest.RandomWithPrefix("tf-acc-environment")
		cfg := testhelpers.EnvironmentTmplCfg{
			Name:        envName,
			WorkspaceID: testhelpers.TestAccWorkspaceID(),
			Variables: []testhelpers.VariableTmplCfg{
				{Key: "base_url", Value: "https://staging.example.com"},
				{Key: "api_token", Value: "s3cr3t"},
			},
		}
		resource.Test(t, resource.TestCase{
			PreCheck:                 func() { testAccPreCheck(t) },
			ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
			Steps: []resource.TestStep{
				{
					Config: testhelpers.TestAccEnvironmentConfig(t, cfg),
					ConfigStateChecks: []statecheck.StateCheck{
						statecheck.ExpectKnownValue(rName, tfjsonpath.New("name"), knownvalue.StringExact(envName)),
						statecheck.ExpectKnownValue(rName, tfjsonpath.New("variables").AtSliceIndex(0).AtMapKey("type"), knownvalue.StringExact("default")),
						statecheck.ExpectKnownValue(rName, tfjsonpath.New("variables").AtSliceIndex(1).AtMapKey("type"), knownvalue.StringExact("secret")),
						statecheck.ExpectKnownValue(rName, tfjsonpath.New("variables").AtSliceIndex(1).AtMapKey("enabled"), knownvalue.Bool(true)),
					},
				},
				{
					ImportState:             true,
					ImportStateVerify:       true,
					ImportStateVerifyIgnore: []string{"workspace_id"},
					ResourceName:            rName,
				},
			},
		})
	})

	t.Run("create empty environment", func(t *testing.T) {
		t.Parallel()
		envName := acctest.RandomWithPrefix("tf-acc-environment")
		resource.Test(t, resource.TestCase{
			PreCheck:                 func() { testAccPreCheck(t) },
			ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
			Steps: []resource.TestStep{
				{
					Config: testhelpers.TestAccEnvironmentConfig(t, testhelpers.EnvironmentTmplCfg{Name: envName}),
					ConfigStateChecks: []statecheck.StateCheck{
						statecheck.ExpectKnownValue(rName, tfjsonpath.New("name"), knownvalue.StringExact(envName)),
						statecheck.ExpectKnownValue(rName, tfjsonpath.New("id"), knownvalue.NotNull()),
						statecheck.ExpectKnownValue(rName, tfjsonpath.New("variables"), knownvalue.Null()),
					},
				},
			},
		})
	})
}

func TestAccEnvironmentResource_update(t *testing.T) {
	t.Parallel()
	rName := "postman_environment.test"

	t.Run("rename, retype and drop variables in place", func(t *testing.T) {
		t.Parallel()
		envName := acctest.RandomWithPrefix("tf-acc-environment")
		initial := testhelpers.EnvironmentTmplCfg{
			Name: envName,
			Variables: []testhelpers.VariableTmplCfg{
				{Key: "region", Value: "eu"},
				{Key: "password", Value: "hunter2"},
			},
		}
		changed := testhelpers.EnvironmentTmplCfg{
			Name: envName + "-renamed",
			Variables: []testhelpers.VariableTmplCfg{
				{Key: "region", Value: "us", Type: "secret", Enabled: boolPtr(false)},
			},
		}
		resource.Test(t, resource.TestCase{
			PreCheck:                 func() { testAccPreCheck(t) },
			ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
			Steps: []resource.TestStep{
				{
					Config: testhelpers.TestAccEnvironmentConfig(t, initial),
					ConfigStateChecks: []statecheck.StateCheck{
						statecheck.ExpectKnownValue(rName, tfjsonpath.New("variables").AtSliceIndex(0).AtMapKey("type"), knownvalue.StringExact("default")),
					},
				},
				{
					Config: testhelpers.TestAccEnvironmentConfig(t, changed),
					ConfigPlanChecks: resource.ConfigPlanChecks{
						PreApply: []plancheck.PlanCheck{
							plancheck.ExpectResourceAction(rName, plancheck.ResourceActionUpdate),
						},
					},
					ConfigStateChecks: []statecheck.StateCheck{
						statecheck.ExpectKnownValue(rName, tfjsonpath.New("name"), knownvalue.StringExact(envName+"-renamed")),
						statecheck.ExpectKnownValue(rName, tfjsonpath.New("variables"), knownvalue.ListSizeExact(1)),
						statecheck.ExpectKnownValue(rName, tfjsonpath.New("variables").AtSliceIndex(0).AtMapKey("value"), knownvalue.StringExact("us")),
						statecheck.ExpectKnownValue(rName, tfjsonpath.New("variables").AtSliceIndex(0).AtMapKey("type"), knownvalue.StringExact("secret")),
						statecheck.ExpectKnownValue(rName, tfjsonpath.New("variables").AtSliceIndex(0).AtMapKey("enabled"), knownvalue.Bool(false)),
					},
				},
			},
		})
	})
}

func TestAccEnvironmentResource_negative(t *testing.T) {
	t.Parallel()

	t.Run("duplicate variable keys are rejected", func(t *testing.T) {
		t.Parallel()
		cfg := testhelpers.EnvironmentTmplCfg{
			Name: acctest.RandomWithPrefix("tf-acc-environment"),
			Variables: []testhelpers.VariableTmplCfg{
				{Key: "host", Value: "a"},
				{Key: "host", Value: "b"},
			},
		}
		resource.Test(t, resource.TestCase{
			PreCheck:                 func() { testAccPreCheck(t) },
			ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
			Steps: []resource.TestStep{
				{
					Config:      testhelpers.TestAccEnvironmentConfig(t, cfg),
					ExpectError: regexp.MustCompile(`Duplicate variable key`),
				},
			},
		})
	})

	t.Run("unknown variable type is rejected", func(t *testing.T) {
		t.Parallel()
		cfg := testhelpers.EnvironmentTmplCfg{
			Name:      acctest.RandomWithPrefix("tf-acc-environment"),
			Variables: []testhelpers.VariableTmplCfg{{Key: "host", Value: "a", Type: "any"}},
		}
		resource.Test(t, resource.TestCase{
			PreCheck:                 func() { testAccPreCheck(t) },
			ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
			Steps: []resource.TestStep{
				{
					Config:      testhelpers.TestAccEnvironmentConfig(t, cfg),
					ExpectError: regexp.MustCompile(`Invalid Variable Type`),
				},
			},
		})
	})

	t.Run("import of a missing environment fails", func(t *testing.T) {
		t.Parallel()
		resource.Test(t, resource.TestCase{
			PreCheck:                 func() { testAccPreCheck(t) },
			ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
			Steps: []resource.TestStep{
				{
					Config:        testhelpers.TestAccEnvironmentConfig(t, testhelpers.EnvironmentTmplCfg{Name: "unused"}),
					ResourceName:  "postman_environment.test",
					ImportState:   true,
					ImportStateId: "00000000-0000-0000-0000-000000000000",
					ExpectError:   regexp.MustCompile(`(?s)Error: read imported resource failed`),
				},
			},
		})
	})
}

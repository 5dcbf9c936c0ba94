// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

// Instantiates the generic runners with every supported resource and data
// source type. It only needs to compile.

import (
	"github.com/devops-wiz/terraform-provider-postman/internal/postman"
)

// CRUDRunner instantiations (state, payload, api)
var (
	_ CRUDRunner[environmentResourceModel, *environmentPayload, *postman.Environment]
	_ CRUDRunner[environmentVariableResourceModel, *environmentVariablePayload, *postman.EnvironmentVariable]
	_ CRUDRunner[collectionResourceModel, *collectionPayload, *postman.Collection]
)

// ListHooks instantiations (api list item, out model)
var (
	_ ListHooks[*postman.EnvironmentSummary, environmentSummaryModel]
	_ ListHooks[*postman.CollectionSummary, collectionSummaryModel]
)

// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package testhelpers

import (
	"path/filepath"
)

const (
	// TmplPath defines the base path for template files.
	TmplPath = "./testdata/templates"
	// EnvironmentTmpl is the filename for the postman_environment Terraform template.
	EnvironmentTmpl = "environment.tf.tmpl"
	// EnvironmentVariableTmpl is the filename for the postman_environment_variable Terraform template.
	EnvironmentVariableTmpl = "environment_variable.tf.tmpl"
	// CollectionTmpl is the filename for the postman_collection Terraform template.
	CollectionTmpl = "collection.tf.tmpl"
	// DataEnvironmentsTmpl is the filename for the data.postman_environments Terraform template.
	DataEnvironmentsTmpl = "data.environments.tf.tmpl"
	// DataCollectionsTmpl is the filename for the data.postman_collections Terraform template.
	DataCollectionsTmpl = "data.collections.tf.tmpl"
)

var (
	// EnvironmentTmplPath is the environment template under TmplPath.
	EnvironmentTmplPath = filepath.Join(TmplPath, EnvironmentTmpl)
	// EnvironmentVariableTmplPath is the environment variable template under TmplPath.
	EnvironmentVariableTmplPath = filepath.Join(TmplPath, EnvironmentVariableTmpl)
	// CollectionTmplPath is the collection template under TmplPath.
	CollectionTmplPath = filepath.Join(TmplPath, CollectionTmpl)

	// DataEnvironmentsTmplPath is the environments data source template under TmplPath.
	DataEnvironmentsTmplPath = filepath.Join(TmplPath, DataEnvironmentsTmpl)
	// DataCollectionsTmplPath is the collections data source template under TmplPath.
	DataCollectionsTmplPath = filepath.Join(TmplPath, DataCollectionsTmpl)
)

// Environment variables read by acceptance tests.
const (
	EnvAPIKey      = "POSTMAN_API_KEY"
	EnvWorkspaceID = "POSTMAN_WORKSPACE_ID"
)

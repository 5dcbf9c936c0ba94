// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package testhelpers

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"text/template"

	"github.com/devops-wiz/terraform-provider-postman/internal/postman"
)

// TemplatePath returns the path to a template file under testdata/templates.
func TemplatePath(name string) string {
	return filepath.Join("testdata", "templates", name)
}

// MustReadTemplate reads a template by name or fails the test.
func MustReadTemplate(t *testing.T, name string) string {
	t.Helper()
	p := TemplatePath(name)
	absPath, _ := filepath.Abs(p)
	b, err := os.ReadFile(p)
	if err != nil {
		wd, _ := os.Getwd()
		dir := filepath.Dir(p)
		var candidates []string
		if entries, dirErr := os.ReadDir(dir); dirErr == nil {
			for _, e := range entries {
				if !e.IsDir() {
					candidates = append(candidates, e.Name())
				}
			}
		}
		t.Fatalf(
			"failed to read template %q\n  path: %s\n  abs:  %s\n  cwd:  %s\n  dir:  %s\n  available templates: %v\n  error: %v",
			name, p, absPath, wd, dir, candidates, err,
		)
	}
	return string(b)
}

// BuildLargeBody creates a large JSON-like string embedding various secrets
// to validate both truncation and redaction. Size target ~2MB.
func BuildLargeBody() string {
	var b strings.Builder
	chunks := 2 << 20 / 64
	for i := 0; i < chunks; i++ {
		b.WriteString(`{"x-api-key":"PMAK-TOPSECRET`)
		b.WriteString(strconv.Itoa(i))
		b.WriteString(`","access_token":"AAA`)
		b.WriteString(strconv.Itoa(i))
		b.WriteString(`","password":"PWD`)
		b.WriteString(strconv.Itoa(i))
		b.WriteString(`"}`)
	}
	return b.String()
}

// MkAPIError builds a *postman.APIError the way the client classifies an HTTP failure.
func MkAPIError(code int, kind postman.ErrorKind, hdr http.Header, body string) *postman.APIError {
	e := &postman.APIError{
		Kind:       kind,
		StatusCode: code,
		Message:    http.StatusText(code),
		Header:     http.Header{},
	}
	if body != "" {
		e.Body = []byte(body)
	}
	for k, v := range hdr {
		e.Header[k] = v
	}
	return e
}

// render executes a named template file with data.
func render(t *testing.T, name, path string, data any) string {
	t.Helper()
	tmpl, err := template.New(name).ParseFiles(path)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err = tmpl.Execute(&out, data); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

// TestAccEnvironmentConfig renders a postman_environment "test" resource.
func TestAccEnvironmentConfig(t *testing.T, cfg EnvironmentTmplCfg) string {
	t.Helper()
	return render(t, EnvironmentTmpl, EnvironmentTmplPath, cfg)
}

// TestAccEnvironmentVariableConfig renders an environment named cfg.EnvironmentName
// plus a postman_environment_variable "test" inside it.
func TestAccEnvironmentVariableConfig(t *testing.T, cfg EnvironmentVariableTmplCfg) string {
	t.Helper()
	return render(t, EnvironmentVariableTmpl, EnvironmentVariableTmplPath, cfg)
}

// TestAccCollectionConfig renders a postman_collection "test" resource.
func TestAccCollectionConfig(t *testing.T, cfg CollectionTmplCfg) string {
	t.Helper()
	return render(t, CollectionTmpl, CollectionTmplPath, cfg)
}

// TestAccEnvironmentsDataSourceConfig renders the environment resource with a
// postman_environments data source that depends on it.
func TestAccEnvironmentsDataSourceConfig(t *testing.T, env EnvironmentTmplCfg, dataName string, names ...string) string {
	t.Helper()
	return render(t, DataEnvironmentsTmpl, DataEnvironmentsTmplPath, DataListCfg{
		Resources:   []string{TestAccEnvironmentConfig(t, env)},
		DataName:    dataName,
		WorkspaceID: env.WorkspaceID,
		Names:       names,
	})
}

// TestAccCollectionsDataSourceConfig is the collection counterpart of TestAccEnvironmentsDataSourceConfig.
func TestAccCollectionsDataSourceConfig(t *testing.T, col CollectionTmplCfg, dataName string, names ...string) string {
	t.Helper()
	return render(t, DataCollectionsTmpl, DataCollectionsTmplPath, DataListCfg{
		Resources:   []string{TestAccCollectionConfig(t, col)},
		DataName:    dataName,
		WorkspaceID: col.WorkspaceID,
		Names:       names,
	})
}

// TestAccWorkspaceID returns the workspace acceptance tests create resources in, if any.
func TestAccWorkspaceID() string {
	return strings.TrimSpace(os.Getenv(EnvWorkspaceID))
}

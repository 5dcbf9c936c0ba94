// Package testhelpers provides shared testing utilities used across unit and
// acceptance tests.
//
// Intended use:
//   - Unit tests: typed API errors and large redaction fixtures.
//   - Acceptance tests: HCL config builders rendered from testdata/templates
//     and the environment variables the suite reads.
//
// Conventions:
//   - Keep dependencies minimal and avoid importing production-only paths.
//   - Never leak secrets in logs, errors, or golden files; always redact.
//
// This package is for test code and is not part of the provider's public API.
package testhelpers

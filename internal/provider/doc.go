// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

// Package provider implements the Terraform Provider for Postman.
//
// Highlights:
//   - Auth: a Postman API key (PMAK-...) from the api_key attribute or POSTMAN_API_KEY.
//   - Secrets: variables whose key names a credential are stored with type "secret" unless the type is set explicitly.
//   - Timeouts & retries: configurable HTTP timeout and capped exponential backoff; honors Retry-After.
//   - Concurrency: writes to one environment are serialized so parallel variable resources do not drop each other's keys.
//   - Deterministic outputs: list data sources are keyed by uid.
//
// Further reading (canonical docs):
//   - Configuration & env vars: docs/index.md#configuration
//   - Retries, timeouts, and rate limits: docs/index.md#provider-retries-and-timeouts
//   - Examples: docs/ and examples/
package provider

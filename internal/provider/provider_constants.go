// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

// Centralized attribute names used in provider configuration schema and validation
const (
	attrAPIKey                 = "api_key"
	attrBaseURL                = "base_url"
	attrWorkspaceID            = "workspace_id"
	attrHTTPTimeoutSeconds     = "http_timeout_seconds"
	attrRetryOn4295xx          = "retry_on_429_5xx"
	attrRetryMaxAttempts       = "retry_max_attempts"
	attrRetryInitialBackoff    = "retry_initial_backoff_ms"
	attrRetryMaxBackoff        = "retry_max_backoff_ms"
	attrRetryBackoffMultiplier = "retry_backoff_multiplier"
	attrOperationTimeouts      = "operation_timeouts"
)

// Environment variables read when the matching attribute is not set in HCL.
const (
	envAPIKey         = "POSTMAN_API_KEY"
	envBaseURL        = "POSTMAN_BASE_URL"
	envWorkspaceID    = "POSTMAN_WORKSPACE_ID"
	envTimeout        = "POSTMAN_TIMEOUT"
	envMaxRetries     = "POSTMAN_MAX_RETRIES"
	envRateLimitDelay = "POSTMAN_RATE_LIMIT_DELAY"
)

// Centralized provider defaults
const (
	defaultHTTPTimeoutSeconds     = 30
	defaultRetryOn4295xx          = true
	defaultRetryMaxAttempts       = 3
	defaultRetryInitialBackoffMs  = 1000
	defaultRetryMaxBackoffMs      = 60000
	defaultRetryBackoffMultiplier = 2.0
)

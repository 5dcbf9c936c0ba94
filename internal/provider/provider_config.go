// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/devops-wiz/terraform-provider-postman/internal/postman"
)

// configuration derivation (unified) to avoid duplicated parsing across sections
func deriveResolvedConfig(data PostmanProviderModel) resolvedConfig {
	// Base
	baseURL := readStringDefault(data.BaseURL, envBaseURL, postman.DefaultBaseURL)
	workspaceID := strings.TrimSpace(readString(data.WorkspaceID, envWorkspaceID))

	// Auth
	apiKey := strings.TrimSpace(readString(data.APIKey, envAPIKey))

	// HTTP
	httpTimeoutSeconds := readInt64EnvDefault(data.HTTPTimeoutSeconds, envTimeout, defaultHTTPTimeoutSeconds)

	// Retry
	retryOn4295xx := readBoolDefault(data.RetryOn4295xx, defaultRetryOn4295xx)
	retryMaxAttempts := readInt64EnvDefault(data.RetryMaxAttempts, envMaxRetries, defaultRetryMaxAttempts)
	retryInitialBackoffMs := readInt64Default(data.RetryInitialBackoffMs, defaultRetryInitialBackoffMs)
	retryMaxBackoffMs := defaultRetryMaxBackoffMs
	if !data.RetryMaxBackoffMs.IsNull() && !data.RetryMaxBackoffMs.IsUnknown() {
		retryMaxBackoffMs = int(data.RetryMaxBackoffMs.ValueInt64())
	} else {
		// the env var is expressed in seconds
		retryMaxBackoffMs = envInt(envRateLimitDelay, defaultRetryMaxBackoffMs, 1000)
	}
	retryBackoffMultiplier := readFloat64Default(data.RetryBackoffMultiplier, defaultRetryBackoffMultiplier)

	return resolvedConfig{
		apiKey:                 apiKey,
		baseURL:                baseURL,
		workspaceID:            workspaceID,
		httpTimeoutSeconds:     httpTimeoutSeconds,
		retryOn4295xx:          retryOn4295xx,
		retryMaxAttempts:       retryMaxAttempts,
		retryInitialBackoffMs:  retryInitialBackoffMs,
		retryMaxBackoffMs:      retryMaxBackoffMs,
		retryBackoffMultiplier: retryBackoffMultiplier,
	}
}

// validation per-section
func validateBase(rc resolvedConfig) []validationErr {
	u, err := url.Parse(rc.baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return []validationErr{{attr: attrBaseURL, summary: "Invalid Base URL Configuration.", detail: fmt.Sprintf("base_url must be an absolute http(s) URL such as %s; got %q.", postman.DefaultBaseURL, rc.baseURL)}}
	}
	if u.User != nil {
		return []validationErr{{attr: attrBaseURL, summary: "Invalid Base URL Configuration.", detail: "base_url must not embed credentials; use api_key instead."}}
	}
	return nil
}

func validateAuth(rc resolvedConfig) []validationErr {
	if rc.apiKey == "" {
		return []validationErr{{attr: attrAPIKey, summary: "Missing API Key Configuration.", detail: "Provide 'api_key' or set the " + envAPIKey + " environment variable."}}
	}
	if !strings.HasPrefix(rc.apiKey, postman.APIKeyPrefix) {
		return []validationErr{{attr: attrAPIKey, summary: "Invalid API Key Configuration.", detail: fmt.Sprintf("api_key must start with %q. Generate a key at https://web.postman.co/settings/me/api-keys.", postman.APIKeyPrefix)}}
	}
	return nil
}

func validateHTTP(rc resolvedConfig) []validationErr {
	if rc.httpTimeoutSeconds < 1 || rc.httpTimeoutSeconds > 600 {
		return []validationErr{{attr: attrHTTPTimeoutSeconds, summary: "Invalid HTTP Timeout Configuration.", detail: fmt.Sprintf("http_timeout_seconds must be between 1 and 600 seconds; got %d", rc.httpTimeoutSeconds)}}
	}
	return nil
}

func validateRetry(rc resolvedConfig) []validationErr {
	if !rc.retryOn4295xx {
		return nil
	}
	var errs []validationErr
	if rc.retryMaxAttempts < 1 || rc.retryMaxAttempts > 10 {
		errs = append(errs, validationErr{attr: attrRetryMaxAttempts, summary: "Invalid Retry Attempts Configuration.", detail: fmt.Sprintf("retry_max_attempts must be between 1 and 10; got %d", rc.retryMaxAttempts)})
	}
	if rc.retryInitialBackoffMs < 100 || rc.retryInitialBackoffMs > 600000 {
		errs = append(errs, validationErr{attr: attrRetryInitialBackoff, summary: "Invalid Retry Backoff Configuration.", detail: fmt.Sprintf("retry_initial_backoff_ms must be between 100 and 600000 milliseconds; got %d", rc.retryInitialBackoffMs)})
	}
	if rc.retryMaxBackoffMs < 100 || rc.retryMaxBackoffMs > 600000 {
		errs = append(errs, validationErr{attr: attrRetryMaxBackoff, summary: "Invalid Retry Backoff Configuration.", detail: fmt.Sprintf("retry_max_backoff_ms must be between 100 and 600000 milliseconds; got %d", rc.retryMaxBackoffMs)})
	}
	if rc.retryInitialBackoffMs > rc.retryMaxBackoffMs {
		errs = append(errs, validationErr{attr: attrRetryInitialBackoff, summary: "Invalid Retry Backoff Configuration.", detail: "retry_initial_backoff_ms must be less than or equal to retry_max_backoff_ms."})
	}
	if rc.retryBackoffMultiplier < 1 || rc.retryBackoffMultiplier > 10 {
		errs = append(errs, validationErr{attr: attrRetryBackoffMultiplier, summary: "Invalid Retry Backoff Configuration.", detail: fmt.Sprintf("retry_backoff_multiplier must be between 1 and 10; got %g", rc.retryBackoffMultiplier)})
	}
	return errs
}

func validateResolvedConfig(rc resolvedConfig) []validationErr {
	var all []validationErr
	all = append(all, validateBase(rc)...)
	all = append(all, validateAuth(rc)...)
	if len(all) == 0 { // if base or auth fails, skip noisy follow-ups
		all = append(all, validateHTTP(rc)...)
		all = append(all, validateRetry(rc)...)
	}

	// Before returning, sanitize any secrets from messages to prevent leakage.
	for i := range all {
		all[i] = sanitizeValidationError(all[i], rc)
	}
	return all
}

// retryPolicy converts the resolved retry settings into the executor policy.
// Disabling retries keeps a single attempt.
func (rc resolvedConfig) retryPolicy() postman.RetryPolicy {
	if !rc.retryOn4295xx {
		return postman.RetryPolicy{MaxAttempts: 1, Multiplier: 1}
	}
	return postman.RetryPolicy{
		MaxAttempts: rc.retryMaxAttempts,
		BaseDelay:   time.Duration(rc.retryInitialBackoffMs) * time.Millisecond,
		Multiplier:  rc.retryBackoffMultiplier,
		MaxDelay:    time.Duration(rc.retryMaxBackoffMs) * time.Millisecond,
	}
}

func (rc resolvedConfig) httpTimeout() time.Duration {
	return time.Duration(rc.httpTimeoutSeconds) * time.Second
}

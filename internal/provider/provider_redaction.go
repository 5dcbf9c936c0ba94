// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package provider

import "strings"

// sanitizeEmail masks an email to avoid PII leakage in logs, keeping the first
// character of the local-part and the domain (e.g., "a****@example.com").
func sanitizeEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		// Not a standard email; return a generic token to avoid echoing the raw value.
		return "[REDACTED_EMAIL]"
	}
	return email[:1] + "****@" + email[at+1:]
}

// redactSecretValue replaces a sensitive value with a stable token.
// If the value is empty, it returns the empty string to avoid adding tokens where not needed.
func redactSecretValue(v string) string {
	if v == "" {
		return ""
	}
	return "[REDACTED]"
}

// sanitizeValidationError returns a copy of the given validation error with secrets redacted.
func sanitizeValidationError(e validationErr, rc resolvedConfig) validationErr {
	if rc.apiKey == "" {
		e.summary = RedactSecrets(e.summary)
		e.detail = RedactSecrets(e.detail)
		return e
	}
	red := redactSecretValue(rc.apiKey)
	e.summary = RedactSecrets(strings.ReplaceAll(e.summary, rc.apiKey, red))
	e.detail = RedactSecrets(strings.ReplaceAll(e.detail, rc.apiKey, red))
	return e
}

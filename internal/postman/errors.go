// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package postman

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// ErrorKind identifies the class of a failed Postman API call.
type ErrorKind int

const (
	KindServer ErrorKind = iota
	KindAuthentication
	KindPermission
	KindResourceNotFound
	KindValidation
	KindRateLimit
	KindNetwork
	KindTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindPermission:
		return "permission"
	case KindResourceNotFound:
		return "resource_not_found"
	case KindValidation:
		return "validation"
	case KindRateLimit:
		return "rate_limit"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	default:
		return "server"
	}
}

// Resolution hints surfaced with every error of the matching kind.
const (
	HintAuthentication   = "Verify the API key format and expiry: keys start with 'PMAK-' and can be regenerated at https://web.postman.co/settings/me/api-keys."
	HintPermission       = "Check workspace and resource permissions: your role may not allow this operation, or the key belongs to a user without access to the workspace."
	HintResourceNotFound = "The resource may be deleted, misidentified, or in a different workspace; verify the ID and workspace."
	HintValidation       = "Check the request payload; the API rejected one or more fields."
	HintServer           = "This is usually temporary; retry shortly and check the provider status page at https://status.postman.com."
	HintServerGeneric    = "The API returned an unexpected status; inspect the response body for details."
	HintNetwork          = "Check network connectivity, proxy and firewall settings, and DNS resolution for the API host."
	HintTimeout          = "The request timed out; increase the HTTP timeout or retry later when the API is less busy."
	HintCanceled         = "The operation was cancelled, usually because Terraform was interrupted; run the command again."
	hintRateLimitUnknown = "Rate limit exceeded; wait a few moments before retrying and reduce request frequency."
)

// APIError is the single typed error produced for a failed call. Exactly one
// Kind is set per failure.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Hint       string
	// RetryAfter is the server-supplied wait from a Retry-After header.
	RetryAfter time.Duration
	// HasRetryAfter is set when the response carried a valid Retry-After,
	// which distinguishes "Retry-After: 0" from an absent header.
	HasRetryAfter bool
	// Details lists field level validation messages when the API provided them.
	Details []string
	Body    []byte
	Header  http.Header
	Err     error
}

func (e *APIError) Error() string {
	var b strings.Builder
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, "[%d] ", e.StatusCode)
	}
	b.WriteString(e.Message)
	for _, d := range e.Details {
		b.WriteString("\n  - ")
		b.WriteString(d)
	}
	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
	}
	return b.String()
}

func (e *APIError) Unwrap() error { return e.Err }

// Retryable reports whether another attempt may succeed without caller intervention.
// Generic server errors for statuses below 500 (e.g. 409) are terminal.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case KindRateLimit, KindNetwork, KindTimeout:
		return true
	case KindServer:
		return e.StatusCode >= 500 || e.StatusCode == 0
	default:
		return false
	}
}

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsNotFound reports whether err is a ResourceNotFound error.
func IsNotFound(err error) bool { return IsKind(err, KindResourceNotFound) }

// errorBody accepts both {"message": ...} and {"error": {"name","message","details"}}.
type errorBody struct {
	Message string `mapstructure:"message"`
	Error   struct {
		Name    string        `mapstructure:"name"`
		Message string        `mapstructure:"message"`
		Details []interface{} `mapstructure:"details"`
	} `mapstructure:"error"`
}

// parseErrorBody extracts the message and validation details from a JSON error body.
func parseErrorBody(body []byte) (string, []string) {
	if len(body) == 0 {
		return "", nil
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", nil
	}
	var eb errorBody
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{WeaklyTypedInput: true, Result: &eb})
	if err != nil {
		return "", nil
	}
	// a string "error" field does not fit the struct; fall back to it below
	_ = dec.Decode(raw)

	msg := eb.Message
	if msg == "" {
		msg = eb.Error.Message
	}
	if msg == "" {
		if s, ok := raw["error"].(string); ok {
			msg = s
		}
	}
	var details []string
	for _, d := range eb.Error.Details {
		switch v := d.(type) {
		case string:
			details = append(details, v)
		case map[string]interface{}:
			if m, ok := v["message"].(string); ok && m != "" {
				details = append(details, m)
				continue
			}
			details = append(details, fmt.Sprint(v))
		default:
			details = append(details, fmt.Sprint(v))
		}
	}
	return msg, details
}

// Classify maps the outcome of one attempt to an *APIError. It is a pure
// function of the transport error and the response status, body and headers.
// A nil resp with a nil transportErr is reported as a network failure.
func Classify(resp *Response, transportErr error) *APIError {
	if transportErr != nil || resp == nil {
		return classifyTransport(transportErr)
	}

	msg, details := parseErrorBody(resp.Body)
	e := &APIError{
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
		Header:     resp.Header,
	}
	switch code := resp.StatusCode; {
	case code == http.StatusBadRequest:
		e.Kind, e.Hint, e.Details = KindValidation, HintValidation, details
		e.Message = orDefault(msg, "Request validation failed.")
	case code == http.StatusUnauthorized:
		e.Kind, e.Hint = KindAuthentication, HintAuthentication
		e.Message = orDefault(msg, "Authentication failed; the API key is invalid or missing.")
	case code == http.StatusForbidden:
		e.Kind, e.Hint = KindPermission, HintPermission
		e.Message = orDefault(msg, "You do not have permission to perform this operation.")
	case code == http.StatusNotFound:
		e.Kind, e.Hint = KindResourceNotFound, HintResourceNotFound
		e.Message = orDefault(msg, "The requested resource was not found.")
	case code == http.StatusTooManyRequests:
		e.Kind = KindRateLimit
		e.RetryAfter, e.HasRetryAfter = ParseRetryAfter(resp.Header)
		e.Hint = rateLimitHint(e.RetryAfter, e.HasRetryAfter)
		e.Message = orDefault(msg, "API rate limit exceeded.")
	case code >= 500:
		e.Kind, e.Hint = KindServer, HintServer
		e.RetryAfter, e.HasRetryAfter = ParseRetryAfter(resp.Header)
		e.Message = orDefault(msg, "Postman API server error.")
	default:
		e.Kind, e.Hint = KindServer, HintServerGeneric
		e.Message = orDefault(msg, fmt.Sprintf("Unexpected HTTP status %d.", code))
	}
	return e
}

func classifyTransport(err error) *APIError {
	if err == nil {
		return &APIError{Kind: KindNetwork, Hint: HintNetwork, Message: "No response received from the API."}
	}
	if errors.Is(err, context.Canceled) {
		return &APIError{Kind: KindNetwork, Hint: HintCanceled, Message: "API request was cancelled before it completed: " + err.Error(), Err: err}
	}
	if isTimeout(err) {
		return &APIError{Kind: KindTimeout, Hint: HintTimeout, Message: "API request timed out: " + err.Error(), Err: err}
	}
	return &APIError{Kind: KindNetwork, Hint: HintNetwork, Message: "Failed to connect to the API: " + err.Error(), Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

func rateLimitHint(retryAfter time.Duration, known bool) string {
	if !known {
		return hintRateLimitUnknown
	}
	if retryAfter <= 0 {
		return "Rate limit exceeded; the API allows retrying immediately."
	}
	secs := int64((retryAfter + time.Second - 1) / time.Second)
	return fmt.Sprintf("Rate limit exceeded; retry after %d seconds.", secs)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

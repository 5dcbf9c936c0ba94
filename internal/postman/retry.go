// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package postman

import (
	"context"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Retry defaults.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
	DefaultMultiplier  = 2.0
	// MaxRetryAfter bounds a server-supplied Retry-After wait.
	MaxRetryAfter = 5 * time.Minute
)

// Response is the raw outcome of one HTTP call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Operation performs exactly one HTTP call. It may be invoked up to
// RetryPolicy.MaxAttempts times, so any side effects must tolerate repetition.
type Operation func(ctx context.Context) (*Response, error)

// RetryPolicy configures an Executor. It is a value type; an Executor keeps
// its own copy, so a policy can be shared freely between goroutines.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts including the first (>= 1).
	MaxAttempts int
	// BaseDelay is the wait before the first retry.
	BaseDelay time.Duration
	// Multiplier grows the wait for each further retry (>= 1).
	Multiplier float64
	// MaxDelay caps the computed wait. Zero means uncapped. A server-supplied
	// Retry-After is bounded by MaxRetryAfter instead.
	MaxDelay time.Duration
	// Jitter in [0,1] spreads the computed wait uniformly within [1-j, 1+j].
	Jitter float64
}

// DefaultRetryPolicy returns 3 attempts with 1s exponential backoff doubling per retry.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		Multiplier:  DefaultMultiplier,
	}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay < 0 {
		p.BaseDelay = 0
	}
	if p.Multiplier < 1 {
		p.Multiplier = 1
	}
	if p.MaxDelay < 0 {
		p.MaxDelay = 0
	}
	if p.Jitter < 0 {
		p.Jitter = 0
	}
	if p.Jitter > 1 {
		p.Jitter = 1
	}
	return p
}

// Delay returns the computed wait before attempt n (1-based). The first
// attempt never waits; attempt n >= 2 waits BaseDelay * Multiplier^(n-2).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	p = p.normalized()
	if attempt < 2 {
		return 0
	}
	f := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt-2))
	if p.MaxDelay > 0 && f > float64(p.MaxDelay) {
		f = float64(p.MaxDelay)
	}
	if p.Jitter > 0 && f > 0 {
		f *= 1 - p.Jitter + (2*p.Jitter)*rand.Float64()
		if p.MaxDelay > 0 && f > float64(p.MaxDelay) {
			f = float64(p.MaxDelay)
		}
	}
	return durationOf(f)
}

// durationOf converts nanoseconds to a Duration, saturating at the largest
// representable value. float64(math.MaxInt64) rounds up to 2^63, so the
// comparison must be >= to keep the conversion in range.
func durationOf(f float64) time.Duration {
	if f >= float64(math.MaxInt64) || math.IsInf(f, 1) {
		return time.Duration(math.MaxInt64)
	}
	if f <= 0 || math.IsNaN(f) {
		return 0
	}
	return time.Duration(f)
}

// Outcome of a single attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeRetryableFailure
	OutcomeTerminalFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRetryableFailure:
		return "retryable-failure"
	default:
		return "terminal-failure"
	}
}

// RequestAttempt describes one try of an Operation.
type RequestAttempt struct {
	Number  int
	Wait    time.Duration
	Outcome Outcome
	Err     *APIError
}

// Executor runs an Operation with bounded retries. It holds no mutable state
// and is safe for concurrent use.
type Executor struct {
	policy    RetryPolicy
	sleep     func(ctx context.Context, d time.Duration) error
	onAttempt func(RequestAttempt)
}

// ExecutorOption customizes an Executor.
type ExecutorOption func(*Executor)

// WithSleep replaces the wait between attempts. The function must return
// ctx.Err() promptly when ctx is done.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) ExecutorOption {
	return func(e *Executor) {
		if fn != nil {
			e.sleep = fn
		}
	}
}

// WithAttemptObserver registers a callback invoked after every attempt.
func WithAttemptObserver(fn func(RequestAttempt)) ExecutorOption {
	return func(e *Executor) { e.onAttempt = fn }
}

// NewExecutor builds an Executor for the given policy.
func NewExecutor(policy RetryPolicy, opts ...ExecutorOption) *Executor {
	e := &Executor{policy: policy.normalized(), sleep: sleepContext}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns a copy of the executor's policy.
func (e *Executor) Policy() RetryPolicy { return e.policy }

// Execute invokes op until it succeeds (status < 400), fails terminally, the
// attempt budget is spent, or ctx is done. On failure the last classified
// *APIError is returned together with the last response received, if any.
// A zero Executor behaves like NewExecutor(RetryPolicy{}).
func (e *Executor) Execute(ctx context.Context, op Operation) (*Response, error) {
	policy := e.policy.normalized()
	sleep := e.sleep
	if sleep == nil {
		sleep = sleepContext
	}
	var (
		lastResp    *Response
		lastErr     *APIError
		override    time.Duration
		hasOverride bool
	)
	for n := 1; n <= policy.MaxAttempts; n++ {
		var wait time.Duration
		if n > 1 {
			wait = policy.Delay(n)
			if hasOverride {
				wait = retryAfterWait(ctx, override)
			}
			tflog.Warn(ctx, "retrying Postman API request", map[string]interface{}{
				"attempt":    n,
				"wait":       wait.String(),
				"error_kind": lastErr.Kind.String(),
				"status":     lastErr.StatusCode,
			})
			if err := sleep(ctx, wait); err != nil {
				return lastResp, canceled(lastErr, err)
			}
		}
		if err := ctx.Err(); err != nil {
			return lastResp, canceled(lastErr, err)
		}

		resp, err := op(ctx)
		if err == nil && resp != nil && resp.StatusCode < 400 {
			e.observe(RequestAttempt{Number: n, Wait: wait, Outcome: OutcomeSuccess})
			return resp, nil
		}

		apiErr := Classify(resp, err)
		if resp != nil {
			lastResp = resp
		}
		lastErr = apiErr

		// caller cancellation is never retried
		if err != nil && ctx.Err() != nil {
			e.observe(RequestAttempt{Number: n, Wait: wait, Outcome: OutcomeTerminalFailure, Err: apiErr})
			return lastResp, apiErr
		}
		if !apiErr.Retryable() {
			e.observe(RequestAttempt{Number: n, Wait: wait, Outcome: OutcomeTerminalFailure, Err: apiErr})
			tflog.Debug(ctx, "Postman API request failed with non-retryable error", map[string]interface{}{
				"attempt":    n,
				"error_kind": apiErr.Kind.String(),
				"status":     apiErr.StatusCode,
			})
			return lastResp, apiErr
		}
		e.observe(RequestAttempt{Number: n, Wait: wait, Outcome: OutcomeRetryableFailure, Err: apiErr})
		override, hasOverride = apiErr.RetryAfter, apiErr.HasRetryAfter
	}

	tflog.Error(ctx, "Postman API request failed after exhausting retries", map[string]interface{}{
		"attempts":   policy.MaxAttempts,
		"error_kind": lastErr.Kind.String(),
		"status":     lastErr.StatusCode,
	})
	return lastResp, lastErr
}

func (e *Executor) observe(a RequestAttempt) {
	if e.onAttempt != nil {
		e.onAttempt(a)
	}
}

// canceled returns the last classified error, rewrapped so it unwraps to the
// context error that stopped the retry loop.
func canceled(last *APIError, ctxErr error) *APIError {
	if last == nil {
		return classifyTransport(ctxErr)
	}
	cp := *last
	cp.Err = ctxErr
	return &cp
}

// retryAfterWait bounds a server-supplied wait by MaxRetryAfter.
func retryAfterWait(ctx context.Context, d time.Duration) time.Duration {
	if d <= MaxRetryAfter {
		return d
	}
	tflog.Warn(ctx, "Postman API Retry-After exceeds the allowed wait; using the maximum instead", map[string]interface{}{
		"retry_after": d.String(),
		"max_wait":    MaxRetryAfter.String(),
	})
	return MaxRetryAfter
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ParseRetryAfter returns the server-specified delay from the Retry-After
// header, in either delay-seconds or HTTP-date form. ok is false when the
// header is absent or invalid. An explicit "0" or a date in the past yields
// (0, true), meaning retry immediately.
func ParseRetryAfter(h http.Header) (d time.Duration, ok bool) {
	if h == nil {
		return 0, false
	}
	ra := strings.TrimSpace(h.Get("Retry-After"))
	if ra == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(ra, 10, 64); err == nil {
		if n < 0 {
			return 0, false
		}
		if n > int64(math.MaxInt64/int64(time.Second)) {
			return time.Duration(math.MaxInt64), true
		}
		return time.Duration(n) * time.Second, true
	}
	if t, err := http.ParseTime(ra); err == nil {
		if wait := time.Until(t); wait > 0 {
			return wait, true
		}
		return 0, true
	}
	return 0, false
}

// Package apperr defines the error taxonomy collectors, the orchestrator,
// and the store communicate across component boundaries with. Collectors
// never panic or return bare errors for expected failure modes — they
// return one of these kinds wrapped with context, so the orchestrator can
// decide retry-vs-escalate without string matching.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for retry and reporting purposes. It implements
// error so it can be used as the target in errors.Is(err, apperr.Transient).
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	// Transient is recoverable by the orchestrator's retry/backoff loop:
	// network errors, timeouts, provider 5xx, provider rate-limit.
	Transient Kind = "unavailable-transient"

	// Permanent means retrying will not help: unknown team, provider
	// schema mismatch, a 4xx that isn't a rate limit. Surfaced in the
	// refresh report; the last good raw value is retained.
	Permanent Kind = "unavailable-permanent"

	// Invalid means the provider returned a value outside its admissible
	// range (e.g. a negative squad value). Treated as Permanent by the
	// orchestrator but reported under its own kind for diagnostics.
	Invalid Kind = "invalid"

	// Storage is a Data Store write/read failure. Retried within the
	// orchestrator's budget; if unrecoverable within the cycle, the
	// affected scope is marked failed and derived values are not
	// recomputed for it.
	Storage Kind = "storage-failure"

	// Configuration is fatal at startup: weight-sum invariant violated,
	// unknown parameter name, malformed odds bounds. Refresh refuses to
	// run.
	Configuration Kind = "configuration-error"

	// Internal marks a logic invariant violation (e.g. the normalizer
	// received a parameter it never expected). Always a bug.
	Internal Kind = "internal"
)

// Error is the typed error value collectors and the store return.
type Error struct {
	Kind Kind
	Op   string // short operation name, e.g. "collector.elo"
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is supports errors.Is(err, apperr.Transient) style checks by comparing
// Kind, in addition to the usual *Error identity comparison.
func (e *Error) Is(target error) bool {
	if k, ok := target.(Kind); ok {
		return e.Kind == k
	}
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New wraps err under the given Kind and operation name.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf is New with a formatted message instead of a wrapped error.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the Kind carried by err, or Internal if err does not carry
// one (a bug: every error that crosses a collector/store boundary must be
// classified).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Retryable reports whether the orchestrator should retry this error.
func Retryable(err error) bool {
	return KindOf(err) == Transient || KindOf(err) == Storage
}

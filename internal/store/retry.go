package store

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	pkgerrors "caseflow/pkg/errors"
)

// RetryPolicy bounds the exponential backoff applied to case upserts and
// match-group posts. Jitter is disabled so retry timing stays deterministic.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
}

// DefaultRetryPolicy matches the configured production defaults.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, InitialInterval: 2 * time.Second}
}

// retryNotify is invoked once per retried attempt with the failed attempt
// number and the error that caused it.
type retryNotify func(attempt int, err error)

// withRetries runs op under the policy. Only transient errors are retried;
// terminal errors surface immediately. Exhausting the budget converts the
// last transient error to CodeRetriesExhausted.
func (p RetryPolicy) withRetries(ctx context.Context, op func() error, notify retryNotify) error {
	attempt := 0

	wrapped := func() error {
		attempt++
		err := op()
		if err == nil {
			return nil
		}
		if !pkgerrors.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.InitialInterval
	bo.RandomizationFactor = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(maxAttempts-1)), ctx)

	err := backoff.RetryNotify(wrapped, policy, func(err error, _ time.Duration) {
		if notify != nil {
			notify(attempt, err)
		}
	})
	if err == nil {
		return nil
	}
	if pkgerrors.Retryable(err) {
		return pkgerrors.Wrap(err, pkgerrors.CodeRetriesExhausted, "retry budget exhausted")
	}
	return err
}

// classifyStatus converts an HTTP response status into the retry taxonomy.
// 401/403/404/429 are terminal: the endpoint is rejecting by policy or
// reporting genuine absence, and must not be hammered.
func classifyStatus(status int, operation string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "%s: not found", operation)
	case status == http.StatusUnauthorized,
		status == http.StatusForbidden,
		status == http.StatusTooManyRequests:
		return pkgerrors.Newf(pkgerrors.CodeTerminal, "%s: rejected with status %d", operation, status)
	case status >= 500:
		return pkgerrors.Newf(pkgerrors.CodeTransient, "%s: upstream failure %d", operation, status)
	default:
		return pkgerrors.Newf(pkgerrors.CodeTerminal, "%s: unexpected status %d", operation, status)
	}
}

// classifyTransport maps transport-level failures. Timeouts and connection
// errors are transient.
func classifyTransport(err error, operation string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return pkgerrors.Wrap(err, pkgerrors.CodeTransient, operation+": request timed out")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return pkgerrors.Wrap(err, pkgerrors.CodeTransient, operation+": request timed out")
	}
	return pkgerrors.Wrap(err, pkgerrors.CodeTransient, operation+": connection failure")
}

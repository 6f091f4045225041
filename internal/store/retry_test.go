package store

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "caseflow/pkg/errors"
)

func testPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, InitialInterval: time.Millisecond}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		code   pkgerrors.Code
	}{
		{http.StatusOK, ""},
		{http.StatusCreated, ""},
		{http.StatusNotFound, pkgerrors.CodeNotFound},
		{http.StatusUnauthorized, pkgerrors.CodeTerminal},
		{http.StatusForbidden, pkgerrors.CodeTerminal},
		{http.StatusTooManyRequests, pkgerrors.CodeTerminal},
		{http.StatusBadRequest, pkgerrors.CodeTerminal},
		{http.StatusInternalServerError, pkgerrors.CodeTransient},
		{http.StatusBadGateway, pkgerrors.CodeTransient},
		{http.StatusServiceUnavailable, pkgerrors.CodeTransient},
	}
	for _, tc := range tests {
		err := classifyStatus(tc.status, "op")
		if tc.code == "" {
			assert.NoError(t, err, "status %d", tc.status)
			continue
		}
		require.Error(t, err, "status %d", tc.status)
		assert.Equal(t, tc.code, pkgerrors.CodeOf(err), "status %d", tc.status)
	}
}

func TestWithRetries_SucceedsOnThirdAttempt(t *testing.T) {
	attempts := 0
	var retried []int

	err := testPolicy().withRetries(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return pkgerrors.New(pkgerrors.CodeTransient, "upstream failure")
		}
		return nil
	}, func(attempt int, _ error) {
		retried = append(retried, attempt)
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []int{1, 2}, retried, "exactly the two failed attempts are retried")
}

func TestWithRetries_TerminalErrorNotRetried(t *testing.T) {
	attempts := 0

	err := testPolicy().withRetries(context.Background(), func() error {
		attempts++
		return pkgerrors.New(pkgerrors.CodeTerminal, "rejected")
	}, nil)

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, pkgerrors.CodeTerminal, pkgerrors.CodeOf(err))
}

func TestWithRetries_NotFoundNotRetried(t *testing.T) {
	attempts := 0

	err := testPolicy().withRetries(context.Background(), func() error {
		attempts++
		return pkgerrors.New(pkgerrors.CodeNotFound, "absent")
	}, nil)

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithRetries_NonPositiveBudgetClampsToOneAttempt(t *testing.T) {
	for _, max := range []int{0, -1} {
		attempts := 0

		err := RetryPolicy{MaxAttempts: max, InitialInterval: time.Millisecond}.
			withRetries(context.Background(), func() error {
				attempts++
				return pkgerrors.New(pkgerrors.CodeTransient, "upstream failure")
			}, nil)

		require.Error(t, err, "max attempts %d", max)
		assert.Equal(t, 1, attempts, "max attempts %d", max)
	}
}

func TestWithRetries_ExhaustionSurfacesRetriesExhausted(t *testing.T) {
	attempts := 0

	err := testPolicy().withRetries(context.Background(), func() error {
		attempts++
		return pkgerrors.New(pkgerrors.CodeTransient, "upstream failure")
	}, nil)

	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, pkgerrors.CodeRetriesExhausted, pkgerrors.CodeOf(err))
}

//go:build integration

package dedupe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseflow/pkg/testutil"
	"caseflow/pkg/testutil/containers"
)

func TestGuard_Integration(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	testutil.Given(t, "an empty dedupe window", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		guard := New(rc.Client, time.Minute)

		testutil.When(t, "a document key is first seen", func(t *testing.T) {
			seen, err := guard.Seen(ctx, "146:B63AD00:2026-08-28")
			require.NoError(t, err)

			testutil.Then(t, "it is claimed and not reported as seen", func(t *testing.T) {
				assert.False(t, seen)
			})
		})

		testutil.When(t, "the same key arrives again inside the window", func(t *testing.T) {
			seen, err := guard.Seen(ctx, "146:B63AD00:2026-08-28")
			require.NoError(t, err)

			testutil.Then(t, "it is reported as a duplicate", func(t *testing.T) {
				assert.True(t, seen)
			})
		})

		testutil.When(t, "a different document key arrives", func(t *testing.T) {
			seen, err := guard.Seen(ctx, "147:B63AD00:2026-08-29")
			require.NoError(t, err)
			assert.False(t, seen)
		})
	})
}

func TestGuard_ExpiryReopensTheWindow(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	require.NoError(t, rc.FlushAll(ctx))

	guard := New(rc.Client, 100*time.Millisecond)
	seen, err := guard.Seen(ctx, "146:B63AD00:2026-08-28")
	require.NoError(t, err)
	require.False(t, seen)

	time.Sleep(200 * time.Millisecond)

	seen, err = guard.Seen(ctx, "146:B63AD00:2026-08-28")
	require.NoError(t, err)
	assert.False(t, seen, "an expired claim no longer blocks redelivery")
}

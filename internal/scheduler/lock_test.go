package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-auction-engine/internal/adapter"
	"github.com/feral-file/ff-auction-engine/internal/scheduler"
)

func setupLocker(t *testing.T) (*miniredis.Miniredis, scheduler.Locker) {
	mr := miniredis.RunT(t)
	client := adapter.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })
	return mr, scheduler.NewRedisLocker(client, "auction-engine:scheduler")
}

func TestRedisLocker_Exclusive(t *testing.T) {
	mr, locker := setupLocker(t)
	ctx := context.Background()

	release, ok, err := locker.Acquire(ctx, "withdrawing", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("auction-engine:scheduler:withdrawing"))

	_, ok, err = locker.Acquire(ctx, "withdrawing", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must not get the lock")

	// other names are independent
	releaseStopping, ok, err := locker.Acquire(ctx, "stopping", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	releaseStopping()

	release()
	assert.False(t, mr.Exists("auction-engine:scheduler:withdrawing"))

	release, ok, err = locker.Acquire(ctx, "withdrawing", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	release()
}

func TestRedisLocker_ExpiredLockIsNotReleasedByOldHolder(t *testing.T) {
	mr, locker := setupLocker(t)
	ctx := context.Background()

	staleRelease, ok, err := locker.Acquire(ctx, "stopping", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	release, ok, err := locker.Acquire(ctx, "stopping", time.Minute)
	require.NoError(t, err)
	require.True(t, ok, "expired lock must be available")

	staleRelease()
	assert.True(t, mr.Exists("auction-engine:scheduler:stopping"), "old holder must not delete the new lock")

	release()
	assert.False(t, mr.Exists("auction-engine:scheduler:stopping"))
}

func TestRedisLocker_RedisDown(t *testing.T) {
	mr, locker := setupLocker(t)
	mr.Close()

	_, ok, err := locker.Acquire(context.Background(), "stopping", time.Minute)
	require.Error(t, err)
	assert.False(t, ok)
}

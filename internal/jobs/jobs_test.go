package jobs

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"zari/pkg/cache"
	"zari/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	lifecycleRuns atomic.Int32
	cameraRuns    atomic.Int32
	lastNow       atomic.Value
	err           error
}

func (c *countingSweeper) SweepLifecycle(_ context.Context, now time.Time) (int, int, error) {
	c.lifecycleRuns.Add(1)
	c.lastNow.Store(now)
	return 1, 0, c.err
}

func (c *countingSweeper) SweepActive(context.Context) (int, error) {
	c.cameraRuns.Add(1)
	return 2, c.err
}

func quietLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "error", true)
}

func TestProcessor_RunsBothSweeps(t *testing.T) {
	sweeper := &countingSweeper{}
	p, err := NewProcessor(sweeper, sweeper, nil, Config{
		LifecycleInterval: 20 * time.Millisecond,
		CameraInterval:    20 * time.Millisecond,
		CameraMonitor:     true,
	}, quietLogger())
	require.NoError(t, err)

	p.Start()
	t.Cleanup(func() { _ = p.Shutdown() })

	assert.Eventually(t, func() bool {
		return sweeper.lifecycleRuns.Load() > 0 && sweeper.cameraRuns.Load() > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Len(t, p.Status()["jobs"], 2)
}

func TestProcessor_CameraMonitorDisabled(t *testing.T) {
	sweeper := &countingSweeper{}
	p, err := NewProcessor(sweeper, sweeper, nil, Config{CameraMonitor: false}, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"reservation-lifecycle"}, p.Status()["jobs"])
	assert.Equal(t, time.Minute.String(), p.Status()["lifecycle_interval"])
}

func TestProcessor_RunLifecycleUsesClock(t *testing.T) {
	sweeper := &countingSweeper{}
	p, err := NewProcessor(sweeper, nil, nil, Config{}, quietLogger())
	require.NoError(t, err)
	fixed := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	p.RunLifecycle(context.Background())
	assert.Equal(t, int32(1), sweeper.lifecycleRuns.Load())
	assert.Equal(t, fixed, sweeper.lastNow.Load())

	// failures are logged, not propagated
	sweeper.err = errors.New("db down")
	p.RunLifecycle(context.Background())
	assert.Equal(t, int32(2), sweeper.lifecycleRuns.Load())
}

func TestRedisLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	locker := &redisLocker{locker: cache.NewLocker(client, "lock:"), ttl: time.Minute}
	ctx := context.Background()

	lock, err := locker.Lock(ctx, "camera-monitor")
	require.NoError(t, err)
	assert.True(t, mr.Exists("lock:jobs:camera-monitor"))

	_, err = locker.Lock(ctx, "camera-monitor")
	assert.ErrorIs(t, err, cache.ErrLockHeld)

	require.NoError(t, lock.Unlock(ctx))
	assert.False(t, mr.Exists("lock:jobs:camera-monitor"))
}

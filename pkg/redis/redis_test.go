package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewClient(NewRedisConfig().WithAddr(mr.Addr()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{name: "defaults", config: NewRedisConfig()},
		{name: "empty host", config: NewRedisConfig().WithHost(""), wantErr: true},
		{name: "bad port", config: NewRedisConfig().WithPort(70000), wantErr: true},
		{name: "bad database", config: NewRedisConfig().WithDatabase(16), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClient_GetMissingKey(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	value, err := client.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Equal(t, "", value)

	n, err := client.GetInt(ctx, "absent")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	require.NoError(t, client.Set(ctx, "n", 42, 0))
	n, err = client.GetInt(ctx, "n")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}

func TestLock_ExclusiveUntilUnlocked(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	opts := NewLockOptions().WithTTL(time.Minute).WithMaxRetries(0).WithLockNamespace("test")
	first := NewLock(client, "seed", opts)
	second := NewLock(client, "seed", opts)

	require.NoError(t, first.Lock(ctx))
	assert.True(t, GetLockStatus()["test::seed"])

	ok, err := second.TryLock(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, second.Unlock(ctx), ErrLockNotHeld)

	held, err := first.IsLocked(ctx)
	require.NoError(t, err)
	assert.True(t, held)

	require.NoError(t, first.Unlock(ctx))
	assert.False(t, GetLockStatus()["test::seed"])

	ok, err = second.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, second.Unlock(ctx))
}

func TestLock_RefreshExtendsTTL(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	lock := NewLock(client, "refresh", NewLockOptions().WithTTL(10*time.Second))
	require.NoError(t, lock.Lock(ctx))

	mr.FastForward(8 * time.Second)
	require.NoError(t, lock.Refresh(ctx))
	assert.Greater(t, mr.TTL("refresh"), 9*time.Second)

	mr.FastForward(11 * time.Second)
	assert.ErrorIs(t, lock.Refresh(ctx), ErrLockNotHeld)
}

func TestScheduledTaskLock_WaitsForRelease(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	holder := NewScheduledTaskLock(client, "cron", time.Minute, 10*time.Millisecond, "schedules")
	require.NoError(t, holder.Lock(ctx))

	standby := NewScheduledTaskLock(client, "cron", time.Minute, 10*time.Millisecond, "schedules")
	acquired := make(chan error, 1)
	go func() { acquired <- standby.Lock(ctx) }()

	select {
	case <-acquired:
		t.Fatal("standby acquired a held lock")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, holder.Unlock(ctx))

	select {
	case err := <-acquired:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("standby never acquired the released lock")
	}
	require.NoError(t, standby.Unlock(ctx))
}

func TestScheduledTaskLock_StopsOnContextCancel(t *testing.T) {
	client, _ := newTestClient(t)

	holder := NewScheduledTaskLock(client, "cron", time.Minute, 10*time.Millisecond, "")
	require.NoError(t, holder.Lock(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	standby := NewScheduledTaskLock(client, "cron", time.Minute, 10*time.Millisecond, "")
	err := standby.Lock(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestLock_AutoRefreshReportsCancellation(t *testing.T) {
	client, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())

	lock := NewLock(client, "auto", NewLockOptions().WithTTL(time.Minute).WithRefreshInterval(5*time.Millisecond))
	require.NoError(t, lock.Lock(ctx))

	errs := lock.AutoRefresh(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("auto refresh did not stop")
	}
}

func TestLockWithFunc_ReleasesAfterRun(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	ran := false
	err := LockWithFunc(ctx, client, "fn", nil, func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)

	value, err := client.Get(ctx, "fn")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestRateLimiter_TransactionsPerMinute(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	limiter, err := NewRateLimiter(client, "openweather", NewRateLimiterOptions().
		WithMaxTransactionsPerMinute(3).
		WithNamespace("test"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Acquire(ctx))
	}

	err = limiter.Acquire(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)

	metrics, err := limiter.GetMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3", metrics["transactions_per_minute"])
	assert.Equal(t, "3", metrics["max_transactions_per_minute"])

	require.NoError(t, limiter.Cleanup(ctx))
	require.NoError(t, limiter.Acquire(ctx))
}

func TestRateLimiter_SharedAcrossInstances(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	opts := NewRateLimiterOptions().WithMaxTransactionsPerSecond(1)
	a, err := NewRateLimiter(client, "shared", opts)
	require.NoError(t, err)
	b, err := NewRateLimiter(client, "shared", opts)
	require.NoError(t, err)

	require.NoError(t, a.Acquire(ctx))
	assert.ErrorIs(t, b.Acquire(ctx), ErrRateLimited)
}

func TestRateLimiter_RequiresALimit(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := NewRateLimiter(client, "none", NewRateLimiterOptions())
	assert.Error(t, err)
}

func TestHealthChecker(t *testing.T) {
	client, mr := newTestClient(t)
	checker := NewHealthChecker(client)

	result := checker.HealthCheck(context.Background())
	assert.Equal(t, StatusUp, result.Status)
	assert.Equal(t, "true", result.Details["ping_successful"])
	assert.False(t, mr.Exists("health_check_test"))

	mr.Close()

	result = checker.HealthCheck(context.Background())
	assert.Equal(t, StatusDown, result.Status)
	assert.NotEmpty(t, result.Details["last_error"])
}

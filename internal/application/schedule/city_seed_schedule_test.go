package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/model"
	"city-api/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCityUseCase struct {
	seeds atomic.Int32
	err   error
}

func (c *countingCityUseCase) ListCities(context.Context, string, bool, int, int) (*model.Page[entity.City], error) {
	return nil, nil
}
func (c *countingCityUseCase) PreloadCities(context.Context) (int64, error) { return 0, nil }
func (c *countingCityUseCase) PreloadCitiesIfEmpty(context.Context) (bool, error) {
	c.seeds.Add(1)
	return c.err == nil, c.err
}
func (c *countingCityUseCase) ResetCities(context.Context, bool) (int64, error) { return 0, nil }
func (c *countingCityUseCase) ToggleFavorite(context.Context, int64) (*entity.City, error) {
	return nil, nil
}
func (c *countingCityUseCase) FindCityByID(context.Context, int64) (*entity.City, error) {
	return nil, nil
}
func (c *countingCityUseCase) CountCities(context.Context) (int64, error)           { return 0, nil }
func (c *countingCityUseCase) RequestPreload(context.Context, bool) (string, error) { return "", nil }
func (c *countingCityUseCase) ProcessPreloadRequest(context.Context, model.PreloadRequest) error {
	return nil
}

func TestExecuteScheduledTask(t *testing.T) {
	useCase := &countingCityUseCase{}
	NewCitySeedScheduler(useCase, nil, "@every 1h", 0, 0).ExecuteScheduledTask()
	assert.Equal(t, int32(1), useCase.seeds.Load())

	failing := &countingCityUseCase{err: errors.New("remote down")}
	NewCitySeedScheduler(failing, nil, "@every 1h", 0, 0).ExecuteScheduledTask()
	assert.Equal(t, int32(1), failing.seeds.Load())
}

func TestCitySeedScheduler_WithoutRedis(t *testing.T) {
	useCase := &countingCityUseCase{}
	scheduler := NewCitySeedScheduler(useCase, nil, "@every 1s", 0, 0)
	ctx, cancel := context.WithCancel(context.Background())

	scheduler.InitCitySeedScheduleTasks(ctx)
	require.Eventually(t, func() bool { return useCase.seeds.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case <-scheduler.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestCitySeedScheduler_InvalidCron(t *testing.T) {
	scheduler := NewCitySeedScheduler(&countingCityUseCase{}, nil, "not a cron", 0, 0)
	scheduler.InitCitySeedScheduleTasks(context.Background())

	select {
	case <-scheduler.Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler with invalid cron should exit")
	}
}

func TestCitySeedScheduler_OnlyLockHolderRuns(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(redis.DefaultConfig().WithAddr(mr.Addr()))
	require.NoError(t, err)
	defer client.Close()

	leaderUseCase := &countingCityUseCase{}
	standbyUseCase := &countingCityUseCase{}
	leader := NewCitySeedScheduler(leaderUseCase, client, "@every 1s", 60, 1)
	standby := NewCitySeedScheduler(standbyUseCase, client, "@every 1s", 60, 1)

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	standbyCtx, cancelStandby := context.WithCancel(context.Background())
	defer cancelStandby()

	leader.InitCitySeedScheduleTasks(leaderCtx)
	require.Eventually(t, func() bool { return leaderUseCase.seeds.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	standby.InitCitySeedScheduleTasks(standbyCtx)
	time.Sleep(1500 * time.Millisecond)
	assert.Zero(t, standbyUseCase.seeds.Load(), "standby must wait for the lock")

	// leader releases the lock on shutdown, standby takes over
	cancelLeader()
	<-leader.Done()
	require.Eventually(t, func() bool { return standbyUseCase.seeds.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)

	cancelStandby()
	<-standby.Done()
}

package cache

import (
	"context"
	"testing"
	"time"

	"city-api/internal/domain/model"
	"city-api/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisHealthGateway_Health(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redis.NewClient(redis.DefaultConfig().WithAddr(mr.Addr()))
	require.NoError(t, err)
	defer client.Close()

	lock := redis.NewLock(client, "seed", redis.NewLockOptions().WithTTL(time.Minute).WithLockNamespace("city-api"))
	require.NoError(t, lock.Lock(context.Background()))
	defer func() { _ = lock.Unlock(context.Background()) }()

	gateway := NewRedisHealthGateway(redis.NewHealthChecker(client))

	health := gateway.Health(context.Background())
	assert.Equal(t, model.StatusUp, health.Status)
	assert.Equal(t, "true", health.Details["ping_successful"])
	assert.Equal(t, "held", health.Details["lock_city-api_seed"])

	mr.Close()
	assert.Equal(t, model.StatusDown, gateway.Health(context.Background()).Status)
}

func TestDisabledHealthGateway(t *testing.T) {
	assert.Equal(t, model.StatusUnknown, DisabledHealthGateway{}.Health(context.Background()).Status)
}

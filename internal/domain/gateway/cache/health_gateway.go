package cache

import (
	"context"
	"strings"

	"city-api/internal/domain/model"
	"city-api/pkg/redis"
)

type HealthGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}

// RedisHealthGateway reports the redis backing the rate limiter and the seed lock
type RedisHealthGateway struct {
	checker *redis.HealthChecker
}

var _ HealthGateway = (*RedisHealthGateway)(nil)

func NewRedisHealthGateway(checker *redis.HealthChecker) *RedisHealthGateway {
	return &RedisHealthGateway{checker: checker}
}

func (gateway *RedisHealthGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	check := gateway.checker.HealthCheck(ctx)

	details := make(map[string]string, len(check.Details)+len(check.LockStatus))
	for key, value := range check.Details {
		details[key] = value
	}
	for lock := range check.LockStatus {
		details["lock_"+strings.ReplaceAll(lock, "::", "_")] = "held"
	}

	status := model.StatusDown
	if check.Status == redis.StatusUp {
		status = model.StatusUp
	}

	return model.ComponentHealthStatus{
		Status:  status,
		Details: details,
	}
}

// DisabledHealthGateway is used when redis is turned off
type DisabledHealthGateway struct{}

func (DisabledHealthGateway) Health(context.Context) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{
		Status:  model.StatusUnknown,
		Details: map[string]string{"message": "Cache disabled"},
	}
}

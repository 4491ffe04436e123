package health

import (
	"context"

	"city-api/internal/domain/model"
)

type UseCase interface {
	// CheckHealth checks the city store, the preload queue and the cache.
	// UNKNOWN components are disabled and never bring the service down.
	CheckHealth(ctx context.Context) model.HealthResponse
}

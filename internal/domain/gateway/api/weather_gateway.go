package api

import (
	"context"

	"city-api/internal/domain/entity"
)

// WeatherGateway defines the interface for current weather lookups
type WeatherGateway interface {
	// GetCurrentWeather fetches the weather at the given coordinates.
	// Every failure is reported as model.ErrConnection wrapping the cause.
	GetCurrentWeather(ctx context.Context, lat float64, lon float64) (*entity.Weather, error)
}

// Limiter gates outbound calls, e.g. a shared redis.RateLimiter
type Limiter interface {
	Acquire(ctx context.Context) error
}

package weather

import (
	"context"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/model"
)

type UseCase interface {
	// GetWeatherByLocation fetches the current weather at the given coordinates
	GetWeatherByLocation(ctx context.Context, lat float64, lon float64) (*entity.Weather, error)

	// GetCityWeather loads a stored city and the weather at its coordinates
	GetCityWeather(ctx context.Context, cityID int64) (*model.CityDetail, error)
}

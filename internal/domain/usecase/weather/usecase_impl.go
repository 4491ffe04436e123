package weather

import (
	"context"
	"errors"
	"fmt"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/gateway/api"
	"city-api/internal/domain/gateway/db"
	"city-api/internal/domain/model"
	"city-api/pkg/log"
	"city-api/pkg/util/numberutils"

	"go.uber.org/zap"
)

// ErrInvalidCoordinates is returned for latitudes outside [-90, 90] or longitudes outside [-180, 180]
var ErrInvalidCoordinates = errors.New("invalid coordinates")

type weatherUseCase struct {
	apiGateway api.WeatherGateway
	dbGateway  db.CityGateway
}

func NewWeatherUseCase(apiGateway api.WeatherGateway, dbGateway db.CityGateway) UseCase {
	return &weatherUseCase{
		apiGateway: apiGateway,
		dbGateway:  dbGateway,
	}
}

func (uc *weatherUseCase) GetWeatherByLocation(ctx context.Context, lat float64, lon float64) (*entity.Weather, error) {
	if !numberutils.IsFloat64InRange(lat, -90, 90) || !numberutils.IsFloat64InRange(lon, -180, 180) {
		return nil, fmt.Errorf("%w: lat=%v lon=%v", ErrInvalidCoordinates, lat, lon)
	}

	weather, err := uc.apiGateway.GetCurrentWeather(ctx, lat, lon)
	if err != nil {
		log.Warn("Weather lookup failed", zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		if !errors.Is(err, model.ErrConnection) {
			err = fmt.Errorf("%w: %w", model.ErrConnection, err)
		}
		return nil, err
	}
	return weather, nil
}

func (uc *weatherUseCase) GetCityWeather(ctx context.Context, cityID int64) (*model.CityDetail, error) {
	city, err := uc.dbGateway.FindByID(ctx, cityID)
	if err != nil {
		return nil, fmt.Errorf("failed to find city by id: %w", err)
	}
	if city == nil {
		return nil, model.ErrCityNotFound
	}

	weather, err := uc.GetWeatherByLocation(ctx, city.Latitude, city.Longitude)
	if err != nil {
		return nil, err
	}

	return &model.CityDetail{
		City:    *city,
		Weather: *weather,
	}, nil
}

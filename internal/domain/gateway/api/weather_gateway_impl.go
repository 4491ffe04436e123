package api

import (
	"context"
	"fmt"
	"strconv"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/model"
	"city-api/internal/domain/model/external"
	"city-api/pkg/http"
)

const currentWeatherPath = "data/2.5/weather"

// WeatherGatewayConfig holds the OpenWeather account settings
type WeatherGatewayConfig struct {
	BaseURL string
	APIKey  string
	Units   string
	Lang    string
	// Limiter is optional, nil means unlimited
	Limiter Limiter
}

type weatherGatewayImpl struct {
	httpClient *http.Client
	config     WeatherGatewayConfig
}

// NewWeatherGateway creates a new instance of WeatherGateway with HTTP client
func NewWeatherGateway(config WeatherGatewayConfig, clientOptions http.ClientOptions) WeatherGateway {
	if config.Units == "" {
		config.Units = "metric"
	}
	if config.Lang == "" {
		config.Lang = "sp"
	}

	return &weatherGatewayImpl{
		httpClient: http.NewHttpClient(config.BaseURL, clientOptions),
		config:     config,
	}
}

func (w *weatherGatewayImpl) GetCurrentWeather(ctx context.Context, lat float64, lon float64) (*entity.Weather, error) {
	if w.config.Limiter != nil {
		if err := w.config.Limiter.Acquire(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrConnection, err)
		}
	}

	successResp, errResp, _, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(currentWeatherPath).
		WithQueryParams(map[string]string{
			"lat":   strconv.FormatFloat(lat, 'f', -1, 64),
			"lon":   strconv.FormatFloat(lon, 'f', -1, 64),
			"appid": w.config.APIKey,
			"units": w.config.Units,
			"lang":  w.config.Lang,
		}).
		WithSuccessResp(&external.OpenWeatherResponse{}).
		WithErrorResp(&external.OpenWeatherErrorResponse{}).
		Execute()

	if err == nil {
		response, ok := successResp.(*external.OpenWeatherResponse)
		if !ok || response == nil {
			return nil, fmt.Errorf("%w: empty weather response", model.ErrConnection)
		}
		return response.ToEntity(), nil
	}

	if errorResponse, ok := errResp.(*external.OpenWeatherErrorResponse); ok && errorResponse.Message != "" {
		return nil, fmt.Errorf("%w: %s: %w", model.ErrConnection, errorResponse.Message, err)
	}

	return nil, fmt.Errorf("%w: %w", model.ErrConnection, err)
}

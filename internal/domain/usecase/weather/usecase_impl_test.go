package weather

import (
	"context"
	"errors"
	"testing"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWeatherGateway struct {
	weather  *entity.Weather
	err      error
	lat, lon float64
	calls    int
}

func (s *stubWeatherGateway) GetCurrentWeather(_ context.Context, lat float64, lon float64) (*entity.Weather, error) {
	s.calls++
	s.lat, s.lon = lat, lon
	return s.weather, s.err
}

// stubCityGateway only answers FindByID
type stubCityGateway struct {
	city *entity.City
	err  error
}

func (s *stubCityGateway) FindAll(context.Context, model.CityFilter, int, int) ([]entity.City, error) {
	return nil, nil
}
func (s *stubCityGateway) Count(context.Context, model.CityFilter) (int64, error) { return 0, nil }
func (s *stubCityGateway) CountAll(context.Context) (int64, error)                { return 0, nil }
func (s *stubCityGateway) FindByID(context.Context, int64) (*entity.City, error) {
	return s.city, s.err
}
func (s *stubCityGateway) InsertAll(context.Context, []entity.City) (int64, error) { return 0, nil }
func (s *stubCityGateway) ToggleFavorite(context.Context, int64) (*entity.City, error) {
	return nil, nil
}
func (s *stubCityGateway) DeleteAll(context.Context) (int64, error)                 { return 0, nil }
func (s *stubCityGateway) ReplaceAll(context.Context, []entity.City) (int64, error) { return 0, nil }

func TestGetWeatherByLocation(t *testing.T) {
	gateway := &stubWeatherGateway{weather: &entity.Weather{Name: "Lima"}}
	uc := NewWeatherUseCase(gateway, &stubCityGateway{})

	weather, err := uc.GetWeatherByLocation(context.Background(), -12.04, -77.03)
	require.NoError(t, err)
	assert.Equal(t, "Lima", weather.Name)
	assert.Equal(t, -12.04, gateway.lat)
	assert.Equal(t, -77.03, gateway.lon)
}

func TestGetWeatherByLocation_InvalidCoordinates(t *testing.T) {
	gateway := &stubWeatherGateway{}
	uc := NewWeatherUseCase(gateway, &stubCityGateway{})

	for _, coords := range [][2]float64{{91, 0}, {-90.5, 0}, {0, 180.1}, {0, -181}} {
		_, err := uc.GetWeatherByLocation(context.Background(), coords[0], coords[1])
		assert.True(t, errors.Is(err, ErrInvalidCoordinates), "coords %v", coords)
	}
	assert.Zero(t, gateway.calls)
}

func TestGetWeatherByLocation_FailureIsConnectionError(t *testing.T) {
	uc := NewWeatherUseCase(&stubWeatherGateway{err: errors.New("dial tcp: refused")}, &stubCityGateway{})

	_, err := uc.GetWeatherByLocation(context.Background(), 0, 0)
	assert.True(t, errors.Is(err, model.ErrConnection))
}

func TestGetCityWeather(t *testing.T) {
	city := &entity.City{ID: 7, Name: "Quito", Country: "EC", Latitude: -0.22, Longitude: -78.51}
	gateway := &stubWeatherGateway{weather: &entity.Weather{Name: "Quito"}}
	uc := NewWeatherUseCase(gateway, &stubCityGateway{city: city})

	detail, err := uc.GetCityWeather(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, *city, detail.City)
	assert.Equal(t, "Quito", detail.Weather.Name)
	assert.Equal(t, -0.22, gateway.lat)
}

func TestGetCityWeather_Errors(t *testing.T) {
	t.Run("absent city", func(t *testing.T) {
		gateway := &stubWeatherGateway{}
		uc := NewWeatherUseCase(gateway, &stubCityGateway{})

		_, err := uc.GetCityWeather(context.Background(), 1)
		assert.True(t, errors.Is(err, model.ErrCityNotFound))
		assert.Zero(t, gateway.calls)
	})

	t.Run("weather failure", func(t *testing.T) {
		uc := NewWeatherUseCase(&stubWeatherGateway{err: model.ErrConnection}, &stubCityGateway{city: &entity.City{ID: 1}})

		_, err := uc.GetCityWeather(context.Background(), 1)
		assert.True(t, errors.Is(err, model.ErrConnection))
	})
}

package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"city-api/internal/application/middleware"
	"city-api/internal/domain/entity"
	"city-api/internal/domain/model"
	"city-api/internal/domain/usecase/weather"
	"city-api/pkg/msg"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCityUseCase struct {
	city      *entity.City
	err       error
	lastQuery string
	lastFav   bool
	lastPage  int
	lastSize  int
	lastForce bool
}

func (s *stubCityUseCase) ListCities(_ context.Context, query string, onlyFavorites bool, page int, size int) (*model.Page[entity.City], error) {
	s.lastQuery, s.lastFav, s.lastPage, s.lastSize = query, onlyFavorites, page, size
	if s.err != nil {
		return nil, s.err
	}
	return model.NewPage([]entity.City{{ID: 1, Name: "Lima"}}, page, size, 1), nil
}
func (s *stubCityUseCase) PreloadCities(context.Context) (int64, error)        { return 0, s.err }
func (s *stubCityUseCase) PreloadCitiesIfEmpty(context.Context) (bool, error) { return false, s.err }
func (s *stubCityUseCase) ResetCities(_ context.Context, reload bool) (int64, error) {
	s.lastForce = reload
	return 5, s.err
}
func (s *stubCityUseCase) ToggleFavorite(context.Context, int64) (*entity.City, error) {
	return s.city, s.err
}
func (s *stubCityUseCase) FindCityByID(context.Context, int64) (*entity.City, error) {
	return s.city, s.err
}
func (s *stubCityUseCase) CountCities(context.Context) (int64, error) { return 3, s.err }
func (s *stubCityUseCase) RequestPreload(_ context.Context, force bool) (string, error) {
	s.lastForce = force
	return "req-1", s.err
}
func (s *stubCityUseCase) ProcessPreloadRequest(context.Context, model.PreloadRequest) error {
	return s.err
}

type stubWeatherUseCase struct {
	err      error
	lat, lon float64
}

func (s *stubWeatherUseCase) GetWeatherByLocation(_ context.Context, lat float64, lon float64) (*entity.Weather, error) {
	s.lat, s.lon = lat, lon
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Weather{Name: "Lima"}, nil
}

func (s *stubWeatherUseCase) GetCityWeather(context.Context, int64) (*model.CityDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.CityDetail{City: entity.City{ID: 1, Name: "Lima"}, Weather: entity.Weather{Name: "Lima"}}, nil
}

func newTestServer(cities *stubCityUseCase, weatherUseCase *stubWeatherUseCase) *echo.Echo {
	msg.Register("city.error.not-found", "Ciudad no encontrada")
	msg.Register("app.error.connection", "Error de conexion")

	e := echo.New()
	middleware.SetupValidator(e)
	api := e.Group("/city-api")
	NewCityController(api, cities).InitCityRoutes()
	NewWeatherController(api, weatherUseCase).InitWeatherRoutes()
	return e
}

func do(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestListCities_PassesQueryParameters(t *testing.T) {
	cities := &stubCityUseCase{}
	e := newTestServer(cities, &stubWeatherUseCase{})

	rec := do(e, http.MethodGet, "/city-api/cities?query=li&onlyFavorites=true&page=2&size=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "li", cities.lastQuery)
	assert.True(t, cities.lastFav)
	assert.Equal(t, 2, cities.lastPage)
	assert.Equal(t, 5, cities.lastSize)

	var page model.Page[entity.City]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, "Lima", page.Content[0].Name)

	do(e, http.MethodGet, "/city-api/cities?page=x")
	assert.Equal(t, 0, cities.lastPage)
	assert.Equal(t, model.DefaultPageSize, cities.lastSize)
}

func TestCityRoutes_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		target  string
		useCase *stubCityUseCase
		status  int
		message string
	}{
		{name: "found", method: http.MethodGet, target: "/city-api/cities/1",
			useCase: &stubCityUseCase{city: &entity.City{ID: 1}}, status: http.StatusOK},
		{name: "not found", method: http.MethodGet, target: "/city-api/cities/9",
			useCase: &stubCityUseCase{err: model.ErrCityNotFound}, status: http.StatusNotFound, message: "Ciudad no encontrada"},
		{name: "invalid id", method: http.MethodGet, target: "/city-api/cities/abc",
			useCase: &stubCityUseCase{}, status: http.StatusBadRequest},
		{name: "non positive id", method: http.MethodPatch, target: "/city-api/cities/0/favorite",
			useCase: &stubCityUseCase{}, status: http.StatusBadRequest},
		{name: "toggle", method: http.MethodPatch, target: "/city-api/cities/1/favorite",
			useCase: &stubCityUseCase{city: &entity.City{ID: 1, IsFavorite: true}}, status: http.StatusOK},
		{name: "toggle absent", method: http.MethodPatch, target: "/city-api/cities/2/favorite",
			useCase: &stubCityUseCase{err: model.ErrCityNotFound}, status: http.StatusNotFound},
		{name: "count", method: http.MethodGet, target: "/city-api/cities/count",
			useCase: &stubCityUseCase{}, status: http.StatusOK},
		{name: "preload accepted", method: http.MethodPost, target: "/city-api/cities/preload?force=true",
			useCase: &stubCityUseCase{}, status: http.StatusAccepted},
		{name: "preload remote failure", method: http.MethodPost, target: "/city-api/cities/preload",
			useCase: &stubCityUseCase{err: model.ErrConnection}, status: http.StatusBadGateway, message: "Error de conexion"},
		{name: "reset", method: http.MethodDelete, target: "/city-api/cities?reload=1",
			useCase: &stubCityUseCase{}, status: http.StatusOK},
		{name: "unexpected failure", method: http.MethodGet, target: "/city-api/cities",
			useCase: &stubCityUseCase{err: errors.New("disk full")}, status: http.StatusInternalServerError, message: "Error interno del servidor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(tt.useCase, &stubWeatherUseCase{})

			rec := do(e, tt.method, tt.target)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.message != "" {
				assert.Equal(t, tt.message, decodeError(t, rec))
			}
		})
	}
}

func TestUnexpectedErrorDetailsStayInTheLog(t *testing.T) {
	e := newTestServer(&stubCityUseCase{err: errors.New("pq: password authentication failed for user \"city\"")}, &stubWeatherUseCase{})

	rec := do(e, http.MethodGet, "/city-api/cities/count")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Equal(t, "Error interno del servidor", decodeError(t, rec))
}

func TestCountAndPreloadBodies(t *testing.T) {
	cities := &stubCityUseCase{}
	e := newTestServer(cities, &stubWeatherUseCase{})

	rec := do(e, http.MethodGet, "/city-api/cities/count")
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/city-api/cities/preload?force=true")
	var body model.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "req-1", body.RequestID)
	assert.True(t, cities.lastForce)

	rec = do(e, http.MethodDelete, "/city-api/cities")
	assert.JSONEq(t, `{"deleted":5}`, rec.Body.String())
	assert.False(t, cities.lastForce)
}

func TestWeatherRoutes(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		useCase *stubWeatherUseCase
		status  int
	}{
		{name: "ok", target: "/city-api/weather?lat=-12.04&lon=-77.03", useCase: &stubWeatherUseCase{}, status: http.StatusOK},
		{name: "missing lon", target: "/city-api/weather?lat=1", useCase: &stubWeatherUseCase{}, status: http.StatusBadRequest},
		{name: "not a number", target: "/city-api/weather?lat=a&lon=1", useCase: &stubWeatherUseCase{}, status: http.StatusBadRequest},
		{name: "out of range", target: "/city-api/weather?lat=95&lon=1", useCase: &stubWeatherUseCase{}, status: http.StatusBadRequest},
		{name: "zero is valid", target: "/city-api/weather?lat=0&lon=0", useCase: &stubWeatherUseCase{}, status: http.StatusOK},
		{name: "remote failure", target: "/city-api/weather?lat=1&lon=1", useCase: &stubWeatherUseCase{err: model.ErrConnection}, status: http.StatusBadGateway},
		{name: "invalid coordinates from use case", target: "/city-api/weather?lat=1&lon=1", useCase: &stubWeatherUseCase{err: weather.ErrInvalidCoordinates}, status: http.StatusBadRequest},
		{name: "city weather", target: "/city-api/cities/1/weather", useCase: &stubWeatherUseCase{}, status: http.StatusOK},
		{name: "city weather absent", target: "/city-api/cities/1/weather", useCase: &stubWeatherUseCase{err: model.ErrCityNotFound}, status: http.StatusNotFound},
		{name: "city weather remote failure", target: "/city-api/cities/1/weather", useCase: &stubWeatherUseCase{err: model.ErrConnection}, status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(&stubCityUseCase{}, tt.useCase)

			rec := do(e, http.MethodGet, tt.target)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestWeatherRoute_ParsesCoordinates(t *testing.T) {
	weatherUseCase := &stubWeatherUseCase{}
	e := newTestServer(&stubCityUseCase{}, weatherUseCase)

	rec := do(e, http.MethodGet, "/city-api/weather?lat=-34.6&lon=-58.38")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -34.6, weatherUseCase.lat)
	assert.Equal(t, -58.38, weatherUseCase.lon)
}

package controller

import (
	"net/http"

	"city-api/internal/domain/model"
	"city-api/internal/domain/usecase/weather"
	"city-api/pkg/util/numberutils"

	"github.com/labstack/echo/v4"
)

type WeatherController struct {
	api     *echo.Group
	useCase weather.UseCase
}

func NewWeatherController(api *echo.Group, useCase weather.UseCase) *WeatherController {
	return &WeatherController{api: api, useCase: useCase}
}

// InitWeatherRoutes initializes weather routes
func (controller *WeatherController) InitWeatherRoutes() {
	controller.api.GET("/weather", controller.GetWeatherByLocation)
	controller.api.GET("/cities/:id/weather", controller.GetCityWeather)
}

// GetWeatherByLocation godoc
// @Summary Current weather at a coordinate
// @Tags weather
// @Produce json
// @Param lat query number true "Latitude (-90 to 90)"
// @Param lon query number true "Longitude (-180 to 180)"
// @Success 200 {object} entity.Weather
// @Failure 400 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /weather [get]
func (controller *WeatherController) GetWeatherByLocation(c echo.Context) error {
	lat, latErr := parseCoordinate(c.QueryParam("lat"))
	lon, lonErr := parseCoordinate(c.QueryParam("lon"))
	if latErr != nil || lonErr != nil {
		return badRequest(c, "weather.error.invalid-coordinates")
	}

	query := model.CoordinateQuery{Lat: lat, Lon: lon}
	if err := c.Validate(&query); err != nil {
		return badRequest(c, "weather.error.invalid-coordinates")
	}

	current, err := controller.useCase.GetWeatherByLocation(c.Request().Context(), *query.Lat, *query.Lon)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, current)
}

// GetCityWeather godoc
// @Summary City detail with current weather
// @Tags weather
// @Produce json
// @Param id path int true "City id"
// @Success 200 {object} model.CityDetail
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /cities/{id}/weather [get]
func (controller *WeatherController) GetCityWeather(c echo.Context) error {
	id, ok := parseCityID(c)
	if !ok {
		return badRequest(c, "city.error.invalid-id", c.Param("id"))
	}

	detail, err := controller.useCase.GetCityWeather(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// parseCoordinate returns nil for a missing parameter so validation reports it as required
func parseCoordinate(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := numberutils.ToFloat64WithError(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

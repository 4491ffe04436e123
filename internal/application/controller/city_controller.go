package controller

import (
	"net/http"

	"city-api/internal/domain/model"
	"city-api/internal/domain/usecase/city"
	"city-api/pkg/msg"
	"city-api/pkg/util/numberutils"

	"github.com/labstack/echo/v4"
)

type CityController struct {
	api     *echo.Group
	useCase city.UseCase
}

func NewCityController(api *echo.Group, useCase city.UseCase) *CityController {
	return &CityController{api: api, useCase: useCase}
}

// InitCityRoutes initializes city routes
func (controller *CityController) InitCityRoutes() {
	controller.api.GET("/cities", controller.ListCities)
	controller.api.GET("/cities/count", controller.CountCities)
	controller.api.GET("/cities/:id", controller.FindCityByID)
	controller.api.PATCH("/cities/:id/favorite", controller.ToggleFavorite)
	controller.api.POST("/cities/preload", controller.RequestPreload)
	controller.api.DELETE("/cities", controller.ResetCities)
}

// ListCities godoc
// @Summary List cities
// @Description Paginated cities ordered by name, filtered by a case-insensitive name prefix and favorite flag
// @Tags cities
// @Produce json
// @Param query query string false "Name prefix"
// @Param onlyFavorites query bool false "Only favorite cities" default(false)
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size (1-100)" default(20)
// @Success 200 {object} model.Page[entity.City]
// @Failure 500 {object} model.ErrorResponse
// @Router /cities [get]
func (controller *CityController) ListCities(c echo.Context) error {
	var page int = numberutils.ToIntWithDefault(c.QueryParam("page"), 0)
	var size int = numberutils.ToIntWithDefault(c.QueryParam("size"), model.DefaultPageSize)
	var onlyFavorites bool = numberutils.ToBoolWithDefault(c.QueryParam("onlyFavorites"), false)
	var query string = c.QueryParam("query")

	cities, err := controller.useCase.ListCities(c.Request().Context(), query, onlyFavorites, page, size)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, cities)
}

// CountCities godoc
// @Summary Count stored cities
// @Tags cities
// @Produce json
// @Success 200 {object} model.CountResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /cities/count [get]
func (controller *CityController) CountCities(c echo.Context) error {
	count, err := controller.useCase.CountCities(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, model.CountResponse{Count: count})
}

// FindCityByID godoc
// @Summary Get city by id
// @Tags cities
// @Produce json
// @Param id path int true "City id"
// @Success 200 {object} entity.City
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /cities/{id} [get]
func (controller *CityController) FindCityByID(c echo.Context) error {
	id, ok := parseCityID(c)
	if !ok {
		return badRequest(c, "city.error.invalid-id", c.Param("id"))
	}

	found, err := controller.useCase.FindCityByID(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, found)
}

// ToggleFavorite godoc
// @Summary Toggle favorite flag
// @Description Flips the favorite flag of a city and returns the updated city
// @Tags cities
// @Produce json
// @Param id path int true "City id"
// @Success 200 {object} entity.City
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /cities/{id}/favorite [patch]
func (controller *CityController) ToggleFavorite(c echo.Context) error {
	id, ok := parseCityID(c)
	if !ok {
		return badRequest(c, "city.error.invalid-id", c.Param("id"))
	}

	toggled, err := controller.useCase.ToggleFavorite(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, toggled)
}

// RequestPreload godoc
// @Summary Preload the remote city list
// @Description Enqueues a preload. Without force it only runs when the store is empty; with force the store is replaced.
// @Tags cities
// @Produce json
// @Param force query bool false "Replace existing cities" default(false)
// @Success 202 {object} model.MessageResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /cities/preload [post]
func (controller *CityController) RequestPreload(c echo.Context) error {
	force := numberutils.ToBoolWithDefault(c.QueryParam("force"), false)

	requestID, err := controller.useCase.RequestPreload(c.Request().Context(), force)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusAccepted, model.MessageResponse{
		Message:   msg.GetMessage("city.preload.accepted"),
		RequestID: requestID,
	})
}

// ResetCities godoc
// @Summary Delete every city
// @Description Clears the local store, optionally reloading it from the remote list
// @Tags cities
// @Produce json
// @Param reload query bool false "Reload from the remote list" default(false)
// @Success 200 {object} model.DeletedResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /cities [delete]
func (controller *CityController) ResetCities(c echo.Context) error {
	reload := numberutils.ToBoolWithDefault(c.QueryParam("reload"), false)

	deleted, err := controller.useCase.ResetCities(c.Request().Context(), reload)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, model.DeletedResponse{Deleted: deleted})
}

func parseCityID(c echo.Context) (int64, bool) {
	id, err := numberutils.ToInt64WithError(c.Param("id"))
	if err != nil || !numberutils.IsInt64Positive(id) {
		return 0, false
	}
	return id, true
}

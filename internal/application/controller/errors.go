package controller

import (
	"errors"
	"net/http"

	"city-api/internal/domain/model"
	"city-api/internal/domain/usecase/weather"
	"city-api/pkg/log"
	"city-api/pkg/msg"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// errorResponse maps domain errors to HTTP statuses with a plain-text body
func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrCityNotFound):
		return c.JSON(http.StatusNotFound, model.ErrorResponse{Error: msg.GetMessage("city.error.not-found")})
	case errors.Is(err, model.ErrConnection):
		return c.JSON(http.StatusBadGateway, model.ErrorResponse{Error: msg.GetMessage("app.error.connection")})
	case errors.Is(err, weather.ErrInvalidCoordinates):
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: msg.GetMessage("weather.error.invalid-coordinates")})
	default:
		log.Error("unhandled request error",
			zap.String("path", c.Path()),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: msg.GetMessage("app.error.internal")})
	}
}

func badRequest(c echo.Context, key string, args ...any) error {
	return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: msg.GetMessage(key, args...)})
}

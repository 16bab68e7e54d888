package handler

import (
	"log/slog"
	"net/http"

	"trackwise/internal/delivery/http/response"
	"trackwise/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WeatherHandler holds dependencies for weather handlers.
type WeatherHandler struct {
	weatherUc usecase.WeatherUsecase
	logger    *slog.Logger
}

// NewWeatherHandler is the constructor for WeatherHandler, injected by Fx.
func NewWeatherHandler(weatherUc usecase.WeatherUsecase, logger *slog.Logger) *WeatherHandler {
	return &WeatherHandler{
		weatherUc: weatherUc,
		logger:    logger,
	}
}

// CurrentWeather returns current conditions for a location.
func (h *WeatherHandler) CurrentWeather(c echo.Context) error {
	location := c.QueryParam("location")
	if location == "" {
		return response.BindingError(c, "INVALID_INPUT", "location query parameter is required")
	}
	units := c.QueryParam("units")

	current, err := h.weatherUc.CurrentWeather(c.Request().Context(), location, units)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, current, "")
}

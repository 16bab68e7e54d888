package handler

import (
	"log/slog"
	"net/http"

	"trackwise/internal/delivery/http/response"
	"trackwise/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TransitHandler holds dependencies for transit handlers.
type TransitHandler struct {
	transitUc usecase.TransitUsecase
	logger    *slog.Logger
}

// NewTransitHandler is the constructor for TransitHandler, injected by Fx.
func NewTransitHandler(transitUc usecase.TransitUsecase, logger *slog.Logger) *TransitHandler {
	return &TransitHandler{
		transitUc: transitUc,
		logger:    logger,
	}
}

// StopArrivals returns predicted arrivals for a monitored stop.
func (h *TransitHandler) StopArrivals(c echo.Context) error {
	stopID := c.QueryParam("stop_id")
	if stopID == "" {
		return response.BindingError(c, "INVALID_INPUT", "stop_id query parameter is required")
	}
	routeID := c.QueryParam("route_id")

	arrivals, err := h.transitUc.StopArrivals(c.Request().Context(), stopID, routeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, arrivals, "")
}

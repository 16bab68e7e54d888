package handler

import (
	"log/slog"
	"net/http"

	"trackwise/internal/delivery/http/response"
	domainerrors "trackwise/internal/domain/errors"
	"trackwise/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RouteHandler holds dependencies for saved-route handlers.
type RouteHandler struct {
	routeUc usecase.RouteUsecase
	logger  *slog.Logger
}

// NewRouteHandler is the constructor for RouteHandler, injected by Fx.
func NewRouteHandler(routeUc usecase.RouteUsecase, logger *slog.Logger) *RouteHandler {
	return &RouteHandler{
		routeUc: routeUc,
		logger:  logger,
	}
}

// createRouteRequest is the wire format of the route creation endpoint.
type createRouteRequest struct {
	Name        string `json:"name" validate:"required,max=128"`
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	RouteTypes  string `json:"route_types"`
	Notes       string `json:"notes"`
	IsFavorite  bool   `json:"is_favorite"`
}

// updateRouteRequest is the wire format of the route update endpoint.
// Absent fields are left unchanged.
type updateRouteRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=128"`
	Origin      *string `json:"origin"`
	Destination *string `json:"destination"`
	RouteTypes  *string `json:"route_types"`
	Notes       *string `json:"notes"`
	IsFavorite  *bool   `json:"is_favorite"`
}

// routeID parses the route id path parameter.
func routeID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrRouteNotFound
	}

	return id, nil
}

// ListRoutes returns the authenticated user's saved routes.
func (h *RouteHandler) ListRoutes(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	routes, err := h.routeUc.ListRoutes(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, routes, "")
}

// GetRoute returns one saved route.
func (h *RouteHandler) GetRoute(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := routeID(c)
	if err != nil {
		return err
	}

	route, err := h.routeUc.GetRoute(c.Request().Context(), user.ID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, route, "")
}

// CreateRoute saves a new route for the authenticated user.
func (h *RouteHandler) CreateRoute(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createRouteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid route input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	route, err := h.routeUc.CreateRoute(c.Request().Context(), user.ID, &usecase.CreateRouteInput{
		Name:        req.Name,
		Origin:      req.Origin,
		Destination: req.Destination,
		RouteTypes:  req.RouteTypes,
		Notes:       req.Notes,
		IsFavorite:  req.IsFavorite,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, route, "Route saved successfully")
}

// UpdateRoute applies partial changes to a saved route.
func (h *RouteHandler) UpdateRoute(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := routeID(c)
	if err != nil {
		return err
	}

	var req updateRouteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid route input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	route, err := h.routeUc.UpdateRoute(c.Request().Context(), user.ID, id, &usecase.UpdateRouteInput{
		Name:        req.Name,
		Origin:      req.Origin,
		Destination: req.Destination,
		RouteTypes:  req.RouteTypes,
		Notes:       req.Notes,
		IsFavorite:  req.IsFavorite,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, route, "Route updated successfully")
}

// DeleteRoute soft-deletes a saved route.
func (h *RouteHandler) DeleteRoute(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := routeID(c)
	if err != nil {
		return err
	}

	if err := h.routeUc.DeleteRoute(c.Request().Context(), user.ID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Route deleted"}, "Route deleted successfully")
}

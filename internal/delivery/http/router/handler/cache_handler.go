package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"trackwise/internal/delivery/http/response"
	"trackwise/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CacheHandler holds dependencies for cache administration handlers.
type CacheHandler struct {
	cacheUc usecase.CacheUsecase
	logger  *slog.Logger
}

// NewCacheHandler is the constructor for CacheHandler, injected by Fx.
func NewCacheHandler(cacheUc usecase.CacheUsecase, logger *slog.Logger) *CacheHandler {
	return &CacheHandler{
		cacheUc: cacheUc,
		logger:  logger,
	}
}

// Stats returns cache backend statistics.
func (h *CacheHandler) Stats(c echo.Context) error {
	stats, err := h.cacheUc.Stats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}

// Clear removes all cached entries.
func (h *CacheHandler) Clear(c echo.Context) error {
	if err := h.cacheUc.Clear(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Cache cleared successfully")
}

// Invalidate removes the cache keys matching the pattern in the path, for
// example DELETE /cache/pattern/weather:*.
func (h *CacheHandler) Invalidate(c echo.Context) error {
	pattern := c.Param("*")
	if pattern == "" {
		return response.BindingError(c, "INVALID_INPUT", "cache key pattern is required")
	}

	deleted, err := h.cacheUc.Invalidate(c.Request().Context(), pattern)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"deleted": deleted,
	}, fmt.Sprintf("Deleted %d keys matching pattern %s", deleted, pattern))
}

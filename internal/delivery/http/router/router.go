// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"trackwise/internal/delivery/http/middleware"
	"trackwise/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	RouteHandler     *handler.RouteHandler
	WeatherHandler   *handler.WeatherHandler
	TransitHandler   *handler.TransitHandler
	CacheHandler     *handler.CacheHandler
	SchedulerHandler *handler.SchedulerHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	userHandler      *handler.UserHandler
	routeHandler     *handler.RouteHandler
	weatherHandler   *handler.WeatherHandler
	transitHandler   *handler.TransitHandler
	cacheHandler     *handler.CacheHandler
	schedulerHandler *handler.SchedulerHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		userHandler:      params.UserHandler,
		routeHandler:     params.RouteHandler,
		weatherHandler:   params.WeatherHandler,
		transitHandler:   params.TransitHandler,
		cacheHandler:     params.CacheHandler,
		schedulerHandler: params.SchedulerHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/social/login", r.authHandler.SocialLogin)
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	userGroup := api.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.GetProfile)
		userGroup.PATCH("/me", r.userHandler.UpdateProfile)
	}

	routeGroup := api.Group("/routes")
	routeGroup.Use(r.authMiddleware.Authenticate)
	{
		routeGroup.GET("", r.routeHandler.ListRoutes)
		routeGroup.POST("", r.routeHandler.CreateRoute)
		routeGroup.GET("/:id", r.routeHandler.GetRoute)
		routeGroup.PATCH("/:id", r.routeHandler.UpdateRoute)
		routeGroup.DELETE("/:id", r.routeHandler.DeleteRoute)
	}

	weatherGroup := api.Group("/weather")
	weatherGroup.Use(r.authMiddleware.Authenticate)
	{
		weatherGroup.GET("/current", r.weatherHandler.CurrentWeather)
	}

	transitGroup := api.Group("/transit")
	transitGroup.Use(r.authMiddleware.Authenticate)
	{
		transitGroup.GET("/arrivals", r.transitHandler.StopArrivals)
	}

	cacheGroup := api.Group("/cache")
	cacheGroup.Use(r.authMiddleware.Authenticate)
	{
		cacheGroup.GET("/stats", r.cacheHandler.Stats)
		cacheGroup.POST("/clear", r.cacheHandler.Clear, r.authMiddleware.RequireSuperuser)
		cacheGroup.DELETE("/pattern/*", r.cacheHandler.Invalidate, r.authMiddleware.RequireSuperuser)
	}

	schedulerGroup := api.Group("/scheduler")
	schedulerGroup.Use(r.authMiddleware.Authenticate, r.authMiddleware.RequireSuperuser)
	{
		schedulerGroup.GET("/jobs", r.schedulerHandler.ListJobs)
		schedulerGroup.GET("/status", r.schedulerHandler.Status)
		schedulerGroup.POST("/pause", r.schedulerHandler.Pause)
		schedulerGroup.POST("/resume", r.schedulerHandler.Resume)
	}
}

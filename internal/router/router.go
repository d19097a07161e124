// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/airline-reservation/internal/config"
	"github.com/iliyamo/airline-reservation/internal/handler"
	"github.com/iliyamo/airline-reservation/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints under /v1/auth. Register,
// login and refresh are open; logout and profile require a bearer
// token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	p := e.Group("/v1/auth", middleware.JWTAuth(jwtSecret))
	p.POST("/logout", a.Logout)
	p.GET("/me", a.Me)
}

// RegisterAPI registers the reservation API under /api/v1. The flight
// listing and flight detail are public and served through the Redis
// response cache; every mutating route and the passenger roster require
// a bearer token and pass through the rate limiter.
func RegisterAPI(
	e *echo.Echo,
	f *handler.FlightHandler,
	t *handler.TicketHandler,
	ci *handler.CheckinHandler,
	p *handler.PassengerHandler,
	cfg config.Config,
	rdb *redis.Client,
) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	auth := middleware.JWTAuth(cfg.JWTSecret)

	pub := e.Group("/api/v1")
	pub.GET("/flights", f.List, cache)
	pub.GET("/flights/:id", f.Get, cache)

	priv := e.Group("/api/v1", auth, limit)
	priv.POST("/flights", f.Create)
	priv.POST("/tickets", t.Book)
	priv.DELETE("/tickets", t.Cancel)
	priv.POST("/checkin", ci.CheckIn)
	priv.GET("/passengers", p.List)
}

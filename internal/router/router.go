// Package router wires HTTP routes to handlers and composes the
// per-route middleware chains (authentication, role checks, caching).
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/movigo/movies-api/internal/handler"
	"github.com/movigo/movies-api/internal/middleware"
	"github.com/movigo/movies-api/internal/model"
)

// Deps carries everything route registration needs. The cache middleware
// is injected so main can disable it when Redis is unavailable.
type Deps struct {
	Auth      *handler.AuthHandler
	Movies    *handler.MovieHandler
	Users     *handler.UserHandler
	JWTSecret string
	Cache     echo.MiddlewareFunc
}

// Register mounts every route. Auth endpoints are public; everything else
// under /v1 requires a bearer token. Movie reads accept any authenticated
// role, movie writes and the whole users resource require admin.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	pub := e.Group("/v1/auth")
	pub.POST("/register", d.Auth.Register)
	pub.POST("/login", d.Auth.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(d.JWTSecret))

	auth.GET("/me", d.Auth.Me)

	readRole := middleware.RequireRole(model.RoleUser, model.RoleAdmin)
	adminRole := middleware.RequireRole(model.RoleAdmin)

	cache := d.Cache
	if cache == nil {
		cache = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	auth.GET("/movies", d.Movies.List, cache)
	auth.GET("/movies/:id", d.Movies.Get, readRole, cache)
	auth.POST("/movies", d.Movies.Create, adminRole)
	auth.PATCH("/movies/:id", d.Movies.Update, adminRole)
	auth.DELETE("/movies/:id", d.Movies.Delete, adminRole)
	auth.POST("/movies/sync", d.Movies.Sync, adminRole)

	auth.GET("/users", d.Users.List, adminRole)
	auth.GET("/users/:id", d.Users.Get, adminRole)
	auth.POST("/users", d.Users.Create, adminRole)
	auth.PATCH("/users/:id", d.Users.Update, adminRole)
	auth.DELETE("/users/:id", d.Users.Delete, adminRole)
}

// Package router wires handlers and middleware onto the echo instance.
package router

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/energopraktiki/internal/config"
	"github.com/iliyamo/energopraktiki/internal/handler"
	"github.com/iliyamo/energopraktiki/internal/middleware"
	"github.com/iliyamo/energopraktiki/internal/model"
)

// Deps is everything the route table needs. Redis may be nil: caching is
// then skipped and rate limits are kept per process.
type Deps struct {
	Cfg       config.Config
	Logger    *slog.Logger
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig

	Catalog    *handler.CatalogHandler
	Content    *handler.ContentHandler
	Newsletter *handler.NewsletterHandler
	Schedule   *handler.ScheduleHandler
	Auth       *handler.AuthHandler
	Account    *handler.AccountHandler
	Admin      *handler.AdminHandler
}

// Setup installs the global middleware and every route group.
func Setup(e *echo.Echo, d Deps) {
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, middleware.TraceHeader},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}))

	RegisterRoutes(e)
	RegisterPublic(e, d)
	RegisterAuth(e, d)
	RegisterAdmin(e, d)
	RegisterStatic(e, d.Cfg.StaticDir)
}

// RegisterRoutes registers the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers unauthenticated endpoints. Content routes go
// through the Redis response cache; the facilitator catalog does not,
// since random ordering has to change on every request.
func RegisterPublic(e *echo.Echo, d Deps) {
	g := e.Group("/v1")

	g.GET("/facilitators", d.Catalog.ListFacilitators)
	g.GET("/facilitators/cities", d.Catalog.ListCities)
	g.GET("/facilitators/:slug", d.Catalog.GetFacilitator)

	cached := g.Group("", middleware.NewRedisCache(d.Cache, d.Redis))
	cached.GET("/service-types", d.Catalog.ListServiceTypes)
	cached.GET("/retreats", d.Content.ListRetreats)
	cached.GET("/retreats/home", d.Content.ListHomeRetreats)
	cached.GET("/retreats/:slug", d.Content.GetRetreat)
	cached.GET("/blog", d.Content.ListPosts)
	cached.GET("/blog/:slug", d.Content.GetPost)
	cached.GET("/seo", d.Content.GetSEO)
	cached.GET("/site/:block", d.Content.GetBlock)
	cached.GET("/faq", d.Content.ListFAQ)
	cached.GET("/testimonials", d.Content.ListTestimonials)

	limited := middleware.NewTokenBucket(d.RateLimit, d.Redis)
	g.POST("/newsletter", d.Newsletter.Subscribe, limited)

	// anyone holding a share code may edit that schedule
	g.GET("/schedule/:code", d.Schedule.Get)
	g.POST("/schedule/:code/sessions", d.Schedule.AddSession, limited)
	g.PATCH("/schedule/:code/sessions/:id", d.Schedule.UpdateSession, limited)
	g.DELETE("/schedule/:code/sessions/:id", d.Schedule.DeleteSession, limited)
}

// RegisterAuth registers login/refresh/logout and the facilitator's own
// account endpoints.
func RegisterAuth(e *echo.Echo, d Deps) {
	limited := middleware.NewTokenBucket(d.RateLimit, d.Redis)

	g := e.Group("/v1/auth")
	g.POST("/admin/login", d.Auth.AdminLogin, limited)
	g.POST("/login", d.Auth.Login, limited)
	g.POST("/refresh", d.Auth.Refresh)
	g.POST("/logout", d.Auth.Logout)

	acc := e.Group("/v1/account",
		middleware.JWTAuth(d.Cfg.JWTSecret),
		middleware.RequireRole(model.RoleFacilitator),
	)
	acc.GET("", d.Account.Me)
	acc.PATCH("", d.Account.UpdateProfile)
	acc.PUT("/password", d.Account.ChangePassword)
}

// RegisterStatic serves the built SPA from dir for every path outside the
// API, falling back to index.html for client-side routes.
func RegisterStatic(e *echo.Echo, dir string) {
	if dir == "" {
		return
	}
	e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
		Root:  dir,
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/v1/") || p == "/healthz"
		},
	}))
}

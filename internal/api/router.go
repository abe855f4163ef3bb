package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/ratehub/storefront/internal/api/handler"
	"github.com/ratehub/storefront/internal/api/middleware"
	"github.com/ratehub/storefront/internal/core/domain"
	"github.com/ratehub/storefront/internal/core/ports"
	"github.com/ratehub/storefront/internal/core/search"
	"github.com/ratehub/storefront/internal/core/session"
	"github.com/ratehub/storefront/internal/infrastructure/config"
	"github.com/ratehub/storefront/internal/view"
	"github.com/ratehub/storefront/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(gw ports.Gateway, sessions *session.Manager, searches *search.Registry, rdb *redis.Client, cfg *config.Config) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.New()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Component("http"))

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))
	e.Use(middleware.Session(sessions))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(gw, sessions, searches, cfg.SessionTTL, cfg.CookieSecure)
	adminHandler := handler.NewAdminHandler(gw, searches, logger.Component("admin"))
	ownerHandler := handler.NewOwnerHandler(gw, logger.Component("owner"))
	storeHandler := handler.NewStoreHandler(gw)
	passwordHandler := handler.NewPasswordHandler(gw)
	healthHandler := handler.NewHealthHandler(rdb)

	// --- Entry point and auth flows ---
	e.GET("/", authHandler.Home)
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)

	// --- Role dashboards ---
	admin := e.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.GET("", adminHandler.Dashboard)
	admin.GET("/users/new", adminHandler.NewUser)
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/stores/new", adminHandler.NewStore)
	admin.GET("/stores/new/owner-search", adminHandler.OwnerSearch)
	admin.POST("/stores", adminHandler.CreateStore)

	owner := e.Group("/owner", middleware.RequireRole(domain.RoleStoreOwner))
	owner.GET("", ownerHandler.Dashboard)

	stores := e.Group("/stores", middleware.RequireRole(domain.RoleNormalUser))
	stores.GET("", storeHandler.Directory)
	stores.POST("/:id/rate", storeHandler.Rate)

	// --- Shared authenticated pages ---
	e.GET("/password", passwordHandler.Show, middleware.RequireAuthenticated())
	e.POST("/password", passwordHandler.Update, middleware.RequireAuthenticated())

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	return e, nil
}

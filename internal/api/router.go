package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/markethub/admin-gateway/docs"
	"github.com/markethub/admin-gateway/internal/api/handler"
	"github.com/markethub/admin-gateway/internal/api/middleware"
	"github.com/markethub/admin-gateway/internal/core/domain"
	"github.com/markethub/admin-gateway/internal/core/ports"
	"github.com/markethub/admin-gateway/internal/core/service"
	"github.com/markethub/admin-gateway/internal/upstream"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Request metrics register with reg; constructing more than one router per
// process requires a fresh registry each time, so a nil reg falls back to
// the process-wide default.
func NewRouter(rdb *redis.Client, client *upstream.Client, store ports.CredentialStore, log zerolog.Logger, reg prometheus.Registerer) *echo.Echo {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer, ok := reg.(prometheus.Gatherer)
	if !ok {
		gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "admin_gateway",
		Registerer: reg,
	}))
	e.Use(middleware.EdgeGatekeeper(store))

	// --- Dependencies ---
	authService := service.NewAuthService(client, log)
	sessionService := service.NewSessionService(client, log)
	directoryService := service.NewDirectoryService(client, log)

	authHandler := handler.NewAuthHandler(authService, store)
	dashboardHandler := handler.NewDashboardHandler()
	usersHandler := handler.NewUsersHandler(directoryService)
	marketsHandler := handler.NewMarketsHandler()

	// --- Auth funnel ---
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.POST("/verify-email", authHandler.VerifyEmail)
	e.POST("/logout", authHandler.Logout)

	// --- Authenticated area ---
	// The session resolver runs once per request for the whole group; each
	// route then declares its guard category.
	dash := e.Group("/dashboard", middleware.ResolveSession(store, sessionService))
	dash.GET("", dashboardHandler.Landing, middleware.Guard(domain.CategoryOwnProfile))
	dash.GET("/profile", dashboardHandler.Profile, middleware.Guard(domain.CategoryOwnProfile))
	dash.GET("/markets", marketsHandler.Overview, middleware.Guard(domain.CategoryMarketManagement))

	users := dash.Group("/users/:role",
		middleware.Guard(domain.CategoryUserManagement),
		middleware.ValidateRoleParam(domain.CategoryUserManagement, "role"),
	)
	users.GET("", usersHandler.List)
	users.POST("", usersHandler.Create)
	users.GET("/:id", usersHandler.Get)
	users.PUT("/:id", usersHandler.Update)
	users.DELETE("/:id", usersHandler.Delete)

	// --- Infrastructure endpoints (excluded from edge evaluation) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

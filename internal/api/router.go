package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/fashionstore/storefront/docs"
	"github.com/fashionstore/storefront/internal/api/handler"
	"github.com/fashionstore/storefront/internal/api/middleware"
	"github.com/fashionstore/storefront/internal/core/domain"
	"github.com/fashionstore/storefront/internal/core/ports"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Products   ports.ProductService
	Categories ports.CategoryService
	Auth       ports.AuthService
	Tokens     ports.TokenVerifier

	// AuthLimiter throttles the register and login routes. Nil disables it.
	AuthLimiter middleware.Limiter
	Health      map[string]handler.Pinger

	// Registry receives the HTTP metrics. Nil uses the default registry.
	Registry *prometheus.Registry

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))

	promCfg := echoprometheus.MiddlewareConfig{Namespace: "storefront", Subsystem: "http"}
	handlerCfg := echoprometheus.HandlerConfig{}
	if deps.Registry != nil {
		promCfg.Registerer = deps.Registry
		handlerCfg.Gatherer = deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	authenticate := middleware.Authenticate(deps.Tokens)
	staff := middleware.RequireRoles(domain.RoleAdmin, domain.RoleMerchant)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	var authMW []echo.MiddlewareFunc
	if deps.AuthLimiter != nil {
		authMW = append(authMW, middleware.RateLimit(deps.AuthLimiter, "auth", deps.Log))
	}
	auth := e.Group("/auth", authMW...)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Product routes ---
	products := handler.NewProductHandler(deps.Products)
	p := e.Group("/product")
	p.GET("/list", products.ListStorefront)
	p.GET("/item/:slug", products.GetBySlug)
	p.GET("/list/search/:name", products.SearchByName)
	p.GET("/list/select", products.ListOptions, authenticate)
	p.GET("", products.ListAll, authenticate, staff)
	p.GET("/:id", products.GetByID, authenticate, staff)
	p.POST("/add", products.Add, authenticate, adminOnly)
	p.PUT("/:id", products.Update, authenticate, staff)
	p.PUT("/:id/active", products.SetActive, authenticate, staff)
	p.DELETE("/delete/:id", products.Delete, authenticate, staff)

	// --- Category routes ---
	categories := handler.NewCategoryHandler(deps.Categories)
	e.POST("/category/add", categories.Add, authenticate, adminOnly)
	e.GET("/category/list", categories.List)

	// --- Health probes (no auth required) ---
	health := handler.NewHealthHandler(deps.Health)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(handlerCfg))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

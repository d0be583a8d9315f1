package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/paintcompare/marketplace-api/internal/api/handler"
	"github.com/paintcompare/marketplace-api/internal/api/middleware"
	"github.com/paintcompare/marketplace-api/internal/core/auth"
	"github.com/paintcompare/marketplace-api/internal/core/ports"
	"github.com/paintcompare/marketplace-api/internal/core/service"
	"github.com/paintcompare/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/paintcompare/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/paintcompare/marketplace-api/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered.
//
// Two authentication flavors are wired. Stateless trusts the verified token
// claims, good enough for reads scoped to the caller. Authoritative re-reads
// the credential record on every request, so deactivated accounts and role
// changes take effect immediately; every mutation and the whole admin surface
// run through it.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, sink ports.ActivitySink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("paintcompare"))

	// --- Dependencies ---
	store := mongodb.NewCredentialRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)

	tokens := auth.NewTokenService(cfg.JWTSecret, auth.DefaultTokenTTL)
	resolver := auth.NewResolver(store)
	policy := auth.DefaultPolicy()

	authService := service.NewAuthService(store, tokens, throttle, sink, log)
	catalogService := service.NewCatalogService(productRepo, log)
	orderService := service.NewOrderService(orderRepo, productRepo, log)
	userAdminService := service.NewUserAdminService(store, log)

	authHandler := handler.NewAuthHandler(authService, tokens.TTL())
	productHandler := handler.NewProductHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	userAdminHandler := handler.NewUserAdminHandler(userAdminService)

	authStateless := middleware.Authenticate(tokens, resolver, auth.ModeStateless)
	authStrict := middleware.Authenticate(tokens, resolver, auth.ModeAuthoritative)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me, authStateless)

	// --- Catalog: public reads, gated writes ---
	e.GET("/products", productHandler.List)
	e.GET("/products/:id", productHandler.Get)
	manageCatalog := middleware.RequireRoles(policy.Allowed("catalog.manage")...)
	e.POST("/products", productHandler.Create, authStrict, manageCatalog)
	e.PUT("/products/:id", productHandler.Update, authStrict, manageCatalog)
	e.DELETE("/products/:id", productHandler.Delete, authStrict, manageCatalog)

	// --- Orders ---
	e.POST("/orders", orderHandler.Place, authStrict, middleware.RequireRoles(policy.Allowed("orders.place")...))
	e.GET("/orders", orderHandler.List, authStateless, middleware.RequireRoles(policy.Allowed("orders.view")...))
	e.GET("/orders/:id", orderHandler.Get, authStateless, middleware.RequireRoles(policy.Allowed("orders.view")...))
	e.PATCH("/orders/:id/status", orderHandler.UpdateStatus, authStrict, middleware.RequireRoles(policy.Allowed("orders.update")...))

	// --- Back office ---
	adminUsers := e.Group("/admin/users", authStrict, middleware.RequireRoles(policy.Allowed("admin.users")...))
	adminUsers.GET("", userAdminHandler.List)
	adminUsers.GET("/:id", userAdminHandler.Get)
	adminUsers.PUT("/:id", userAdminHandler.Update)
	adminUsers.DELETE("/:id", userAdminHandler.Delete)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

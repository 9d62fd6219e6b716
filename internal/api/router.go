// Package api builds the HTTP surface: routing, middleware, request
// validation and the domain-error → status-code mapping.
package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/finsight/revenue-analytics/internal/api/handler"
	"github.com/finsight/revenue-analytics/internal/api/middleware"
	"github.com/finsight/revenue-analytics/internal/core/domain"
	"github.com/finsight/revenue-analytics/internal/core/ports"
	"github.com/finsight/revenue-analytics/internal/core/service"
	"github.com/finsight/revenue-analytics/internal/infrastructure/config"
	mongodb "github.com/finsight/revenue-analytics/internal/infrastructure/db/mongo"
	redisdb "github.com/finsight/revenue-analytics/internal/infrastructure/db/redis"
	sqlitedb "github.com/finsight/revenue-analytics/internal/infrastructure/db/sqlite"
	"github.com/finsight/revenue-analytics/internal/infrastructure/llm"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil (answer caching disabled); the responder is nil when no
// OpenAI API key is configured.
func NewRouter(db *gorm.DB, reportsDB *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("revenue"))

	// --- Repositories ---
	authRepo := sqlitedb.NewAuthRepository(db)
	orgRepo := sqlitedb.NewOrgRepository(db)
	datasetRepo := sqlitedb.NewDatasetRepository(db)
	reportRepo := mongodb.NewReportRepository(reportsDB)

	// --- External collaborators (both optional) ---
	var responder ports.Responder
	if client := llm.NewClient(llm.Config{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
		Timeout: cfg.OpenAI.Timeout,
	}); client != nil {
		responder = client
	}

	var cache service.AnswerCache
	if rdb != nil {
		cache = redisdb.NewAnswerCache(rdb)
	}

	// --- Services ---
	component := func(name string) zerolog.Logger {
		return log.With().Str("component", name).Logger()
	}
	authService := service.NewAuthService(authRepo, orgRepo, cfg.JWTSecret, 24*time.Hour)
	portfolioService := service.NewPortfolioService(orgRepo, component("portfolio"))
	datasetService := service.NewDatasetService(datasetRepo, component("datasets"))
	analyticsService := service.NewAnalyticsService(datasetRepo, component("analytics"))
	chatService := service.NewChatService(datasetRepo, responder, cache, component("chat"))
	reportService := service.NewReportService(orgRepo, analyticsService, reportRepo, responder, component("reports"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	portfolioHandler := handler.NewPortfolioHandler(portfolioService)
	datasetHandler := handler.NewDatasetHandler(datasetService, portfolioService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, portfolioService)
	chatHandler := handler.NewChatHandler(chatService, portfolioService)
	reportHandler := handler.NewReportHandler(reportService, portfolioService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, reportsDB, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Protected API ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))

	investeeOnly := middleware.RBAC(domain.RoleInvestee)
	investorOnly := middleware.RBAC(domain.RoleInvestor)

	v1.POST("/datasets", datasetHandler.Upload, investeeOnly)

	v1.GET("/companies", portfolioHandler.List, investorOnly)
	v1.POST("/companies/:id/subscriptions", portfolioHandler.Connect, investorOnly)
	v1.DELETE("/companies/:id/subscriptions", portfolioHandler.Disconnect, investorOnly)

	v1.GET("/companies/:id/datasets", datasetHandler.List)
	v1.GET("/companies/:id/datasets/:category", datasetHandler.Get)
	v1.GET("/companies/:id/analytics/:category", analyticsHandler.Get)
	v1.POST("/companies/:id/chat", chatHandler.Ask)

	v1.POST("/companies/:id/reports", reportHandler.Generate)
	v1.GET("/companies/:id/reports", reportHandler.List)
	v1.GET("/reports/:id", reportHandler.Get)

	return e
}

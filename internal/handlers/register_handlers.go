package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/invoice_generator_app/cmd/docgen_backend/docs"
	portssvc "github.com/SscSPs/invoice_generator_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
	"github.com/SscSPs/invoice_generator_app/internal/middleware"
	"github.com/SscSPs/invoice_generator_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	dto.RegisterValidators()
	api := r.Group("/api")

	api.GET("/health", getHealth(services.Health))

	// Public user and share routes
	registerAuthRoutes(api, cfg, services)
	RegisterPublicDocumentRoutes(api, services.Document, services.Export)

	// Everything below requires a bearer token
	protected := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
	RegisterUserRoutes(protected.Group("/users"), services.User)
	RegisterDocumentRoutes(protected, services.Document, services.Export)
	RegisterQuotationRoutes(protected, services.Quotation)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.Fail("Route not found"))
	})

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// registerAuthRoutes sets up the rate limited sign-in routes.
func registerAuthRoutes(api *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	users := api.Group("/users")
	if lim, err := middleware.NewMemoryLimiter(cfg.AuthRateLimit); err != nil {
		slog.Warn("Invalid AUTH_RATE_LIMIT, sign-in routes are not rate limited", slog.String("value", cfg.AuthRateLimit), slog.String("error", err.Error()))
	} else {
		users.Use(middleware.RateLimit(lim))
	}

	auth := newAuthHandler(services.User, services.TokenService)
	users.POST("/register", auth.register)
	users.POST("/login", auth.login)

	google := newGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, services.TokenService)
	users.GET("/google/login-url", google.loginURL)
	users.POST("/google/exchange-code", google.exchangeCode)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

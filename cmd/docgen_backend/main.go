package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/core/generator"
	portsrepo "github.com/SscSPs/invoice_generator_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_generator_app/internal/core/services"
	"github.com/SscSPs/invoice_generator_app/internal/export"
	"github.com/SscSPs/invoice_generator_app/internal/handlers"
	"github.com/SscSPs/invoice_generator_app/internal/middleware"
	"github.com/SscSPs/invoice_generator_app/internal/platform/config"
	"github.com/SscSPs/invoice_generator_app/internal/repositories/database/mongodb"
	"github.com/SscSPs/invoice_generator_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/invoice_generator_app/internal/repositories/memory"
	"github.com/SscSPs/invoice_generator_app/internal/utils"
	"github.com/SscSPs/invoice_generator_app/pkg/database"

	"github.com/gin-gonic/gin"
)

// @title Invoice Generator API
// @version 1.0
// @description Quotation and invoice generator backend.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	repos, closeStore, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("db_type", cfg.DBType), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	options, closeGenerator := serviceOptions(ctx, cfg, logger)
	defer closeGenerator()
	serviceContainer := services.NewServiceContainer(cfg, repos, options...)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.ClientURL),
		middleware.RequestTimeout(cfg.RequestTimeout),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("db_type", cfg.DBType))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
}

// setupRepositories connects the configured store and applies its migrations.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.DBType {
	case config.DBTypeMemory:
		logger.Warn("Using in-memory storage. Data is lost on restart.")
		return memory.NewRepositoryProvider(), func() {}, nil

	case config.DBTypePostgres:
		logger.Info("Running database migrations...")
		if err := database.RunPostgresMigrations(cfg.DatabaseURL, filepath.Join(cfg.MigrationsPath, "postgres")); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil

	default:
		logger.Info("Running database migrations...")
		if err := database.RunMongoMigrations(ctx, cfg.MongoURI, cfg.MongoDatabase, filepath.Join(cfg.MigrationsPath, "mongodb")); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		client, err := database.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			database.CloseMongoClient(closeCtx, client)
		}
		return mongodb.NewRepositoryProvider(client.Database(cfg.MongoDatabase)), closeFn, nil
	}
}

// serviceOptions builds the optional collaborators: the quotation generator
// and the PDF export pipeline.
func serviceOptions(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]services.ContainerOption, func()) {
	var options []services.ContainerOption
	closeFn := func() {}

	if cfg.QuotationEngine == config.GeneratorVertex {
		vertex, err := generator.NewVertexGenerator(ctx, cfg.VertexProjectID, cfg.VertexRegion, cfg.VertexModel)
		if err != nil {
			logger.Warn("Vertex AI unavailable, using simulated quotation generator", slog.String("error", err.Error()))
		} else {
			options = append(options, services.WithContentGenerator(vertex))
			closeFn = func() {
				if err := vertex.Close(); err != nil {
					logger.Error("Failed to close Vertex AI client", slog.String("error", err.Error()))
				}
			}
		}
	}

	if !cfg.PDFExport {
		logger.Info("PDF export disabled")
		return options, closeFn
	}

	var exportOpts []services.ExportServiceOption
	if cfg.PDFWatermark {
		exportOpts = append(exportOpts, services.WithWatermarker(export.NewPdfcpuWatermarker()))
	}
	if cfg.ArchiveBucket != "" {
		archive, err := export.NewS3Archive(ctx, export.ArchiveConfig{
			Bucket:          cfg.ArchiveBucket,
			Endpoint:        cfg.ArchiveEndpoint,
			PublicURL:       cfg.ArchivePublicURL,
			AccessKeyID:     cfg.ArchiveAccessKeyID,
			SecretAccessKey: cfg.ArchiveSecretAccessKey,
		})
		if err != nil {
			logger.Warn("PDF archive disabled", slog.String("error", err.Error()))
		} else {
			exportOpts = append(exportOpts, services.WithArchive(archive))
		}
	}
	options = append(options, services.WithPDFExport(export.NewChromePDFRenderer(cfg.ChromeExecPath), exportOpts...))
	return options, closeFn
}

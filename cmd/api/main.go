package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/ca-vahid/hiring-manager/internal/config"
	"github.com/ca-vahid/hiring-manager/internal/handlers"
	"github.com/ca-vahid/hiring-manager/internal/logger"
	"github.com/ca-vahid/hiring-manager/internal/models"
	"github.com/ca-vahid/hiring-manager/internal/repositories"
	"github.com/ca-vahid/hiring-manager/internal/services"
)

func main() {
	cfg := config.Load()

	isDev := cfg.Server.Env == "development"
	zlog, err := logger.New(!isDev, isDev)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	zlog.Info("database ready", zap.String("db", cfg.Database.DBName))

	// Repositories
	candidateRepo := repositories.NewCandidateRepository(db)
	docRepo := repositories.NewDocumentRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)

	// Storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zlog.Fatal("failed to create upload directory", zap.Error(err))
	}

	pdfParser := services.NewPDFParserService()

	// AI providers. Each is optional; analysis endpoints reject providers
	// that are not configured.
	registry := services.NewProviderRegistry()

	var geminiService services.GeminiService
	if cfg.Gemini.APIKey != "" {
		geminiService, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, zlog)
		if err != nil {
			zlog.Fatal("failed to initialize Gemini", zap.Error(err))
		}
		registry.Register(models.ProviderGemini, geminiService)
		zlog.Info("gemini provider registered", zap.String("model", cfg.Gemini.Model))
	}

	if cfg.OpenAI.APIKey != "" {
		openaiService := services.NewOpenAIService(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		registry.Register(models.ProviderOpenAI, openaiService)
		zlog.Info("openai provider registered", zap.String("model", cfg.OpenAI.Model))
	}

	// Vector index needs Gemini embeddings; without them we skip indexing
	// and comparisons lose their retrieved excerpts, nothing else.
	var index services.DocumentIndex
	if geminiService != nil && cfg.Qdrant.URL != "" {
		index, err = services.NewDocumentIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, zlog)
		if err != nil {
			zlog.Fatal("failed to initialize Qdrant", zap.Error(err))
		}
		if err := index.InitCollection(); err != nil {
			zlog.Fatal("failed to initialize Qdrant collection", zap.Error(err))
		}
		zlog.Info("document index ready", zap.String("collection", cfg.Qdrant.Collection))
	}

	analyzer := services.NewAnalyzerService(
		analysisRepo,
		docRepo,
		pdfParser,
		registry,
		geminiService,
		index,
		zlog,
		cfg.Worker.RetryMaxAttempts,
		cfg.Worker.RetryInitialDelay,
	)

	comparer := services.NewComparerService(
		candidateRepo,
		registry,
		geminiService,
		index,
		zlog,
		cfg.Worker.RetryMaxAttempts,
		cfg.Worker.RetryInitialDelay,
	)

	worker := services.NewWorker(analysisRepo, analyzer, cfg.Worker.Concurrency, zlog)
	worker.Start(context.Background())

	exporter := services.NewExporterService()

	// Handlers
	candidateHandler := handlers.NewCandidateHandler(candidateRepo, exporter, cfg.Scoring.Weights)
	documentHandler := handlers.NewDocumentHandler(candidateRepo, docRepo, storageService, index, zlog, cfg.Storage.MaxFileSize)
	analysisHandler := handlers.NewAnalysisHandler(analysisRepo, docRepo, registry, worker)
	compareHandler := handlers.NewCompareHandler(comparer, registry)

	app := fiber.New(fiber.Config{
		AppName:      "Hiring Manager API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/candidates", candidateHandler.HandleCreate)
	api.Get("/candidates", candidateHandler.HandleList)
	api.Get("/candidates/export", candidateHandler.HandleExport)
	api.Post("/candidates/compare", compareHandler.HandleCompare)
	api.Get("/candidates/:id", candidateHandler.HandleGet)
	api.Put("/candidates/:id", candidateHandler.HandleUpdate)
	api.Patch("/candidates/:id/rating", candidateHandler.HandleUpdateRating)
	api.Patch("/candidates/:id/status", candidateHandler.HandleUpdateStatus)
	api.Put("/candidates/:id/scores", candidateHandler.HandleUpdateScores)
	api.Delete("/candidates/:id", candidateHandler.HandleDelete)

	api.Post("/candidates/:id/documents", documentHandler.HandleUpload)
	api.Get("/candidates/:id/documents", documentHandler.HandleList)
	api.Delete("/documents/:id", documentHandler.HandleDelete)

	api.Post("/documents/:id/analyze", analysisHandler.HandleAnalyze)
	api.Get("/documents/:id/analysis", analysisHandler.HandleGetAnalysis)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

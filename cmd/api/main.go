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
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/hkhan122/ResumeAnalyzer/internal/config"
	"github.com/hkhan122/ResumeAnalyzer/internal/handlers"
	"github.com/hkhan122/ResumeAnalyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewExtractorService()
	segmenter := services.NewSegmenterService()
	heuristic := services.NewHeuristicService()
	log.Println("✅ Services initialized successfully")

	// Initialize the remote provider, if a credential is configured
	remote := buildRemoteService(cfg)

	analyzer := services.NewAnalyzerService(remote, segmenter, heuristic, cfg.Remote.FallbackOnAuthError)
	log.Println("✅ Analyzer service initialized")

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(
		storageService,
		extractor,
		analyzer,
		cfg.Response.Format,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/analyze", analyzeHandler.HandleAnalyze)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/analyze",
				"GET /api/health",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// buildRemoteService picks the configured text-generation provider. A missing
// credential or failed provider init disables remote analysis instead of
// stopping the server; the local analyzer still works without it.
func buildRemoteService(cfg *config.Config) services.RemoteAnalysisService {
	if cfg.Remote.APIKey == "" {
		return nil
	}

	var provider services.CompletionProvider
	switch cfg.Remote.Provider {
	case config.ProviderGemini:
		p, err := services.NewGeminiProvider(context.Background(), cfg.Remote)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Gemini provider: %v\n", err)
			return nil
		}
		provider = p
	case config.ProviderOpenAI:
		provider = services.NewOpenAIProvider(cfg.Remote)
	default:
		provider = services.NewHuggingFaceProvider(cfg.Remote)
	}

	log.Printf("✅ Remote provider initialized: %s\n", cfg.Remote.Provider)
	return services.NewRemoteAnalysisService(provider)
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

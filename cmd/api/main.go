package main

import (
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

	"farhanmaulana/hire-screener/internal/config"
	"farhanmaulana/hire-screener/internal/handlers"
	"farhanmaulana/hire-screener/internal/repositories"
	"farhanmaulana/hire-screener/internal/services"
	"farhanmaulana/hire-screener/pkg/logging"
)

func main() {
	// Load configuration
	cfg := config.Load()

	appLog := logging.New(cfg.Log.Level)
	defer appLog.Sync()

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	appRepo := repositories.NewApplicationRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	scoreRepo := repositories.NewScoreRepository(db)
	settingRepo := repositories.NewSettingRepository(db)
	appLog.Info("repositories initialized")

	// Initialize the AI collaborator. The pipeline runs fully on the
	// deterministic path when no API key is configured.
	var geminiService services.GeminiService
	if cfg.Gemini.APIKey != "" {
		geminiService, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		appLog.Info("Gemini AI initialized", "model", cfg.Gemini.Model)
	} else {
		appLog.Warn("GEMINI_API_KEY not set, AI paths disabled")
	}

	// Initialize the question archive (optional)
	var archive services.QuestionArchiveService
	if cfg.Qdrant.URL != "" && geminiService != nil {
		archive, err = services.NewQuestionArchiveService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			geminiService,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := archive.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		appLog.Info("question archive initialized", "collection", cfg.Qdrant.Collection)
	} else {
		appLog.Warn("question archive disabled")
	}

	// Initialize services
	var aiQuestions services.QuestionSource
	var aiAnswers services.AnswerScorer
	if geminiService != nil {
		aiQuestions = services.NewAIQuestionSource(geminiService, archive, appLog)
		aiAnswers = services.NewAIAnswerScorer(geminiService)
	}

	questionService := services.NewQuestionService(
		appRepo,
		jobRepo,
		profileRepo,
		interviewRepo,
		aiQuestions,
		archive,
		cfg.Gemini.Timeout,
		appLog,
	)

	scoreService := services.NewScoreService(
		interviewRepo,
		appRepo,
		jobRepo,
		profileRepo,
		scoreRepo,
		settingRepo,
		aiAnswers,
		cfg.Gemini.Timeout,
		appLog,
	)
	appLog.Info("services initialized")

	// Initialize handlers
	questionHandler := handlers.NewQuestionHandler(questionService)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	resultHandler := handlers.NewResultHandler(interviewRepo, scoreRepo)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Hire Screener API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
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
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/generate-questions", questionHandler.HandleGenerateQuestions)
	api.Post("/calculate-scores", scoreHandler.HandleCalculateScores)
	api.Get("/interviews/:id/score", resultHandler.HandleGetResult)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Hire Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/generate-questions",
				"POST /api/v1/calculate-scores",
				"GET /api/v1/interviews/:id/score",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		appLog.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			appLog.Error("server forced to shutdown", "error", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	appLog.Info("server starting", "addr", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
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

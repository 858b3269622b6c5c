// @title Study Game API
// @version 1.0
// @description Question pack normalization, quiz sessions and grading for the study game.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"study-game/internal/cache"
	"study-game/internal/config"
	"study-game/internal/content"
	"study-game/internal/database"
	"study-game/internal/dto"
	"study-game/internal/handler"
	"study-game/internal/logger"
	"study-game/internal/middleware"
	"study-game/internal/repository"
	"study-game/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// attemptTTL bounds how long a graded attempt stays referable by reports.
const attemptTTL = 30 * 24 * time.Hour

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func newStorage(cfg *config.Config) (content.Storage, error) {
	if cfg.Storage.Mode == "s3" {
		return content.NewS3Storage(cfg.Storage.S3)
	}
	return content.NewLocalStorage(cfg.Storage.Local.Path), nil
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Pack storage (local directory or S3 compatible bucket)
	storage, err := newStorage(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize pack storage", zap.Error(err))
	}
	appLogger.Info("Pack storage initialized", zap.String("mode", cfg.Storage.Mode))
	packService := content.NewPackService(storage)

	// Entitlement database
	db, err := database.NewSQLiteConnection(cfg.DB)
	if err != nil {
		appLogger.Fatal("Failed to open entitlement database", zap.Error(err))
	}
	defer db.Close()
	entitlementRepository, err := repository.NewEntitlementRepository(db)
	if err != nil {
		appLogger.Fatal("Failed to initialize entitlement repository", zap.Error(err))
	}

	// Attempt store on Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	attemptRepository := repository.NewAttemptRepository(redisClient, attemptTTL)

	// Initialize services
	quizService := service.NewQuizService(packService, attemptRepository, cfg.Quiz)
	reportService := service.NewReportService(attemptRepository, entitlementRepository, service.LogMailer{}, cfg.Report)

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizService)
	reportHandler := handler.NewReportHandler(reportService)
	uploadHandler := handler.NewUploadHandler(packService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,X-User-Id", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Time: time.Now().UTC()})
	})

	// API group
	apiGroup := app.Group("/api")
	apiGroup.Get("/packs", quizHandler.ListPacks)
	apiGroup.Get("/quiz", quizHandler.GetQuiz)
	apiGroup.Post("/quiz/grade", quizHandler.Grade)
	apiGroup.Get("/attempts/:id", quizHandler.GetAttempt)
	apiGroup.Post("/report/send", reportHandler.Send)
	apiGroup.Post("/upload", uploadHandler.Upload)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

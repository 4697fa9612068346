package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interviewprep/internal/config"
	"interviewprep/internal/handlers"
	"interviewprep/internal/jobs"
	"interviewprep/internal/llm"
	_ "interviewprep/internal/llm/gemini"
	"interviewprep/internal/models"
	"interviewprep/internal/parser"
	"interviewprep/internal/prompts"
	"interviewprep/internal/repositories"
	"interviewprep/internal/routers"
	"interviewprep/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func registerRoutes(router *chi.Mux, authHandler *handlers.AuthHandler, interviewHandler *handlers.InterviewHandler, resumeHandler *handlers.ResumeHandler, healthHandler *handlers.HealthHandler, jwtSecret string) {
	routers.HealthRoutes(router, healthHandler)
	routers.AuthRoutes(router, authHandler, jwtSecret)
	routers.InterviewRoutes(router, interviewHandler, jwtSecret)
	routers.ResumeRoutes(router, resumeHandler, jwtSecret)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// initDatabase initializes the PostgreSQL database connection
func initDatabase() (*gorm.DB, error) {
	host := getEnv("POSTGRES_HOST", "localhost")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "postgres")
	dbname := getEnv("POSTGRES_DB", "postgres")
	port := getEnv("POSTGRES_PORT", "5432")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.InterviewSession{}, &models.ResumeResult{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	parser.SetLogger(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider based on configuration. Startup survives a failed
	// initialization; generation endpoints report 503 until it is configured.
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Error("Failed to initialize AI provider, generation disabled", zap.Error(err))
		aiProvider = nil
	}

	// Database is core storage here, not an optional subsystem.
	db, err := initDatabase()
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	userRepo := &repositories.UserRepository{DB: db}
	sessionRepo := &repositories.SessionRepository{DB: db}
	resumeRepo := &repositories.ResumeRepository{DB: db}

	sessionService := session.NewService(sessionRepo, userRepo, aiProvider, promptManager, logger)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, logger)
	interviewHandler := handlers.NewInterviewHandler(sessionService, logger)
	resumeHandler := handlers.NewResumeHandler(aiProvider, promptManager, resumeRepo, logger)
	healthHandler := handlers.NewHealthHandler(aiProvider)

	janitorJob := jobs.NewSessionJanitorJob(sessionRepo, userRepo, &jobs.JanitorConfig{
		Schedule: cfg.JanitorSchedule,
		MaxIdle:  cfg.JanitorMaxIdle,
		Enabled:  cfg.JanitorEnabled,
	})
	if err := janitorJob.Start(); err != nil {
		logger.Error("Failed to start session janitor job", zap.Error(err))
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{getEnv("FRONTEND_ORIGIN", "http://localhost:5173")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(200*time.Second))

	registerRoutes(router, authHandler, interviewHandler, resumeHandler, healthHandler, cfg.JWTSecret)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port

	// http server with timeouts; write timeout leaves room for the slowest
	// generation budget
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 200 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview prep service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview prep service shutting down...")

	janitorJob.Stop()

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Interview prep service exited")
}
